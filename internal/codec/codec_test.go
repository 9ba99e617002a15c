package codec

import (
	"reflect"
	"testing"
)

func TestByName(t *testing.T) {
	for _, name := range []Name{NameStandard, NameVByte, NameBIC} {
		if _, err := ByName(name); err != nil {
			t.Errorf("ByName(%q): %v", name, err)
		}
	}
	if _, err := ByName("nonsense"); err == nil {
		t.Error("ByName(nonsense) should error")
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	xs := []uint64{34, 67, 89, 454, 2345738}

	for _, name := range []Name{NameStandard, NameVByte, NameBIC} {
		t.Run(string(name), func(t *testing.T) {
			c, err := ByName(name)
			if err != nil {
				t.Fatalf("ByName: %v", err)
			}

			encoded, err := c.Encode(xs)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}

			decoded, err := c.Decode(encoded, len(xs))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(decoded, xs) {
				t.Errorf("%s round trip = %v, want %v", name, decoded, xs)
			}
		})
	}
}
