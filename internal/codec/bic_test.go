package codec

import (
	"reflect"
	"testing"
)

func TestBIC_RoundTrip(t *testing.T) {
	xs := []uint64{34, 67, 89, 454, 2345738}
	c := BIC{}

	encoded, err := c.Encode(xs)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := c.Decode(encoded, len(xs))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, xs) {
		t.Errorf("Decode(Encode(%v)) = %v", xs, decoded)
	}
}

func TestBIC_Empty(t *testing.T) {
	c := BIC{}

	encoded, err := c.Encode(nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(encoded) != 0 {
		t.Errorf("Encode(nil) = %v, want 0 bytes", encoded)
	}

	decoded, err := c.Decode(encoded, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded) != 0 {
		t.Errorf("Decode(0 bytes, n=0) = %v, want empty", decoded)
	}
}

func TestBIC_SingleZero(t *testing.T) {
	c := BIC{}

	encoded, err := c.Encode([]uint64{0})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := c.Decode(encoded, 1)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, []uint64{0}) {
		t.Errorf("Decode(Encode([0])) = %v, want [0]", decoded)
	}
}

func TestBIC_SingleValue(t *testing.T) {
	c := BIC{}

	encoded, err := c.Encode([]uint64{1000})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := c.Decode(encoded, 1)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, []uint64{1000}) {
		t.Errorf("Decode(Encode([1000])) = %v, want [1000]", decoded)
	}
}

func TestBIC_DenseSequentialRange(t *testing.T) {
	// Dense, consecutive postings are the case BIC is meant to shine on:
	// hi - lo == n - 1 exactly.
	xs := make([]uint64, 50)
	for i := range xs {
		xs[i] = uint64(i + 10)
	}
	c := BIC{}

	encoded, err := c.Encode(xs)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := c.Decode(encoded, len(xs))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, xs) {
		t.Errorf("Decode(Encode(dense)) mismatch")
	}
}

func TestBIC_Underflow(t *testing.T) {
	c := BIC{}
	_, err := c.Decode([]byte{}, 3)
	if err == nil {
		t.Error("Decode on empty bitstream with n>0 should error")
	}
}
