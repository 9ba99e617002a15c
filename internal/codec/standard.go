package codec

import "encoding/binary"

// Standard is the fixed-width baseline codec: every posting is packed as a
// 4-byte little-endian unsigned integer, back to back. Length is implicit
// (len(data) / 4), so RequiresN is false.
type Standard struct{}

// Encode packs each value in xs as a 4-byte little-endian unsigned integer.
// It fails with ErrValueOutOfRange if any value exceeds 2^32-1.
func (Standard) Encode(xs []uint64) ([]byte, error) {
	out := make([]byte, 4*len(xs))
	for i, x := range xs {
		if x > 0xFFFFFFFF {
			return nil, ErrValueOutOfRange
		}
		binary.LittleEndian.PutUint32(out[4*i:4*i+4], uint32(x))
	}
	return out, nil
}

// Decode unpacks a Standard blob. n is ignored; the count is len(data)/4.
func (Standard) Decode(data []byte, _ int) ([]uint64, error) {
	if len(data)%4 != 0 {
		return nil, ErrMalformedBlob
	}
	count := len(data) / 4
	out := make([]uint64, count)
	for i := 0; i < count; i++ {
		out[i] = uint64(binary.LittleEndian.Uint32(data[4*i : 4*i+4]))
	}
	return out, nil
}

// RequiresN reports that Standard does not need an explicit count.
func (Standard) RequiresN() bool { return false }
