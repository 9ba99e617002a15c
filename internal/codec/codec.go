// Package codec implements the three interchangeable postings-list codecs:
// a fixed-width baseline (Standard), gap-based variable-byte (VByte), and
// binary interpolative coding (BIC).
//
// ═══════════════════════════════════════════════════════════════════════════════
// CODEC AS A CAPABILITY
// ═══════════════════════════════════════════════════════════════════════════════
// Rather than a common base type, each codec is a small value implementing
// Codec. Selection is by value (pick one at index-build time and pass the
// same one at read time); dispatch is direct, no identity checks needed
// thanks to RequiresN.
// ═══════════════════════════════════════════════════════════════════════════════
package codec

import "errors"

// ErrValueOutOfRange is returned by Encode when a posting exceeds the
// codec's representable range.
var ErrValueOutOfRange = errors.New("codec: value out of range")

// ErrMalformedBlob is returned by Decode when the byte stream does not
// represent a valid encoding for the codec (missing VByte terminator,
// BIC bit-stream underflow, truncated Standard blob, ...).
var ErrMalformedBlob = errors.New("codec: malformed blob")

// Codec encodes and decodes a strictly increasing sequence of non-negative
// integers (a postings list) to and from bytes.
type Codec interface {
	// Encode packs xs, which must be strictly increasing, into bytes.
	Encode(xs []uint64) ([]byte, error)
	// Decode unpacks data back into the original sequence. n is the
	// expected element count; codecs that don't need it (RequiresN()
	// == false) ignore it and derive length from data alone.
	Decode(data []byte, n int) ([]uint64, error)
	// RequiresN reports whether Decode needs the caller to supply the
	// element count (true for BIC, false for Standard and VByte).
	RequiresN() bool
}

// Name identifies a codec by the string used on the CLI and in tests.
type Name string

const (
	NameStandard Name = "standard"
	NameVByte    Name = "vbyte"
	NameBIC      Name = "bic"
)

// ByName returns the Codec implementation registered under name.
func ByName(name Name) (Codec, error) {
	switch name {
	case NameStandard:
		return Standard{}, nil
	case NameVByte:
		return VByte{}, nil
	case NameBIC:
		return BIC{}, nil
	default:
		return nil, errors.New("codec: unknown codec " + string(name))
	}
}
