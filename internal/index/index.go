// Package index implements the on-disk inverted-file format: a postings
// file of concatenated encoded postings blobs, and a dictionary file
// mapping term-ID to (offset, count, byte-length) plus the insertion-order
// term-ID list.
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHY TWO FILES?
// ═══════════════════════════════════════════════════════════════════════════════
// The postings file is one append-only stream of encoded bytes, written
// once and never touched again. The dictionary file is the small map that
// says where each term's blob starts and how long it is, so a reader can
// seek straight to it instead of scanning the whole postings file.
// ═══════════════════════════════════════════════════════════════════════════════
package index

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrNonMonotonicAppend is returned by Writer.Append when called with a
// term-ID that is not strictly greater than the previously appended one.
var ErrNonMonotonicAppend = errors.New("index: append called out of term-id order")

// ErrDuplicateTermID is returned by Writer.Append when a term-ID has
// already been written to this index.
var ErrDuplicateTermID = errors.New("index: duplicate term id")

// ErrTermNotFound is returned by Reader.GetPostingsList when the term-ID
// has no entry in the dictionary.
var ErrTermNotFound = errors.New("index: term id not found in dictionary")

// ErrBlobLengthMismatch is returned when a decoded postings list's length
// disagrees with the count recorded in the dictionary.
var ErrBlobLengthMismatch = errors.New("index: decoded length does not match dictionary count")

// entry is one dictionary row: the byte offset of the term's postings blob
// in the postings file, how many postings it holds, and the blob's length
// in bytes.
type entry struct {
	offset uint64
	count  uint64
	length uint64
}

// paths returns the conventional {name}.index / {name}.dict paths for an
// index living under dir.
func paths(name, dir string) (indexPath, dictPath string) {
	return filepath.Join(dir, name+".index"), filepath.Join(dir, name+".dict")
}

func wrapPath(op, path string, err error) error {
	return fmt.Errorf("index: %s %s: %w", op, path, err)
}
