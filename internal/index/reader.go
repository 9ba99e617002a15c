package index

import (
	"fmt"
	"io"
	"os"

	"github.com/wizenheimer/bsbi/internal/codec"
)

// Reader provides random-access and full-iteration access to an on-disk
// inverted index: GetPostingsList seeks straight to a term's blob, and
// Next walks every (term, postings) pair in insertion order, decoding one
// list at a time so that even very large indices never need to fit in
// memory at once.
type Reader struct {
	codec codec.Codec
	dict  *dictFile

	f *os.File

	indexPath string
	cursor    int
}

// Open loads the dictionary for the index named name under dir and opens
// its postings file for random-access reads. c must be the same codec
// used when the index was written.
func Open(name, dir string, c codec.Codec) (*Reader, error) {
	indexPath, dictPath := paths(name, dir)

	d, err := readDict(dictPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(indexPath)
	if err != nil {
		return nil, wrapPath("open", indexPath, err)
	}

	return &Reader{codec: c, dict: d, f: f, indexPath: indexPath}, nil
}

// GetPostingsList seeks to termID's recorded offset, reads its blob, and
// decodes it. It fails with ErrTermNotFound if termID is absent from the
// dictionary.
func (r *Reader) GetPostingsList(termID uint64) ([]uint64, error) {
	e, ok := r.dict.entries[termID]
	if !ok {
		return nil, fmt.Errorf("index: term %d: %w", termID, ErrTermNotFound)
	}

	buf := make([]byte, e.length)
	if _, err := r.f.ReadAt(buf, int64(e.offset)); err != nil {
		return nil, fmt.Errorf("index: read term %d at offset %d in %s: %w", termID, e.offset, r.indexPath, err)
	}

	n := 0
	if r.codec.RequiresN() {
		n = int(e.count)
	}

	decoded, err := r.codec.Decode(buf, n)
	if err != nil {
		return nil, fmt.Errorf("index: decode term %d at offset %d: %w", termID, e.offset, err)
	}
	if uint64(len(decoded)) != e.count {
		return nil, fmt.Errorf("index: term %d: decoded %d postings, dictionary says %d: %w",
			termID, len(decoded), e.count, ErrBlobLengthMismatch)
	}

	return decoded, nil
}

// Next returns the next (termID, postings) pair in dictionary order. It
// returns io.EOF once every term has been yielded.
func (r *Reader) Next() (uint64, []uint64, error) {
	if r.cursor >= len(r.dict.terms) {
		return 0, nil, io.EOF
	}
	termID := r.dict.terms[r.cursor]
	r.cursor++

	postings, err := r.GetPostingsList(termID)
	if err != nil {
		return 0, nil, err
	}
	return termID, postings, nil
}

// Reset rewinds the term iterator used by Next back to the beginning.
func (r *Reader) Reset() {
	r.cursor = 0
}

// Terms returns the dictionary's term-ID list in insertion order.
func (r *Reader) Terms() []uint64 {
	return r.dict.terms
}

// Count returns the number of postings recorded for termID, or false if
// termID is absent from the dictionary. The retriever uses this to sort
// query terms by list length before intersecting.
func (r *Reader) Count(termID uint64) (int, bool) {
	e, ok := r.dict.entries[termID]
	if !ok {
		return 0, false
	}
	return int(e.count), true
}

// Close closes the underlying postings file.
func (r *Reader) Close() error {
	if err := r.f.Close(); err != nil {
		return wrapPath("close", r.indexPath, err)
	}
	return nil
}
