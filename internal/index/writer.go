package index

import (
	"bufio"
	"fmt"
	"os"

	"github.com/wizenheimer/bsbi/internal/codec"
)

// Writer appends postings lists to a new on-disk inverted index. Append
// must be called in strictly increasing term-ID order; Close flushes the
// postings file and persists the dictionary.
type Writer struct {
	codec codec.Codec

	indexPath string
	dictPath  string

	f  *os.File
	bw *bufio.Writer

	offset  uint64
	hasPrev bool
	prevID  uint64

	dict *dictFile
}

// Create opens a new writer for the index named name under dir, truncating
// any existing postings file with that name.
func Create(name, dir string, c codec.Codec) (*Writer, error) {
	indexPath, dictPath := paths(name, dir)

	f, err := os.Create(indexPath)
	if err != nil {
		return nil, wrapPath("create", indexPath, err)
	}

	return &Writer{
		codec:     c,
		indexPath: indexPath,
		dictPath:  dictPath,
		f:         f,
		bw:        bufio.NewWriter(f),
		dict:      newDictFile(),
	}, nil
}

// Append encodes postings with the writer's codec and appends it to the
// postings file, recording its dictionary entry. termID must be strictly
// greater than the previous call's termID.
func (w *Writer) Append(termID uint64, postings []uint64) error {
	if w.hasPrev {
		if termID <= w.prevID {
			return fmt.Errorf("index: append term %d after %d: %w", termID, w.prevID, ErrNonMonotonicAppend)
		}
	}
	if _, exists := w.dict.entries[termID]; exists {
		return fmt.Errorf("index: append term %d: %w", termID, ErrDuplicateTermID)
	}

	encoded, err := w.codec.Encode(postings)
	if err != nil {
		return fmt.Errorf("index: encode term %d: %w", termID, err)
	}

	if _, err := w.bw.Write(encoded); err != nil {
		return wrapPath("write postings", w.indexPath, err)
	}

	w.dict.terms = append(w.dict.terms, termID)
	w.dict.entries[termID] = entry{
		offset: w.offset,
		count:  uint64(len(postings)),
		length: uint64(len(encoded)),
	}

	w.offset += uint64(len(encoded))
	w.hasPrev = true
	w.prevID = termID
	return nil
}

// Close flushes the postings file and serializes the dictionary. It is
// safe to call exactly once.
func (w *Writer) Close() error {
	if err := w.bw.Flush(); err != nil {
		_ = w.f.Close()
		return wrapPath("flush", w.indexPath, err)
	}
	if err := w.f.Close(); err != nil {
		return wrapPath("close", w.indexPath, err)
	}
	if err := writeDict(w.dictPath, w.dict); err != nil {
		return err
	}
	return nil
}
