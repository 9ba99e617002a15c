// Package idmap implements a bidirectional, append-only mapping between
// string identifiers (terms, document names) and dense non-negative
// integer IDs assigned in first-seen order.
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHY AN IDMAP?
// ═══════════════════════════════════════════════════════════════════════════════
// Postings lists, dictionaries and codecs all operate on small dense integers,
// never on the strings themselves. IdMap is the single place where a term or
// a document name is translated to and from its integer ID, so every other
// component can stay string-free.
// ═══════════════════════════════════════════════════════════════════════════════
package idmap

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrIDOutOfRange is returned by NameOf when the requested ID was never assigned.
var ErrIDOutOfRange = errors.New("idmap: id out of range")

// IdMap is a bidirectional string<->int mapping. IDs are assigned sequentially
// starting at 0, in the order strings are first seen by IDOf. The zero value
// is ready to use.
type IdMap struct {
	byString map[string]int
	byID     []string
}

// New returns an empty IdMap.
func New() *IdMap {
	return &IdMap{byString: make(map[string]int)}
}

// IDOf returns the existing ID for s, or allocates the next sequential ID
// and records both directions if s has not been seen before.
func (m *IdMap) IDOf(s string) int {
	if m.byString == nil {
		m.byString = make(map[string]int)
	}
	if id, ok := m.byString[s]; ok {
		return id
	}
	id := len(m.byID)
	m.byString[s] = id
	m.byID = append(m.byID, s)
	return id
}

// Lookup returns the existing ID for s without allocating one, reporting
// false if s has never been seen by IDOf. Callers that must not mutate the
// map as a side effect of a failed lookup (the retriever resolving a query
// term, for instance) use this instead of IDOf.
func (m *IdMap) Lookup(s string) (int, bool) {
	id, ok := m.byString[s]
	return id, ok
}

// NameOf returns the string mapped to id. It errors if id is out of range.
func (m *IdMap) NameOf(id int) (string, error) {
	if id < 0 || id >= len(m.byID) {
		return "", fmt.Errorf("%w: %d", ErrIDOutOfRange, id)
	}
	return m.byID[id], nil
}

// Len returns the number of distinct strings held by the map.
func (m *IdMap) Len() int {
	return len(m.byID)
}

// WriteTo serializes the map to w as a length-prefixed sequence of strings in
// insertion order. The inverse mapping is reconstructed on load by replaying
// IDOf-style appends, so only one direction needs to be persisted.
func (m *IdMap) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64

	if err := binary.Write(bw, binary.BigEndian, uint32(len(m.byID))); err != nil {
		return written, fmt.Errorf("idmap: write count: %w", err)
	}
	written += 4

	for _, s := range m.byID {
		n, err := writeString(bw, s)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("idmap: write entry: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("idmap: flush: %w", err)
	}
	return written, nil
}

// ReadFrom loads a map previously written by WriteTo. Any existing contents
// are discarded.
func (m *IdMap) ReadFrom(r io.Reader) (int64, error) {
	br := bufio.NewReader(r)
	var read int64

	var count uint32
	if err := binary.Read(br, binary.BigEndian, &count); err != nil {
		return read, fmt.Errorf("idmap: read count: %w", err)
	}
	read += 4

	m.byString = make(map[string]int, count)
	m.byID = make([]string, 0, count)

	for i := uint32(0); i < count; i++ {
		s, n, err := readString(br)
		read += int64(n)
		if err != nil {
			return read, fmt.Errorf("idmap: read entry %d: %w", i, err)
		}
		m.byString[s] = len(m.byID)
		m.byID = append(m.byID, s)
	}

	return read, nil
}

func writeString(w io.Writer, s string) (int, error) {
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(s)))
	if _, err := w.Write(hdr[:]); err != nil {
		return 0, err
	}
	n, err := io.WriteString(w, s)
	return n + 4, err
}

func readString(r io.Reader) (string, int, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return "", 0, err
	}
	length := binary.BigEndian.Uint32(hdr[:])
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", 4, err
	}
	return string(buf), 4 + int(length), nil
}
