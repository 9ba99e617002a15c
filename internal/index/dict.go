package index

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// dictFile is the in-memory shape persisted to {name}.dict: the ordered
// term-ID list plus the offset/count/length triple for each term. Order in
// terms mirrors the order entries were appended, which is also iteration
// order for Reader.Next.
type dictFile struct {
	terms   []uint64
	entries map[uint64]entry
}

func newDictFile() *dictFile {
	return &dictFile{entries: make(map[uint64]entry)}
}

// writeDict serializes d to path as a sequence of
// (term_id, offset, count, length) big-endian uint64 quadruples, in
// terms-list order, prefixed by the term count.
func writeDict(path string, d *dictFile) error {
	f, err := os.Create(path)
	if err != nil {
		return wrapPath("create dict", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := binary.Write(bw, binary.BigEndian, uint32(len(d.terms))); err != nil {
		return wrapPath("write dict count", path, err)
	}
	for _, t := range d.terms {
		e := d.entries[t]
		row := [4]uint64{t, e.offset, e.count, e.length}
		if err := binary.Write(bw, binary.BigEndian, row); err != nil {
			return wrapPath("write dict row", path, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return wrapPath("flush dict", path, err)
	}
	return f.Close()
}

// readDict loads a dictionary previously written by writeDict.
func readDict(path string) (*dictFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapPath("open dict", path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var count uint32
	if err := binary.Read(br, binary.BigEndian, &count); err != nil {
		return nil, wrapPath("read dict count", path, err)
	}

	d := &dictFile{
		terms:   make([]uint64, 0, count),
		entries: make(map[uint64]entry, count),
	}

	for i := uint32(0); i < count; i++ {
		var row [4]uint64
		if err := binary.Read(br, binary.BigEndian, &row); err != nil {
			if err == io.ErrUnexpectedEOF || err == io.EOF {
				return nil, fmt.Errorf("index: read dict %s: truncated at row %d: %w", path, i, err)
			}
			return nil, wrapPath("read dict row", path, err)
		}
		termID := row[0]
		d.terms = append(d.terms, termID)
		d.entries[termID] = entry{offset: row[1], count: row[2], length: row[3]}
	}

	return d, nil
}
