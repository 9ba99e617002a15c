// Package bsbi implements blocked sort-based indexing: parse one block of
// documents at a time into an intermediate on-disk index, then k-way merge
// every intermediate index into a single final index, so the whole
// collection never has to fit in memory at once.
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHY BLOCKS?
// ═══════════════════════════════════════════════════════════════════════════════
// A term/doc-ID pair list for the entire collection can be larger than
// available memory. Each block's pairs fit, so each block can be inverted
// and written independently; merging already-sorted intermediate indices
// afterward costs one pass per file instead of one global sort.
// ═══════════════════════════════════════════════════════════════════════════════
package bsbi

import (
	"container/heap"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/wizenheimer/bsbi/internal/codec"
	"github.com/wizenheimer/bsbi/internal/idmap"
	"github.com/wizenheimer/bsbi/internal/index"
	"github.com/wizenheimer/bsbi/internal/preprocess"
)

const (
	termsDictName = "terms.dict"
	docsDictName  = "docs.dict"
)

// Builder runs blocked sort-based indexing over a document collection laid
// out as one subdirectory of DataDir per block, each containing *.txt
// files.
type Builder struct {
	DataDir   string
	OutputDir string
	Codec     codec.Codec
	// IndexName is the final merged index's base name, default "main_index".
	IndexName string
	// Preprocessor normalizes document text into terms. Required.
	Preprocessor preprocess.Preprocessor
	// KeepIntermediate leaves the per-block intermediate indices on disk
	// after a successful merge, for inspection or --keep-intermediate.
	KeepIntermediate bool
	// KeyByRelativePath keys documents by "block/filename" instead of the
	// bare filename. The original collection layout allows two blocks to
	// contain a file with the same basename; with this false (the
	// default, matching the original's collision-prone behavior) both
	// files collapse onto the same doc-ID and their terms merge into one
	// logical document.
	KeyByRelativePath bool

	termIDMap *idmap.IdMap
	docIDMap  *idmap.IdMap
}

// New returns a Builder with default IndexName and an empty IdMap pair.
func New(dataDir, outputDir string, c codec.Codec, pp preprocess.Preprocessor) *Builder {
	return &Builder{
		DataDir:      dataDir,
		OutputDir:    outputDir,
		Codec:        c,
		IndexName:    "main_index",
		Preprocessor: pp,
		termIDMap:    idmap.New(),
		docIDMap:     idmap.New(),
	}
}

// pair is one (term-ID, doc-ID) occurrence produced while parsing a block.
type pair struct {
	term uint64
	doc  uint64
}

// Index builds the final on-disk index: one intermediate index per block
// under DataDir, then a single k-way merge into IndexName. It is the
// BSBI algorithm's single entry point.
func (b *Builder) Index(ctx context.Context) error {
	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		return fmt.Errorf("bsbi: create output dir %s: %w", b.OutputDir, err)
	}

	blocks, err := b.listBlocks()
	if err != nil {
		return err
	}

	intermediateNames := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if err := ctx.Err(); err != nil {
			return err
		}

		pairs, err := b.parseBlock(block)
		if err != nil {
			return err
		}

		name := "intermediate_" + block
		w, err := index.Create(name, b.OutputDir, b.Codec)
		if err != nil {
			return fmt.Errorf("bsbi: create intermediate index %s: %w", name, err)
		}
		if err := invertWrite(pairs, w); err != nil {
			_ = w.Close()
			return fmt.Errorf("bsbi: invert block %s: %w", block, err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("bsbi: close intermediate index %s: %w", name, err)
		}

		intermediateNames = append(intermediateNames, name)
		slog.Info("indexed block", "block", block, "pairs", len(pairs))
	}

	if err := b.save(); err != nil {
		return err
	}

	if err := b.mergeAll(intermediateNames); err != nil {
		return err
	}

	if !b.KeepIntermediate {
		for _, name := range intermediateNames {
			indexPath := filepath.Join(b.OutputDir, name+".index")
			dictPath := filepath.Join(b.OutputDir, name+".dict")
			_ = os.Remove(indexPath)
			_ = os.Remove(dictPath)
		}
	}

	slog.Info("build complete", "index", b.IndexName, "blocks", len(blocks), "terms", b.termIDMap.Len(), "docs", b.docIDMap.Len())
	return nil
}

// listBlocks returns the sorted names of DataDir's subdirectories, each one
// block of the collection.
func (b *Builder) listBlocks() ([]string, error) {
	entries, err := os.ReadDir(b.DataDir)
	if err != nil {
		return nil, fmt.Errorf("bsbi: read data dir %s: %w", b.DataDir, err)
	}

	var blocks []string
	for _, e := range entries {
		if e.IsDir() {
			blocks = append(blocks, e.Name())
		}
	}
	sort.Strings(blocks)
	return blocks, nil
}

// parseBlock reads every *.txt file in DataDir/block, preprocesses its
// text, and emits one pair per (term, doc) occurrence, assigning term and
// doc IDs via the builder's IdMaps as new strings are seen.
func (b *Builder) parseBlock(block string) ([]pair, error) {
	pattern := filepath.Join(b.DataDir, block, "*.txt")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bsbi: glob %s: %w", pattern, err)
	}
	sort.Strings(files)

	var pairs []pair
	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("bsbi: read %s: %w", path, err)
		}

		terms, err := b.Preprocessor.Preprocess(string(raw))
		if err != nil {
			return nil, err
		}

		docKey := filepath.Base(path)
		if b.KeyByRelativePath {
			docKey = filepath.Join(block, filepath.Base(path))
		}
		docID := uint64(b.docIDMap.IDOf(docKey))

		for _, t := range terms {
			termID := uint64(b.termIDMap.IDOf(t))
			pairs = append(pairs, pair{term: termID, doc: docID})
		}
	}
	return pairs, nil
}

// invertWrite groups pairs by term-ID into sorted, deduplicated postings
// lists and appends them to w in ascending term-ID order.
func invertWrite(pairs []pair, w *index.Writer) error {
	postings := make(map[uint64]map[uint64]struct{})
	for _, p := range pairs {
		docs, ok := postings[p.term]
		if !ok {
			docs = make(map[uint64]struct{})
			postings[p.term] = docs
		}
		docs[p.doc] = struct{}{}
	}

	terms := make([]uint64, 0, len(postings))
	for t := range postings {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i] < terms[j] })

	for _, t := range terms {
		docs := make([]uint64, 0, len(postings[t]))
		for d := range postings[t] {
			docs = append(docs, d)
		}
		sort.Slice(docs, func(i, j int) bool { return docs[i] < docs[j] })

		if err := w.Append(t, docs); err != nil {
			return err
		}
	}
	return nil
}

// save persists the builder's term and document IdMaps to OutputDir so a
// later Retriever can reload them.
func (b *Builder) save() error {
	if err := saveIdMap(filepath.Join(b.OutputDir, termsDictName), b.termIDMap); err != nil {
		return err
	}
	if err := saveIdMap(filepath.Join(b.OutputDir, docsDictName), b.docIDMap); err != nil {
		return err
	}
	return nil
}

func saveIdMap(path string, m *idmap.IdMap) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bsbi: create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := m.WriteTo(f); err != nil {
		return fmt.Errorf("bsbi: write %s: %w", path, err)
	}
	return f.Close()
}

// mergeItem is one reader's current (term, postings) cursor position,
// ordered into a min-heap by term then reader index so ties resolve
// deterministically.
type mergeItem struct {
	term      uint64
	postings  []uint64
	readerIdx int
}

type mergeHeap []mergeItem

func (h mergeHeap) Len() int { return len(h) }
func (h mergeHeap) Less(i, j int) bool {
	if h[i].term != h[j].term {
		return h[i].term < h[j].term
	}
	return h[i].readerIdx < h[j].readerIdx
}
func (h mergeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x any)   { *h = append(*h, x.(mergeItem)) }
func (h *mergeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// mergeAll opens every named intermediate index and k-way merges them into
// the final IndexName index.
func (b *Builder) mergeAll(names []string) error {
	readers := make([]*index.Reader, 0, len(names))
	defer func() {
		for _, r := range readers {
			_ = r.Close()
		}
	}()

	for _, name := range names {
		r, err := index.Open(name, b.OutputDir, b.Codec)
		if err != nil {
			return fmt.Errorf("bsbi: open intermediate index %s: %w", name, err)
		}
		readers = append(readers, r)
	}

	w, err := index.Create(b.IndexName, b.OutputDir, b.Codec)
	if err != nil {
		return fmt.Errorf("bsbi: create final index %s: %w", b.IndexName, err)
	}

	if err := merge(readers, w); err != nil {
		_ = w.Close()
		return fmt.Errorf("bsbi: merge: %w", err)
	}
	return w.Close()
}

// merge k-way merges readers' (term, postings) streams into w, unioning
// postings lists that share a term-ID across readers. It is the idiomatic
// Go replacement for Python's heapq.merge combined with itertools.groupby.
func merge(readers []*index.Reader, w *index.Writer) error {
	h := &mergeHeap{}
	heap.Init(h)

	for i, r := range readers {
		term, postings, err := r.Next()
		if err == io.EOF {
			continue
		}
		if err != nil {
			return err
		}
		heap.Push(h, mergeItem{term: term, postings: postings, readerIdx: i})
	}

	for h.Len() > 0 {
		top := (*h)[0].term

		var lists [][]uint64
		for h.Len() > 0 && (*h)[0].term == top {
			item := heap.Pop(h).(mergeItem)
			lists = append(lists, item.postings)

			term, postings, err := readers[item.readerIdx].Next()
			if err == io.EOF {
				continue
			}
			if err != nil {
				return err
			}
			heap.Push(h, mergeItem{term: term, postings: postings, readerIdx: item.readerIdx})
		}

		if err := w.Append(top, mergeSortedUnique(lists)); err != nil {
			return err
		}
	}
	return nil
}

// mergeSortedUnique k-way merges already-sorted, duplicate-free lists into
// one sorted, duplicate-free list. A doc-ID can appear in more than one
// list when documents are keyed by bare filename and two blocks hold a
// file with the same basename; such cross-list duplicates are collapsed
// into one entry here.
func mergeSortedUnique(lists [][]uint64) []uint64 {
	idx := make([]int, len(lists))
	total := 0
	for _, l := range lists {
		total += len(l)
	}
	out := make([]uint64, 0, total)

	for {
		best := -1
		var bestVal uint64
		for i, l := range lists {
			if idx[i] >= len(l) {
				continue
			}
			if best == -1 || l[idx[i]] < bestVal {
				best = i
				bestVal = l[idx[i]]
			}
		}
		if best == -1 {
			break
		}
		if len(out) == 0 || out[len(out)-1] != bestVal {
			out = append(out, bestVal)
		}
		idx[best]++
	}
	return out
}
