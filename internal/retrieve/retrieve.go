// Package retrieve implements conjunctive boolean retrieval over an index
// built by internal/bsbi: normalize the query, look up each term's
// postings list, and intersect them shortest-first.
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHY SHORTEST-FIRST?
// ═══════════════════════════════════════════════════════════════════════════════
// Intersecting A ∩ B ∩ C never produces more results than the smallest of
// the three lists. Starting the intersection chain with the shortest
// postings list keeps every intermediate result as small as possible,
// which is exactly what the roaring bitmap AND below benefits from.
// ═══════════════════════════════════════════════════════════════════════════════
package retrieve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/RoaringBitmap/roaring"

	"github.com/wizenheimer/bsbi/internal/codec"
	"github.com/wizenheimer/bsbi/internal/idmap"
	"github.com/wizenheimer/bsbi/internal/index"
	"github.com/wizenheimer/bsbi/internal/preprocess"
)

const (
	termsDictName = "terms.dict"
	docsDictName  = "docs.dict"
)

// Retriever answers conjunctive boolean queries against an index written
// by a Builder to the same OutputDir.
type Retriever struct {
	OutputDir    string
	Codec        codec.Codec
	Preprocessor preprocess.Preprocessor
	// IndexName is the merged index's base name, default "main_index".
	IndexName string

	termIDMap *idmap.IdMap
	docIDMap  *idmap.IdMap
	loaded    bool
}

// New returns a Retriever targeting the index written to outputDir by a
// Builder using the same codec and preprocessor.
func New(outputDir string, c codec.Codec, pp preprocess.Preprocessor) *Retriever {
	return &Retriever{
		OutputDir:    outputDir,
		Codec:        c,
		Preprocessor: pp,
		IndexName:    "main_index",
	}
}

// Load reads the term and document IdMaps from OutputDir. Retrieve calls
// it automatically on first use; callers may call it early to surface
// load errors before the first query.
func (r *Retriever) Load() error {
	if r.loaded {
		return nil
	}

	termIDMap := idmap.New()
	if err := loadIdMap(filepath.Join(r.OutputDir, termsDictName), termIDMap); err != nil {
		return err
	}
	docIDMap := idmap.New()
	if err := loadIdMap(filepath.Join(r.OutputDir, docsDictName), docIDMap); err != nil {
		return err
	}

	r.termIDMap = termIDMap
	r.docIDMap = docIDMap
	r.loaded = true
	return nil
}

func loadIdMap(path string, m *idmap.IdMap) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("retrieve: open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := m.ReadFrom(f); err != nil {
		return fmt.Errorf("retrieve: read %s: %w", path, err)
	}
	return nil
}

// Retrieve runs a conjunctive boolean query: every term in query must
// appear in a matching document. Unknown terms (never seen at index time)
// cause an empty, non-error result, matching the "no document can satisfy
// an impossible term" policy. Results are document names sorted ascending
// by doc-ID.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.Load(); err != nil {
		return nil, err
	}

	terms, err := r.Preprocessor.Preprocess(query)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, nil
	}

	idx, err := index.Open(r.IndexName, r.OutputDir, r.Codec)
	if err != nil {
		return nil, fmt.Errorf("retrieve: open index: %w", err)
	}
	defer idx.Close()

	type termInfo struct {
		id    uint64
		count int
	}
	infos := make([]termInfo, 0, len(terms))
	for _, t := range terms {
		id, ok := r.termIDMap.Lookup(t)
		if !ok {
			return nil, nil
		}
		count, ok := idx.Count(uint64(id))
		if !ok {
			return nil, nil
		}
		infos = append(infos, termInfo{id: uint64(id), count: count})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].count < infos[j].count })

	var result *roaring.Bitmap
	for _, inf := range infos {
		postings, err := idx.GetPostingsList(inf.id)
		if err != nil {
			return nil, fmt.Errorf("retrieve: postings for term %d: %w", inf.id, err)
		}

		bm := roaring.New()
		for _, docID := range postings {
			bm.Add(uint32(docID))
		}

		if result == nil {
			result = bm
		} else {
			result.And(bm)
			if result.IsEmpty() {
				break
			}
		}
	}
	if result == nil || result.IsEmpty() {
		return nil, nil
	}

	docIDs := result.ToArray()
	names := make([]string, 0, len(docIDs))
	for _, id := range docIDs {
		name, err := r.docIDMap.NameOf(int(id))
		if err != nil {
			return nil, fmt.Errorf("retrieve: resolve doc %d: %w", id, err)
		}
		names = append(names, name)
	}
	return names, nil
}
