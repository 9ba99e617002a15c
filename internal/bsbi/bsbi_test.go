package bsbi

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/wizenheimer/bsbi/internal/codec"
	"github.com/wizenheimer/bsbi/internal/index"
	"github.com/wizenheimer/bsbi/internal/preprocess"
)

func writeDoc(t *testing.T, dir, block, name, text string) {
	t.Helper()
	blockDir := filepath.Join(dir, block)
	if err := os.MkdirAll(blockDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(blockDir, name), []byte(text), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestIndex_TinyCorpus(t *testing.T) {
	dataDir := t.TempDir()
	outputDir := t.TempDir()

	writeDoc(t, dataDir, "block0", "doc1.txt", "cats and dogs")
	writeDoc(t, dataDir, "block0", "doc2.txt", "dogs and birds")
	writeDoc(t, dataDir, "block1", "doc3.txt", "birds and cats")

	b := New(dataDir, outputDir, codec.VByte{}, preprocess.NewStub(nil))
	if err := b.Index(context.Background()); err != nil {
		t.Fatalf("Index: %v", err)
	}

	r, err := index.Open(b.IndexName, outputDir, codec.VByte{})
	if err != nil {
		t.Fatalf("Open final index: %v", err)
	}
	defer r.Close()

	catsID := b.termIDMap.IDOf("cats")
	postings, err := r.GetPostingsList(uint64(catsID))
	if err != nil {
		t.Fatalf("GetPostingsList(cats): %v", err)
	}
	if len(postings) != 2 {
		t.Errorf("cats appears in %d docs, want 2", len(postings))
	}

	if _, err := os.Stat(filepath.Join(outputDir, "terms.dict")); err != nil {
		t.Errorf("terms.dict not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "docs.dict")); err != nil {
		t.Errorf("docs.dict not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "intermediate_block0.index")); !os.IsNotExist(err) {
		t.Errorf("intermediate index for block0 should be removed by default, stat err = %v", err)
	}
}

func TestIndex_KeepIntermediate(t *testing.T) {
	dataDir := t.TempDir()
	outputDir := t.TempDir()
	writeDoc(t, dataDir, "block0", "doc1.txt", "alpha beta")

	b := New(dataDir, outputDir, codec.Standard{}, preprocess.NewStub(nil))
	b.KeepIntermediate = true
	if err := b.Index(context.Background()); err != nil {
		t.Fatalf("Index: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "intermediate_block0.index")); err != nil {
		t.Errorf("intermediate index should survive with KeepIntermediate: %v", err)
	}
}

func TestIndex_DocNameCollisionAcrossBlocks(t *testing.T) {
	dataDir := t.TempDir()
	outputDir := t.TempDir()
	writeDoc(t, dataDir, "block0", "doc.txt", "alpha")
	writeDoc(t, dataDir, "block1", "doc.txt", "beta")

	b := New(dataDir, outputDir, codec.Standard{}, preprocess.NewStub(nil))
	if err := b.Index(context.Background()); err != nil {
		t.Fatalf("Index: %v", err)
	}
	if b.docIDMap.Len() != 1 {
		t.Errorf("doc count = %d, want 1 (basenames collide by default)", b.docIDMap.Len())
	}

	b2 := New(dataDir, t.TempDir(), codec.Standard{}, preprocess.NewStub(nil))
	b2.KeyByRelativePath = true
	if err := b2.Index(context.Background()); err != nil {
		t.Fatalf("Index with KeyByRelativePath: %v", err)
	}
	if b2.docIDMap.Len() != 2 {
		t.Errorf("doc count = %d, want 2 with KeyByRelativePath", b2.docIDMap.Len())
	}
}

func TestMergeSortedUnique(t *testing.T) {
	got := mergeSortedUnique([][]uint64{{1, 3, 5}, {2, 3, 4}, {0, 10}})
	want := []uint64{0, 1, 2, 3, 4, 5, 10}
	if len(got) != len(want) {
		t.Fatalf("mergeSortedUnique = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mergeSortedUnique[%d] = %d, want %d", i, got[i], want[i])
		}
	}
	if !sort.IsSorted(uint64Slice(got)) {
		t.Errorf("result not sorted: %v", got)
	}
}

type uint64Slice []uint64

func (s uint64Slice) Len() int           { return len(s) }
func (s uint64Slice) Less(i, j int) bool { return s[i] < s[j] }
func (s uint64Slice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

func TestInvertWrite_SortsAndDedupes(t *testing.T) {
	dir := t.TempDir()
	w, err := index.Create("test", dir, codec.Standard{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	pairs := []pair{
		{term: 2, doc: 5},
		{term: 1, doc: 3},
		{term: 1, doc: 1},
		{term: 1, doc: 3},
		{term: 2, doc: 0},
	}
	if err := invertWrite(pairs, w); err != nil {
		t.Fatalf("invertWrite: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := index.Open("test", dir, codec.Standard{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	got, err := r.GetPostingsList(1)
	if err != nil {
		t.Fatalf("GetPostingsList(1): %v", err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("GetPostingsList(1) = %v, want [1 3]", got)
	}
}
