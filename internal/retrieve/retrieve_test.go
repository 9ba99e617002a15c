package retrieve

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/wizenheimer/bsbi/internal/bsbi"
	"github.com/wizenheimer/bsbi/internal/codec"
	"github.com/wizenheimer/bsbi/internal/preprocess"
)

func buildCorpus(t *testing.T, c codec.Codec) string {
	t.Helper()
	dataDir := t.TempDir()
	outputDir := t.TempDir()

	docs := map[string]string{
		"doc1.txt": "cats and dogs",
		"doc2.txt": "dogs and birds",
		"doc3.txt": "birds and cats",
	}
	blockDir := filepath.Join(dataDir, "block0")
	if err := os.MkdirAll(blockDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	for name, text := range docs {
		if err := os.WriteFile(filepath.Join(blockDir, name), []byte(text), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	b := bsbi.New(dataDir, outputDir, c, preprocess.NewStub(nil))
	if err := b.Index(context.Background()); err != nil {
		t.Fatalf("Index: %v", err)
	}
	return outputDir
}

func TestRetrieve_Conjunction(t *testing.T) {
	outputDir := buildCorpus(t, codec.VByte{})
	r := New(outputDir, codec.VByte{}, preprocess.NewStub(nil))

	got, err := r.Retrieve(context.Background(), "cats and")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	want := []string{"doc1.txt", "doc3.txt"}
	sortStrings(got)
	sortStrings(want)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Retrieve(cats and) = %v, want %v", got, want)
	}
}

func TestRetrieve_UnknownTerm(t *testing.T) {
	outputDir := buildCorpus(t, codec.Standard{})
	r := New(outputDir, codec.Standard{}, preprocess.NewStub(nil))

	got, err := r.Retrieve(context.Background(), "cats nonexistentword")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Retrieve with unknown term = %v, want empty", got)
	}
}

func TestRetrieve_EmptyQuery(t *testing.T) {
	outputDir := buildCorpus(t, codec.Standard{})
	r := New(outputDir, codec.Standard{}, preprocess.NewStub(nil))

	got, err := r.Retrieve(context.Background(), "")
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Retrieve(\"\") = %v, want empty", got)
	}
}

func TestRetrieve_SingleTermAllCodecs(t *testing.T) {
	for _, c := range []codec.Codec{codec.Standard{}, codec.VByte{}, codec.BIC{}} {
		outputDir := buildCorpus(t, c)
		r := New(outputDir, c, preprocess.NewStub(nil))

		got, err := r.Retrieve(context.Background(), "dogs")
		if err != nil {
			t.Fatalf("Retrieve with %T: %v", c, err)
		}
		want := []string{"doc1.txt", "doc2.txt"}
		sortStrings(got)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Retrieve(dogs) with %T = %v, want %v", c, got, want)
		}
	}
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
