// Package preprocess implements the linguistic normalization pipeline
// shared by indexing and retrieval: tokenization, case folding, stop-word
// removal, and stemming. Both the BSBI builder and the retriever depend
// only on the Preprocessor interface, never on this concrete pipeline, so
// tests can supply a deterministic stub (see Stub below).
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHY DETERMINISM MATTERS HERE
// ═══════════════════════════════════════════════════════════════════════════════
// A term's ID is assigned the first time it is seen during indexing. If the
// same word normalized differently at query time, the retriever would look
// up the wrong (or no) term-ID and every query would silently miss. The
// pipeline below is a pure function of its input text and configuration:
// same input, same tokens, every time.
// ═══════════════════════════════════════════════════════════════════════════════
package preprocess

import (
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"
)

// Preprocessor normalizes raw text into the token stream used by both the
// BSBI builder (to populate the term IdMap) and the retriever (to resolve
// query terms against it).
type Preprocessor interface {
	Preprocess(text string) ([]string, error)
}

// Config tunes the default pipeline's stages.
type Config struct {
	MinTokenLength  int  // tokens shorter than this are dropped (default 2)
	EnableStemming  bool // apply the Snowball English stemmer (default true)
	EnableStopwords bool // remove common English stopwords (default true)
}

// DefaultConfig returns the pipeline settings used by New.
func DefaultConfig() Config {
	return Config{
		MinTokenLength:  2,
		EnableStemming:  true,
		EnableStopwords: true,
	}
}

// Default is the production pipeline: tokenize, lowercase, drop stopwords,
// drop short tokens, then stem. It never returns an error; the interface
// return value exists so other Preprocessor implementations (a spell
// corrector, a language-specific analyzer) can surface one.
type Default struct {
	cfg Config
}

// New returns a Default preprocessor using DefaultConfig.
func New() *Default {
	return &Default{cfg: DefaultConfig()}
}

// NewWithConfig returns a Default preprocessor using a custom Config.
func NewWithConfig(cfg Config) *Default {
	return &Default{cfg: cfg}
}

// Preprocess runs the full pipeline over text.
func (d *Default) Preprocess(text string) ([]string, error) {
	tokens := tokenize(text)
	tokens = lowercase(tokens)

	if d.cfg.EnableStopwords {
		tokens = dropStopwords(tokens)
	}
	tokens = dropShort(tokens, d.cfg.MinTokenLength)

	if d.cfg.EnableStemming {
		tokens = stem(tokens)
	}

	return tokens, nil
}

// tokenize splits text on anything that is not a letter or digit, the same
// Unicode-aware rule used throughout the rest of the pack's text-processing
// components.
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func lowercase(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = strings.ToLower(t)
	}
	return out
}

func dropStopwords(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, stop := stopwords[t]; !stop {
			out = append(out, t)
		}
	}
	return out
}

func dropShort(tokens []string, minLength int) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if len(t) >= minLength {
			out = append(out, t)
		}
	}
	return out
}

func stem(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = snowballeng.Stem(t, false)
	}
	return out
}

// Stub is a deterministic Preprocessor for tests that need to reason about
// exact token output without depending on the real stemmer or stopword
// list: whitespace split, lowercase, and a small fixed stem table. Tests
// that care about BSBI wiring rather than linguistics should inject this
// instead of Default.
type Stub struct {
	// Stems maps a lowercased token to its stemmed form. Tokens absent
	// from the map pass through unchanged.
	Stems map[string]string
}

// NewStub returns a Stub with the given stem table. A nil map is treated
// as empty (no stemming performed).
func NewStub(stems map[string]string) *Stub {
	return &Stub{Stems: stems}
}

// Preprocess splits text on whitespace, lowercases each token, and applies
// the stem table. It never returns an error.
func (s *Stub) Preprocess(text string) ([]string, error) {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.ToLower(f)
		if stemmed, ok := s.Stems[t]; ok {
			t = stemmed
		}
		out = append(out, t)
	}
	return out, nil
}
