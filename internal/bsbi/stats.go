package bsbi

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Stats reports one indexing run's cost: how long it took and how large
// the resulting postings and dictionary files are. It is the Go
// equivalent of the original collection's bench script, which timed
// indexing and retrieval across codecs and reported file sizes.
type Stats struct {
	Duration   time.Duration
	IndexBytes int64
	DictBytes  int64
}

// IndexWithStats runs Index and measures its wall-clock duration and the
// resulting final index's file sizes.
func (b *Builder) IndexWithStats(ctx context.Context) (Stats, error) {
	start := time.Now()
	if err := b.Index(ctx); err != nil {
		return Stats{}, err
	}
	duration := time.Since(start)

	indexPath := filepath.Join(b.OutputDir, b.IndexName+".index")
	dictPath := filepath.Join(b.OutputDir, b.IndexName+".dict")

	indexInfo, err := os.Stat(indexPath)
	if err != nil {
		return Stats{}, fmt.Errorf("bsbi: stat %s: %w", indexPath, err)
	}
	dictInfo, err := os.Stat(dictPath)
	if err != nil {
		return Stats{}, fmt.Errorf("bsbi: stat %s: %w", dictPath, err)
	}

	return Stats{
		Duration:   duration,
		IndexBytes: indexInfo.Size(),
		DictBytes:  dictInfo.Size(),
	}, nil
}

// Bench runs IndexWithStats n times against fresh output directories and
// returns every run's Stats, the direct equivalent of the original bench
// script's repeated-timing loop. Each run gets its own subdirectory of
// outputDir so repeated runs don't overwrite or append to one another.
func Bench(ctx context.Context, dataDir, outputDir string, newBuilder func(runOutputDir string) *Builder, n int) ([]Stats, error) {
	stats := make([]Stats, 0, n)
	for i := 0; i < n; i++ {
		runDir := filepath.Join(outputDir, fmt.Sprintf("run_%d", i))
		if err := os.MkdirAll(runDir, 0o755); err != nil {
			return stats, fmt.Errorf("bsbi: bench run %d: %w", i, err)
		}

		b := newBuilder(runDir)
		s, err := b.IndexWithStats(ctx)
		if err != nil {
			return stats, fmt.Errorf("bsbi: bench run %d: %w", i, err)
		}
		stats = append(stats, s)
	}
	return stats, nil
}
