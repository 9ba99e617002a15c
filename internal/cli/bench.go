package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/bsbi/internal/bsbi"
	"github.com/wizenheimer/bsbi/internal/codec"
	"github.com/wizenheimer/bsbi/internal/preprocess"
)

func newBenchCmd() *cobra.Command {
	var (
		dataDir   string
		outputDir string
		codecName string
		runs      int
	)

	cmd := &cobra.Command{
		Use:     "bench",
		Short:   "Time repeated index builds and report postings/dictionary file sizes",
		Example: `  bsbi bench --data-dir ./corpus --output-dir ./bench-out --codec vbyte --runs 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := codec.ByName(codec.Name(codecName))
			if err != nil {
				return err
			}

			newBuilder := func(runOutputDir string) *bsbi.Builder {
				return bsbi.New(dataDir, runOutputDir, c, preprocess.New())
			}

			stats, err := bsbi.Bench(cmd.Context(), dataDir, outputDir, newBuilder, runs)
			if err != nil {
				return fmt.Errorf("bench: %w", err)
			}

			var min, max, sum int64
			for i, s := range stats {
				ms := s.Duration.Milliseconds()
				fmt.Fprintf(cmd.OutOrStdout(), "run %d: %dms index=%dB dict=%dB\n", i, ms, s.IndexBytes, s.DictBytes)
				if i == 0 || ms < min {
					min = ms
				}
				if ms > max {
					max = ms
				}
				sum += ms
			}
			if len(stats) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "avg=%dms min=%dms max=%dms\n", sum/int64(len(stats)), min, max)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory of block subdirectories containing *.txt documents")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory to write each run's output under")
	cmd.Flags().StringVar(&codecName, "codec", "vbyte", "postings codec: standard|vbyte|bic")
	cmd.Flags().IntVar(&runs, "runs", 3, "number of index builds to time")
	cmd.MarkFlagRequired("data-dir")
	cmd.MarkFlagRequired("output-dir")

	return cmd
}
