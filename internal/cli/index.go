package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/bsbi/internal/bsbi"
	"github.com/wizenheimer/bsbi/internal/codec"
	"github.com/wizenheimer/bsbi/internal/preprocess"
)

func newIndexCmd() *cobra.Command {
	var (
		dataDir          string
		outputDir        string
		codecName        string
		keepIntermediate bool
		keyByRelative    bool
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build an inverted index from a block-structured document collection",
		Example: `  bsbi index --data-dir ./corpus --output-dir ./out --codec vbyte
  bsbi index --data-dir ./corpus --output-dir ./out --codec bic --keep-intermediate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := codec.ByName(codec.Name(codecName))
			if err != nil {
				return err
			}

			b := bsbi.New(dataDir, outputDir, c, preprocess.New())
			b.KeepIntermediate = keepIntermediate
			b.KeyByRelativePath = keyByRelative

			if err := b.Index(cmd.Context()); err != nil {
				return fmt.Errorf("index: %w", err)
			}
			slog.Info("index build finished", "output-dir", outputDir, "codec", codecName)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory of block subdirectories containing *.txt documents")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory to write the index, dictionary, and id-map files to")
	cmd.Flags().StringVar(&codecName, "codec", "vbyte", "postings codec: standard|vbyte|bic")
	cmd.Flags().BoolVar(&keepIntermediate, "keep-intermediate", false, "keep per-block intermediate indices after merging")
	cmd.Flags().BoolVar(&keyByRelative, "key-by-relative-path", false, "key documents by block/filename instead of bare filename")
	cmd.MarkFlagRequired("data-dir")
	cmd.MarkFlagRequired("output-dir")

	return cmd
}
