package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/bsbi/internal/codec"
	"github.com/wizenheimer/bsbi/internal/preprocess"
	"github.com/wizenheimer/bsbi/internal/retrieve"
)

func newQueryCmd() *cobra.Command {
	var (
		outputDir string
		codecName string
	)

	cmd := &cobra.Command{
		Use:   "query [terms...]",
		Short: "Run a conjunctive boolean query against a built index",
		Args:  cobra.MinimumNArgs(1),
		Example: `  bsbi query --output-dir ./out --codec vbyte cats dogs
  bsbi query --output-dir ./out --codec bic "machine learning"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := codec.ByName(codec.Name(codecName))
			if err != nil {
				return err
			}

			query := args[0]
			for _, a := range args[1:] {
				query += " " + a
			}

			r := retrieve.New(outputDir, c, preprocess.New())
			names, err := r.Retrieve(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("query: %w", err)
			}

			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory the index was built into")
	cmd.Flags().StringVar(&codecName, "codec", "vbyte", "postings codec: standard|vbyte|bic, must match the build")
	cmd.MarkFlagRequired("output-dir")

	return cmd
}
