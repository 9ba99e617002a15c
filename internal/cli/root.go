// Package cli wires internal/bsbi and internal/retrieve together behind a
// cobra command tree: index, query, and bench subcommands.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	// Version is overridden at build time via -ldflags.
	Version = "dev"
)

// Execute builds and runs the bsbi root command.
func Execute(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "bsbi",
		Short:   "Blocked sort-based indexing build/query engine",
		Version: Version,
		Long: `bsbi builds a disk-resident inverted index over a block-structured
text collection and answers conjunctive boolean queries against it.`,
	}

	rootCmd.AddCommand(
		newIndexCmd(),
		newQueryCmd(),
		newBenchCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
