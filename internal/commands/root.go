package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/rfm/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "rfm",
		Short:   "Recency, frequency and monetary segmentation of retail customers",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newInitCommand())

	return rootCmd
}
