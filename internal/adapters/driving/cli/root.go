// Package cli implements the docuchat command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/docuchat-labs/docuchat/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Persistent flag values.
var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "docuchat",
	Short: "Chat with your PDF documents",
	Long: `docuchat ingests PDF documents, indexes their content with vector
embeddings and answers questions grounded on the stored text.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "docuchat.toml", "path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
