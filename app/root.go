// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kinfolium",
	Short: "Kinfolium is a web-based genealogy browser with a favorites menu",
	Long: `Kinfolium is a web-based genealogy browser. It serves family trees
and their records, and lets every user keep a personal favorites menu
with named groups, sharing, and import/export.`,
	Args: cobra.OnlyValidArgs,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(
		&configPath,
		"config",
		"etc/",
		"Path to the directory holding main.toml",
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
