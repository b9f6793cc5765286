package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// pathsCmd represents the paths command
var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show paths used by the application",
	Example: `  # Show all application paths
  tubecloud paths`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Config directory: %s\n", config.ConfigDir)
		fmt.Printf("Data directory: %s\n", config.DataDir)
		fmt.Printf("Cache directory: %s\n", config.CacheDir)
		fmt.Printf("Transcripts directory: %s\n", config.TranscriptsDir)
		fmt.Printf("Reports directory: %s\n", config.ReportsDir)
		fmt.Printf("Wordclouds directory: %s\n", config.WordcloudsDir)
		fmt.Printf("Logs directory: %s\n", config.LogsDir)
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
