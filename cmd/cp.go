package cmd

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/rmacedo/tubecloud/internal"
)

// cpCmd copies a channel's collected transcripts to the system clipboard.
var cpCmd = &cobra.Command{
	Use:   "cp [CHANNEL]",
	Short: "Copy a channel's collected transcripts to the clipboard",
	Example: `  # Copy every transcript stored for a channel
  tubecloud cp "Me Poupe!"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := internal.NewApp(config)

		record, err := app.Store().LoadChannelRecord(args[0])
		if err != nil {
			return err
		}

		var parts []string
		for _, video := range record.Videos {
			if video.Transcript.Available() {
				parts = append(parts, video.Transcript.Original)
			}
		}
		if len(parts) == 0 {
			return fmt.Errorf("no transcripts stored for channel %q", record.ChannelName)
		}

		if err := clipboard.WriteAll(strings.Join(parts, "\n")); err != nil {
			return fmt.Errorf("copying transcripts to clipboard: %w", err)
		}

		if !config.Quiet {
			fmt.Printf("Copied %d transcript(s) from %s to clipboard\n", len(parts), record.ChannelName)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(cpCmd)
}
