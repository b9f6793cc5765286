package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rmacedo/tubecloud/internal"
)

// reportCmd summarizes the latest collection report in the terminal.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show a summary of the latest collection report",
	Example: `  # Render the latest report summary
  tubecloud report

  # Dump the latest report as JSON
  tubecloud report --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := internal.NewApp(config)

		report, name, err := app.Store().LatestReport()
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling report: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		rendered, err := internal.RenderMarkdown(reportMarkdown(name, report))
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

// reportMarkdown builds a terminal-friendly markdown summary of a report.
func reportMarkdown(name string, report internal.CollectionReport) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Collection report `%s`\n\n", name))
	sb.WriteString(fmt.Sprintf("%d channel(s) collected.\n\n", len(report)))

	for _, record := range report {
		sb.WriteString(fmt.Sprintf("## %s\n\n", record.ChannelName))
		for _, video := range record.Videos {
			status := "no transcript"
			if video.Transcript.Available() {
				status = fmt.Sprintf("transcript (%s)", video.TranscriptLanguage)
			}
			line := fmt.Sprintf("- [%s](%s) — %s", video.Title, video.URL, status)
			if video.PublishDate != "" {
				line += fmt.Sprintf(", published %s", video.PublishDate)
			}
			if video.ViewCount != nil {
				line += fmt.Sprintf(", %d views", *video.ViewCount)
			}
			sb.WriteString(line + "\n")
		}
		if record.WordcloudPath != "" {
			sb.WriteString(fmt.Sprintf("\nWordcloud: `%s`\n", record.WordcloudPath))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func init() {
	reportCmd.Flags().Bool("json", false, "Print the raw report JSON")
	rootCmd.AddCommand(reportCmd)
}
