package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rmacedo/tubecloud/internal"
)

// dashboardCmd serves the read-only dashboard over the latest report.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve the wordcloud dashboard",
	Example: `  # Serve the dashboard on the configured address
  tubecloud dashboard

  # Serve on a specific address
  tubecloud dashboard --addr :9000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := internal.NewApp(config)

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = config.DashboardAddr
		}

		router := internal.NewDashboard(app.Store(), config.Verbose)
		fmt.Printf("Dashboard listening on %s\n", addr)
		return router.Run(addr)
	},
}

func init() {
	dashboardCmd.Flags().String("addr", "", "Listen address (default from config)")
	rootCmd.AddCommand(dashboardCmd)
}
