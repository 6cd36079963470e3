package main

import (
	"github.com/spf13/cobra"

	"asteroid-tracker/internal/dashboard"
)

var (
	dashboardOut        string
	dashboardDatasource string
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render the Grafana dashboard for the GreptimeDB tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return dashboard.Render(dashboardOut, dashboard.Params{
			Datasource: dashboardDatasource,
			Database:   cfg.Sink.GreptimeDatabase,
			BodyTable:  cfg.Sink.Table,
		})
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardOut, "out", "build", "Output directory for rendered dashboards")
	dashboardCmd.Flags().StringVar(&dashboardDatasource, "datasource", "", "Grafana datasource uid (defaults to $GREPTIMEDB_DATASOURCE_UID)")
}
