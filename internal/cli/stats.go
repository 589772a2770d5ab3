package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/smartqa/internal/wire"
)

// StatsCmd returns the stats command
func StatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := wire.DashboardService().ComputeStats(NewContext())
			if err != nil {
				return err
			}
			wire.ReportAdapter().Stats(stats)
			return nil
		},
	}
}
