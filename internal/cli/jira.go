package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/smartqa/internal/wire"
)

// JiraCmd returns the jira command
func JiraCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jira",
		Short: "Jira integration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Check the Jira connection and credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := wire.TrackerService().TestConnection(NewContext())
			if err != nil {
				return fmt.Errorf("failed to test connection: %w", err)
			}
			wire.ReportAdapter().TrackerStatus(status)
			if !status.Success {
				return fmt.Errorf("jira connection check failed")
			}
			return nil
		},
	})

	return cmd
}
