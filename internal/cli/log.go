package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/smartqa/internal/ports/secondary"
	"github.com/example/smartqa/internal/wire"
)

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent changes from the audit log",
		Long: `Show recent create, update and delete events, newest first.

Examples:
  smartqa log
  smartqa log --type scenario --id SCN-001`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entityType, _ := cmd.Flags().GetString("type")
			entityID, _ := cmd.Flags().GetString("id")
			limit, _ := cmd.Flags().GetInt("limit")
			if limit <= 0 {
				limit = 50
			}

			entries, err := wire.Get().AuditLog.List(NewContext(), secondary.AuditLogFilters{
				EntityType: entityType,
				EntityID:   entityID,
				Limit:      limit,
			})
			if err != nil {
				return fmt.Errorf("failed to fetch logs: %w", err)
			}
			wire.ReportAdapter().AuditLog(entries)
			return nil
		},
	}
	cmd.Flags().String("type", "", "Filter by entity type (project, scenario, execution, bug_report)")
	cmd.Flags().String("id", "", "Filter by entity ID")
	cmd.Flags().IntP("limit", "n", 50, "Maximum entries")
	return cmd
}
