package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/smartqa/internal/core/execution"
	"github.com/example/smartqa/internal/ports/primary"
	"github.com/example/smartqa/internal/wire"
)

// RunCmd returns the run command, which records one execution of a scenario.
func RunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [scenario-id]",
		Short: "Record the outcome of running a scenario",
		Long: `Record a manual or automated run of a scenario.

Examples:
  smartqa run SCN-001 --status pass
  smartqa run SCN-003 --status fail --notes "Card form returned HTTP 500"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, _ := cmd.Flags().GetString("status")
			notes, _ := cmd.Flags().GetString("notes")
			at, _ := cmd.Flags().GetString("at")

			exec, err := wire.ExecutionService().RecordExecution(NewContext(), primary.RecordExecutionRequest{
				ScenarioID: args[0],
				Status:     status,
				Notes:      notes,
				ExecutedAt: at,
			})
			if err != nil {
				return fmt.Errorf("failed to record execution: %w", err)
			}

			fmt.Printf("✓ Recorded execution %s: %s %s\n", exec.ID, exec.ScenarioID, exec.Status)
			if exec.Status == execution.StatusFail {
				fmt.Printf("  Draft a bug report with: smartqa bug draft %s\n", exec.ID)
			}
			return nil
		},
	}
	cmd.Flags().String("status", "", "Outcome ("+strings.Join(execution.Statuses, ", ")+")")
	cmd.Flags().StringP("notes", "n", "", "Free-form notes (what failed, environment)")
	cmd.Flags().String("at", "", "Execution time as RFC3339 (default now)")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

// ExecutionCmd returns the execution command
func ExecutionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "execution",
		Aliases: []string{"exec"},
		Short:   "Inspect recorded executions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list [scenario-id]",
		Short: "List a scenario's executions, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			executions, err := wire.ExecutionService().ListExecutions(NewContext(), args[0])
			if err != nil {
				return fmt.Errorf("failed to list executions: %w", err)
			}
			wire.ReportAdapter().Executions(executions)
			return nil
		},
	})

	return cmd
}
