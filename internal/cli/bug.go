package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/smartqa/internal/core/bugreport"
	"github.com/example/smartqa/internal/ports/primary"
	"github.com/example/smartqa/internal/wire"
)

var bugCmd = &cobra.Command{
	Use:   "bug",
	Short: "Manage bug reports raised from failed executions",
}

var bugCreateCmd = &cobra.Command{
	Use:   "create [execution-id] [title]",
	Short: "Create a bug report for a failed execution",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		severity, _ := cmd.Flags().GetString("severity")
		description, _ := cmd.Flags().GetString("description")
		steps, _ := cmd.Flags().GetString("steps")
		expected, _ := cmd.Flags().GetString("expected")
		actual, _ := cmd.Flags().GetString("actual")

		bug, err := wire.BugReportService().CreateBugReport(NewContext(), primary.CreateBugReportRequest{
			ExecutionID:      args[0],
			Title:            args[1],
			Severity:         severity,
			Description:      description,
			StepsToReproduce: steps,
			ExpectedResult:   expected,
			ActualResult:     actual,
		})
		if err != nil {
			return fmt.Errorf("failed to create bug report: %w", err)
		}

		fmt.Printf("✓ Created bug report %s: %s\n", bug.ID, bug.Title)
		return nil
	},
}

var bugListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bug reports, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, _ := cmd.Flags().GetString("project")
		severity, _ := cmd.Flags().GetString("severity")

		bugs, err := wire.BugReportService().ListBugReports(NewContext(), primary.BugReportFilters{
			ProjectID: projectID,
			Severity:  severity,
		})
		if err != nil {
			return fmt.Errorf("failed to list bug reports: %w", err)
		}
		wire.ReportAdapter().BugReports(bugs)
		return nil
	},
}

var bugShowCmd = &cobra.Command{
	Use:   "show [bug-id]",
	Short: "Show a bug report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bug, err := wire.BugReportService().GetBugReport(NewContext(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get bug report: %w", err)
		}
		wire.ReportAdapter().BugReport(bug)
		return nil
	},
}

var bugFailedCmd = &cobra.Command{
	Use:   "failed [project-id]",
	Short: "List failed executions that can be reported",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		failed, err := wire.ExecutionService().ListFailedExecutions(NewContext(), args[0])
		if err != nil {
			return fmt.Errorf("failed to list failed executions: %w", err)
		}
		wire.ReportAdapter().FailedExecutions(failed)
		return nil
	},
}

var bugDraftCmd = &cobra.Command{
	Use:   "draft [execution-id]",
	Short: "Draft a bug report for a failed execution",
	Long: `Draft a bug report from a failed execution using the configured AI provider
(or the built-in template in mock mode). The draft is only printed unless
--save is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := NewContext()
		save, _ := cmd.Flags().GetBool("save")

		draft, err := wire.BugReportService().DraftBugReport(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to draft bug report: %w", err)
		}

		report := wire.ReportAdapter()
		report.BugReportDraft(draft)
		if !save {
			fmt.Println("Re-run with --save to store this draft")
			return nil
		}

		bug, err := wire.BugReportService().CreateBugReport(ctx, primary.CreateBugReportRequest{
			ExecutionID:      draft.ExecutionID,
			Title:            draft.Title,
			Severity:         draft.Severity,
			Description:      draft.Description,
			StepsToReproduce: draft.StepsToReproduce,
			ExpectedResult:   draft.ExpectedResult,
			ActualResult:     draft.ActualResult,
			AIGenerated:      true,
		})
		if err != nil {
			return fmt.Errorf("failed to save bug report: %w", err)
		}
		report.Success("Saved bug report %s", bug.ID)
		return nil
	},
}

var bugExportCmd = &cobra.Command{
	Use:   "export [bug-id]",
	Short: "Export a bug report as text or markdown",
	Long: `Export a bug report to bug_report_<id>.txt|md in the current directory,
to --output, or to stdout with --output -.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		exported, err := wire.BugReportService().ExportBugReport(NewContext(), args[0], format)
		if err != nil {
			return fmt.Errorf("failed to export bug report: %w", err)
		}

		if output == "-" {
			fmt.Print(exported.Content)
			return nil
		}
		if output == "" {
			output = exported.FileName
		}
		if err := os.WriteFile(output, []byte(exported.Content), 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}

		fmt.Printf("✓ Exported %s to %s\n", args[0], output)
		return nil
	},
}

var bugFileCmd = &cobra.Command{
	Use:   "file [bug-id]",
	Short: "File a bug report as a Jira issue",
	Long: `File a bug report in Jira. Without Jira credentials the client runs in
offline demo mode and returns a simulated key that is not recorded.
A report that already has an issue is not filed again unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		result, err := wire.TrackerService().FileIssue(NewContext(), primary.FileIssueRequest{
			BugReportID: args[0],
			Force:       force,
		})
		if err != nil {
			return fmt.Errorf("failed to file issue: %w", err)
		}
		wire.ReportAdapter().FileIssueResult(args[0], result)
		return nil
	},
}

func init() {
	bugCreateCmd.Flags().String("severity", bugreport.DefaultSeverity, "Severity (critical, high, medium, low)")
	bugCreateCmd.Flags().StringP("description", "d", "", "What went wrong")
	bugCreateCmd.Flags().String("steps", "", "Steps to reproduce")
	bugCreateCmd.Flags().String("expected", "", "Expected result")
	bugCreateCmd.Flags().String("actual", "", "Actual result")

	bugListCmd.Flags().String("project", "", "Filter by project ID")
	bugListCmd.Flags().String("severity", "", "Filter by severity")

	bugDraftCmd.Flags().Bool("save", false, "Store the draft as a bug report")

	bugExportCmd.Flags().StringP("format", "f", "txt", "Export format (txt, md)")
	bugExportCmd.Flags().StringP("output", "o", "", "Output file, or - for stdout")

	bugFileCmd.Flags().Bool("force", false, "File again even if an issue is already linked")

	bugCmd.AddCommand(bugCreateCmd)
	bugCmd.AddCommand(bugListCmd)
	bugCmd.AddCommand(bugShowCmd)
	bugCmd.AddCommand(bugFailedCmd)
	bugCmd.AddCommand(bugDraftCmd)
	bugCmd.AddCommand(bugExportCmd)
	bugCmd.AddCommand(bugFileCmd)
}

// BugCmd returns the bug command
func BugCmd() *cobra.Command {
	return bugCmd
}
