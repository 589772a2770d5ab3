package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/smartqa/internal/wire"
)

// GenerateCmd returns the generate command
func GenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate test artifacts with the configured AI provider",
	}

	scenarios := &cobra.Command{
		Use:   "scenarios [project-id]",
		Short: "Generate test scenarios for a project",
		Long: `Generate scenario drafts for a project and store them as AI-created
scenarios. With --dry-run the drafts are only printed.

In mock mode (no AI provider configured) drafts come from a fixed catalog
of up to 10 common web-app scenarios.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			count, _ := cmd.Flags().GetInt("count")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			drafts, err := wire.GenerationService().GenerateScenarios(ctx, args[0], count)
			if err != nil {
				return fmt.Errorf("failed to generate scenarios: %w", err)
			}

			report := wire.ReportAdapter()
			if len(drafts) == 0 {
				report.Warn("The generator returned no scenarios")
				return nil
			}
			report.ScenarioDrafts(drafts)
			if dryRun {
				fmt.Printf("%d drafts generated (dry run, nothing saved)\n", len(drafts))
				return nil
			}

			created, err := wire.GenerationService().AcceptScenarioDrafts(ctx, args[0], drafts)
			if err != nil {
				return fmt.Errorf("failed to save scenarios: %w", err)
			}
			report.Success("Created %d scenarios in %s", len(created), args[0])
			return nil
		},
	}
	scenarios.Flags().IntP("count", "c", 5, "Number of scenarios to generate")
	scenarios.Flags().Bool("dry-run", false, "Print drafts without saving")

	cmd.AddCommand(scenarios)
	return cmd
}
