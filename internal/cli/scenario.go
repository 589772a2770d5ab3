package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/smartqa/internal/core/scenario"
	"github.com/example/smartqa/internal/ports/primary"
	"github.com/example/smartqa/internal/wire"
)

var scenarioCmd = &cobra.Command{
	Use:     "scenario",
	Aliases: []string{"scn"},
	Short:   "Manage test scenarios",
}

var scenarioCreateCmd = &cobra.Command{
	Use:   "create [project-id] [title]",
	Short: "Create a scenario",
	Long: `Create a scenario under a project. Repeat --step for each step, in order.

Examples:
  smartqa scenario create PROJ-001 "Login" --step "Open /login" --step "Submit valid credentials"
  smartqa scenario create PROJ-001 "Logout" --priority low --status draft`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")
		steps, _ := cmd.Flags().GetStringArray("step")
		priority, _ := cmd.Flags().GetString("priority")
		status, _ := cmd.Flags().GetString("status")

		s, err := wire.ScenarioService().CreateScenario(NewContext(), primary.CreateScenarioRequest{
			ProjectID:   args[0],
			Title:       args[1],
			Description: description,
			Steps:       steps,
			Priority:    priority,
			Status:      status,
		})
		if err != nil {
			return fmt.Errorf("failed to create scenario: %w", err)
		}

		fmt.Printf("✓ Created scenario %s: %s (%d steps)\n", s.ID, s.Title, len(s.Steps))
		return nil
	},
}

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scenarios, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID, _ := cmd.Flags().GetString("project")
		status, _ := cmd.Flags().GetString("status")
		priority, _ := cmd.Flags().GetString("priority")

		scenarios, err := wire.ScenarioService().ListScenarios(NewContext(), primary.ScenarioFilters{
			ProjectID: projectID,
			Status:    status,
			Priority:  priority,
		})
		if err != nil {
			return fmt.Errorf("failed to list scenarios: %w", err)
		}
		wire.ReportAdapter().Scenarios(scenarios)
		return nil
	},
}

var scenarioShowCmd = &cobra.Command{
	Use:   "show [scenario-id]",
	Short: "Show a scenario and its steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := wire.ScenarioService().GetScenario(NewContext(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get scenario: %w", err)
		}
		wire.ReportAdapter().Scenario(s)
		return nil
	},
}

var scenarioUpdateCmd = &cobra.Command{
	Use:   "update [scenario-id]",
	Short: "Update scenario fields",
	Long: `Update scenario fields. Passing --step replaces the whole step list;
use "smartqa scenario edit" to change individual steps.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := primary.UpdateScenarioRequest{ScenarioID: args[0], Fields: scenarioFields(cmd)}
		if cmd.Flags().Changed("step") {
			req.Steps, _ = cmd.Flags().GetStringArray("step")
		}

		s, err := wire.ScenarioService().UpdateScenario(NewContext(), req)
		if err != nil {
			return fmt.Errorf("failed to update scenario: %w", err)
		}

		fmt.Printf("✓ Updated scenario %s\n", s.ID)
		return nil
	},
}

var scenarioDeleteCmd = &cobra.Command{
	Use:   "delete [scenario-id]",
	Short: "Delete a scenario with its executions and bug reports",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.ScenarioService().DeleteScenario(NewContext(), args[0]); err != nil {
			return fmt.Errorf("failed to delete scenario: %w", err)
		}
		fmt.Printf("✓ Deleted scenario %s\n", args[0])
		return nil
	},
}

var scenarioEditCmd = &cobra.Command{
	Use:   "edit [scenario-id]",
	Short: "Interactively edit a scenario's steps",
	Long: `Open an edit session on a scenario's steps. Nothing is written until "save".

Session commands:
  list               show the draft steps
  add <text>         append a step
  set <n> <text>     replace step n
  rm <n>             remove step n
  mv <from> <to>     move a step
  save               write the draft (blank steps are dropped)
  discard            leave without saving

Field flags (--title, --priority, ...) are applied on save.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEditSession(NewContext(), wire.ScenarioService(), args[0], scenarioFields(cmd), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	scenarioCreateCmd.Flags().StringP("description", "d", "", "Scenario description")
	scenarioCreateCmd.Flags().StringArrayP("step", "s", nil, "Step text (repeatable)")
	scenarioCreateCmd.Flags().StringP("priority", "p", scenario.DefaultPriority, "Priority (critical, high, medium, low)")
	scenarioCreateCmd.Flags().String("status", scenario.DefaultStatus, "Status (draft, active, archived)")

	scenarioListCmd.Flags().String("project", "", "Filter by project ID")
	scenarioListCmd.Flags().String("status", "", "Filter by status")
	scenarioListCmd.Flags().StringP("priority", "p", "", "Filter by priority")

	for _, c := range []*cobra.Command{scenarioUpdateCmd, scenarioEditCmd} {
		c.Flags().String("title", "", "New title")
		c.Flags().StringP("description", "d", "", "New description")
		c.Flags().StringP("priority", "p", "", "New priority")
		c.Flags().String("status", "", "New status")
	}
	scenarioUpdateCmd.Flags().StringArrayP("step", "s", nil, "Replacement step text (repeatable)")

	scenarioCmd.AddCommand(scenarioCreateCmd)
	scenarioCmd.AddCommand(scenarioListCmd)
	scenarioCmd.AddCommand(scenarioShowCmd)
	scenarioCmd.AddCommand(scenarioUpdateCmd)
	scenarioCmd.AddCommand(scenarioDeleteCmd)
	scenarioCmd.AddCommand(scenarioEditCmd)
}

// ScenarioCmd returns the scenario command
func ScenarioCmd() *cobra.Command {
	return scenarioCmd
}

func scenarioFields(cmd *cobra.Command) primary.ScenarioFields {
	return primary.ScenarioFields{
		Title:       changedString(cmd, "title"),
		Description: changedString(cmd, "description"),
		Priority:    changedString(cmd, "priority"),
		Status:      changedString(cmd, "status"),
	}
}
