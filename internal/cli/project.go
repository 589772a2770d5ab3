package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/smartqa/internal/core/execution"
	"github.com/example/smartqa/internal/ports/primary"
	"github.com/example/smartqa/internal/wire"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects (applications under test)",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("url")
		description, _ := cmd.Flags().GetString("description")

		project, err := wire.ProjectService().CreateProject(NewContext(), primary.CreateProjectRequest{
			Name:        args[0],
			URL:         url,
			Description: description,
		})
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		fmt.Printf("✓ Created project %s: %s\n", project.ID, project.Name)
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := wire.ProjectService().ListProjects(NewContext())
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}
		wire.ReportAdapter().Projects(projects)
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show [project-id]",
	Short: "Show a project with scenario and execution totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := wire.DashboardService().ProjectSummary(NewContext(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get project: %w", err)
		}
		wire.ReportAdapter().ProjectSummary(summary, execution.Statuses)
		return nil
	},
}

var projectUpdateCmd = &cobra.Command{
	Use:   "update [project-id]",
	Short: "Update a project's name, URL or description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := primary.UpdateProjectRequest{ProjectID: args[0]}
		req.Name = changedString(cmd, "name")
		req.URL = changedString(cmd, "url")
		req.Description = changedString(cmd, "description")
		if req.Name == nil && req.URL == nil && req.Description == nil {
			return fmt.Errorf("nothing to update (use --name, --url or --description)")
		}

		project, err := wire.ProjectService().UpdateProject(NewContext(), req)
		if err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}

		fmt.Printf("✓ Updated project %s\n", project.ID)
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [project-id]",
	Short: "Delete a project",
	Long: `Delete a project. A project that still has scenarios is only deleted with
--force, which also removes its scenarios, executions and bug reports.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if err := wire.ProjectService().DeleteProject(NewContext(), primary.DeleteProjectRequest{
			ProjectID: args[0],
			Force:     force,
		}); err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}

		fmt.Printf("✓ Deleted project %s\n", args[0])
		return nil
	},
}

func init() {
	projectCreateCmd.Flags().String("url", "", "Application URL")
	projectCreateCmd.Flags().StringP("description", "d", "", "Project description")

	projectUpdateCmd.Flags().String("name", "", "New name")
	projectUpdateCmd.Flags().String("url", "", "New URL")
	projectUpdateCmd.Flags().StringP("description", "d", "", "New description")

	projectDeleteCmd.Flags().Bool("force", false, "Delete scenarios, executions and bug reports too")

	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectUpdateCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}

// ProjectCmd returns the project command
func ProjectCmd() *cobra.Command {
	return projectCmd
}

// changedString returns the flag value only when the user set it.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
