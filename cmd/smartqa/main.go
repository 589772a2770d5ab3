package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/smartqa/internal/cli"
	"github.com/example/smartqa/internal/version"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "smartqa",
		Short:   "SmartQA - test scenario and bug report manager",
		Version: version.String(),
		Long: `SmartQA manages projects, test scenarios, executions and bug reports.
Scenarios and bug report drafts can be generated by an AI provider, and bug
reports can be filed in Jira.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.Bootstrap(configPath)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.smartqa/config.yaml or $SMARTQA_CONFIG)")

	// Setup
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.StatsCmd())
	rootCmd.AddCommand(cli.LogCmd())

	// Entity commands
	rootCmd.AddCommand(cli.ProjectCmd())
	rootCmd.AddCommand(cli.ScenarioCmd())
	rootCmd.AddCommand(cli.RunCmd())
	rootCmd.AddCommand(cli.ExecutionCmd())
	rootCmd.AddCommand(cli.BugCmd())

	// Integrations
	rootCmd.AddCommand(cli.GenerateCmd())
	rootCmd.AddCommand(cli.JiraCmd())
	rootCmd.AddCommand(cli.ServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
