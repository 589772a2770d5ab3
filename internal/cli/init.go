package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/smartqa/internal/config"
	"github.com/example/smartqa/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration and create the database",
		Long: `Write ~/.smartqa/config.yaml (or the --config path) with default settings
and create the SQLite database with the current schema.

Secrets are never written to the file. Set JIRA_API_TOKEN, ANTHROPIC_API_KEY
or OPENAI_API_KEY in the environment or a .env file instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}

			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote config to %s\n", path)

			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			database, err := db.Open(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer database.Close()
			fmt.Printf("✓ Database ready at %s (schema v%d)\n", cfg.DatabasePath, db.LatestVersion())

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  smartqa seed")
			fmt.Println("  smartqa project create \"My App\" --url https://app.example.com")
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing config file")
	return cmd
}
