package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/smartqa/internal/db"
	"github.com/example/smartqa/internal/wire"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo projects, scenarios, executions and a bug report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.SeedFixtures(wire.Get().DB); err != nil {
				return fmt.Errorf("failed to seed database: %w", err)
			}
			fmt.Println("✓ Demo data loaded")
			return nil
		},
	}
}
