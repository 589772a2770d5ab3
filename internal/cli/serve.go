package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/smartqa/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Long: `Serve the SmartQA JSON API under /api until interrupted.

The listen address defaults to http_addr from the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := wire.Get()
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = c.Config.HTTPAddr
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			e := c.Server()
			errCh := make(chan error, 1)
			go func() {
				c.Logger.Info("serving api", "addr", addr)
				errCh <- e.Start(addr)
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server stopped: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := e.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("failed to shut down: %w", err)
			}
			c.Logger.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().String("addr", "", "Listen address (host:port)")
	return cmd
}
