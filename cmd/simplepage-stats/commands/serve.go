package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stigmergic-org/simplepage-stats/internal/app"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/configs"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand builds the long-running command: HTTP server plus refresh worker.
func NewServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the leaderboards over HTTP and refresh them periodically",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configs.LoadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			application, err := app.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			serverErr := make(chan error, 1)
			go func() {
				if err := application.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
				close(serverErr)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case err := <-serverErr:
				if err != nil {
					return fmt.Errorf("server failed: %w", err)
				}
				return nil
			case <-quit:
			}

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := application.Shutdown(ctx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}
			return nil
		},
	}
}
