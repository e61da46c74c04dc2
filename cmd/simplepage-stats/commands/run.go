package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stigmergic-org/simplepage-stats/internal/app"
	"github.com/stigmergic-org/simplepage-stats/internal/shared/configs"
)

// DefaultConfigPath is where the config file is looked up when --config is not given.
const DefaultConfigPath = "./configs/configs.yml"

// NewRunCommand builds the one-shot command. Logs go to stderr so the table on
// stdout can be piped.
func NewRunCommand(configPath *string) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build and publish the leaderboards once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configs.LoadConfig(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			application, err := app.New(cfg, app.WithLogOutput(os.Stderr), app.WithColor(!color.NoColor))
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			result, err := application.RunOnce(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to publish leaderboards: %w", err)
			}
			if quiet {
				return nil
			}
			return application.PrintTable(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the leaderboards")

	return cmd
}
