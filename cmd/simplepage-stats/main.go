package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stigmergic-org/simplepage-stats/cmd/simplepage-stats/commands"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "simplepage-stats",
		Short: "Visitor leaderboards for SimplePage sites",
		Long: `simplepage-stats queries the analytics provider for per-hostname visitors,
collapses gateway hostnames into ENS names and publishes ranked leaderboards
(data.json and index.html) for the last week, month and year.

Commands:
  run       Build and publish the leaderboards once
  serve     Serve the leaderboards over HTTP and refresh them periodically`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", commands.DefaultConfigPath, "path to the config file")

	rootCmd.AddCommand(commands.NewRunCommand(&configPath))
	rootCmd.AddCommand(commands.NewServeCommand(&configPath))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
