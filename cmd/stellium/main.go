package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stelliumhq/stellium/cmd/stellium/commands"
	"github.com/stelliumhq/stellium/config"
	"github.com/stelliumhq/stellium/logger"
)

var rootCmd = &cobra.Command{
	Use:   "stellium",
	Short: "Stellium - astrological calculations over MCP",
	Long: `Stellium - ephemeris calculations and natal chart storage.

Stellium computes planetary positions, houses, aspects, lunar phases and
retrograde periods, and keeps a small store of named natal charts. The
serve command exposes everything as MCP tools over stdio.

Available commands:
  serve   - Start the MCP server (stdio transport)
  charts  - Inspect and manage stored natal charts
  version - Show version information

Examples:
  stellium serve               # Start the MCP server
  stellium charts list         # List stored charts
  stellium charts delete --name Ada --birth-date 1815-12-10`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := logger.Initialize(cfg.Log.JSON); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a stellium.toml config file")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity")

	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.ChartsCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
