package commands

import (
	"github.com/spf13/cobra"

	"github.com/stelliumhq/stellium/config"
	"github.com/stelliumhq/stellium/errors"
	"github.com/stelliumhq/stellium/logger"
	"github.com/stelliumhq/stellium/server"
	"github.com/stelliumhq/stellium/version"
)

// ServeCmd starts the Stellium MCP server over stdio.
var ServeCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Start the Stellium MCP server (stdio transport)",
	Long: `Start the MCP server. The client speaks JSON-RPC over stdin/stdout,
so all logging goes to stderr.`,
	RunE: runServe,
}

var serveStoragePath string

func init() {
	ServeCmd.Flags().StringVar(&serveStoragePath, "storage", "", "Chart storage file (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if serveStoragePath != "" {
		cfg.Storage.Path = serveStoragePath
	}

	logger.Infow("starting stellium MCP server", "version", version.Get().Short())

	srv, err := server.New(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to initialize server")
	}

	if err := srv.Serve(); err != nil {
		return errors.Wrap(err, "server terminated")
	}

	logger.Info("server shutting down")
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}
