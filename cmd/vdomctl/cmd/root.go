// Package cmd implements the vdomctl commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/go-drift/vdom/pkg/config"
	"github.com/go-drift/vdom/pkg/errors"
	"github.com/go-drift/vdom/pkg/logger"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

var configDir string

// settings holds what PersistentPreRunE resolved for the running command.
var settings struct {
	cfg *config.Config
	log *zap.Logger
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "vdomctl",
	Short: "Render and diff vdom description documents",
	Long: `vdomctl renders YAML description documents to HTML with the vdom
renderer and shows the host mutations needed to move from one document
to another.

Configuration is read from vdom.yaml and .env in --config-dir and from
VDOM_* environment variables.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory holding vdom.yaml and .env")
}

// setup loads configuration and installs the process logger.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	log = logger.WithSession(log, uuid.NewString())
	zap.ReplaceGlobals(log)
	errors.SetHandler(&errors.LogHandler{Logger: log, Verbose: cfg.Log.Level == "debug"})

	settings.cfg = cfg
	settings.log = log
	log.Debug("configured", zap.String("command", cmd.Name()), zap.Bool("sync_updates", cfg.Renderer.SyncUpdates))
	return nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		l := settings.log
		if l == nil {
			var logErr error
			l, logErr = logger.New(&logger.Config{Level: "debug", Format: "console"})
			if logErr != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
		l.Error("command failed", zap.Stringer("kind", errors.KindOf(err)), zap.Error(err))
		_ = l.Sync()
		os.Exit(1)
	}
	if settings.log != nil {
		_ = settings.log.Sync()
	}
}
