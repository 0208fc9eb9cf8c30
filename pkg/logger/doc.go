// Package logger builds zap loggers for the renderer and the CLI.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("rendered", zap.Int("nodes", n))
package logger
