package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

func registerLoggingFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("loglevel", "warn", "set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("logformat", "text", "set the log format (text, json)")
}

// newLogger builds the process logger from the logging flags. Logs go to
// stderr so stdout only carries generated artifacts.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	level, err := logLevel(cmd)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	format, err := cmd.Flags().GetString("logformat")
	if err != nil {
		return nil, err
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	case "text":
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	return slog.New(handler), nil
}

func logLevel(cmd *cobra.Command) (slog.Level, error) {
	value, err := cmd.Flags().GetString("loglevel")
	if err != nil {
		return slog.LevelWarn, err
	}
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("invalid log level: %s", value)
	}
}
