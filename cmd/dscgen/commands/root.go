package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/takumiyoshikawa/dscgen/internal/config"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dscgen",
		Short: "Generate DSC v3 resource manifests and configuration documents",
		Long: `dscgen reads PowerShell DSC resource classes and compiled MOF configurations
and writes the DSC v3 artifacts for them: resource manifests with an embedded
JSON Schema, and JSON or YAML configuration documents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
	}

	registerLoggingFlags(cmd)
	cmd.PersistentFlags().StringP("config", "c", "", "Path to a dscgen.yml file (default: ./"+config.DefaultConfigFile+" when present)")

	cmd.AddCommand(NewManifestCmd())
	cmd.AddCommand(NewConvertCmd())
	cmd.AddCommand(NewSchemaCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(cmd.Context(), "loaded configuration", "path", path, "type_prefix", cfg.TypePrefix, "format", cfg.Format)
	return cfg, nil
}
