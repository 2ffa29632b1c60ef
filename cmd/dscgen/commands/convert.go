package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/takumiyoshikawa/dscgen/internal/config"
	"github.com/takumiyoshikawa/dscgen/internal/document"
	"github.com/takumiyoshikawa/dscgen/internal/mof"
	"github.com/takumiyoshikawa/dscgen/internal/orchestrator"
	"github.com/takumiyoshikawa/dscgen/internal/output"
)

func NewConvertCmd() *cobra.Command {
	var prefix string
	var format string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "convert <config.mof>...",
		Short: "Convert compiled MOF configurations to DSC v3 configuration documents",
		Long: `Convert each compiled MOF file into a DSC v3 configuration document.

Resource types come from the ModuleName and ResourceID of each instance, and
DependsOn references are rewritten to resourceId() expressions. Without
--output-dir the documents are printed to stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("prefix") {
				cfg.TypePrefix = prefix
			}
			if flags.Changed("format") {
				cfg.Format = format
			}
			if flags.Changed("output-dir") {
				cfg.OutputDir = outputDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			f, err := document.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}

			conv := &documentConverter{prefix: cfg.TypePrefix, format: f}
			results, err := orchestrator.Run[[]output.Artifact](cmd.Context(), args, cfg.EffectiveConcurrency(), conv)
			if err != nil {
				return err
			}
			return emit(cmd, cfg.OutputDir, results)
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Fallback type prefix for instances without ModuleName (overrides config type_prefix)")
	cmd.Flags().StringVarP(&format, "format", "f", config.DefaultFormat, "Output format (json, yaml)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory to write documents to (default: stdout)")

	return cmd
}

type documentConverter struct {
	prefix string
	format document.Format
}

func (c *documentConverter) Process(ctx context.Context, source string) ([]output.Artifact, error) {
	instances, err := mof.ParseFile(source)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "parsed MOF", "source", source, "instances", len(instances))

	content, err := document.Render(instances, c.prefix, c.format)
	if err != nil {
		return nil, err
	}
	return []output.Artifact{{Name: output.DocumentName(source, c.format.Extension()), Content: content}}, nil
}
