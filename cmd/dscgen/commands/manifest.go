package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/takumiyoshikawa/dscgen/internal/config"
	"github.com/takumiyoshikawa/dscgen/internal/manifest"
	"github.com/takumiyoshikawa/dscgen/internal/orchestrator"
	"github.com/takumiyoshikawa/dscgen/internal/ordered"
	"github.com/takumiyoshikawa/dscgen/internal/output"
	"github.com/takumiyoshikawa/dscgen/internal/psclass"
)

func NewManifestCmd() *cobra.Command {
	var prefix string
	var resourceVersion string
	var description string
	var executable string
	var useResourceScript bool
	var scriptFile string
	var allowNullKeys bool
	var outputDir string
	var noValidate bool

	cmd := &cobra.Command{
		Use:   "manifest <source.psm1>...",
		Short: "Generate DSC resource manifests from PowerShell classes",
		Long: `Generate a DSC v3 resource manifest for every [DscResource()] class found in
the given PowerShell source files.

A file with one resource produces <name>.dsc.resource.json, a file with several
produces <name>.dsc.manifests.json. Without --output-dir the manifests are
printed to stdout.`,
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
			if flags.Changed("resource-version") {
				cfg.Version = resourceVersion
			}
			if flags.Changed("description") {
				cfg.Description = description
			}
			if flags.Changed("executable") {
				cfg.Executable = executable
			}
			if flags.Changed("use-resource-script") {
				cfg.UseResourceScript = useResourceScript
			}
			if flags.Changed("script-file") {
				cfg.ScriptFile = scriptFile
			}
			if flags.Changed("allow-null-keys") {
				cfg.AllowNullKeys = allowNullKeys
			}
			if flags.Changed("output-dir") {
				cfg.OutputDir = outputDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			gen := &manifestGenerator{cfg: cfg, validate: !noValidate}
			results, err := orchestrator.Run[manifestResult](cmd.Context(), args, cfg.EffectiveConcurrency(), gen)
			if err != nil {
				return err
			}

			artifacts := make([][]output.Artifact, 0, len(results)+1)
			modules := make([]manifest.ScriptModule, 0, len(results))
			for _, r := range results {
				artifacts = append(artifacts, []output.Artifact{r.artifact})
				modules = append(modules, r.module)
			}

			if cfg.UseResourceScript {
				if cfg.OutputDir == "" {
					slog.WarnContext(cmd.Context(), "adapter script is only written together with --output-dir", "script", cfg.ScriptFile)
				} else {
					script, err := manifest.RenderScript(modules)
					if err != nil {
						return err
					}
					artifacts = append(artifacts, []output.Artifact{{Name: cfg.ScriptFile, Content: script}})
				}
			}
			return emit(cmd, cfg.OutputDir, artifacts)
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Resource type prefix, e.g. Contoso.Apps (overrides config type_prefix)")
	cmd.Flags().StringVar(&resourceVersion, "resource-version", config.DefaultVersion, "Version written to the manifests (overrides config version)")
	cmd.Flags().StringVar(&description, "description", "", "Manifest description (overrides comment-based help)")
	cmd.Flags().StringVar(&executable, "executable", "", "Executable DSC invokes for each operation (default: "+manifest.PlaceholderExecutable+")")
	cmd.Flags().BoolVar(&useResourceScript, "use-resource-script", false, "Invoke operations through a generated pwsh adapter script")
	cmd.Flags().StringVar(&scriptFile, "script-file", config.DefaultScriptFile, "File name of the pwsh adapter script")
	cmd.Flags().BoolVar(&allowNullKeys, "allow-null-keys", false, "Let key properties accept null in the embedded schema")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory to write manifests to (default: stdout)")
	cmd.Flags().BoolVar(&noValidate, "no-validate", false, "Skip checking the embedded schema and property defaults")

	return cmd
}

type manifestGenerator struct {
	cfg      *config.Config
	validate bool
}

// manifestResult is the manifest rendered for one source file plus the
// resources the shared adapter script has to know about.
type manifestResult struct {
	artifact output.Artifact
	module   manifest.ScriptModule
}

func (g *manifestGenerator) options(source string) manifest.Options {
	return manifest.Options{
		TypePrefix:        g.cfg.TypePrefix,
		Version:           g.cfg.Version,
		Description:       g.cfg.Description,
		Executable:        g.cfg.Executable,
		UseResourceScript: g.cfg.UseResourceScript,
		ScriptFile:        g.cfg.ScriptFile,
		ModuleFile:        filepath.Base(source),
		AllowNullKeys:     g.cfg.AllowNullKeys,
	}
}

func (g *manifestGenerator) Process(ctx context.Context, source string) (manifestResult, error) {
	resources, err := psclass.ParseFile(source)
	if err != nil {
		return manifestResult{}, err
	}

	opts := g.options(source)
	entries := make([]*ordered.Map, 0, len(resources))
	for _, r := range resources {
		if g.validate {
			// PowerShell coerces mismatched defaults at runtime, so a failed
			// check is reported and the manifest is still written.
			if err := manifest.Validate(r, opts.AllowNullKeys); err != nil {
				slog.WarnContext(ctx, "embedded schema check failed", "source", source, "error", err)
			}
		}
		entries = append(entries, manifest.Entry(r, opts))
		slog.DebugContext(ctx, "generated manifest entry",
			"type", manifest.ResourceType(opts.TypePrefix, r.ClassName),
			"properties", len(r.Properties),
			"operations", len(r.SupportedOperations()))
	}

	doc := entries[0]
	if len(entries) > 1 {
		doc = manifest.List(entries)
	}
	content, err := ordered.MarshalJSON(doc)
	if err != nil {
		return manifestResult{}, fmt.Errorf("marshal manifest: %w", err)
	}

	return manifestResult{
		artifact: output.Artifact{Name: output.ManifestName(source, len(entries)), Content: content},
		module:   manifest.ScriptModule{File: opts.ModuleFile, Resources: resources},
	}, nil
}

// emit writes every artifact to dir, or prints them when dir is empty.
func emit(cmd *cobra.Command, dir string, results [][]output.Artifact) error {
	var all []output.Artifact
	for _, r := range results {
		all = append(all, r...)
	}

	if dir == "" {
		return output.Print(cmd.OutOrStdout(), all)
	}

	written, err := output.Write(dir, all)
	if err != nil {
		return err
	}
	for _, path := range written {
		fmt.Fprintf(cmd.OutOrStdout(), "Written %s\n", path)
	}
	return nil
}
