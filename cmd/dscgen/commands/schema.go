package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/takumiyoshikawa/dscgen/internal/config"
	"github.com/takumiyoshikawa/dscgen/internal/jsonschema"
)

func NewSchemaCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Generate JSON Schema for " + config.DefaultConfigFile + " files",
		Long: `Generate a JSON Schema for dscgen configuration files, for IDE autocomplete
and validation.

Reference it from yaml-language-server with a comment at the top of dscgen.yml:

  # yaml-language-server: $schema=./dscgen.schema.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaBytes, err := jsonschema.Generate()
			if err != nil {
				return fmt.Errorf("generating schema: %w", err)
			}

			if outputFile == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(schemaBytes))
				return err
			}

			if dir := filepath.Dir(outputFile); dir != "." {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("creating directory %s: %w", dir, err)
				}
			}
			if err := os.WriteFile(outputFile, schemaBytes, 0o600); err != nil {
				return fmt.Errorf("writing schema: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "JSON Schema written to %s\n", outputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")

	return cmd
}
