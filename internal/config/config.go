package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile = "dscgen.yml"
	DefaultVersion    = "0.1.0"
	DefaultScriptFile = "resource.ps1"
	DefaultFormat     = "json"
)

type Config struct {
	TypePrefix        string `yaml:"type_prefix,omitempty" jsonschema:"description=Namespace prepended to resource types as <prefix>/<ClassName>. For converted documents it replaces the ModuleName of every instance."`
	Version           string `yaml:"version,omitempty" jsonschema:"description=Resource version written to generated manifests. Defaults to 0.1.0." default:"0.1.0"`
	Description       string `yaml:"description,omitempty" jsonschema:"description=Manifest description. Overrides the synopsis and description found in comment-based help."`
	Executable        string `yaml:"executable,omitempty" jsonschema:"description=Executable DSC invokes for every operation. The placeholder <executable> is written when omitted."`
	UseResourceScript bool   `yaml:"use_resource_script,omitempty" jsonschema:"description=Invoke operations through a generated pwsh adapter script instead of an executable."`
	ScriptFile        string `yaml:"script_file,omitempty" jsonschema:"description=File name of the pwsh adapter script. Defaults to resource.ps1." default:"resource.ps1"`
	AllowNullKeys     bool   `yaml:"allow_null_keys,omitempty" jsonschema:"description=Let key properties accept null in the embedded schema. They stay required."`
	Format            string `yaml:"format,omitempty" jsonschema:"enum=json,enum=yaml,description=Output format of converted configuration documents." default:"json"`
	OutputDir         string `yaml:"output_dir,omitempty" jsonschema:"description=Directory generated files are written to. Output goes to stdout when omitted."`
	Concurrency       int    `yaml:"concurrency,omitempty" jsonschema:"minimum=0,description=Number of input files processed in parallel. Defaults to the number of CPUs."`
}

var versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(?:[-+][0-9A-Za-z.-]+)?$`)

func Default() *Config {
	return &Config{
		Version:    DefaultVersion,
		ScriptFile: DefaultScriptFile,
		Format:     DefaultFormat,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve loads path when given, otherwise dscgen.yml in the working directory
// when it exists, otherwise the defaults.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultConfigFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("stat %s: %w", DefaultConfigFile, err)
	}
	return Load(DefaultConfigFile)
}

func (c *Config) Validate() error {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if !versionPattern.MatchString(c.Version) {
		return fmt.Errorf("version %q is not a semantic version", c.Version)
	}

	switch strings.ToLower(c.Format) {
	case "":
		c.Format = DefaultFormat
	case "json":
		c.Format = "json"
	case "yaml", "yml":
		c.Format = "yaml"
	default:
		return fmt.Errorf("unsupported format %q (supported: json, yaml)", c.Format)
	}

	if c.ScriptFile == "" {
		c.ScriptFile = DefaultScriptFile
	}

	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}

// EffectiveConcurrency returns the configured concurrency or the CPU count.
func (c *Config) EffectiveConcurrency() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return runtime.NumCPU()
}
