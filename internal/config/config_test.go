package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	cfgFile := filepath.Join(t.TempDir(), "dscgen.yml")
	if err := os.WriteFile(cfgFile, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return cfgFile
}

func TestLoadValidConfig(t *testing.T) {
	cfgFile := writeConfig(t, `type_prefix: Contoso.Apps
version: 1.2.3
executable: contoso-dsc
allow_null_keys: true
format: yaml
output_dir: out
concurrency: 4
`)

	cfg, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.TypePrefix != "Contoso.Apps" {
		t.Errorf("TypePrefix = %q, want %q", cfg.TypePrefix, "Contoso.Apps")
	}
	if cfg.Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", cfg.Version, "1.2.3")
	}
	if cfg.Executable != "contoso-dsc" {
		t.Errorf("Executable = %q, want %q", cfg.Executable, "contoso-dsc")
	}
	if !cfg.AllowNullKeys {
		t.Error("AllowNullKeys = false, want true")
	}
	if cfg.Format != "yaml" {
		t.Errorf("Format = %q, want %q", cfg.Format, "yaml")
	}
	if cfg.OutputDir != "out" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "out")
	}
	if cfg.EffectiveConcurrency() != 4 {
		t.Errorf("EffectiveConcurrency = %d, want 4", cfg.EffectiveConcurrency())
	}
	if cfg.ScriptFile != DefaultScriptFile {
		t.Errorf("ScriptFile = %q, want default %q", cfg.ScriptFile, DefaultScriptFile)
	}
}

func TestLoadEmptyConfigUsesDefaults(t *testing.T) {
	cfgFile := writeConfig(t, "")

	cfg, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Version != DefaultVersion {
		t.Errorf("Version = %q, want %q", cfg.Version, DefaultVersion)
	}
	if cfg.Format != DefaultFormat {
		t.Errorf("Format = %q, want %q", cfg.Format, DefaultFormat)
	}
	if cfg.EffectiveConcurrency() < 1 {
		t.Errorf("EffectiveConcurrency = %d, want at least 1", cfg.EffectiveConcurrency())
	}
}

func TestLoadInvalidVersion(t *testing.T) {
	cfgFile := writeConfig(t, "version: one\n")

	_, err := Load(cfgFile)
	if err == nil {
		t.Error("Load() should return error for a non semantic version")
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	cfgFile := writeConfig(t, "format: toml\n")

	_, err := Load(cfgFile)
	if err == nil {
		t.Error("Load() should return error for unsupported format")
	}
}

func TestLoadNormalizesFormat(t *testing.T) {
	for in, want := range map[string]string{"yml": "yaml", "YAML": "yaml", "Json": "json"} {
		cfgFile := writeConfig(t, "format: "+in+"\n")

		cfg, err := Load(cfgFile)
		if err != nil {
			t.Fatalf("Load() with format %q error = %v", in, err)
		}
		if cfg.Format != want {
			t.Errorf("Format = %q, want %q", cfg.Format, want)
		}
	}
}

func TestLoadNegativeConcurrency(t *testing.T) {
	cfgFile := writeConfig(t, "concurrency: -1\n")

	_, err := Load(cfgFile)
	if err == nil {
		t.Error("Load() should return error for negative concurrency")
	}
}

func TestLoadNonexistentFile(t *testing.T) {
	_, err := Load("/nonexistent/path/dscgen.yml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	cfgFile := writeConfig(t, "this is not valid: yaml: [")

	_, err := Load(cfgFile)
	if err == nil {
		t.Error("Load() should return error for invalid YAML")
	}
}

func TestResolveWithoutConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if cfg.Version != DefaultVersion {
		t.Errorf("Version = %q, want %q", cfg.Version, DefaultVersion)
	}
}

func TestResolvePicksUpDefaultFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("type_prefix: Fabrikam\n"), 0o600); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	t.Chdir(dir)

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if cfg.TypePrefix != "Fabrikam" {
		t.Errorf("TypePrefix = %q, want %q", cfg.TypePrefix, "Fabrikam")
	}
}
