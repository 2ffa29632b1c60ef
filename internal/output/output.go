// Package output names and writes generated artifacts.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Artifact is a fully rendered file waiting to be written.
type Artifact struct {
	Name    string
	Content []byte
}

const (
	resourceManifestSuffix = ".dsc.resource.json"
	manifestListSuffix     = ".dsc.manifests.json"
	configDocumentSuffix   = ".dsc.config"
)

// BaseName strips the directory and every extension of a source path, so
// "src/MyModule.psm1" becomes "MyModule".
func BaseName(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}

// ManifestName names the manifest file generated from source. A source with
// several resources gets the list form.
func ManifestName(source string, resources int) string {
	if resources > 1 {
		return BaseName(source) + manifestListSuffix
	}
	return BaseName(source) + resourceManifestSuffix
}

// DocumentName names the configuration document converted from source, ext
// being ".json" or ".yaml".
func DocumentName(source, ext string) string {
	return BaseName(source) + configDocumentSuffix + ext
}

// ErrDuplicateArtifact is returned when two artifacts would be written to the
// same file.
var ErrDuplicateArtifact = errors.New("duplicate artifact name")

// Write writes every artifact into dir, creating it if needed. Nothing is
// written when two artifacts share a name or dir cannot be created.
func Write(dir string, artifacts []Artifact) ([]string, error) {
	seen := make(map[string]bool, len(artifacts))
	for _, a := range artifacts {
		if seen[a.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateArtifact, a.Name)
		}
		seen[a.Name] = true
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}

	written := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := filepath.Join(dir, a.Name)
		if err := os.WriteFile(path, withNewline(a.Content), 0o600); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// Print writes artifacts to w, separated by a blank line when there are
// several.
func Print(w io.Writer, artifacts []Artifact) error {
	for i, a := range artifacts {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := w.Write(withNewline(a.Content)); err != nil {
			return fmt.Errorf("print %s: %w", a.Name, err)
		}
	}
	return nil
}

func withNewline(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\n' {
		return b
	}
	return append(b[:len(b):len(b)], '\n')
}
