// Package input reads source files for the parsers.
package input

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrInputNotFound is returned when a source file does not exist.
var ErrInputNotFound = errors.New("input file not found")

func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
