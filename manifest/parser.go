package manifest

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// Parse reads and validates a manifest.
func Parse(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ParseFile reads and validates a manifest file.
func ParseFile(filename string) (*Manifest, error) {
	// #nosec G304 - callers choose which manifest to load
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Parse(file)
}

// ParseString reads and validates a manifest from a string.
func ParseString(s string) (*Manifest, error) {
	return Parse(bytes.NewReader([]byte(s)))
}

// Marshal encodes a manifest as YAML.
func Marshal(m *Manifest) ([]byte, error) {
	return yaml.Marshal(m)
}
