// Package manifest describes a set of named node instances in YAML and builds
// them against a registry.
//
//	name: sensors
//	description: threshold and clamp stages
//	nodes:
//	  - name: hot
//	    kind: threshold
//	    settings:
//	      threshold: 30
//	  - name: limit
//	    kind: clamp
//	    timeout: 2s
//	    settings:
//	      bounds: {min: -40, max: 85}
package manifest

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid is returned for a manifest that fails validation.
var ErrInvalid = errors.New("manifest: invalid")

// Manifest represents a complete set of node instances defined in YAML.
type Manifest struct {
	Name        string           `yaml:"name" json:"name"`
	Description string           `yaml:"description,omitempty" json:"description,omitempty"`
	Nodes       []NodeDefinition `yaml:"nodes" json:"nodes"`
}

// NodeDefinition represents one named instance of a node kind.
type NodeDefinition struct {
	Name     string         `yaml:"name" json:"name"`
	Kind     string         `yaml:"kind" json:"kind"`
	Settings map[string]any `yaml:"settings,omitempty" json:"settings,omitempty"`
	Timeout  string         `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

// Validate checks that the manifest is well formed. It does not check that
// the kinds exist; Build does.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if len(m.Nodes) == 0 {
		return fmt.Errorf("%w: at least one node is required", ErrInvalid)
	}

	seen := make(map[string]bool, len(m.Nodes))
	for i, node := range m.Nodes {
		if node.Name == "" {
			return fmt.Errorf("%w: node %d: name is required", ErrInvalid, i)
		}
		if seen[node.Name] {
			return fmt.Errorf("%w: duplicate node name %q", ErrInvalid, node.Name)
		}
		seen[node.Name] = true

		if err := node.Validate(); err != nil {
			return fmt.Errorf("%w: node %s: %w", ErrInvalid, node.Name, err)
		}
	}
	return nil
}

// Validate checks if the node definition is valid.
func (nd *NodeDefinition) Validate() error {
	if nd.Kind == "" {
		return errors.New("kind is required")
	}
	if _, err := nd.timeout(); err != nil {
		return err
	}
	return nil
}

func (nd *NodeDefinition) timeout() (time.Duration, error) {
	if nd.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(nd.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid timeout: %s is not positive", nd.Timeout)
	}
	return d, nil
}
