// Package file loads dialogue definitions and reservation tables from local files.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/aretw0/ecoguia/pkg/ports"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefinitionLoader reads a dialogue definition from a single JSON or YAML file.
// Files ending in .yaml or .yml are parsed as YAML; anything else as JSON.
type DefinitionLoader struct {
	path string
}

var _ ports.DefinitionLoader = (*DefinitionLoader)(nil)

// NewDefinitionLoader creates a loader for path.
func NewDefinitionLoader(path string) *DefinitionLoader {
	return &DefinitionLoader{path: path}
}

// LoadDefinition implements ports.DefinitionLoader.
func (l *DefinitionLoader) LoadDefinition(ctx context.Context) (*domain.Definition, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dialogue definition: %w", err)
	}

	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(l.path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, &domain.ConfigurationError{Reason: fmt.Sprintf("failed to parse %s: %v", filepath.Base(l.path), err)}
	}

	return DecodeDefinition(raw)
}

// DecodeDefinition converts a generic document into a Definition.
// Scalars are weakly typed, so a numeric option id like 1 becomes "1".
// The document is kept as Definition.Raw.
func DecodeDefinition(raw map[string]any) (*domain.Definition, error) {
	if _, ok := raw["nodes"]; !ok {
		return nil, &domain.ConfigurationError{Reason: "definition has no 'nodes' collection"}
	}

	def := &domain.Definition{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           def,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, &domain.ConfigurationError{Reason: fmt.Sprintf("malformed node descriptors: %v", err)}
	}
	if def.Nodes == nil {
		def.Nodes = []domain.Node{}
	}
	def.Raw = raw
	return def, nil
}
