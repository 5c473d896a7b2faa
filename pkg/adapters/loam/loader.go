// Package loam loads a dialogue from a directory of Markdown, YAML or JSON documents.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/aretw0/ecoguia/pkg/ports"
	"github.com/aretw0/loam"
)

// Loader adapts the Loam library to the DefinitionLoader interface.
type Loader struct {
	Repo *loam.TypedRepository[NodeMetadata]
}

var _ ports.DefinitionLoader = (*Loader)(nil)

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[NodeMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at path.
// Strict mode keeps numbers consistent across Markdown and JSON documents.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[NodeMetadata](repo)), nil
}

// LoadDefinition lists every document and converts it into a node.
// Nodes are sorted by id since directory order is not meaningful.
func (l *Loader) LoadDefinition(ctx context.Context) (*domain.Definition, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	def := &domain.Definition{Nodes: make([]domain.Node, 0, len(docs))}
	var starts []string

	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, &domain.ConfigurationError{
				NodeID: id,
				Reason: fmt.Sprintf("collision detected: defined in both '%s' and '%s'", existingPath, doc.ID),
			}
		}
		seen[id] = doc.ID

		if doc.Data.Start {
			starts = append(starts, id)
		}
		def.Nodes = append(def.Nodes, buildNode(id, doc.Data, doc.Content))
	}

	switch len(starts) {
	case 0:
	case 1:
		def.StartNodeID = starts[0]
	default:
		sort.Strings(starts)
		return nil, &domain.ConfigurationError{Reason: fmt.Sprintf("more than one start node: %s", strings.Join(starts, ", "))}
	}

	sort.Slice(def.Nodes, func(i, j int) bool { return def.Nodes[i].ID < def.Nodes[j].ID })
	return def, nil
}

func buildNode(id string, meta NodeMetadata, content string) domain.Node {
	node := domain.Node{
		ID:         id,
		Type:       meta.Type,
		Message:    strings.TrimSpace(content),
		NextNodeID: firstNonEmpty(meta.NextNodeID, meta.To),
	}
	if node.NextNodeID != "" {
		node.NextNodeID = trimExtension(node.NextNodeID)
	}

	for _, opt := range meta.Options {
		target := firstNonEmpty(opt.NextNodeID, opt.To)
		if target != "" {
			target = trimExtension(target)
		}
		node.Options = append(node.Options, domain.Option{
			ID:         opt.ID,
			Label:      firstNonEmpty(opt.Label, opt.Text),
			NextNodeID: target,
		})
	}
	return node
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
