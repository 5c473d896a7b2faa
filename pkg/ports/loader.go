package ports

import (
	"context"

	"github.com/aretw0/ecoguia/pkg/domain"
)

// DefinitionLoader retrieves the dialogue definition.
// This allows the source (JSON/YAML file, Loam repository, memory) to be decoupled.
type DefinitionLoader interface {
	// LoadDefinition returns the nodes and the designated start node.
	// A source without a nodes collection must fail with a domain.ErrConfiguration error.
	LoadDefinition(ctx context.Context) (*domain.Definition, error)
}

// RecordLoader retrieves the unified reservation table.
type RecordLoader interface {
	LoadRecords(ctx context.Context) ([]domain.Record, error)
}
