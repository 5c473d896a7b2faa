package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/ecoguia/pkg/domain"
)

// Loader implements ports.DefinitionLoader and ports.RecordLoader from values held in memory.
type Loader struct {
	def     *domain.Definition
	records []domain.Record
}

// NewLoader wraps an existing definition.
func NewLoader(def *domain.Definition) *Loader {
	return &Loader{def: def}
}

// NewFromNodes creates a Loader from domain objects. The first node is the
// start node unless WithStart names another one.
func NewFromNodes(nodes ...domain.Node) (*Loader, error) {
	for i, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node #%d missing ID", i)
		}
	}
	def := &domain.Definition{Nodes: append([]domain.Node{}, nodes...)}
	if len(nodes) > 0 {
		def.StartNodeID = nodes[0].ID
	}
	return &Loader{def: def}, nil
}

// WithStart overrides the start node id.
func (l *Loader) WithStart(id string) *Loader {
	if l.def != nil {
		l.def.StartNodeID = id
	}
	return l
}

// WithRecords attaches a reservation table.
func (l *Loader) WithRecords(records ...domain.Record) *Loader {
	l.records = append(l.records, records...)
	return l
}

// LoadDefinition returns a copy of the held definition.
func (l *Loader) LoadDefinition(ctx context.Context) (*domain.Definition, error) {
	if l.def == nil || l.def.Nodes == nil {
		return nil, &domain.ConfigurationError{Reason: "definition has no 'nodes' collection"}
	}
	out := *l.def
	out.Nodes = append([]domain.Node{}, l.def.Nodes...)
	return &out, nil
}

// LoadRecords returns the attached records.
func (l *Loader) LoadRecords(ctx context.Context) ([]domain.Record, error) {
	out := make([]domain.Record, len(l.records))
	copy(out, l.records)
	return out, nil
}
