package dsl

import (
	"fmt"

	"github.com/aretw0/ecoguia/pkg/adapters/memory"
	"github.com/aretw0/ecoguia/pkg/domain"
)

// Builder manages the dialogue graph construction.
// Nodes keep the order in which they were first added.
type Builder struct {
	nodes map[string]*NodeBuilder
	order []string
	start string
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Start sets the entry node. Without it the first added node is used.
func (b *Builder) Start(id string) *Builder {
	b.start = id
	return b
}

// Add creates a new node in the graph.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node: domain.Node{
			ID: id,
		},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Definition compiles the graph into a Definition.
func (b *Builder) Definition() *domain.Definition {
	def := &domain.Definition{
		StartNodeID: b.start,
		Nodes:       make([]domain.Node, 0, len(b.order)),
	}
	for _, id := range b.order {
		def.Nodes = append(def.Nodes, b.nodes[id].Build())
	}
	if def.StartNodeID == "" && len(b.order) > 0 {
		def.StartNodeID = b.order[0]
	}
	return def
}

// Build compiles the graph into a memory Loader.
func (b *Builder) Build() (*memory.Loader, error) {
	def := b.Definition()
	for _, n := range def.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("failed to build memory loader: node missing ID")
		}
	}
	return memory.NewLoader(def), nil
}
