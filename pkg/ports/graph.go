package ports

import "github.com/aretw0/ecoguia/pkg/domain"

// Graph is a read-only view over the dialogue nodes.
// Implementations must be safe for concurrent readers.
type Graph interface {
	// Node looks a node up by id.
	Node(id string) (domain.Node, bool)

	// StartNodeID returns the entry point of the conversation.
	StartNodeID() string

	// Nodes returns every node in definition order.
	Nodes() []domain.Node
}
