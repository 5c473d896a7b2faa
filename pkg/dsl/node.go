package dsl

import "github.com/aretw0/ecoguia/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.Node
	builder *Builder
}

// Menu marks the node as a menu with the given message.
func (n *NodeBuilder) Menu(message string) *NodeBuilder {
	return n.As(domain.NodeTypeMenu, message)
}

// Response marks the node as a response with the given message.
func (n *NodeBuilder) Response(message string) *NodeBuilder {
	return n.As(domain.NodeTypeResponse, message)
}

// Input marks the node as a free-text prompt.
func (n *NodeBuilder) Input(message string) *NodeBuilder {
	return n.As(domain.NodeTypeInput, message)
}

// End marks the node as terminal.
func (n *NodeBuilder) End(message string) *NodeBuilder {
	n.node.Options = nil
	n.node.NextNodeID = ""
	return n.As(domain.NodeTypeEnd, message)
}

// As sets an arbitrary type, including ones the engine does not know.
func (n *NodeBuilder) As(nodeType, message string) *NodeBuilder {
	n.node.Type = nodeType
	n.node.Message = message
	return n
}

// Option appends a choice pointing to target.
func (n *NodeBuilder) Option(id, label, target string) *NodeBuilder {
	n.node.Options = append(n.node.Options, domain.Option{
		ID:         id,
		Label:      label,
		NextNodeID: target,
	})
	return n
}

// Go sets the direct successor used by input and pass-through nodes.
func (n *NodeBuilder) Go(target string) *NodeBuilder {
	n.node.NextNodeID = target
	return n
}

// Build returns the underlying domain.Node.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() domain.Node {
	out := n.node
	out.Options = append([]domain.Option(nil), n.node.Options...)
	return out
}
