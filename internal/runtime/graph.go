package runtime

import (
	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/aretw0/ecoguia/pkg/ports"
)

// Graph is the immutable node index built once from a Definition.
type Graph struct {
	nodes map[string]domain.Node
	order []string
	start string
}

var _ ports.Graph = (*Graph)(nil)

type graphConfig struct {
	lazyReferences bool
}

// GraphOption configures LoadGraph.
type GraphOption func(*graphConfig)

// WithLazyReferences skips the eager check of option and next_node_id targets.
// Broken references then surface per transition from Engine.Resolve.
func WithLazyReferences() GraphOption {
	return func(c *graphConfig) {
		c.lazyReferences = true
	}
}

// LoadGraph indexes and validates a definition.
// All problems are reported together in a *domain.GraphError.
func LoadGraph(def *domain.Definition, opts ...GraphOption) (*Graph, error) {
	cfg := graphConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if def == nil || def.Nodes == nil {
		return nil, &domain.ConfigurationError{Reason: "definition has no 'nodes' collection"}
	}

	g := &Graph{
		nodes: make(map[string]domain.Node, len(def.Nodes)),
		order: make([]string, 0, len(def.Nodes)),
		start: def.EntryNodeID(),
	}

	problems := &domain.GraphError{}
	for i, n := range def.Nodes {
		if n.ID == "" {
			problems.Add("node #%d has no id", i)
			continue
		}
		if _, dup := g.nodes[n.ID]; dup {
			problems.Add("duplicate node id '%s'", n.ID)
			continue
		}
		g.nodes[n.ID] = n
		g.order = append(g.order, n.ID)
	}

	if _, ok := g.nodes[g.start]; !ok {
		problems.Add("start node '%s' not found", g.start)
	}

	if !cfg.lazyReferences {
		for _, id := range g.order {
			g.checkReferences(g.nodes[id], problems)
		}
	}

	if err := problems.ErrOrNil(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graph) checkReferences(n domain.Node, problems *domain.GraphError) {
	for i, opt := range n.Options {
		if opt.ID == "" {
			problems.Add("node '%s': option #%d has no id", n.ID, i)
		}
		switch {
		case opt.NextNodeID == "":
			problems.Add("node '%s': option '%s' has no next_node_id", n.ID, opt.ID)
		case !g.has(opt.NextNodeID):
			problems.Add("node '%s': option '%s' points to missing node '%s'", n.ID, opt.ID, opt.NextNodeID)
		}
	}

	if n.NextNodeID != "" && !g.has(n.NextNodeID) {
		problems.Add("node '%s': next_node_id points to missing node '%s'", n.ID, n.NextNodeID)
	}
	if n.Type == domain.NodeTypeInput && n.NextNodeID == "" {
		problems.Add("node '%s': input node has no next_node_id", n.ID)
	}
}

func (g *Graph) has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node looks a node up by id.
func (g *Graph) Node(id string) (domain.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// StartNodeID returns the entry point.
func (g *Graph) StartNodeID() string {
	return g.start
}

// Nodes returns every node in definition order.
func (g *Graph) Nodes() []domain.Node {
	out := make([]domain.Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}
