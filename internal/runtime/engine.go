// Package runtime implements the dialogue state machine.
//
// The machine keeps no session: every call receives the current node id and
// returns the next node, which the caller sends back on its next request.
package runtime

import (
	"context"
	"io"
	"log/slog"

	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/aretw0/ecoguia/pkg/ports"
)

// Engine resolves transitions over a read-only graph.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	graph  ports.Graph
	hooks  domain.Hooks
	logger *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine over graph.
func NewEngine(graph ports.Graph, opts ...EngineOption) *Engine {
	e := &Engine{
		graph:  graph,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graph returns the graph the engine runs on.
func (e *Engine) Graph() ports.Graph {
	return e.graph
}

// Start returns the entry node.
func (e *Engine) Start(ctx context.Context) (domain.Node, error) {
	start := e.graph.StartNodeID()
	node, ok := e.graph.Node(start)
	if !ok {
		return domain.Node{}, &domain.ConfigurationError{Reason: "start node '" + start + "' not found"}
	}
	e.hooks.EmitTransition(ctx, &domain.TransitionEvent{ToNodeID: node.ID, ToType: node.Type})
	return node, nil
}

// Resolve computes the node that follows currentNodeID.
// optionID and userInput are optional; the empty string means absent.
// userInput is accepted for input nodes but never influences routing.
func (e *Engine) Resolve(ctx context.Context, currentNodeID, optionID, userInput string) (domain.Node, error) {
	next, err := e.resolve(currentNodeID, optionID)

	evt := &domain.TransitionEvent{FromNodeID: currentNodeID, OptionID: optionID, Err: err}
	if err == nil {
		evt.ToNodeID = next.ID
		evt.ToType = next.Type
		e.logger.Debug("transition", "from", currentNodeID, "to", next.ID, "option", optionID, "input_len", len(userInput))
	} else {
		e.logger.Debug("transition rejected", "from", currentNodeID, "option", optionID, "err", err)
	}
	e.hooks.EmitTransition(ctx, evt)

	return next, err
}

func (e *Engine) resolve(currentNodeID, optionID string) (domain.Node, error) {
	current, ok := e.graph.Node(currentNodeID)
	if !ok {
		return domain.Node{}, &domain.NotFoundError{What: "node", Ref: currentNodeID}
	}

	switch current.Type {
	case domain.NodeTypeMenu, domain.NodeTypeResponse:
		return e.resolveOption(current, optionID)

	case domain.NodeTypeInput:
		if current.NextNodeID == "" {
			return domain.Node{}, &domain.ConfigurationError{NodeID: current.ID, Reason: "input node has no next_node_id"}
		}
		next, ok := e.graph.Node(current.NextNodeID)
		if !ok {
			return domain.Node{}, &domain.ConfigurationError{
				NodeID: current.ID,
				Reason: "next_node_id '" + current.NextNodeID + "' does not exist",
			}
		}
		return next, nil

	case domain.NodeTypeEnd:
		return current, nil

	default:
		// Unknown types stay put rather than break a running conversation.
		if next, ok := e.graph.Node(current.NextNodeID); ok && current.NextNodeID != "" {
			return next, nil
		}
		return current, nil
	}
}

func (e *Engine) resolveOption(current domain.Node, optionID string) (domain.Node, error) {
	if optionID == "" {
		return domain.Node{}, &domain.InputError{
			NodeID: current.ID,
			Field:  "option_id",
			Reason: "required for " + current.Type + " nodes",
		}
	}

	opt, ok := current.Option(optionID)
	if !ok || opt.NextNodeID == "" {
		return domain.Node{}, &domain.NotFoundError{NodeID: current.ID, What: "option", Ref: optionID}
	}

	next, ok := e.graph.Node(opt.NextNodeID)
	if !ok {
		return domain.Node{}, &domain.NotFoundError{NodeID: current.ID, What: "node", Ref: opt.NextNodeID}
	}
	return next, nil
}
