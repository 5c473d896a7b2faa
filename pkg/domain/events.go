package domain

import "context"

// TransitionEvent describes a resolved step of a conversation.
type TransitionEvent struct {
	FromNodeID string
	ToNodeID   string
	ToType     string
	OptionID   string
	Err        error
}

// SearchEvent describes a reservation lookup.
type SearchEvent struct {
	Query   string
	Tier    string
	Results int
	Cached  bool
}

// Hooks lets hosts observe the engine without coupling it to a backend.
// Nil functions are skipped.
type Hooks struct {
	OnTransition func(ctx context.Context, e *TransitionEvent)
	OnSearch     func(ctx context.Context, e *SearchEvent)
}

// EmitTransition calls OnTransition if set.
func (h Hooks) EmitTransition(ctx context.Context, e *TransitionEvent) {
	if h.OnTransition != nil {
		h.OnTransition(ctx, e)
	}
}

// EmitSearch calls OnSearch if set.
func (h Hooks) EmitSearch(ctx context.Context, e *SearchEvent) {
	if h.OnSearch != nil {
		h.OnSearch(ctx, e)
	}
}
