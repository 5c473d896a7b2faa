package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/ecoguia/pkg/domain"
)

// LoggingHooks logs every transition and search at debug level.
// Rejected transitions are logged at warn level.
func LoggingHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "step rejected",
					"from", e.FromNodeID,
					"option", e.OptionID,
					"kind", ErrorKind(e.Err),
					"err", e.Err,
				)
				return
			}
			logger.DebugContext(ctx, "node_enter", "node_id", e.ToNodeID, "type", e.ToType, "from", e.FromNodeID)
		},
		OnSearch: func(ctx context.Context, e *domain.SearchEvent) {
			logger.DebugContext(ctx, "search", "query", e.Query, "tier", e.Tier, "results", e.Results, "cached", e.Cached)
		},
	}
}

// Combine fans every event out to all hooks in order.
func Combine(hooks ...domain.Hooks) domain.Hooks {
	return domain.Hooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			for _, h := range hooks {
				h.EmitTransition(ctx, e)
			}
		},
		OnSearch: func(ctx context.Context, e *domain.SearchEvent) {
			for _, h := range hooks {
				h.EmitSearch(ctx, e)
			}
		},
	}
}
