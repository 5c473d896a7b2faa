package runner

import (
	"log/slog"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithSearch makes the runner look up reservations with every free-text
// answer before moving on, the way the web frontend does.
func WithSearch(enabled bool) Option {
	return func(r *Runner) {
		r.Search = enabled
	}
}

// WithSignals controls whether SIGINT/SIGTERM end the conversation.
// Enabled by default.
func WithSignals(enabled bool) Option {
	return func(r *Runner) {
		r.Signals = enabled
	}
}
