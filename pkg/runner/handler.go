package runner

import (
	"context"

	"github.com/aretw0/ecoguia/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Output presents a node to the user.
	Output(ctx context.Context, payload domain.NodePayload) error

	// Input reads a response from the user.
	// It returns io.EOF when the stream is exhausted.
	Input(ctx context.Context) (string, error)

	// Results presents the reservations found for a free-text answer.
	Results(ctx context.Context, query string, records []domain.Record) error

	// SystemOutput presents a meta-message to the user (e.g. an invalid choice).
	// This is distinct from content rendering.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)
