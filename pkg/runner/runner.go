package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/ecoguia/pkg/domain"
)

// Engine is the part of the EcoGuía facade the runner needs.
type Engine interface {
	StartConversation(ctx context.Context) (domain.NodePayload, error)
	Step(ctx context.Context, nodeID, optionID, userInput string) (domain.NodePayload, error)
	SearchReservations(ctx context.Context, query string) []domain.Record
}

// Runner handles the conversation loop using the provided IOHandler.
type Runner struct {
	// Handler is the strategy for IO. If nil, a TextHandler on Stdin/Stdout is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Search looks up reservations with every free-text answer.
	Search bool

	// Signals ends the conversation on SIGINT/SIGTERM.
	Signals bool
}

// NewRunner creates a new Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Signals: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run plays a conversation from the start node until an end node is shown,
// the user types "exit" or "quit", input is exhausted or the process is
// interrupted. It returns the last payload shown.
//
// Invalid choices are reported through the handler and asked again; only
// configuration errors stop the loop.
func (r *Runner) Run(ctx context.Context, engine Engine) (domain.NodePayload, error) {
	handler := r.resolveHandler()
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	loopCtx := ctx
	var signals *SignalManager
	if r.Signals {
		signals = NewSignalManager(ctx)
		defer signals.Stop()
		loopCtx = signals.Context()
	}

	payload, err := engine.StartConversation(loopCtx)
	if err != nil {
		return payload, fmt.Errorf("start error: %w", err)
	}

	show := true
	for {
		if show {
			if err := handler.Output(loopCtx, payload); err != nil {
				return payload, fmt.Errorf("output error: %w", err)
			}
		}
		show = true

		if payload.IsEnd {
			logger.Debug("conversation finished", "node_id", payload.NodeID)
			return payload, nil
		}

		text, err := handler.Input(loopCtx)
		if err != nil {
			if signals != nil {
				signals.CheckRace()
			}
			if loopCtx.Err() != nil {
				logger.Debug("conversation interrupted", "node_id", payload.NodeID, "err", loopCtx.Err())
				if ctx.Err() != nil {
					return payload, ctx.Err()
				}
				return payload, nil
			}
			if errors.Is(err, io.EOF) {
				return payload, nil
			}
			return payload, fmt.Errorf("input error: %w", err)
		}

		if text == "exit" || text == "quit" {
			return payload, nil
		}

		var optionID, userInput string
		if payload.ExpectsInput {
			userInput = text
			if r.Search && strings.TrimSpace(text) != "" {
				records := engine.SearchReservations(loopCtx, text)
				if err := handler.Results(loopCtx, text, records); err != nil {
					return payload, fmt.Errorf("output error: %w", err)
				}
			}
		} else {
			optionID = ChooseOption(payload, text)
		}

		next, err := engine.Step(loopCtx, payload.NodeID, optionID, userInput)
		if err != nil {
			if errors.Is(err, domain.ErrInput) || errors.Is(err, domain.ErrNotFound) {
				logger.Debug("choice rejected", "node_id", payload.NodeID, "option_id", optionID, "err", err)
				if err := handler.SystemOutput(loopCtx, err.Error()); err != nil {
					return payload, fmt.Errorf("output error: %w", err)
				}
				show = false
				continue
			}
			return payload, fmt.Errorf("step error: %w", err)
		}
		payload = next
	}
}

// ChooseOption maps what the user typed to an option id. An option id wins,
// then a case-insensitive label; anything else is passed through unchanged.
func ChooseOption(payload domain.NodePayload, text string) string {
	text = strings.TrimSpace(text)
	for _, opt := range payload.Options {
		if opt.ID == text {
			return opt.ID
		}
	}
	for _, opt := range payload.Options {
		if text != "" && strings.EqualFold(opt.Label, text) {
			return opt.ID
		}
	}
	return text
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r.Handler
}
