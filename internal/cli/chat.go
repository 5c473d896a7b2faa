package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/ecoguia"
	"github.com/aretw0/ecoguia/internal/presentation/tui"
	"github.com/aretw0/ecoguia/pkg/runner"
)

// ChatOptions configures an interactive conversation.
type ChatOptions struct {
	// JSON switches to one JSON document per line on both ends.
	JSON bool
	// Quiet hides the banner and the closing message.
	Quiet bool
	// NoSearch disables the reservation lookup after input nodes.
	NoSearch bool
	In       io.Reader
	Out      io.Writer
	Logger   *slog.Logger
}

// RunChat drives one conversation in the terminal until an end node,
// EOF, "exit" or an interrupt.
func RunChat(ctx context.Context, engine runner.Engine, opts ChatOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	quiet := opts.Quiet || opts.JSON

	if !quiet {
		tui.PrintBanner(opts.Out, ecoguia.Version)
	}

	r := runner.NewRunner(
		runner.WithLogger(opts.Logger),
		runner.WithInputHandler(newHandler(opts)),
		runner.WithSearch(!opts.NoSearch),
	)

	last, err := r.Run(ctx, engine)
	if !quiet {
		switch {
		case err == nil && last.IsEnd:
			printSystemMessage(opts.Out, "Finished at '%s' node.", last.NodeID)
		case err == nil || isInterrupted(err):
			printSystemMessage(opts.Out, "Stopped at '%s' node.", last.NodeID)
		}
	}
	return handleExecutionError(err)
}

func newHandler(opts ChatOptions) runner.IOHandler {
	if opts.JSON {
		return runner.NewJSONHandler(opts.In, opts.Out)
	}

	var handlerOpts []runner.TextHandlerOption
	if f, ok := opts.Out.(*os.File); ok && tui.IsTerminal(f) {
		render, err := tui.NewRenderer(tui.Width(f))
		if err != nil {
			opts.Logger.Warn("Markdown rendering disabled", "err", err)
		} else {
			handlerOpts = append(handlerOpts, runner.WithTextHandlerRenderer(render))
		}
	}
	return runner.NewTextHandler(opts.In, opts.Out, handlerOpts...)
}
