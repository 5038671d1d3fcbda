package touchlog

import (
	"log/slog"

	"github.com/dasdy/flaykeys/db"
	"github.com/dasdy/flaykeys/logging"
	"github.com/dasdy/flaykeys/model"
	"github.com/dasdy/flaykeys/touchlog/parser"
)

// Resolver finds the key whose touch rect contains a point.
type Resolver interface {
	KeyForPos(x, y int) (*model.Key, bool)
}

// Stats summarizes a finished Loop.
type Stats struct {
	Lines    int
	Resolved int
	Missed   int
	Failed   int
}

// Loop consumes lines until ch is closed. Touches that land on a key are
// stored and fed to the tracker. Tracker may be nil.
func Loop(ch <-chan string, resolver Resolver, storage db.Storage, tracker db.Tracker, verbose bool) Stats {
	ctx := logging.PackageCtx("touchlog")

	var stats Stats

	for line := range ch {
		stats.Lines++

		parsed, err := parser.ParseLine(line)
		if err != nil {
			stats.Failed++

			slog.WarnContext(ctx, "Could not parse line", "line", line, "error", err)

			continue
		}

		if parsed == nil {
			continue
		}

		key, ok := resolver.KeyForPos(parsed.X, parsed.Y)
		if !ok {
			stats.Missed++

			slog.DebugContext(ctx, "Touch outside of any key", "x", parsed.X, "y", parsed.Y)

			continue
		}

		stats.Resolved++

		touch := model.KeyTouch{Position: key.Position, TouchEvent: *parsed}

		if verbose {
			slog.InfoContext(ctx, "Touch", "key", key.Label, "row", key.Position.Row, "col", key.Position.Col,
				"pressed", parsed.Pressed)
		}

		if err := storage.Store(&touch); err != nil {
			slog.ErrorContext(ctx, "Could not store touch", "error", err)
		}

		if tracker != nil {
			tracker.HandleKeyNow(key.Position, parsed.Pressed, verbose)
		}
	}

	slog.InfoContext(ctx, "Input closed", "lines", stats.Lines, "resolved", stats.Resolved, "missed", stats.Missed)

	return stats
}
