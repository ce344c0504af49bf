package tapfeed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dasdy/vkbd/dispatch"
	"github.com/dasdy/vkbd/keyboard"
	"github.com/dasdy/vkbd/logging"
)

var ctx = logging.PackageCtx("tapfeed")

// Stats counts what a loop went through.
type Stats struct {
	Events int
	Errors int
}

// Handle parses line and applies it to engine.
func Handle(engine *dispatch.Engine, line string) (*Event, error) {
	event, err := ParseLine(line)
	if err != nil || event == nil {
		return nil, err
	}

	switch event.Kind {
	case EventDown:
		hit, tapErr := engine.Tap(event.X, event.Y)
		if tapErr != nil {
			return event, fmt.Errorf("tap at %d,%d: %w", event.X, event.Y, tapErr)
		}

		slog.DebugContext(ctx, "Tap", "x", event.X, "y", event.Y, "hit", hit)
	case EventUp:
		return event, engine.Release()
	case EventSelect:
		return event, engine.SelectLayout(event.Layout)
	}

	return event, nil
}

// Loop applies every line from lines to engine until lines is closed or ctx
// is done. A keyboard received on reloads replaces the engine's keyboard
// between events. Bad lines and injection failures are logged and skipped.
// A pending key-up is sent before returning.
func Loop(loopCtx context.Context, lines <-chan string, engine *dispatch.Engine, reloads <-chan *keyboard.Keyboard) Stats {
	var stats Stats

	defer func() {
		if err := engine.Release(); err != nil {
			slog.ErrorContext(ctx, "Could not release on exit", "error", err)
		}
	}()

	for {
		select {
		case <-loopCtx.Done():
			slog.InfoContext(ctx, "Event loop cancelled", "events", stats.Events)

			return stats

		case kb, ok := <-reloads:
			if !ok {
				reloads = nil

				continue
			}

			if err := engine.SetKeyboard(kb); err != nil {
				slog.WarnContext(ctx, "Release before reload failed", "error", err)
			}

			slog.InfoContext(ctx, "Keyboard reloaded", "layouts", kb.LayoutCount())

		case line, ok := <-lines:
			if !ok {
				slog.InfoContext(ctx, "Event stream ended", "events", stats.Events, "errors", stats.Errors)

				return stats
			}

			event, err := Handle(engine, line)
			if event != nil {
				stats.Events++
			}

			if err != nil {
				stats.Errors++
				slog.WarnContext(ctx, "Could not handle event", "line", line, "error", err)
			}
		}
	}
}
