package layout

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 100 * time.Millisecond

// Watch reports on the returned channel each time the file at path is
// written or recreated. Bursts of events are collapsed into one. The channel
// is closed once ctx is done.
func Watch(watchCtx context.Context, path string) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// editors often replace the file, so the directory is watched instead
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()

		return nil, fmt.Errorf("watch directory of %s: %w", path, err)
	}

	changes := make(chan struct{}, 1)

	go watchLoop(watchCtx, watcher, filepath.Base(path), changes)

	return changes, nil
}

func watchLoop(watchCtx context.Context, watcher *fsnotify.Watcher, name string, changes chan<- struct{}) {
	defer close(changes)
	defer watcher.Close()

	timer := time.NewTimer(debounceDelay)
	timer.Stop()

	for {
		select {
		case <-watchCtx.Done():
			timer.Stop()

			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != name {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			slog.DebugContext(ctx, "Layout file changed", "event", event)
			timer.Reset(debounceDelay)

		case <-timer.C:
			select {
			case changes <- struct{}{}:
			default:
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}

			slog.WarnContext(ctx, "Layout watcher error", "error", err)
		}
	}
}
