package vkbd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/dasdy/vkbd/keyboard"
	"github.com/dasdy/vkbd/layout"
	"github.com/dasdy/vkbd/tapfeed"
	"github.com/spf13/cobra"
)

var (
	inputPath string
	watch     bool
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Turn taps into key events",
	Long: `Reads tap events ("down X Y", "up", "select LAYOUT") from stdin or --input and
writes the resulting key events to stdout or the serial bridge given by --device.
With --watch the layout file is reloaded whenever it changes.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		kb, err := buildKeyboard()
		if err != nil {
			return err
		}

		engine, closeEngine, err := newEngine(kb, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer closeEngine()

		input := cmd.InOrStdin()

		if inputPath != "" {
			file, err := os.Open(inputPath)
			if err != nil {
				return fmt.Errorf("could not open input %s: %w", inputPath, err)
			}
			defer file.Close()

			input = file
		}

		runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var reloads <-chan *keyboard.Keyboard
		if watch {
			reloads, err = watchLayout(runCtx)
			if err != nil {
				return err
			}
		}

		stats := tapfeed.Loop(runCtx, tapfeed.ReadLines(input), engine, reloads)
		slog.InfoContext(ctx, "Done", "events", stats.Events, "errors", stats.Errors)

		return nil
	},
}

// watchLayout rebuilds the keyboard each time the layout file changes. A file
// that fails to load is reported and the current keyboard stays in use.
func watchLayout(watchCtx context.Context) (<-chan *keyboard.Keyboard, error) {
	path, err := layoutPath()
	if err != nil {
		return nil, err
	}

	changes, err := layout.Watch(watchCtx, path)
	if err != nil {
		return nil, fmt.Errorf("could not watch %s: %w", path, err)
	}

	reloads := make(chan *keyboard.Keyboard)

	go func() {
		defer close(reloads)

		for range changes {
			kb, err := buildKeyboard()
			if err != nil {
				slog.WarnContext(ctx, "Keeping previous layout", "path", path, "error", err)

				continue
			}

			select {
			case reloads <- kb:
			case <-watchCtx.Done():
				return
			}
		}
	}()

	slog.InfoContext(ctx, "Watching layout file", "path", path)

	return reloads, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&inputPath, "input", "i", "", "File to read tap events from instead of stdin")
	runCmd.Flags().BoolVar(&watch, "watch", false, "Reload the layout file when it changes")
}
