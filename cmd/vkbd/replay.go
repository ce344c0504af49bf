package vkbd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dasdy/vkbd/tapfeed"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var failFast bool

// replayCmd represents the replay command.
var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Play back a recorded tap session",
	Long:  `Feeds every line of FILE through the keyboard, like run, showing progress on stderr.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("could not open %s: %w", args[0], err)
		}
		defer file.Close()

		lines, err := tapfeed.ReadAll(file)
		if err != nil {
			return err
		}

		kb, err := buildKeyboard()
		if err != nil {
			return err
		}

		engine, closeEngine, err := newEngine(kb, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer closeEngine()

		var stats tapfeed.Stats

		bar := progressbar.Default(int64(len(lines)), "Replaying taps...")

		for n, line := range lines {
			event, err := tapfeed.Handle(engine, line)
			if event != nil {
				stats.Events++
			}

			if err != nil {
				stats.Errors++
				slog.WarnContext(ctx, "Could not replay line", "line", n+1, "text", line, "error", err)

				if failFast {
					return fmt.Errorf("line %d: %w", n+1, err)
				}
			}

			_ = bar.Add(1)
		}

		_ = bar.Finish()

		if err := engine.Release(); err != nil {
			return err
		}

		slog.InfoContext(ctx, "Replay finished", "events", stats.Events, "errors", stats.Errors)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first line that cannot be replayed")
}
