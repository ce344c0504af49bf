package tapfeed

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
)

// ReadLines streams r line by line. The channel is closed at end of input.
func ReadLines(r io.Reader) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			out <- scanner.Text()
		}

		if err := scanner.Err(); err != nil {
			slog.WarnContext(ctx, "Stopped reading events", "error", err)
		}
	}()

	return out
}

// ReadAll buffers every line of r, for recorded sessions whose length should
// be known up front.
func ReadAll(r io.Reader) ([]string, error) {
	lines := make([]string, 0)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read events: %w", err)
	}

	return lines, nil
}
