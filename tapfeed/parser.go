// Package tapfeed reads pointer events from a line-oriented stream and feeds
// them to a dispatch engine.
package tapfeed

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type EventKind int

const (
	// EventDown is a tap at X, Y.
	EventDown EventKind = iota
	// EventUp ends the current tap.
	EventUp
	// EventSelect switches to Layout.
	EventSelect
)

func (k EventKind) String() string {
	switch k {
	case EventDown:
		return "down"
	case EventUp:
		return "up"
	case EventSelect:
		return "select"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

type Event struct {
	Kind   EventKind
	X      int
	Y      int
	Layout string
}

var ErrSyntax = errors.New("malformed event")

// ParseLine reads one event. Blank lines and lines starting with '#' carry
// no event; for those both results are nil.
func ParseLine(line string) (*Event, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil, nil //nolint:nilnil
	}

	switch strings.ToLower(fields[0]) {
	case "down":
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: down takes x and y, got %q", ErrSyntax, line)
		}

		x, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: could not parse x: %w", ErrSyntax, err)
		}

		y, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: could not parse y: %w", ErrSyntax, err)
		}

		return &Event{Kind: EventDown, X: x, Y: y}, nil
	case "up":
		if len(fields) != 1 {
			return nil, fmt.Errorf("%w: up takes no arguments, got %q", ErrSyntax, line)
		}

		return &Event{Kind: EventUp}, nil
	case "select":
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: select takes a layout id, got %q", ErrSyntax, line)
		}

		return &Event{Kind: EventSelect, Layout: fields[1]}, nil
	default:
		return nil, fmt.Errorf("%w: unknown event %q", ErrSyntax, fields[0])
	}
}
