// Package inject delivers dispatched key events to the focused application
// over a line protocol, written to a stream or a serial bridge.
package inject

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/dasdy/vkbd/dispatch"
	"github.com/dasdy/vkbd/model"
)

// LineInjector writes one line per event:
//
//	press text "a" mods=none
//	press keysym 0xff08 mods=shift+control
//	release
type LineInjector struct {
	mu sync.Mutex
	w  io.Writer
}

func NewLineInjector(w io.Writer) *LineInjector {
	return &LineInjector{w: w}
}

func (l *LineInjector) SendPress(payload dispatch.Payload, mods model.ModMask) error {
	var line string

	switch payload.Kind {
	case model.ActionKeysym:
		line = fmt.Sprintf("press keysym %s mods=%s\n", payload.Keysym, mods)
	case model.ActionGlyph:
		line = fmt.Sprintf("press text %s mods=%s\n", strconv.Quote(payload.Text), mods)
	default:
		return fmt.Errorf("could not inject %s payload", payload.Kind)
	}

	return l.write(line)
}

func (l *LineInjector) SendRelease() error {
	return l.write("release\n")
}

func (l *LineInjector) write(line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := io.WriteString(l.w, line); err != nil {
		return fmt.Errorf("could not write event: %w", err)
	}

	return nil
}
