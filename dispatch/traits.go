package dispatch

import (
	"fmt"

	"github.com/dasdy/vkbd/keyboard"
	"github.com/dasdy/vkbd/model"
)

// Payload is what a press delivers to the focused application: either UTF-8
// text or a symbolic key code.
type Payload struct {
	Kind   model.ActionKind
	Text   string
	Keysym model.Keysym
}

func TextPayload(text string) Payload {
	return Payload{Kind: model.ActionGlyph, Text: text}
}

func KeysymPayload(sym model.Keysym) Payload {
	return Payload{Kind: model.ActionKeysym, Keysym: sym}
}

func (p Payload) String() string {
	if p.Kind == model.ActionKeysym {
		return "keysym " + p.Keysym.String()
	}

	return fmt.Sprintf("text %q", p.Text)
}

// Injector delivers synthesized key events to whatever application has focus.
type Injector interface {
	SendPress(payload Payload, mods model.ModMask) error
	// SendRelease signals key-up. It must be safe without a prior press.
	SendRelease() error
}

// Redrawer is told when keys need repainting. A nil key means every key of
// the selected layout.
type Redrawer interface {
	Redraw(key *keyboard.Key)
}

type nopRedrawer struct{}

func (nopRedrawer) Redraw(*keyboard.Key) {}
