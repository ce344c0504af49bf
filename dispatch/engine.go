// Package dispatch turns tapped keys into injected key events, tracking the
// modifier state the keyboard is in.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dasdy/vkbd/keyboard"
	"github.com/dasdy/vkbd/logging"
	"github.com/dasdy/vkbd/model"
)

// ErrReentrant is returned when a collaborator calls back into the engine
// while a press or release is being dispatched.
var ErrReentrant = errors.New("reentrant dispatch")

type Engine struct {
	kb       *keyboard.Keyboard
	injector Injector
	redrawer Redrawer
	policy   Policy

	state model.KeyState
	caps  bool
	held  model.ModMask
	down  bool
	busy  bool

	ctx context.Context
}

type Option func(*Engine)

func WithPolicy(policy Policy) Option {
	return func(e *Engine) { e.policy = policy }
}

func WithRedrawer(redrawer Redrawer) Option {
	return func(e *Engine) {
		if redrawer != nil {
			e.redrawer = redrawer
		}
	}
}

// New creates an engine in the normal state.
func New(kb *keyboard.Keyboard, injector Injector, opts ...Option) *Engine {
	e := &Engine{
		kb:       kb,
		injector: injector,
		redrawer: nopRedrawer{},
		policy:   PolicyMomentary,
		state:    model.StateNormal,
		ctx:      logging.PackageCtx("dispatch"),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Engine) Keyboard() *keyboard.Keyboard { return e.kb }
func (e *Engine) State() model.KeyState        { return e.state }
func (e *Engine) Caps() bool                   { return e.caps }
func (e *Engine) Held() model.ModMask          { return e.held }
func (e *Engine) Policy() Policy               { return e.policy }

// SetState forces the effective state, e.g. when the host restores a session.
func (e *Engine) SetState(state model.KeyState) {
	if !state.Valid() || state == e.state {
		return
	}

	e.state = state
	e.redrawer.Redraw(nil)
}

// SetKeyboard swaps in a freshly loaded keyboard. A pending key-up is sent
// first and modifier state starts over.
func (e *Engine) SetKeyboard(kb *keyboard.Keyboard) error {
	err := e.Release()

	e.kb = kb
	e.state = model.StateNormal
	e.caps = false
	e.held = 0
	e.redrawer.Redraw(nil)

	return err
}

// SelectLayout switches the visible layout of the current keyboard.
func (e *Engine) SelectLayout(id string) error {
	if err := e.kb.SelectLayout(id); err != nil {
		return fmt.Errorf("could not switch layout: %w", err)
	}

	slog.InfoContext(e.ctx, "layout selected", "layout", id)
	e.redrawer.Redraw(nil)

	return nil
}

// Resolve picks the action key performs in state. Keys obeying caps swap
// between their normal and shifted variants while caps is on. The last result
// is false when the key is blank or defines no action for the state.
func Resolve(key *keyboard.Key, state model.KeyState, caps bool) (keyboard.Action, model.KeyState, bool) {
	if key == nil || key.IsBlank() {
		return keyboard.Action{}, state, false
	}

	effective := state
	if caps && key.ObeyCaps() {
		switch state {
		case model.StateNormal:
			effective = model.StateShifted
		case model.StateShifted:
			effective = model.StateNormal
		case model.StateMod1, model.StateMod2, model.StateMod3:
		}

		if !key.HasState(effective) {
			effective = state
		}
	}

	if !key.HasState(effective) {
		return keyboard.Action{}, effective, false
	}

	action := key.Action(effective)
	if action.Kind == model.ActionNone {
		return keyboard.Action{}, effective, false
	}

	return action, effective, true
}

// Tap locates the key under (x, y) in the selected layout and presses it.
// Misses and blank keys do nothing.
func (e *Engine) Tap(x, y int) (keyboard.Hit, error) {
	key, hit := e.kb.LocateKey(x, y)
	if hit != keyboard.HitKey {
		slog.DebugContext(e.ctx, "tap hit no key", "x", x, "y", y, "hit", hit)

		return hit, nil
	}

	return hit, e.Press(key)
}

// Press performs the action key resolves to in the current state. When the
// injector fails the state transition still happens and the error is
// returned afterwards.
func (e *Engine) Press(key *keyboard.Key) error {
	if e.busy {
		return ErrReentrant
	}

	e.busy = true
	defer func() { e.busy = false }()

	action, resolved, ok := Resolve(key, e.state, e.caps)
	if !ok {
		slog.DebugContext(e.ctx, "key has nothing to do", "state", e.state, "resolved", resolved)

		return nil
	}

	if action.Kind == model.ActionModifier {
		e.applyModifier(action.Modifier)
		e.redrawer.Redraw(nil)

		return nil
	}

	payload, mods := e.payload(action)
	err := e.injector.SendPress(payload, mods)

	// a failed press may still have reached the host, keep key-up pending
	e.down = true

	before := e.state
	e.afterEmission()

	if e.state != before {
		e.redrawer.Redraw(nil)
	} else {
		e.redrawer.Redraw(key)
	}

	if err != nil {
		slog.ErrorContext(e.ctx, "could not inject press", "payload", payload, "error", err)

		return fmt.Errorf("could not inject press of %s: %w", payload, err)
	}

	slog.DebugContext(e.ctx, "pressed", "payload", payload, "mods", mods, "state", resolved)

	return nil
}

// Release signals key-up when a press is pending. Calling it again, or with
// nothing pressed, does nothing.
func (e *Engine) Release() error {
	if e.busy {
		return ErrReentrant
	}

	if !e.down {
		return nil
	}

	e.busy = true
	defer func() { e.busy = false }()

	e.down = false

	if err := e.injector.SendRelease(); err != nil {
		slog.ErrorContext(e.ctx, "could not inject release", "error", err)

		return fmt.Errorf("could not inject release: %w", err)
	}

	return nil
}

func (e *Engine) payload(action keyboard.Action) (Payload, model.ModMask) {
	mods := e.held

	if action.Kind == model.ActionKeysym {
		if e.state == model.StateShifted {
			mods |= model.ModShift
		}

		return KeysymPayload(action.Keysym), mods
	}

	return TextPayload(action.Glyph), mods
}

func (e *Engine) applyModifier(modifier model.Modifier) {
	switch modifier {
	case model.ModifierCaps:
		e.caps = !e.caps
	case model.ModifierControl:
		e.toggleHeld(model.ModControl)
	case model.ModifierAlt:
		e.toggleHeld(model.ModAlt)
	case model.ModifierNone:
	case model.ModifierShift, model.ModifierMod1, model.ModifierMod2, model.ModifierMod3:
		target, _ := modifier.TargetState()

		switch {
		case e.policy == PolicyOneShot:
			e.state = target
		case e.state == target:
			e.state = model.StateNormal
		default:
			e.state = target
		}
	}

	slog.DebugContext(e.ctx, "modifier applied",
		"modifier", modifier,
		"state", e.state,
		"caps", e.caps,
		"held", e.held)
}

func (e *Engine) toggleHeld(bit model.ModMask) {
	if e.policy == PolicyOneShot {
		e.held |= bit

		return
	}

	e.held ^= bit
}

func (e *Engine) afterEmission() {
	if e.policy == PolicyLocked {
		return
	}

	e.state = model.StateNormal
	e.held = 0
}
