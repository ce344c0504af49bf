package keyboard

import (
	"fmt"

	"github.com/dasdy/vkbd/model"
)

// Face is what a key shows for one state. Image is an opaque handle owned by
// the renderer.
type Face struct {
	Kind  model.FaceKind
	Glyph string
	Image any
}

// Action is what a key does for one state. Only the field matching Kind is set.
type Action struct {
	Kind     model.ActionKind
	Glyph    string
	Keysym   model.Keysym
	Modifier model.Modifier
}

type stateEntry struct {
	face   Face
	action Action
}

func (e stateEntry) defined() bool {
	return e.face.Kind != model.FaceNone || e.action.Kind != model.ActionNone
}

// Key is a single tappable unit of a row. Geometry is relative to the owning
// row; a key gets its row through Row.AppendKey.
type Key struct {
	row *Row

	x, y          int
	width, height int

	blank    bool
	fill     bool
	obeyCaps bool
	reqWidth int

	states [model.NumStates]stateEntry
}

func NewKey() *Key {
	return &Key{}
}

// Row returns the owning row, or nil before the key was appended to one.
func (k *Key) Row() *Row {
	return k.row
}

// SetGeometry places the key relative to its row. The key must belong to a
// row first.
func (k *Key) SetGeometry(x, y, width, height int) error {
	if k.row == nil {
		return fmt.Errorf("could not set geometry of a key without a row: %w", ErrStructural)
	}

	if width < 0 || height < 0 {
		return fmt.Errorf("negative key size %dx%d: %w", width, height, ErrStructural)
	}

	k.x, k.y = x, y
	k.width, k.height = width, height

	return nil
}

func (k *Key) X() int      { return k.x }
func (k *Key) Y() int      { return k.y }
func (k *Key) Width() int  { return k.width }
func (k *Key) Height() int { return k.height }

// AbsX is the key's x offset plus its row's origin.
func (k *Key) AbsX() (int, error) {
	if k.row == nil {
		return 0, fmt.Errorf("could not resolve absolute x of a key without a row: %w", ErrStructural)
	}

	return k.row.x + k.x, nil
}

// AbsY is the key's y offset plus its row's origin.
func (k *Key) AbsY() (int, error) {
	if k.row == nil {
		return 0, fmt.Errorf("could not resolve absolute y of a key without a row: %w", ErrStructural)
	}

	return k.row.y + k.y, nil
}

func (k *Key) contains(x, y int) bool {
	left := k.row.x + k.x
	top := k.row.y + k.y

	return x >= left && x < left+k.width && y >= top && y < top+k.height
}

func (k *Key) SetBlank(blank bool) { k.blank = blank }
func (k *Key) IsBlank() bool       { return k.blank }

func (k *Key) SetFill(fill bool) { k.fill = fill }
func (k *Key) Fill() bool        { return k.fill }

func (k *Key) SetObeyCaps(obey bool) { k.obeyCaps = obey }
func (k *Key) ObeyCaps() bool        { return k.obeyCaps }

// SetReqWidth sets the minimum width hint, in glyph cells.
func (k *Key) SetReqWidth(cells int) { k.reqWidth = max(cells, 0) }
func (k *Key) ReqWidth() int         { return k.reqWidth }

// HasState reports whether a face or an action was set for state. Invalid
// states are never present.
func (k *Key) HasState(state model.KeyState) bool {
	if !state.Valid() {
		return false
	}

	return k.states[state].defined()
}

// States yields the states the key defines, in table order.
func (k *Key) States() []model.KeyState {
	result := make([]model.KeyState, 0, model.NumStates)

	for _, s := range model.AllStates() {
		if k.HasState(s) {
			result = append(result, s)
		}
	}

	return result
}

// SetGlyphFace replaces the face for state with a text glyph.
func (k *Key) SetGlyphFace(state model.KeyState, glyph string) {
	if !state.Valid() {
		return
	}

	k.states[state].face = Face{Kind: model.FaceGlyph, Glyph: glyph}
}

// SetImageFace replaces the face for state with an image handle.
func (k *Key) SetImageFace(state model.KeyState, image any) {
	if !state.Valid() {
		return
	}

	k.states[state].face = Face{Kind: model.FaceImage, Image: image}
}

func (k *Key) Face(state model.KeyState) Face {
	if !state.Valid() {
		return Face{}
	}

	return k.states[state].face
}

func (k *Key) FaceType(state model.KeyState) model.FaceKind {
	return k.Face(state).Kind
}

// GlyphFace returns the glyph shown for state, or "" for image or absent faces.
func (k *Key) GlyphFace(state model.KeyState) string {
	f := k.Face(state)
	if f.Kind != model.FaceGlyph {
		return ""
	}

	return f.Glyph
}

// SetCharAction makes the key emit glyphs (UTF-8) in state.
func (k *Key) SetCharAction(state model.KeyState, glyphs string) {
	k.setAction(state, Action{Kind: model.ActionGlyph, Glyph: glyphs})
}

// SetKeysymAction makes the key emit a symbolic key code in state.
func (k *Key) SetKeysymAction(state model.KeyState, sym model.Keysym) {
	k.setAction(state, Action{Kind: model.ActionKeysym, Keysym: sym})
}

// SetModifierAction makes the key toggle a modifier in state.
func (k *Key) SetModifierAction(state model.KeyState, modifier model.Modifier) {
	k.setAction(state, Action{Kind: model.ActionModifier, Modifier: modifier})
}

func (k *Key) setAction(state model.KeyState, action Action) {
	if !state.Valid() {
		return
	}

	k.states[state].action = action
}

func (k *Key) Action(state model.KeyState) Action {
	if !state.Valid() {
		return Action{}
	}

	return k.states[state].action
}

// KeysymAction returns the keysym emitted in state, or 0 when the action is
// not symbolic.
func (k *Key) KeysymAction(state model.KeyState) model.Keysym {
	a := k.Action(state)
	if a.Kind != model.ActionKeysym {
		return 0
	}

	return a.Keysym
}
