// Package keyboard holds the in-memory model of an on-screen keyboard:
// layouts made of rows made of keys, their geometry and hit testing.
package keyboard

import (
	"fmt"
	"iter"

	"github.com/dasdy/vkbd/ordered"
)

// Options are the keyboard-wide spacing constants, in pixels.
type Options struct {
	KeyBorder  int
	KeyPad     int
	KeyMargin  int
	RowSpacing int
	ColSpacing int
}

type Keyboard struct {
	opts Options

	layouts  ordered.List[*Layout]
	byID     map[string]*Layout
	selected *Layout
}

func New(opts Options) *Keyboard {
	return &Keyboard{
		opts: opts,
		byID: make(map[string]*Layout),
	}
}

func (kb *Keyboard) Options() Options { return kb.opts }
func (kb *Keyboard) KeysBorder() int  { return kb.opts.KeyBorder }
func (kb *Keyboard) KeysPad() int     { return kb.opts.KeyPad }
func (kb *Keyboard) KeysMargin() int  { return kb.opts.KeyMargin }
func (kb *Keyboard) RowSpacing() int  { return kb.opts.RowSpacing }
func (kb *Keyboard) ColSpacing() int  { return kb.opts.ColSpacing }

// AddLayout takes ownership of layout. Ids must be unique and non-empty.
func (kb *Keyboard) AddLayout(layout *Layout) error {
	if layout == nil {
		return fmt.Errorf("could not add nil layout: %w", ErrStructural)
	}

	if layout.id == "" {
		return fmt.Errorf("could not add layout without id: %w", ErrStructural)
	}

	if layout.owned {
		return fmt.Errorf("layout %q already belongs to a keyboard: %w", layout.id, ErrStructural)
	}

	if _, ok := kb.byID[layout.id]; ok {
		return fmt.Errorf("could not add layout %q: %w", layout.id, ErrDuplicateLayout)
	}

	layout.owned = true
	kb.byID[layout.id] = layout
	kb.layouts.Append(layout)

	return nil
}

func (kb *Keyboard) Layouts() iter.Seq[*Layout] {
	return kb.layouts.Values()
}

func (kb *Keyboard) LayoutCount() int {
	return kb.layouts.Len()
}

func (kb *Keyboard) Layout(id string) (*Layout, bool) {
	l, ok := kb.byID[id]

	return l, ok
}

func (kb *Keyboard) SelectLayout(id string) error {
	l, ok := kb.byID[id]
	if !ok {
		return fmt.Errorf("could not select layout %q: %w", id, ErrUnknownLayout)
	}

	kb.selected = l

	return nil
}

// SelectedLayout returns nil until a layout was selected.
func (kb *Keyboard) SelectedLayout() *Layout {
	return kb.selected
}

// Hit classifies the result of LocateKey.
type Hit int

const (
	// HitNone means the point is outside every key of the selected layout.
	HitNone Hit = iota
	// HitBlank means a blank key occupies the point; it takes no action.
	HitBlank
	HitKey
)

func (h Hit) String() string {
	switch h {
	case HitNone:
		return "none"
	case HitBlank:
		return "blank"
	case HitKey:
		return "key"
	default:
		return fmt.Sprintf("Hit(%d)", int(h))
	}
}

// LocateKey finds the key under (x, y) in the selected layout. Rows are
// scanned top to bottom and keys left to right; the first key whose box
// [x, x+width) × [y, y+height) holds the point wins.
func (kb *Keyboard) LocateKey(x, y int) (*Key, Hit) {
	if kb.selected == nil {
		return nil, HitNone
	}

	for row := range kb.selected.rows.Values() {
		if y < row.y || y >= row.y+row.Height() {
			continue
		}

		for key := range row.keys.Values() {
			if !key.contains(x, y) {
				continue
			}

			if key.blank {
				return key, HitBlank
			}

			return key, HitKey
		}
	}

	return nil, HitNone
}
