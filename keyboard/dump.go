package keyboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/dasdy/vkbd/model"
)

// Dump writes a readable description of key: flags, geometry and every
// defined state.
func (k *Key) Dump(w io.Writer) error {
	flags := make([]string, 0, 3)
	if k.blank {
		flags = append(flags, "blank")
	}

	if k.fill {
		flags = append(flags, "fill")
	}

	if k.obeyCaps {
		flags = append(flags, "obey-caps")
	}

	if _, err := fmt.Fprintf(w, "key x=%d y=%d w=%d h=%d req-width=%d flags=[%s]\n",
		k.x, k.y, k.width, k.height, k.reqWidth, strings.Join(flags, ",")); err != nil {
		return fmt.Errorf("could not dump key: %w", err)
	}

	for _, s := range k.States() {
		if _, err := fmt.Fprintf(w, "  %-7s face=%s action=%s\n", s, describeFace(k.Face(s)), describeAction(k.Action(s))); err != nil {
			return fmt.Errorf("could not dump key state %s: %w", s, err)
		}
	}

	return nil
}

// Dump writes every layout, row and key of the keyboard.
func (kb *Keyboard) Dump(w io.Writer) error {
	for layout := range kb.layouts.Values() {
		marker := ""
		if layout == kb.selected {
			marker = " (selected)"
		}

		lw, lh := layout.Bounds()
		if _, err := fmt.Fprintf(w, "layout %q%s %dx%d\n", layout.id, marker, lw, lh); err != nil {
			return fmt.Errorf("could not dump layout %q: %w", layout.id, err)
		}

		for i, row := range layout.rows.All() {
			if _, err := fmt.Fprintf(w, "row %d x=%d y=%d w=%d h=%d\n", i, row.x, row.y, row.Width(), row.Height()); err != nil {
				return fmt.Errorf("could not dump row %d: %w", i, err)
			}

			for key := range row.keys.Values() {
				if err := key.Dump(w); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func describeFace(f Face) string {
	switch f.Kind {
	case model.FaceGlyph:
		return fmt.Sprintf("glyph(%q)", f.Glyph)
	case model.FaceImage:
		return fmt.Sprintf("image(%v)", f.Image)
	case model.FaceNone:
	}

	return "none"
}

func describeAction(a Action) string {
	switch a.Kind {
	case model.ActionGlyph:
		return fmt.Sprintf("glyph(%q)", a.Glyph)
	case model.ActionKeysym:
		return fmt.Sprintf("keysym(%s)", a.Keysym)
	case model.ActionModifier:
		return fmt.Sprintf("modifier(%s)", a.Modifier)
	case model.ActionNone:
	}

	return "none"
}
