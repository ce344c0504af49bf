// Package layout reads keyboard layouts from XML files into a
// keyboard.Keyboard, and watches those files for edits.
package layout

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dasdy/vkbd/keyboard"
	"github.com/dasdy/vkbd/logging"
	"github.com/dasdy/vkbd/model"
)

// ErrLoad wraps every reason a layout file is rejected.
var ErrLoad = errors.New("could not load layout")

var ctx = logging.PackageCtx("layout")

var stateElements = map[string]model.KeyState{
	"default": model.StateNormal,
	"normal":  model.StateNormal,
	"shifted": model.StateShifted,
	"mod1":    model.StateMod1,
	"mod2":    model.StateMod2,
	"mod3":    model.StateMod3,
}

func loadErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrLoad, fmt.Sprintf(format, args...))
}

// LoadFile is Load over the file at path, resolved against baseDir.
func LoadFile(kb *keyboard.Keyboard, path, baseDir string) error {
	file, err := OpenPath(path, baseDir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer file.Close()

	return Load(kb, file)
}

// Load adds every layout described by r to kb. Either all layouts are added
// or, on error, kb is left as it was. When kb had no selected layout the
// first loaded one is selected.
func Load(kb *keyboard.Keyboard, r io.Reader) error {
	var doc xmlKeyboard

	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return loadErr("decode xml: %v", err)
	}

	if len(doc.Layouts) == 0 {
		return loadErr("no layouts defined")
	}

	staged := make([]*keyboard.Layout, 0, len(doc.Layouts))
	seen := make(map[string]bool, len(doc.Layouts))

	for i, xl := range doc.Layouts {
		id := strings.TrimSpace(xl.ID)

		if id == "" {
			return loadErr("layout #%d has no id", i+1)
		}

		if _, exists := kb.Layout(id); exists || seen[id] {
			return fmt.Errorf("%w: layout %q: %w", ErrLoad, id, keyboard.ErrDuplicateLayout)
		}

		seen[id] = true

		layout, err := buildLayout(id, xl)
		if err != nil {
			return err
		}

		staged = append(staged, layout)
	}

	for _, layout := range staged {
		if err := kb.AddLayout(layout); err != nil {
			return fmt.Errorf("%w: %w", ErrLoad, err)
		}
	}

	if kb.SelectedLayout() == nil {
		if err := kb.SelectLayout(staged[0].ID()); err != nil {
			return fmt.Errorf("%w: %w", ErrLoad, err)
		}
	}

	slog.InfoContext(ctx, "Loaded layouts", "count", len(staged), "selected", kb.SelectedLayout().ID())

	return nil
}

func buildLayout(id string, xl xmlLayout) (*keyboard.Layout, error) {
	layout := keyboard.NewLayout(id)

	for r, xr := range xl.Rows {
		row := keyboard.NewRow()

		for k, item := range xr.Items {
			key, err := buildKey(item)
			if err != nil {
				return nil, loadErr("layout %q row %d key %d: %v", id, r+1, k+1, err)
			}

			if err := row.AppendKey(key); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrLoad, err)
			}
		}

		if err := layout.AppendRow(row); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoad, err)
		}
	}

	return layout, nil
}

func buildKey(item xmlItem) (*keyboard.Key, error) {
	key := keyboard.NewKey()

	width, err := parseWidth(item.Width)
	if err != nil {
		return nil, err
	}

	fill, err := parseFlag("fill", item.Fill)
	if err != nil {
		return nil, err
	}

	key.SetFill(fill)

	switch item.XMLName.Local {
	case elemSpace:
		key.SetBlank(true)
		key.SetReqWidth(max(width, 1))

		return key, nil
	case elemKey:
	default:
		return nil, fmt.Errorf("unexpected element <%s>", item.XMLName.Local)
	}

	obeyCaps, err := parseFlag("obey-caps", item.ObeyCaps)
	if err != nil {
		return nil, err
	}

	key.SetObeyCaps(obeyCaps)

	declared := make(map[model.KeyState]bool, len(item.States))

	for _, xs := range item.States {
		state, ok := stateElements[xs.XMLName.Local]
		if !ok {
			return nil, fmt.Errorf("unknown state <%s>", xs.XMLName.Local)
		}

		if declared[state] {
			return nil, fmt.Errorf("state <%s> given twice", xs.XMLName.Local)
		}

		declared[state] = true

		if err := applyState(key, state, xs); err != nil {
			return nil, err
		}
	}

	if len(declared) == 0 {
		return nil, errors.New("key defines no states")
	}

	spreadModifier(key, declared)

	if width == 0 {
		width = max(keyboard.GlyphWidth(key), 1)
	}

	key.SetReqWidth(width)

	return key, nil
}

func applyState(key *keyboard.Key, state model.KeyState, xs xmlState) error {
	display := xs.Display
	image := strings.HasPrefix(display, imagePrefix)

	switch {
	case image:
		key.SetImageFace(state, strings.TrimPrefix(display, imagePrefix))
	case display != "":
		key.SetGlyphFace(state, display)
	}

	if xs.Action == nil {
		if display != "" && !image {
			key.SetCharAction(state, display)
		}

		return nil
	}

	action := *xs.Action

	if name, ok := strings.CutPrefix(action, modifierPrefix); ok {
		modifier, err := model.ParseModifier(name)
		if err != nil {
			return err
		}

		key.SetModifierAction(state, modifier)

		return nil
	}

	if sym, ok := model.LookupKeysym(action); ok {
		key.SetKeysymAction(state, sym)

		return nil
	}

	if action == "" {
		return fmt.Errorf("empty action for state %s", state)
	}

	key.SetCharAction(state, action)

	return nil
}

// A modifier key declared only in its default state behaves the same in every
// state, so tapping it again leaves the state it selected.
func spreadModifier(key *keyboard.Key, declared map[model.KeyState]bool) {
	if len(declared) != 1 || !declared[model.StateNormal] {
		return
	}

	action := key.Action(model.StateNormal)
	if action.Kind != model.ActionModifier {
		return
	}

	face := key.Face(model.StateNormal)
	states := model.AllStates()

	for _, s := range states[1:] {
		switch face.Kind {
		case model.FaceGlyph:
			key.SetGlyphFace(s, face.Glyph)
		case model.FaceImage:
			key.SetImageFace(s, face.Image)
		case model.FaceNone:
		}

		key.SetModifierAction(s, action.Modifier)
	}
}

func parseWidth(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}

	width, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || width < 0 {
		return 0, fmt.Errorf("bad width %q", raw)
	}

	return width, nil
}

func parseFlag(name, raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}

	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("bad %s value %q", name, raw)
	}

	return v, nil
}
