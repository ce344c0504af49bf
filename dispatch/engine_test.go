package dispatch_test

import (
	"errors"
	"testing"

	"github.com/dasdy/vkbd/dispatch"
	"github.com/dasdy/vkbd/keyboard"
	"github.com/dasdy/vkbd/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func letterKey(lower, upper string) *keyboard.Key {
	key := keyboard.NewKey()
	key.SetObeyCaps(true)
	key.SetGlyphFace(model.StateNormal, lower)
	key.SetCharAction(model.StateNormal, lower)
	key.SetGlyphFace(model.StateShifted, upper)
	key.SetCharAction(model.StateShifted, upper)

	return key
}

func modifierKey(modifier model.Modifier) *keyboard.Key {
	key := keyboard.NewKey()

	for _, s := range model.AllStates() {
		key.SetGlyphFace(s, modifier.String())
		key.SetModifierAction(s, modifier)
	}

	return key
}

func keysymKey(sym model.Keysym) *keyboard.Key {
	key := keyboard.NewKey()
	key.SetKeysymAction(model.StateNormal, sym)
	key.SetKeysymAction(model.StateShifted, sym)

	return key
}

func newEngine(opts ...dispatch.Option) (*dispatch.Engine, *InjectorMock) {
	injector := &InjectorMock{}

	return dispatch.New(keyboard.New(keyboard.Options{}), injector, opts...), injector
}

func TestResolve(t *testing.T) {
	t.Run("absent state is a no-op", func(t *testing.T) {
		key := keyboard.NewKey()
		key.SetCharAction(model.StateShifted, "!")

		_, _, ok := dispatch.Resolve(key, model.StateNormal, false)
		assert.False(t, ok)

		action, state, ok := dispatch.Resolve(key, model.StateShifted, false)
		require.True(t, ok)
		assert.Equal(t, model.StateShifted, state)
		assert.Equal(t, "!", action.Glyph)
	})

	t.Run("face without action is a no-op", func(t *testing.T) {
		key := keyboard.NewKey()
		key.SetGlyphFace(model.StateNormal, "a")

		_, _, ok := dispatch.Resolve(key, model.StateNormal, false)
		assert.False(t, ok)
	})

	t.Run("blank and nil keys", func(t *testing.T) {
		key := letterKey("a", "A")
		key.SetBlank(true)

		_, _, ok := dispatch.Resolve(key, model.StateNormal, false)
		assert.False(t, ok)

		_, _, ok = dispatch.Resolve(nil, model.StateNormal, false)
		assert.False(t, ok)
	})

	testCases := []struct {
		name     string
		state    model.KeyState
		caps     bool
		expected string
	}{
		{"normal", model.StateNormal, false, "a"},
		{"shifted", model.StateShifted, false, "A"},
		{"caps", model.StateNormal, true, "A"},
		{"caps and shift", model.StateShifted, true, "a"},
	}

	for _, item := range testCases {
		t.Run("obey caps "+item.name, func(t *testing.T) {
			action, _, ok := dispatch.Resolve(letterKey("a", "A"), item.state, item.caps)

			require.True(t, ok)
			assert.Equal(t, item.expected, action.Glyph)
		})
	}

	t.Run("caps ignored by keys not obeying it", func(t *testing.T) {
		key := letterKey("1", "!")
		key.SetObeyCaps(false)

		action, _, ok := dispatch.Resolve(key, model.StateNormal, true)
		require.True(t, ok)
		assert.Equal(t, "1", action.Glyph)
	})

	t.Run("caps without a shifted variant keeps the state", func(t *testing.T) {
		key := keyboard.NewKey()
		key.SetObeyCaps(true)
		key.SetCharAction(model.StateNormal, "ß")

		action, state, ok := dispatch.Resolve(key, model.StateNormal, true)
		require.True(t, ok)
		assert.Equal(t, model.StateNormal, state)
		assert.Equal(t, "ß", action.Glyph)
	})
}

func TestPress(t *testing.T) {
	t.Run("emits glyph in normal state", func(t *testing.T) {
		engine, injector := newEngine()

		require.NoError(t, engine.Press(letterKey("a", "A")))

		require.Len(t, injector.Presses, 1)
		assert.Equal(t, dispatch.TextPayload("a"), injector.Presses[0].Payload)
		assert.Equal(t, model.ModMask(0), injector.Presses[0].Mods)
	})

	t.Run("key defined only when shifted", func(t *testing.T) {
		engine, injector := newEngine()
		key := keyboard.NewKey()
		key.SetCharAction(model.StateShifted, "!")

		require.NoError(t, engine.Press(key))
		assert.Empty(t, injector.Presses)
		assert.Equal(t, model.StateNormal, engine.State())

		engine.SetState(model.StateShifted)
		require.NoError(t, engine.Press(key))

		require.Len(t, injector.Presses, 1)
		assert.Equal(t, dispatch.TextPayload("!"), injector.Presses[0].Payload)
	})

	t.Run("keysym while shifted carries shift", func(t *testing.T) {
		engine, injector := newEngine()

		require.NoError(t, engine.Press(modifierKey(model.ModifierShift)))
		require.NoError(t, engine.Press(keysymKey(model.KeysymLeft)))

		require.Len(t, injector.Presses, 1)
		assert.Equal(t, dispatch.KeysymPayload(model.KeysymLeft), injector.Presses[0].Payload)
		assert.Equal(t, model.ModShift, injector.Presses[0].Mods)
	})

	t.Run("reentrant press is refused", func(t *testing.T) {
		engine, injector := newEngine()

		var inner error
		injector.OnPress = func() { inner = engine.Press(letterKey("b", "B")) }

		require.NoError(t, engine.Press(letterKey("a", "A")))
		require.ErrorIs(t, inner, dispatch.ErrReentrant)
		assert.Len(t, injector.Presses, 1)
	})
}

func TestModifierPolicies(t *testing.T) {
	t.Run("momentary: shift then glyph returns to normal", func(t *testing.T) {
		engine, injector := newEngine()

		require.NoError(t, engine.Press(modifierKey(model.ModifierShift)))
		assert.Equal(t, model.StateShifted, engine.State())
		assert.Empty(t, injector.Presses)

		require.NoError(t, engine.Press(letterKey("a", "A")))
		assert.Equal(t, model.StateNormal, engine.State())
		assert.Equal(t, dispatch.TextPayload("A"), injector.Presses[0].Payload)
	})

	t.Run("momentary: shift twice returns to normal without emitting", func(t *testing.T) {
		engine, injector := newEngine()
		shift := modifierKey(model.ModifierShift)

		require.NoError(t, engine.Press(shift))
		require.NoError(t, engine.Press(shift))

		assert.Equal(t, model.StateNormal, engine.State())
		assert.Empty(t, injector.Presses)
	})

	t.Run("momentary: another modifier switches target", func(t *testing.T) {
		engine, _ := newEngine()

		require.NoError(t, engine.Press(modifierKey(model.ModifierShift)))
		require.NoError(t, engine.Press(modifierKey(model.ModifierMod2)))

		assert.Equal(t, model.StateMod2, engine.State())
	})

	t.Run("locked: emission keeps the state", func(t *testing.T) {
		engine, injector := newEngine(dispatch.WithPolicy(dispatch.PolicyLocked))
		shift := modifierKey(model.ModifierShift)

		require.NoError(t, engine.Press(shift))
		require.NoError(t, engine.Press(letterKey("a", "A")))
		require.NoError(t, engine.Press(letterKey("b", "B")))

		assert.Equal(t, model.StateShifted, engine.State())
		assert.Equal(t, dispatch.TextPayload("B"), injector.Presses[1].Payload)

		require.NoError(t, engine.Press(shift))
		assert.Equal(t, model.StateNormal, engine.State())
	})

	t.Run("oneshot: second modifier press keeps the state", func(t *testing.T) {
		engine, _ := newEngine(dispatch.WithPolicy(dispatch.PolicyOneShot))
		shift := modifierKey(model.ModifierShift)

		require.NoError(t, engine.Press(shift))
		require.NoError(t, engine.Press(shift))
		assert.Equal(t, model.StateShifted, engine.State())

		require.NoError(t, engine.Press(letterKey("a", "A")))
		assert.Equal(t, model.StateNormal, engine.State())
	})

	t.Run("caps toggles independently of the state", func(t *testing.T) {
		engine, injector := newEngine()
		caps := modifierKey(model.ModifierCaps)

		require.NoError(t, engine.Press(caps))
		require.NoError(t, engine.Press(letterKey("a", "A")))
		require.NoError(t, engine.Press(letterKey("b", "B")))

		assert.True(t, engine.Caps())
		assert.Equal(t, dispatch.TextPayload("A"), injector.Presses[0].Payload)
		assert.Equal(t, dispatch.TextPayload("B"), injector.Presses[1].Payload)

		require.NoError(t, engine.Press(caps))
		assert.False(t, engine.Caps())
	})

	t.Run("control accompanies the next emission only", func(t *testing.T) {
		engine, injector := newEngine()

		require.NoError(t, engine.Press(modifierKey(model.ModifierControl)))
		require.NoError(t, engine.Press(modifierKey(model.ModifierAlt)))
		assert.Equal(t, model.ModControl|model.ModAlt, engine.Held())

		require.NoError(t, engine.Press(letterKey("c", "C")))
		require.NoError(t, engine.Press(letterKey("c", "C")))

		assert.Equal(t, model.ModControl|model.ModAlt, injector.Presses[0].Mods)
		assert.Equal(t, model.ModMask(0), injector.Presses[1].Mods)
	})

	t.Run("control pressed twice is dropped", func(t *testing.T) {
		engine, _ := newEngine()
		ctrl := modifierKey(model.ModifierControl)

		require.NoError(t, engine.Press(ctrl))
		require.NoError(t, engine.Press(ctrl))

		assert.Equal(t, model.ModMask(0), engine.Held())
	})
}

func TestRelease(t *testing.T) {
	t.Run("without a press does nothing", func(t *testing.T) {
		engine, injector := newEngine()

		require.NoError(t, engine.Release())
		assert.Equal(t, 0, injector.Releases)
	})

	t.Run("twice sends one key up", func(t *testing.T) {
		engine, injector := newEngine()

		require.NoError(t, engine.Press(letterKey("a", "A")))
		require.NoError(t, engine.Release())
		require.NoError(t, engine.Release())

		assert.Equal(t, 1, injector.Releases)
	})

	t.Run("modifier press leaves nothing to release", func(t *testing.T) {
		engine, injector := newEngine()

		require.NoError(t, engine.Press(modifierKey(model.ModifierShift)))
		require.NoError(t, engine.Release())

		assert.Equal(t, 0, injector.Releases)
	})

	t.Run("release failure is reported once", func(t *testing.T) {
		engine, injector := newEngine()
		injector.ReleaseError = errors.New("host gone")

		require.NoError(t, engine.Press(letterKey("a", "A")))
		require.Error(t, engine.Release())
		require.NoError(t, engine.Release())
	})
}

func TestInjectionFailure(t *testing.T) {
	engine, injector := newEngine()
	injector.PressError = errors.New("host refused")

	require.NoError(t, engine.Press(modifierKey(model.ModifierShift)))

	err := engine.Press(letterKey("a", "A"))
	require.ErrorIs(t, err, injector.PressError)

	assert.Equal(t, model.StateNormal, engine.State(), "state must not stay shifted")

	require.NoError(t, engine.Release())
	assert.Equal(t, 1, injector.Releases)
}

func TestTap(t *testing.T) {
	build := func(t *testing.T) (*dispatch.Engine, *InjectorMock, *RedrawerMock) {
		t.Helper()

		kb := keyboard.New(keyboard.Options{})
		layout := keyboard.NewLayout("us")
		row := keyboard.NewRow()
		require.NoError(t, layout.AppendRow(row))

		space := keyboard.NewKey()
		space.SetBlank(true)

		for _, key := range []*keyboard.Key{modifierKey(model.ModifierShift), letterKey("q", "Q"), space} {
			require.NoError(t, row.AppendKey(key))
		}

		require.NoError(t, kb.AddLayout(layout))
		require.NoError(t, kb.SelectLayout("us"))
		require.NoError(t, kb.Arrange(90, keyboard.CellMeasurer{CellWidth: 10, CellHeight: 10}))

		injector := &InjectorMock{}
		redrawer := &RedrawerMock{}

		return dispatch.New(kb, injector, dispatch.WithRedrawer(redrawer)), injector, redrawer
	}

	t.Run("taps through to the injector", func(t *testing.T) {
		engine, injector, redrawer := build(t)

		// shift is 5 cells wide, "q" and the blank one cell each; row starts at 10
		hit, err := engine.Tap(20, 5)
		require.NoError(t, err)
		assert.Equal(t, keyboard.HitKey, hit)
		assert.Equal(t, 1, redrawer.Full)

		hit, err = engine.Tap(65, 5)
		require.NoError(t, err)
		assert.Equal(t, keyboard.HitKey, hit)

		require.Len(t, injector.Presses, 1)
		assert.Equal(t, dispatch.TextPayload("Q"), injector.Presses[0].Payload)
		assert.Equal(t, 2, redrawer.Full)
	})

	t.Run("blank and miss do nothing", func(t *testing.T) {
		engine, injector, _ := build(t)

		hit, err := engine.Tap(75, 5)
		require.NoError(t, err)
		assert.Equal(t, keyboard.HitBlank, hit)

		hit, err = engine.Tap(5, 50)
		require.NoError(t, err)
		assert.Equal(t, keyboard.HitNone, hit)

		assert.Empty(t, injector.Presses)
	})

	t.Run("plain press redraws only the key", func(t *testing.T) {
		engine, _, redrawer := build(t)

		_, err := engine.Tap(65, 5)
		require.NoError(t, err)

		assert.Equal(t, 0, redrawer.Full)
		assert.Len(t, redrawer.Keys, 1)
	})
}

func TestSwitching(t *testing.T) {
	t.Run("select layout", func(t *testing.T) {
		kb := keyboard.New(keyboard.Options{})
		require.NoError(t, kb.AddLayout(keyboard.NewLayout("us")))
		require.NoError(t, kb.AddLayout(keyboard.NewLayout("symbols")))

		engine := dispatch.New(kb, &InjectorMock{})

		require.NoError(t, engine.SelectLayout("symbols"))
		assert.Equal(t, "symbols", kb.SelectedLayout().ID())

		require.ErrorIs(t, engine.SelectLayout("nope"), keyboard.ErrUnknownLayout)
	})

	t.Run("new keyboard resets modifiers and releases", func(t *testing.T) {
		engine, injector := newEngine(dispatch.WithPolicy(dispatch.PolicyLocked))

		require.NoError(t, engine.Press(modifierKey(model.ModifierShift)))
		require.NoError(t, engine.Press(modifierKey(model.ModifierCaps)))
		require.NoError(t, engine.Press(letterKey("a", "A")))

		next := keyboard.New(keyboard.Options{})
		require.NoError(t, engine.SetKeyboard(next))

		assert.Same(t, next, engine.Keyboard())
		assert.Equal(t, model.StateNormal, engine.State())
		assert.False(t, engine.Caps())
		assert.Equal(t, 1, injector.Releases)
	})
}

func TestParsePolicy(t *testing.T) {
	testCases := []struct {
		name     string
		expected dispatch.Policy
	}{
		{"", dispatch.PolicyMomentary},
		{"momentary", dispatch.PolicyMomentary},
		{"Locked", dispatch.PolicyLocked},
		{"sticky", dispatch.PolicyLocked},
		{"oneshot", dispatch.PolicyOneShot},
	}

	for _, item := range testCases {
		t.Run("parses '"+item.name+"'", func(t *testing.T) {
			p, err := dispatch.ParsePolicy(item.name)

			require.NoError(t, err)
			assert.Equal(t, item.expected, p)
		})
	}

	_, err := dispatch.ParsePolicy("whenever")
	require.Error(t, err)
}
