package model

import (
	"fmt"
	"strings"
)

// Modifier identifies what a change-modifier action toggles.
type Modifier int

const (
	ModifierNone Modifier = iota
	ModifierShift
	ModifierMod1
	ModifierMod2
	ModifierMod3
	ModifierCaps
	ModifierControl
	ModifierAlt
)

var modifierNames = map[string]Modifier{
	"shift":   ModifierShift,
	"mod1":    ModifierMod1,
	"mod2":    ModifierMod2,
	"mod3":    ModifierMod3,
	"caps":    ModifierCaps,
	"control": ModifierControl,
	"ctrl":    ModifierControl,
	"alt":     ModifierAlt,
}

// ParseModifier maps a configuration name to a Modifier, ignoring case.
func ParseModifier(name string) (Modifier, error) {
	m, ok := modifierNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ModifierNone, fmt.Errorf("unknown modifier %q", name)
	}

	return m, nil
}

func (m Modifier) String() string {
	switch m {
	case ModifierNone:
		return "none"
	case ModifierShift:
		return "shift"
	case ModifierMod1:
		return "mod1"
	case ModifierMod2:
		return "mod2"
	case ModifierMod3:
		return "mod3"
	case ModifierCaps:
		return "caps"
	case ModifierControl:
		return "control"
	case ModifierAlt:
		return "alt"
	default:
		return fmt.Sprintf("Modifier(%d)", int(m))
	}
}

// TargetState is the effective state a modifier switches to. The second
// result is false for modifiers that do not select a state (caps, control, alt).
func (m Modifier) TargetState() (KeyState, bool) {
	switch m {
	case ModifierShift:
		return StateShifted, true
	case ModifierMod1:
		return StateMod1, true
	case ModifierMod2:
		return StateMod2, true
	case ModifierMod3:
		return StateMod3, true
	default:
		return StateNormal, false
	}
}

// ModMask is the set of held modifiers sent along with a synthesized key event.
type ModMask uint8

const (
	ModShift ModMask = 1 << iota
	ModControl
	ModAlt
)

func (m ModMask) String() string {
	if m == 0 {
		return "none"
	}

	parts := make([]string, 0, 3)
	if m&ModShift != 0 {
		parts = append(parts, "shift")
	}

	if m&ModControl != 0 {
		parts = append(parts, "control")
	}

	if m&ModAlt != 0 {
		parts = append(parts, "alt")
	}

	return strings.Join(parts, "+")
}
