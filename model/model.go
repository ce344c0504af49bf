package model

import "fmt"

// KeyState is one of the modifier states a key can define a face and action for.
type KeyState int

const (
	StateNormal KeyState = iota
	StateShifted
	StateMod1
	StateMod2
	StateMod3

	NumStates = 5
)

var stateNames = [NumStates]string{"normal", "shifted", "mod1", "mod2", "mod3"}

func (s KeyState) String() string {
	if !s.Valid() {
		return fmt.Sprintf("KeyState(%d)", int(s))
	}

	return stateNames[s]
}

func (s KeyState) Valid() bool {
	return s >= StateNormal && s < NumStates
}

// AllStates lists key states in table order.
func AllStates() [NumStates]KeyState {
	return [NumStates]KeyState{StateNormal, StateShifted, StateMod1, StateMod2, StateMod3}
}

type FaceKind int

const (
	FaceNone FaceKind = iota
	FaceGlyph
	FaceImage
)

func (k FaceKind) String() string {
	switch k {
	case FaceNone:
		return "none"
	case FaceGlyph:
		return "glyph"
	case FaceImage:
		return "image"
	default:
		return fmt.Sprintf("FaceKind(%d)", int(k))
	}
}

type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionGlyph
	ActionKeysym
	ActionModifier
)

func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionGlyph:
		return "glyph"
	case ActionKeysym:
		return "keysym"
	case ActionModifier:
		return "modifier"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}
