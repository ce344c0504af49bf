package dispatch

import (
	"fmt"
	"strings"
)

// Policy decides how modifier keys and emissions move the effective state.
type Policy int

const (
	// PolicyMomentary: a modifier key toggles its state on and off, and any
	// emission returns to normal and drops held control/alt.
	PolicyMomentary Policy = iota
	// PolicyLocked: a modifier key toggles its state, emissions leave it alone.
	PolicyLocked
	// PolicyOneShot: a modifier key always switches to its state, only an
	// emission returns to normal.
	PolicyOneShot
)

func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "momentary":
		return PolicyMomentary, nil
	case "locked", "lock", "sticky":
		return PolicyLocked, nil
	case "oneshot", "one-shot":
		return PolicyOneShot, nil
	default:
		return PolicyMomentary, fmt.Errorf("unknown modifier policy %q", name)
	}
}

func (p Policy) String() string {
	switch p {
	case PolicyMomentary:
		return "momentary"
	case PolicyLocked:
		return "locked"
	case PolicyOneShot:
		return "oneshot"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}
