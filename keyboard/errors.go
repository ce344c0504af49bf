package keyboard

import "errors"

var (
	// ErrStructural is returned when an operation would leave the
	// keyboard → layout → row → key tree malformed.
	ErrStructural      = errors.New("structural invariant violated")
	ErrDuplicateLayout = errors.New("duplicate layout id")
	ErrUnknownLayout   = errors.New("unknown layout")
	ErrNoLayout        = errors.New("keyboard has no layouts")
)
