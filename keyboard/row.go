package keyboard

import (
	"fmt"
	"iter"

	"github.com/dasdy/vkbd/ordered"
)

// Row is a left-to-right strip of keys.
type Row struct {
	x, y int
	keys ordered.List[*Key]

	attached bool
}

func NewRow() *Row {
	return &Row{}
}

// AppendKey makes the row the owner of key. A key that already belongs to a
// row is rejected.
func (r *Row) AppendKey(key *Key) error {
	if key == nil {
		return fmt.Errorf("could not append nil key: %w", ErrStructural)
	}

	if key.row != nil {
		return fmt.Errorf("key already belongs to a row: %w", ErrStructural)
	}

	key.row = r
	r.keys.Append(key)

	return nil
}

func (r *Row) Keys() iter.Seq[*Key] {
	return r.keys.Values()
}

func (r *Row) KeyCount() int {
	return r.keys.Len()
}

// Key returns the n-th key from the left.
func (r *Row) Key(n int) (*Key, bool) {
	return r.keys.Nth(n)
}

func (r *Row) SetX(x int) { r.x = x }
func (r *Row) SetY(y int) { r.y = y }
func (r *Row) X() int     { return r.x }
func (r *Row) Y() int     { return r.y }

// Width spans from the row origin to the right edge of its rightmost key.
// It is derived from current key geometry on every call.
func (r *Row) Width() int {
	width := 0

	for k := range r.keys.Values() {
		width = max(width, k.x+k.width)
	}

	return width
}

// Height spans from the row origin to the bottom edge of its tallest key.
func (r *Row) Height() int {
	height := 0

	for k := range r.keys.Values() {
		height = max(height, k.y+k.height)
	}

	return height
}
