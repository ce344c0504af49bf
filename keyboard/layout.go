package keyboard

import (
	"fmt"
	"iter"

	"github.com/dasdy/vkbd/ordered"
)

// Layout is one selectable keyboard variant, rows ordered top to bottom.
type Layout struct {
	id   string
	rows ordered.List[*Row]

	owned bool
}

func NewLayout(id string) *Layout {
	return &Layout{id: id}
}

func (l *Layout) ID() string {
	return l.id
}

func (l *Layout) AppendRow(row *Row) error {
	if row == nil {
		return fmt.Errorf("could not append nil row to layout %q: %w", l.id, ErrStructural)
	}

	if row.attached {
		return fmt.Errorf("row already belongs to a layout: %w", ErrStructural)
	}

	row.attached = true
	l.rows.Append(row)

	return nil
}

// Rows iterates rows top to bottom. Do not append rows while iterating.
func (l *Layout) Rows() iter.Seq[*Row] {
	return l.rows.Values()
}

func (l *Layout) RowCount() int {
	return l.rows.Len()
}

func (l *Layout) Row(n int) (*Row, bool) {
	return l.rows.Nth(n)
}

// Bounds is the size of the box enclosing every row.
func (l *Layout) Bounds() (width, height int) {
	for r := range l.rows.Values() {
		width = max(width, r.x+r.Width())
		height = max(height, r.y+r.Height())
	}

	return width, height
}
