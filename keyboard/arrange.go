package keyboard

import (
	"fmt"
)

// Arrange computes row origins and key geometry for every layout so that each
// fits in width pixels. It must run again after keys or options change.
func (kb *Keyboard) Arrange(width int, measurer Measurer) error {
	if width <= 0 {
		return fmt.Errorf("could not arrange keyboard into width %d: %w", width, ErrStructural)
	}

	if kb.layouts.Len() == 0 {
		return ErrNoLayout
	}

	for layout := range kb.layouts.Values() {
		kb.arrangeLayout(layout, width, measurer)
	}

	return nil
}

func (kb *Keyboard) arrangeLayout(layout *Layout, width int, measurer Measurer) {
	y := 0

	for row := range layout.rows.Values() {
		kb.arrangeRow(row, width, measurer)

		row.y = y
		y += row.Height() + kb.opts.RowSpacing
	}
}

func (kb *Keyboard) arrangeRow(row *Row, width int, measurer Measurer) {
	chrome := 2 * (kb.opts.KeyPad + kb.opts.KeyBorder + kb.opts.KeyMargin)
	count := row.keys.Len()

	widths := make([]int, count)
	fills := make([]int, 0)
	used := 0
	height := 0

	for i, key := range row.keys.All() {
		w, h := measurer.Measure(key)
		height = max(height, h+chrome)

		if key.fill {
			fills = append(fills, i)

			continue
		}

		widths[i] = w + chrome
		used += widths[i]
	}

	if count > 1 {
		used += kb.opts.ColSpacing * (count - 1)
	}

	if len(fills) > 0 {
		remaining := max(width-used, 0)
		share := remaining / len(fills)

		for _, i := range fills {
			widths[i] = share
		}

		// whatever does not divide evenly goes to the last fill key
		widths[fills[len(fills)-1]] += remaining - share*len(fills)
	}

	x := 0

	for i, key := range row.keys.All() {
		key.x, key.y = x, 0
		key.width, key.height = widths[i], height
		x += widths[i] + kb.opts.ColSpacing
	}

	row.x = 0
	if rowWidth := row.Width(); len(fills) == 0 && rowWidth < width {
		row.x = (width - rowWidth) / 2
	}
}
