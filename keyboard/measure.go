package keyboard

import (
	"github.com/dasdy/vkbd/model"
	"github.com/mattn/go-runewidth"
)

// Measurer reports the content size a key needs, before padding, border and
// margin are added. The renderer usually provides one backed by its fonts.
type Measurer interface {
	Measure(key *Key) (width, height int)
}

// CellMeasurer sizes keys on a fixed grid of glyph cells.
type CellMeasurer struct {
	CellWidth  int
	CellHeight int
}

func (m CellMeasurer) Measure(key *Key) (int, int) {
	cells := max(key.ReqWidth(), GlyphWidth(key), 1)

	return cells * m.CellWidth, m.CellHeight
}

// GlyphWidth is the display width, in cells, of the widest glyph face of key.
// Image faces count as one cell.
func GlyphWidth(key *Key) int {
	width := 0

	for _, s := range model.AllStates() {
		face := key.Face(s)

		switch face.Kind {
		case model.FaceGlyph:
			width = max(width, runewidth.StringWidth(face.Glyph))
		case model.FaceImage:
			width = max(width, 1)
		case model.FaceNone:
		}
	}

	return width
}
