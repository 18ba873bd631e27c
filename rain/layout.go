package rain

import "image/draw"

import "github.com/tinne26/glyphrain"

// Layout maps grid cells to canvas pixels.
type Layout struct {
	CellWidth float64
	CellHeight float64
	FontSize float64
}

// Computes the layout for the configuration's canvas and grid.
// The font size is the cell height scaled by FontScale.
func NewLayout(cfg Config) Layout {
	cellHeight := float64(cfg.Height)/float64(cfg.Rows)
	return Layout{
		CellWidth: float64(cfg.Width)/float64(cfg.Cols),
		CellHeight: cellHeight,
		FontSize: cellHeight*cfg.FontScale,
	}
}

// Returns the pixel coordinates of the center of the given cell.
func (self Layout) Center(row, col int) (float64, float64) {
	x := self.CellWidth/2 + float64(col)*self.CellWidth
	y := self.CellHeight/2 + float64(row)*self.CellHeight
	return x, y
}

// Returns the generator's layout.
func (self *Generator) Layout() Layout {
	return NewLayout(self.config)
}

// Draws the strokes of the given frame on the target, each glyph
// centered on its cell. The renderer must have a font set. Its size,
// align and color are modified.
func (self *Generator) Paint(target draw.Image, frame int, renderer *glyphrain.Renderer) {
	layout := self.Layout()
	renderer.SetSize(layout.FontSize)
	renderer.SetAlign(glyphrain.Center)

	for _, stroke := range self.Strokes(frame) {
		x, y := layout.Center(stroke.Row, stroke.Col)
		renderer.SetColor(stroke.Color)
		renderer.Draw(target, string(stroke.Glyph), x, y)
	}
}
