package glyphrain

import "strings"
import "image/draw"

import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

// Draws the given text on the target at the given coordinates,
// interpreted according to the current align (see [Renderer.SetAlign]()).
//
// Line breaks ('\n') start new lines. Runes that the font can't
// represent are skipped. The font must be set, or the function
// will panic.
func (self *Renderer) Draw(target draw.Image, text string, x, y float64) {
	if text == "" { return }
	self.panicIfMissingFont()

	lines := strings.Split(text, "\n")
	metrics := self.getMetrics()
	dotY := self.alignFirstBaseline(float64ToFixed(y), len(lines))
	refX := float64ToFixed(x)
	for _, line := range lines {
		dotX := refX
		switch self.align.Horz() {
		case HorzCenter: dotX -= self.measureLineWidth(line) >> 1
		case Right: dotX -= self.measureLineWidth(line)
		}
		self.drawLine(target, line, dotX, dotY)
		dotY += metrics.Height
	}
}

// Given the reference y and the number of lines, returns the
// baseline of the first line.
func (self *Renderer) alignFirstBaseline(y fixed.Int26_6, numLines int) fixed.Int26_6 {
	metrics := self.getMetrics()
	extraHeight := metrics.Height*fixed.Int26_6(numLines - 1)
	switch self.align.Vert() {
	case Top:
		return y + metrics.Ascent
	case VertCenter:
		height := metrics.Ascent + metrics.Descent + extraHeight
		return y + metrics.Ascent - (height >> 1)
	case Bottom:
		return y - metrics.Descent - extraHeight
	default: // Baseline
		return y
	}
}

func (self *Renderer) drawLine(target draw.Image, line string, x, y fixed.Int26_6) {
	dot := fixed.Point26_6{ X: x, Y: quantize(y) }
	var prevIndex sfnt.GlyphIndex
	for _, codePoint := range line {
		index := self.getGlyphIndex(codePoint)
		if index == 0 { continue } // missing glyph
		if prevIndex != 0 { dot.X += self.getKern(prevIndex, index) }

		origin := fixed.Point26_6{ X: quantize(dot.X), Y: dot.Y }
		self.drawGlyphMask(target, origin, self.loadGlyphMask(index))
		dot.X += self.getAdvance(index)
		prevIndex = index
	}
}
