package glyphrain

import "strings"

import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

// Returns the width and height of the given text, in pixels.
//
// The width is the advance of the longest line. The height goes from
// the ascent of the first line to the descent of the last one.
func (self *Renderer) Measure(text string) (width, height float64) {
	if text == "" { return 0, 0 }
	self.panicIfMissingFont()

	lines := strings.Split(text, "\n")
	var maxWidth fixed.Int26_6
	for _, line := range lines {
		maxWidth = max(maxWidth, self.measureLineWidth(line))
	}
	metrics := self.getMetrics()
	totalHeight := metrics.Ascent + metrics.Descent
	totalHeight += metrics.Height*fixed.Int26_6(len(lines) - 1)
	return fixedToFloat64(maxWidth), fixedToFloat64(totalHeight)
}

// Returns the line height for the current font and size.
func (self *Renderer) LineHeight() float64 {
	self.panicIfMissingFont()
	return fixedToFloat64(self.getMetrics().Height)
}

func (self *Renderer) measureLineWidth(line string) fixed.Int26_6 {
	var width fixed.Int26_6
	var prevIndex sfnt.GlyphIndex
	for _, codePoint := range line {
		index := self.getGlyphIndex(codePoint)
		if index == 0 { continue }
		if prevIndex != 0 { width += self.getKern(prevIndex, index) }
		width += self.getAdvance(index)
		prevIndex = index
	}
	return width
}
