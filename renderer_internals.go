package glyphrain

import "math"
import "image"
import "image/draw"
import "strconv"

import "golang.org/x/image/font"
import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

import "github.com/tinne26/glyphrain/mask"

func float64ToFixedUp(value float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Ceil(value*64))
}

func float64ToFixed(value float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(value*64))
}

func fixedToFloat64(value fixed.Int26_6) float64 {
	return float64(value)/64.0
}

// Rounds to the nearest integer pixel.
func quantize(value fixed.Int26_6) fixed.Int26_6 {
	return (value + 32) &^ 63
}

// Precondition: the font is not nil.
func (self *Renderer) getGlyphIndex(codePoint rune) sfnt.GlyphIndex {
	index, err := self.font.GlyphIndex(&self.buffer, codePoint)
	if err != nil { return 0 }
	return index
}

func (self *Renderer) panicIfMissingFont() {
	if self.font == nil { panic("renderer font is nil") }
}

func (self *Renderer) updateMetrics() {
	metrics, err := self.font.Metrics(&self.buffer, self.size, font.HintingNone)
	if err != nil { panic("font.Metrics error: " + err.Error()) }
	self.metrics = &metrics
}

func (self *Renderer) getMetrics() *font.Metrics {
	if self.metrics == nil { self.updateMetrics() }
	return self.metrics
}

func (self *Renderer) getAdvance(index sfnt.GlyphIndex) fixed.Int26_6 {
	advance, err := self.font.GlyphAdvance(&self.buffer, index, self.size, font.HintingNone)
	if err != nil { panic("font.GlyphAdvance error: " + err.Error()) }
	return advance
}

func (self *Renderer) getKern(prev, curr sfnt.GlyphIndex) fixed.Int26_6 {
	kern, err := self.font.Kern(&self.buffer, prev, curr, self.size, font.HintingNone)
	if err != nil { return 0 } // no kern table or pair
	return kern
}

// loadGlyphMask loads the mask for the given glyph, using the cache
// handler if available. Origins are always quantized, so the mask
// only depends on font, size, rasterizer and glyph.
func (self *Renderer) loadGlyphMask(index sfnt.GlyphIndex) *image.Alpha {
	if self.cacheHandler != nil {
		glyphMask, found := self.cacheHandler.GetMask(index)
		if found { return glyphMask }
	}

	segments, err := self.font.LoadGlyph(&self.buffer, index, self.size, nil)
	if err != nil {
		panic("font.LoadGlyph(index = " + strconv.Itoa(int(index)) + ") error: " + err.Error())
	}
	glyphMask, err := mask.Rasterize(segments, self.rasterizer, fixed.Point26_6{})
	if err != nil { panic("mask.Rasterize failed: " + err.Error()) }

	if self.cacheHandler != nil {
		self.cacheHandler.PassMask(index, glyphMask)
	}
	return glyphMask
}

// Blends the fill color over the target through the glyph mask, with
// the mask origin placed at the given (quantized) dot.
func (self *Renderer) drawGlyphMask(target draw.Image, dot fixed.Point26_6, glyphMask *image.Alpha) {
	if glyphMask == nil { return } // spaces and empty glyphs

	shift := image.Pt(dot.X.Floor(), dot.Y.Floor())
	targetRect := target.Bounds().Intersect(glyphMask.Rect.Add(shift))
	if targetRect.Empty() { return }

	src := image.NewUniform(self.fontColor)
	maskPoint := targetRect.Min.Sub(shift)
	draw.DrawMask(target, targetRect, src, image.Point{}, glyphMask, maskPoint, draw.Over)
}
