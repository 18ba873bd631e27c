package glyphrain

import "image/color"

import "golang.org/x/image/font"
import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

import "github.com/tinne26/glyphrain/mask"
import "github.com/tinne26/glyphrain/cache"

// The [Renderer] draws and measures text on standard [draw.Image]
// targets. Rain cells are single glyphs, but multiple glyphs and
// line breaks are also supported for overlays and captions.
//
// Glyphs are always drawn at integer pixel positions, so a single
// mask per glyph and size needs to be rasterized and cached.
//
// Renderers are not safe for concurrent use. When drawing from
// multiple goroutines, create one renderer per goroutine and share
// a single [cache.DefaultCache] through different handlers instead:
//   glyphCache := cache.NewDefaultCache(16*1024*1024)
//   renderer.SetCacheHandler(glyphCache.NewHandler())
//
// [draw.Image]: https://pkg.go.dev/image/draw#Image
type Renderer struct {
	font *sfnt.Font
	buffer sfnt.Buffer

	fontColor color.Color
	rasterizer mask.Rasterizer
	cacheHandler cache.GlyphCacheHandler

	size fixed.Int26_6
	align Align
	metrics *font.Metrics // nil when outdated
}

// Creates a new [Renderer] with a size of 16px, white color,
// (Baseline | Left) align and the default rasterizer. A font
// must be set before drawing or measuring.
func NewRenderer() *Renderer {
	return &Renderer{
		fontColor: color.RGBA{255, 255, 255, 255},
		rasterizer: &mask.DefaultRasterizer{},
		size: 16*64,
		align: Baseline | Left,
	}
}

// Sets the font to be used on subsequent operations.
func (self *Renderer) SetFont(font *sfnt.Font) {
	if font == self.font { return }
	self.font = font
	self.metrics = nil
	if self.cacheHandler != nil && font != nil {
		self.cacheHandler.NotifyFontChange(font)
	}
}

// Returns the current font. The font is nil by default.
func (self *Renderer) GetFont() *sfnt.Font {
	return self.font
}

// Sets the font size in pixels. Sizes can't be negative, and
// fractional sizes are rounded up to the nearest 1/64th.
func (self *Renderer) SetSize(size float64) {
	if size < 0 { panic("negative text size") }
	fixedSize := float64ToFixedUp(size)
	if fixedSize == self.size { return }
	self.size = fixedSize
	self.metrics = nil
	if self.cacheHandler != nil {
		self.cacheHandler.NotifySizeChange(fixedSize)
	}
}

// Returns the current font size in pixels.
func (self *Renderer) GetSize() float64 {
	return float64(self.size)/64.0
}

// Sets the color to be used on subsequent draw operations.
// Colors with alpha are blended over the target.
func (self *Renderer) SetColor(fontColor color.Color) {
	self.fontColor = fontColor
}

// Returns the current drawing color.
func (self *Renderer) GetColor() color.Color {
	return self.fontColor
}

// Sets the align. Only the non-empty components of the given
// align are applied. For example:
//   renderer.SetAlign(glyphrain.Center) // both components
//   renderer.SetAlign(glyphrain.Top) // vertical only
//
// Vertical aligns work as follows:
//  - [Top]: the given y is the top of the text, taking the font
//    ascent as reference.
//  - [VertCenter]: the given y is the center between the ascent
//    and the descent. For single lines, this places the baseline
//    at y + (ascent - descent)/2.
//  - [Baseline]: the given y is the baseline of the first line.
//  - [Bottom]: the given y is the bottom of the text, taking the
//    font descent as reference.
func (self *Renderer) SetAlign(align Align) {
	self.align = self.align.Adjusted(align)
}

// Returns the current align.
func (self *Renderer) GetAlign() Align {
	return self.align
}

// Sets the glyph mask rasterizer. Nil rasterizers are not allowed.
func (self *Renderer) SetRasterizer(rasterizer mask.Rasterizer) {
	if rasterizer == nil { panic("nil rasterizer") }
	self.rasterizer = rasterizer
	if self.cacheHandler != nil {
		self.cacheHandler.NotifyRasterizerChange(rasterizer)
	}
}

// Returns the current glyph mask rasterizer.
func (self *Renderer) GetRasterizer() mask.Rasterizer {
	return self.rasterizer
}

// Sets the glyph cache handler used by the renderer. By default, no
// cache is used. A handler can only be used with a single renderer,
// but multiple handlers can be created from the same underlying cache.
// Nil is allowed to disable caching.
func (self *Renderer) SetCacheHandler(cacheHandler cache.GlyphCacheHandler) {
	self.cacheHandler = cacheHandler
	if cacheHandler == nil { return }
	cacheHandler.NotifySizeChange(self.size)
	cacheHandler.NotifyRasterizerChange(self.rasterizer)
	if self.font != nil { cacheHandler.NotifyFontChange(self.font) }
}

// Returns the current glyph cache handler, which is nil by default.
func (self *Renderer) GetCacheHandler() cache.GlyphCacheHandler {
	return self.cacheHandler
}

// Returns whether the current font has a glyph for the given rune.
// Runes without glyphs are skipped when drawing and measuring.
func (self *Renderer) HasGlyph(codePoint rune) bool {
	if self.font == nil { return false }
	return self.getGlyphIndex(codePoint) != 0
}
