package cache

import "unsafe"

import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

import "github.com/tinne26/glyphrain/mask"

var _ GlyphCacheHandler = (*DefaultCacheHandler)(nil)

// The [GlyphCacheHandler] for a [DefaultCache]. Cache keys are built
// from the font pointer, the rasterizer signature and a last word
// with the size in the upper 32 bits and the glyph index in the
// lowest 16.
type DefaultCacheHandler struct {
	cache *DefaultCache
	font uint64
	signature uint64
	size uint64
}

func (self *DefaultCacheHandler) NotifyFontChange(font *sfnt.Font) {
	self.font = uint64(uintptr(unsafe.Pointer(font)))
}

func (self *DefaultCacheHandler) NotifyRasterizerChange(rasterizer mask.Rasterizer) {
	self.signature = rasterizer.Signature()
}

func (self *DefaultCacheHandler) NotifySizeChange(size fixed.Int26_6) {
	self.size = uint64(uint32(size))
}

func (self *DefaultCacheHandler) GetMask(index sfnt.GlyphIndex) (GlyphMask, bool) {
	return self.cache.GetMask(self.key(index))
}

func (self *DefaultCacheHandler) PassMask(index sfnt.GlyphIndex, mask GlyphMask) {
	self.cache.PassMask(self.key(index), mask)
}

// Returns the cache the handler stores masks in.
func (self *DefaultCacheHandler) Cache() *DefaultCache {
	return self.cache
}

func (self *DefaultCacheHandler) key(index sfnt.GlyphIndex) [3]uint64 {
	return [3]uint64{self.font, self.signature, self.size << 32 | uint64(index)}
}
