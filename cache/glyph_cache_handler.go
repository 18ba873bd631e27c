package cache

import "image"

import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

import "github.com/tinne26/glyphrain/mask"

// Alias for the glyph masks stored in caches.
type GlyphMask = *image.Alpha

// A GlyphCacheHandler sits between a renderer and a glyph cache. The
// renderer notifies every font, size and rasterizer change, so it only
// needs glyph indices to get and pass masks afterwards.
//
// Handlers hold the renderer's current state, so each belongs to a
// single renderer and is not safe for concurrent use.
type GlyphCacheHandler interface {
	NotifyFontChange(*sfnt.Font)
	NotifySizeChange(fixed.Int26_6)
	NotifyRasterizerChange(mask.Rasterizer)

	// Returns the cached mask for the glyph under the current state.
	// Nil masks can be cached too (spaces), so check the bool.
	GetMask(sfnt.GlyphIndex) (GlyphMask, bool)

	// Offers the mask for the glyph under the current state to the
	// cache, which may or may not keep it. Only meant to be called
	// after GetMask misses.
	PassMask(sfnt.GlyphIndex, GlyphMask)
}
