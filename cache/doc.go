// The cache subpackage defines the [GlyphCacheHandler] interface used by
// glyph renderers and provides a default, memory bounded, glyph mask cache.
//
// Rain frames redraw the same few dozen glyphs at the same size thousands
// of times, so rasterizing them only once is what makes frame generation
// cheap. A single [DefaultCache] is meant to be shared by all the frame
// workers, each of them going through its own [DefaultCacheHandler].
//
// As a size reference, a glyph of the default palette at the default
// canvas size is around 20x28 pixels, or about 600 bytes. A palette of 32
// glyphs with its head and tail variants fits comfortably in 64KiB, but
// composite text overlays use bigger sizes, so a couple of MiBs is a more
// reasonable default.
package cache
