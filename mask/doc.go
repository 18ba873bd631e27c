// The mask subpackage turns glyph outlines into alpha masks.
//
// Rain frames are drawn one glyph at a time, and every glyph goes through
// a [Rasterizer] before being blended into the canvas with the fill color
// of its cell. The [DefaultRasterizer] wraps [golang.org/x/image/vector];
// other implementations can be plugged into the renderer as long as they
// produce masks that are consistent for a given [Rasterizer.Signature](),
// as masks are cached and shared between frame workers.
package mask
