// glyphrain generates "digital rain" animations: grids of glyphs falling
// down in columns, exported as seamless loops of transparent frames that
// can later be composited over a background into an animated GIF.
//
// This root package contains the glyph [Renderer] used to draw the rain
// cells. The procedural part lives in the rain subpackage, while the
// font, mask and cache subpackages provide font selection, glyph mask
// rasterization and glyph mask caching, respectively.
//
// Basic usage of the renderer looks like this:
//   renderer := glyphrain.NewRenderer()
//   renderer.SetFont(sfntFont)
//   renderer.SetSize(28)
//   renderer.SetAlign(glyphrain.Center)
//   renderer.SetColor(color.RGBA{255, 240, 176, 255})
//   renderer.Draw(canvas, "λ", 320, 240)
//
// Check the cmd/glyphrain program for the complete pipeline.
package glyphrain
