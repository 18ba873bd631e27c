package composite

import "math"
import "image"
import "image/draw"

import "golang.org/x/image/vector"
import "golang.org/x/image/font/sfnt"

import "github.com/tinne26/glyphrain"

// Renders the text overlays on a transparent image of the given size.
func renderTextLayer(width, height int, overlays []TextOverlay, font *sfnt.Font) *image.RGBA {
	layer := image.NewRGBA(image.Rect(0, 0, width, height))
	renderer := glyphrain.NewRenderer()
	renderer.SetFont(font)
	renderer.SetAlign(glyphrain.Top | glyphrain.Left)
	for _, overlay := range overlays {
		drawTextOverlay(layer, renderer, overlay)
	}
	return layer
}

func drawTextOverlay(target draw.Image, renderer *glyphrain.Renderer, overlay TextOverlay) {
	renderer.SetSize(overlay.Size)
	textW, textH := renderer.Measure(overlay.Text)
	boxW, boxH := int(math.Ceil(textW)), int(math.Ceil(textH))

	bounds := target.Bounds()
	x, y := overlay.Gravity.place(bounds.Dx(), bounds.Dy(), boxW, boxH, overlay.Margin)
	x += bounds.Min.X + overlay.OffsetX
	y += bounds.Min.Y + overlay.OffsetY

	if overlay.Backdrop {
		pad := overlay.BackdropPadding
		box := image.Rect(x - pad, y - pad, x + boxW + pad, y + boxH + pad)
		drawRoundedRect(target, box, overlay.BackdropRadius, image.NewUniform(overlay.BackdropColor))
	}
	renderer.SetColor(overlay.Color)
	renderer.Draw(target, overlay.Text, float64(x), float64(y))
}

// Circle approximation constant for cubic bézier quarter arcs.
const kappa = 0.5522847498

// Blends a rectangle with rounded corners over the target.
func drawRoundedRect(target draw.Image, rect image.Rectangle, radius float64, src image.Image) {
	bounds := target.Bounds()
	rect = rect.Intersect(bounds)
	if rect.Empty() { return }
	radius = min(radius, float64(rect.Dx())/2, float64(rect.Dy())/2)

	var rasterizer vector.Rasterizer
	rasterizer.Reset(bounds.Dx(), bounds.Dy())
	rasterizer.DrawOp = draw.Over

	x0 := float32(rect.Min.X - bounds.Min.X)
	y0 := float32(rect.Min.Y - bounds.Min.Y)
	x1, y1 := x0 + float32(rect.Dx()), y0 + float32(rect.Dy())
	r, k := float32(radius), float32(radius*kappa)

	rasterizer.MoveTo(x0 + r, y0)
	rasterizer.LineTo(x1 - r, y0)
	rasterizer.CubeTo(x1 - r + k, y0, x1, y0 + r - k, x1, y0 + r)
	rasterizer.LineTo(x1, y1 - r)
	rasterizer.CubeTo(x1, y1 - r + k, x1 - r + k, y1, x1 - r, y1)
	rasterizer.LineTo(x0 + r, y1)
	rasterizer.CubeTo(x0 + r - k, y1, x0, y1 - r + k, x0, y1 - r)
	rasterizer.LineTo(x0, y0 + r)
	rasterizer.CubeTo(x0, y0 + r - k, x0 + r - k, y0, x0 + r, y0)
	rasterizer.ClosePath()
	rasterizer.Draw(target, bounds, src, image.Point{})
}
