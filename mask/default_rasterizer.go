package mask

import "fmt"
import "image"
import "image/draw"

import "golang.org/x/image/vector"
import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

var _ Rasterizer = (*DefaultRasterizer)(nil)

// DefaultRasterizer fills glyph outlines with a [vector.Rasterizer].
// The zero value is ready to use. Each renderer owns its own, as the
// underlying rasterizer keeps state between calls.
//
// [vector.Rasterizer]: https://pkg.go.dev/golang.org/x/image/vector#Rasterizer
type DefaultRasterizer struct {
	vector vector.Rasterizer
}

// Implements [Rasterizer]. All default rasterizers produce the
// same masks, so the signature is always zero.
func (self *DefaultRasterizer) Signature() uint64 { return 0 }

// Implements [Rasterizer].
func (self *DefaultRasterizer) Rasterize(outline sfnt.Segments, origin fixed.Point26_6) (*image.Alpha, error) {
	rect, shift := maskPlacement(outline.Bounds(), origin)
	self.vector.Reset(rect.Dx(), rect.Dy())
	self.vector.DrawOp = draw.Src

	for _, segment := range outline {
		args := &segment.Args
		switch segment.Op {
		case sfnt.SegmentOpMoveTo:
			self.vector.MoveTo(toVector(args[0], shift))
		case sfnt.SegmentOpLineTo:
			self.vector.LineTo(toVector(args[0], shift))
		case sfnt.SegmentOpQuadTo:
			cx, cy := toVector(args[0], shift)
			x, y := toVector(args[1], shift)
			self.vector.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := toVector(args[0], shift)
			c2x, c2y := toVector(args[1], shift)
			x, y := toVector(args[2], shift)
			self.vector.CubeTo(c1x, c1y, c2x, c2y, x, y)
		default:
			return nil, fmt.Errorf("unexpected outline segment op %d", segment.Op)
		}
	}

	mask := image.NewAlpha(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	self.vector.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	mask.Rect = rect
	return mask, nil
}

// Returns the pixel rect covered by the mask relative to the integer
// part of the origin, and the shift that takes outline points to mask
// coordinates. The shift includes the fractional part of the origin.
func maskPlacement(bounds fixed.Rectangle26_6, origin fixed.Point26_6) (image.Rectangle, fixed.Point26_6) {
	minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	shift := fixed.Point26_6{
		X: (origin.X & 0x3F) - fixed.I(minX),
		Y: (origin.Y & 0x3F) - fixed.I(minY),
	}
	width  := (bounds.Max.X + shift.X).Ceil()
	height := (bounds.Max.Y + shift.Y).Ceil()
	return image.Rect(minX, minY, minX + width, minY + height), shift
}

func toVector(point, shift fixed.Point26_6) (float32, float32) {
	point = point.Add(shift)
	return float32(point.X)/64, float32(point.Y)/64
}
