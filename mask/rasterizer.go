package mask

import "image"

import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/math/fixed"

// Rasterizer turns glyph outlines into alpha masks. Rasterizers keep
// internal buffers, so each one can only be used from one goroutine
// at a time.
type Rasterizer interface {
	// Rasterizes the outline at the given subpixel position. Only the
	// fractional part (6 lowest bits) of each coordinate matters.
	Rasterize(sfnt.Segments, fixed.Point26_6) (*image.Alpha, error)

	// Identifies the masks the rasterizer produces in glyph cache keys.
	// Rasterizers producing different masks for the same outline need
	// different signatures.
	Signature() uint64
}

// Rasterizes the outline with the given rasterizer, skipping outlines
// with nothing to fill (like spaces), which return a nil mask.
//
// The mask rect is relative to the glyph origin at the integer part of
// dot, with the fractional part already applied. Drawing at a specific
// dot means translating the rect by dot.X.Floor() and dot.Y.Floor().
func Rasterize(outline sfnt.Segments, rasterizer Rasterizer, dot fixed.Point26_6) (*image.Alpha, error) {
	for _, segment := range outline {
		if segment.Op == sfnt.SegmentOpMoveTo { continue }
		return rasterizer.Rasterize(outline, dot)
	}
	return nil, nil // nothing to draw
}
