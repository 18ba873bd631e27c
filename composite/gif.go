package composite

import "image"
import "image/gif"
import "image/draw"
import "image/color"
import "image/color/palette"

// Index of the transparent color in the GIF palette.
const transparentIndex = 255

// Plan9 colors plus a transparent entry for optimized layers.
var gifPalette = func() color.Palette {
	colors := make(color.Palette, 256)
	copy(colors, palette.Plan9[ : transparentIndex])
	colors[transparentIndex] = color.RGBA{0, 0, 0, 0}
	return colors
}()

// Accumulates composed frames into a looping GIF animation.
type gifBuilder struct {
	anim gif.GIF
	delay int // centiseconds
	dither bool
	optimize bool
	tolerance int32 // per channel, in 0..255
	displayed *image.RGBA // what a viewer shows after the last frame
}

func newGIFBuilder(cfg *Config) *gifBuilder {
	return &gifBuilder{
		anim: gif.GIF{ LoopCount: 0 },
		delay: cfg.DelayCentiseconds(),
		dither: cfg.Dither,
		optimize: cfg.Optimize,
		tolerance: int32(cfg.Fuzz*255 + 0.5),
	}
}

// Quantizes the frame and appends it. When optimizing, pixels close
// enough to the ones already displayed become transparent so the
// previous frame shows through.
func (self *gifBuilder) Add(frame *image.RGBA) {
	bounds := frame.Bounds()
	paletted := image.NewPaletted(bounds, gifPalette[ : transparentIndex])
	if self.dither {
		draw.FloydSteinberg.Draw(paletted, bounds, frame, bounds.Min)
	} else {
		draw.Draw(paletted, bounds, frame, bounds.Min, draw.Src)
	}
	paletted.Palette = gifPalette

	if self.optimize {
		if self.displayed == nil {
			self.displayed = image.NewRGBA(bounds)
			draw.Draw(self.displayed, bounds, frame, bounds.Min, draw.Src)
		} else {
			self.markUnchanged(frame, paletted)
		}
	}

	self.anim.Image = append(self.anim.Image, paletted)
	self.anim.Delay = append(self.anim.Delay, self.delay)
	self.anim.Disposal = append(self.anim.Disposal, gif.DisposalNone)
}

func (self *gifBuilder) markUnchanged(frame *image.RGBA, paletted *image.Paletted) {
	bounds := frame.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			offset := frame.PixOffset(x, y)
			current := frame.Pix[offset : offset + 4 : offset + 4]
			shown := self.displayed.Pix[offset : offset + 4 : offset + 4]
			if self.similar(current, shown) {
				paletted.SetColorIndex(x, y, transparentIndex)
			} else {
				copy(shown, current)
			}
		}
	}
}

func (self *gifBuilder) similar(a, b []uint8) bool {
	for i := 0; i < 4; i++ {
		diff := int32(a[i]) - int32(b[i])
		if diff < -self.tolerance || diff > self.tolerance { return false }
	}
	return true
}

// Returns the accumulated animation.
func (self *gifBuilder) GIF() *gif.GIF {
	return &self.anim
}
