package rain

import "fmt"
import "errors"
import "strings"
import "image/color"

var ErrInvalidConfig = errors.New("invalid rain configuration")

// Config holds every tunable parameter of the rain animation.
type Config struct {
	Rows int // grid rows, also the loop period in frames
	Cols int // grid columns
	Width int // canvas width in pixels
	Height int // canvas height in pixels
	Loops int // number of loop periods to export

	StreakMin int // min streak length, head included
	StreakMax int // max streak length, head included
	FlickerZone int // tail cells closer than this to the head may flicker
	FlickerProb float64

	BackgroundProb float64 // chance of a faint scrolled glyph on any cell
	BackgroundColor color.NRGBA
	HeadColor color.NRGBA

	TailHue float64 // degrees
	TailSaturation float64
	TailFade float64 // value loss at the tail end
	TailEase string // see [Eases]()

	Glyphs string // named palette or literal glyphs, see [NewPalette]()

	// The cutoff row of each column is picked in
	// [Rows*CutoffStart, Rows*(CutoffStart + CutoffSpan)).
	CutoffStart float64
	CutoffSpan float64

	FontScale float64 // font size as a fraction of the cell height
	Seed int64
}

// Returns the default rain configuration: a 24x48 grid on a 1024x768
// canvas with amber tails.
func DefaultConfig() Config {
	return Config{
		Rows: 24, Cols: 48,
		Width: 1024, Height: 768,
		Loops: 1,
		StreakMin: 5, StreakMax: 14,
		FlickerZone: 5, FlickerProb: 0.12,
		BackgroundProb: 0,
		BackgroundColor: color.NRGBA{0, 60, 0, 255},
		HeadColor: color.NRGBA{255, 240, 176, 255},
		TailHue: 40, TailSaturation: 1.0, TailFade: 0.1,
		TailEase: "linear",
		Glyphs: PaletteSymbols,
		CutoffStart: 1.0/3.0, CutoffSpan: 1.0/3.0,
		FontScale: 0.9,
		Seed: 12345,
	}
}

// Returns the number of frames to export (Rows*Loops).
func (self *Config) FrameCount() int {
	return self.Rows*self.Loops
}

// Checks that the configuration is usable. All the problems found
// are reported together, wrapping [ErrInvalidConfig].
func (self *Config) Validate() error {
	var problems []string
	fail := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if self.Rows <= 0 { fail("rows must be positive (got %d)", self.Rows) }
	if self.Cols <= 0 { fail("cols must be positive (got %d)", self.Cols) }
	if self.Width <= 0 || self.Height <= 0 {
		fail("canvas size must be positive (got %dx%d)", self.Width, self.Height)
	}
	if self.Loops <= 0 { fail("loops must be positive (got %d)", self.Loops) }
	if self.StreakMin < 1 { fail("streak min must be at least 1 (got %d)", self.StreakMin) }
	if self.StreakMin > self.StreakMax {
		fail("streak min %d exceeds streak max %d", self.StreakMin, self.StreakMax)
	}
	if self.FlickerZone < 0 { fail("flicker zone can't be negative (got %d)", self.FlickerZone) }
	if !isProbability(self.FlickerProb) {
		fail("flicker probability must be in [0, 1] (got %g)", self.FlickerProb)
	}
	if !isProbability(self.BackgroundProb) {
		fail("background probability must be in [0, 1] (got %g)", self.BackgroundProb)
	}
	if self.TailHue < 0 || self.TailHue >= 360 {
		fail("tail hue must be in [0, 360) (got %g)", self.TailHue)
	}
	if !isProbability(self.TailSaturation) {
		fail("tail saturation must be in [0, 1] (got %g)", self.TailSaturation)
	}
	if !isProbability(self.TailFade) {
		fail("tail fade must be in [0, 1] (got %g)", self.TailFade)
	}
	if !isProbability(self.CutoffStart) || !isProbability(self.CutoffSpan) {
		fail("cutoff fractions must be in [0, 1] (got %g, %g)", self.CutoffStart, self.CutoffSpan)
	}
	if !(self.FontScale > 0) { fail("font scale must be positive (got %g)", self.FontScale) }
	if _, err := LookupEase(self.TailEase); err != nil { fail("%v", err) }
	if _, err := NewPalette(self.Glyphs); err != nil { fail("%v", err) }

	if len(problems) == 0 { return nil }
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}
