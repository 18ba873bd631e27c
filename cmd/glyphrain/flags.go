package main

import "fmt"
import "image/color"

import "github.com/spf13/pflag"
import "github.com/lucasb-eyer/go-colorful"

import "github.com/tinne26/glyphrain/rain"
import "github.com/tinne26/glyphrain/font"

// Hex color flag ("#00ff41" or "#00ff41" followed by an alpha byte).
type colorValue struct { target *color.NRGBA }

func newColorValue(target *color.NRGBA) *colorValue {
	return &colorValue{ target: target }
}

func (self *colorValue) String() string {
	if self.target == nil { return "" }
	clr := self.target
	if clr.A == 255 { return fmt.Sprintf("#%02x%02x%02x", clr.R, clr.G, clr.B) }
	return fmt.Sprintf("#%02x%02x%02x%02x", clr.R, clr.G, clr.B, clr.A)
}

func (self *colorValue) Type() string { return "color" }

func (self *colorValue) Set(value string) error {
	clr, err := parseHexColor(value)
	if err != nil { return err }
	*self.target = clr
	return nil
}

func parseHexColor(value string) (color.NRGBA, error) {
	alpha := uint8(255)
	if len(value) == 9 && value[0] == '#' {
		var a uint8
		_, err := fmt.Sscanf(value[7:], "%02x", &a)
		if err != nil { return color.NRGBA{}, fmt.Errorf("bad alpha in color %q", value) }
		alpha, value = a, value[:7]
	}
	parsed, err := colorful.Hex(value)
	if err != nil { return color.NRGBA{}, fmt.Errorf("bad color %q: %w", value, err) }
	r, g, b := parsed.RGB255()
	return color.NRGBA{r, g, b, alpha}, nil
}

// Binds the rain configuration fields to the given flag set.
func bindRainFlags(flags *pflag.FlagSet, cfg *rain.Config) {
	flags.IntVar(&cfg.Rows, "rows", cfg.Rows, "grid rows, also the loop length in frames")
	flags.IntVar(&cfg.Cols, "cols", cfg.Cols, "grid columns")
	flags.IntVar(&cfg.Width, "width", cfg.Width, "canvas width in pixels")
	flags.IntVar(&cfg.Height, "height", cfg.Height, "canvas height in pixels")
	flags.IntVar(&cfg.Loops, "loops", cfg.Loops, "number of loops to export")
	flags.IntVar(&cfg.StreakMin, "streak-min", cfg.StreakMin, "min streak length")
	flags.IntVar(&cfg.StreakMax, "streak-max", cfg.StreakMax, "max streak length")
	flags.IntVar(&cfg.FlickerZone, "flicker-zone", cfg.FlickerZone, "tail cells near the head that may flicker")
	flags.Float64Var(&cfg.FlickerProb, "flicker-prob", cfg.FlickerProb, "flicker probability")
	flags.Float64Var(&cfg.BackgroundProb, "background-prob", cfg.BackgroundProb, "probability of faint background glyphs")
	flags.Var(newColorValue(&cfg.BackgroundColor), "background-color", "background glyph color")
	flags.Var(newColorValue(&cfg.HeadColor), "head-color", "head glyph color")
	flags.Float64Var(&cfg.TailHue, "tail-hue", cfg.TailHue, "tail hue in degrees")
	flags.Float64Var(&cfg.TailSaturation, "tail-saturation", cfg.TailSaturation, "tail saturation")
	flags.Float64Var(&cfg.TailFade, "tail-fade", cfg.TailFade, "tail value loss towards the end")
	flags.StringVar(&cfg.TailEase, "tail-ease", cfg.TailEase, fmt.Sprintf("tail fade easing %v", rain.Eases()))
	flags.StringVar(&cfg.Glyphs, "glyphs", cfg.Glyphs, "palette name (symbols, cyrillic, kana, binary, ascii) or literal glyphs")
	flags.Float64Var(&cfg.CutoffStart, "cutoff-start", cfg.CutoffStart, "start of the cutoff row range, as a fraction of rows")
	flags.Float64Var(&cfg.CutoffSpan, "cutoff-span", cfg.CutoffSpan, "length of the cutoff row range, as a fraction of rows")
	flags.Float64Var(&cfg.FontScale, "font-scale", cfg.FontScale, "font size relative to the cell height")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
}

type fontFlags struct {
	candidates []string
	dirs []string
}

func (self *fontFlags) bind(flags *pflag.FlagSet) {
	defaults := append([]string(nil), font.DefaultCandidates...)
	flags.StringArrayVar(&self.candidates, "font", defaults, "font path or name, repeatable; tried in order (\"\" or \"default\" for Go Mono)")
	flags.StringArrayVar(&self.dirs, "font-dir", nil, "extra directory to search fonts by name, repeatable")
}

func (self *fontFlags) selectDirs() []string {
	return append(append([]string(nil), self.dirs...), font.DefaultDirs()...)
}
