package rain

import "image/color"

import "github.com/tanema/gween/ease"

// The kind of a [Stroke].
type StrokeKind uint8

const (
	StrokeBackground StrokeKind = iota
	StrokeHead
	StrokeTail
)

func (self StrokeKind) String() string {
	switch self {
	case StrokeBackground: return "Background"
	case StrokeHead: return "Head"
	case StrokeTail: return "Tail"
	default:
		return "StrokeUnknown"
	}
}

// A single glyph to be drawn at the center of a cell.
type Stroke struct {
	Row, Col int
	Glyph rune
	Color color.NRGBA
	Kind StrokeKind
	Step int // distance to the head for tail strokes, 0 otherwise
}

// A Generator decides what to draw on each frame. It's immutable
// after creation and safe for concurrent use.
type Generator struct {
	config Config
	palette Palette
	columns *Columns
	chance Chance
	tailEase ease.TweenFunc
}

// Validates the configuration and creates the generator, including
// its column state.
func NewGenerator(cfg Config) (*Generator, error) {
	err := cfg.Validate()
	if err != nil { return nil, err }
	palette, err := NewPalette(cfg.Glyphs)
	if err != nil { return nil, err }
	columns, err := NewColumns(cfg, palette)
	if err != nil { return nil, err }
	return newGenerator(cfg, palette, columns), nil
}

// Precondition: cfg is valid.
func newGenerator(cfg Config, palette Palette, columns *Columns) *Generator {
	tailEase, _ := LookupEase(cfg.TailEase)
	return &Generator{
		config: cfg,
		palette: palette,
		columns: columns,
		chance: NewChance(cfg.Seed),
		tailEase: tailEase,
	}
}

func (self *Generator) Config() Config { return self.config }
func (self *Generator) Palette() Palette { return self.palette }
func (self *Generator) Columns() *Columns { return self.columns }
func (self *Generator) FrameCount() int { return self.config.FrameCount() }

// Returns the strokes for the given frame. See [Generator.AppendStrokes]().
func (self *Generator) Strokes(frame int) []Stroke {
	return self.AppendStrokes(nil, frame)
}

// Appends the strokes for the given frame to dst and returns the
// extended slice. Cells are visited row by row, and a cell can get
// both a background stroke and a head or tail stroke, in that order.
// Rows beyond a column's cutoff never get strokes.
func (self *Generator) AppendStrokes(dst []Stroke, frame int) []Stroke {
	cfg := &self.config
	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Cols; col++ {
			if row > self.columns.Cutoff(col) { continue }
			dst = self.appendCellStrokes(dst, frame, row, col)
		}
	}
	return dst
}

func (self *Generator) appendCellStrokes(dst []Stroke, frame, row, col int) []Stroke {
	cfg := &self.config
	glyph := self.columns.Scrolled(frame, row, col)

	// background rolls use the frame within the loop so they repeat too
	if self.chance.Roll(row, col, frame % cfg.Rows, TagBackground, cfg.BackgroundProb) {
		dst = append(dst, Stroke{
			Row: row, Col: col, Glyph: glyph,
			Color: cfg.BackgroundColor, Kind: StrokeBackground,
		})
	}

	state, dist := self.columns.Classify(frame, row, col)
	switch state {
	case Head:
		glyph = self.flicker(glyph, frame, row, col, TagHeadFlicker)
		dst = append(dst, Stroke{
			Row: row, Col: col, Glyph: glyph,
			Color: cfg.HeadColor, Kind: StrokeHead,
		})
	case Tail:
		if dist <= cfg.FlickerZone {
			glyph = self.flicker(glyph, frame, row, col, TagTailFlicker)
		}
		streakLen := self.columns.StreakLen(col)
		tailColor := TailColor(dist, streakLen, cfg.TailHue, cfg.TailSaturation, cfg.TailFade, self.tailEase)
		dst = append(dst, Stroke{
			Row: row, Col: col, Glyph: glyph,
			Color: tailColor, Kind: StrokeTail, Step: dist,
		})
	}
	return dst
}

// Returns a replacement glyph if the cell flickers on this frame,
// or the given glyph otherwise. Replacements always differ from the
// given glyph.
func (self *Generator) flicker(glyph rune, frame, row, col int, tag string) rune {
	if !self.chance.Roll(row, col, frame, tag, self.config.FlickerProb) { return glyph }
	replacement := self.palette[self.chance.Pick(row, col, frame, tag + "_glyph", len(self.palette))]
	if replacement == glyph { replacement = self.palette.firstDifferentFrom(glyph) }
	return replacement
}
