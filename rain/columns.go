package rain

import "fmt"
import "math"
import "math/rand/v2"

// The state of a cell within its column's streak at a given frame.
type CellState uint8

const (
	Outside CellState = iota
	Head
	Tail
)

func (self CellState) String() string {
	switch self {
	case Outside: return "Outside"
	case Head: return "Head"
	case Tail: return "Tail"
	default:
		return "CellState(" + fmt.Sprint(uint8(self)) + ")"
	}
}

// Retries before falling back to deterministic scans when resampling.
const maxResamples = 64

// Columns holds the per-column state of the rain, computed once by
// [NewColumns]() and never modified afterwards. Safe for concurrent
// reads.
type Columns struct {
	rows, cols int
	letters []rune // row-major base glyph grid
	headStart []int
	streakLen []int
	cutoff []int
}

// Creates the column state for the given configuration. The palette
// must come from the same configuration's Glyphs. All the randomness
// comes from a generator seeded with the configuration's seed, so the
// same configuration always leads to the same columns.
//
// The configuration is assumed to be valid. An error is only returned
// if the head starts of interior columns can't be made to differ from
// their neighbours, which can only happen with less than 3 rows.
func NewColumns(cfg Config, palette Palette) (*Columns, error) {
	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), 0x6C6F6F70)) // "loop"
	columns := &Columns{
		rows: cfg.Rows,
		cols: cfg.Cols,
		letters: make([]rune, cfg.Rows*cfg.Cols),
		headStart: make([]int, cfg.Cols),
		streakLen: make([]int, cfg.Cols),
		cutoff: make([]int, cfg.Cols),
	}

	columns.fillLetters(rng, palette)
	columns.pickCutoffs(rng, cfg.CutoffStart, cfg.CutoffSpan)
	err := columns.pickHeadStarts(rng)
	if err != nil { return nil, err }
	for c := range columns.streakLen {
		columns.streakLen[c] = cfg.StreakMin + rng.IntN(cfg.StreakMax - cfg.StreakMin + 1)
	}
	return columns, nil
}

// Fills the base glyph grid and then makes sure that no glyph is
// equal to the one right above it.
func (self *Columns) fillLetters(rng *rand.Rand, palette Palette) {
	for i := range self.letters {
		self.letters[i] = palette[rng.IntN(len(palette))]
	}
	for c := 0; c < self.cols; c++ {
		for r := 1; r < self.rows; r++ {
			above := self.Letter(r - 1, c)
			glyph := self.Letter(r, c)
			for try := 0; glyph == above && try < maxResamples; try++ {
				glyph = palette[rng.IntN(len(palette))]
			}
			if glyph == above { glyph = palette.firstDifferentFrom(above) }
			self.letters[r*self.cols + c] = glyph
		}
	}
}

func (self *Columns) pickCutoffs(rng *rand.Rand, start, span float64) {
	base := int(math.Floor(float64(self.rows)*start))
	spread := max(1, int(math.Floor(float64(self.rows)*span)))
	for c := range self.cutoff {
		self.cutoff[c] = min(max(base + rng.IntN(spread), 0), self.rows - 1)
	}
}

// Picks uniform head starts and repairs interior columns so they
// differ from both neighbours. Columns are repaired left to right,
// so each repaired column only needs to differ from the current
// values at both sides.
func (self *Columns) pickHeadStarts(rng *rand.Rand) error {
	for c := range self.headStart {
		self.headStart[c] = rng.IntN(self.rows)
	}

	for c := 1; c < self.cols - 1; c++ {
		left, right := self.headStart[c - 1], self.headStart[c + 1]
		start := self.headStart[c]
		for try := 0; (start == left || start == right) && try < maxResamples; try++ {
			step := 1
			if rng.IntN(2) == 0 { step = -1 }
			start = mod(start + step, self.rows)
		}
		for scan := 0; (start == left || start == right) && scan < self.rows; scan++ {
			start = scan
		}
		if start == left || start == right {
			return fmt.Errorf("can't space head of column %d from its neighbours with %d rows", c, self.rows)
		}
		self.headStart[c] = start
	}
	return nil
}

func (self *Columns) Rows() int { return self.rows }
func (self *Columns) Cols() int { return self.cols }

// Returns the row where the head of the column is at frame 0.
func (self *Columns) HeadStart(col int) int { return self.headStart[col] }

// Returns the streak length of the column, head included.
func (self *Columns) StreakLen(col int) int { return self.streakLen[col] }

// Returns the last row the column renders. Rows below it stay empty.
func (self *Columns) Cutoff(col int) int { return self.cutoff[col] }

// Returns the base glyph at the given cell, before scrolling.
func (self *Columns) Letter(row, col int) rune {
	return self.letters[row*self.cols + col]
}

// Returns the glyph shown at the given cell and frame: the base glyph
// grid scrolls down one row per frame, wrapping around.
func (self *Columns) Scrolled(frame, row, col int) rune {
	return self.Letter(mod(row - frame, self.rows), col)
}

// Classifies the cell at the given frame. The returned distance is the
// number of rows between the cell and the column's head (wrapping),
// which is 0 for the head itself and the tail step for tail cells.
// The result is periodic in frame with period Rows.
func (self *Columns) Classify(frame, row, col int) (CellState, int) {
	head := mod(self.headStart[col] + frame, self.rows)
	dist := mod(row - head, self.rows)
	switch {
	case dist == 0: return Head, dist
	case dist < self.streakLen[col]: return Tail, dist
	default: return Outside, dist
	}
}

// Modulo with a non-negative result for positive m.
func mod(a, m int) int {
	a %= m
	if a < 0 { a += m }
	return a
}
