package rain

import "strconv"
import "crypto/sha1"
import "encoding/binary"
import "math/rand/v2"

// Tags used to decorrelate the different per-cell rolls.
const (
	TagHeadFlicker = "head_flicker"
	TagTailFlicker = "tail_flicker"
	TagBackground  = "bg"
)

// Chance is a source of per-cell randomness without state: every
// result is a pure function of the seed and the (row, col, frame, tag)
// tuple, so it doesn't matter in which order or on which goroutine
// cells are evaluated.
type Chance struct {
	seed int64
}

func NewChance(seed int64) Chance {
	return Chance{ seed: seed }
}

// Reports whether the event with probability p happens for the
// given tuple. p <= 0 never happens, p >= 1 always does.
func (self Chance) Roll(row, col, frame int, tag string, p float64) bool {
	if p <= 0 { return false }
	if p >= 1 { return true }
	return self.source(row, col, frame, tag).Float64() < p
}

// Returns an index in [0, n) for the given tuple. Panics if n <= 0.
func (self Chance) Pick(row, col, frame int, tag string, n int) int {
	return self.source(row, col, frame, tag).IntN(n)
}

// Hashes "seed|tag|row|col|frame" with SHA-1, keeps the lowest 31
// bits of the digest and uses them to seed a fresh generator.
func (self Chance) source(row, col, frame int, tag string) *rand.Rand {
	key := make([]byte, 0, 64)
	key = strconv.AppendInt(key, self.seed, 10)
	key = append(key, '|')
	key = append(key, tag...)
	key = append(key, '|')
	key = strconv.AppendInt(key, int64(row), 10)
	key = append(key, '|')
	key = strconv.AppendInt(key, int64(col), 10)
	key = append(key, '|')
	key = strconv.AppendInt(key, int64(frame), 10)

	digest := sha1.Sum(key)
	derived := binary.BigEndian.Uint32(digest[len(digest) - 4 : ]) & 0x7FFFFFFF
	return rand.New(rand.NewPCG(uint64(derived), 0))
}
