package composite

import "fmt"
import "strings"

// Gravity indicates the region of the image where an overlay is placed.
type Gravity uint8

const (
	Center Gravity = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var gravityNames = [...]string{
	"center", "north", "northeast", "east", "southeast",
	"south", "southwest", "west", "northwest",
}

func (self Gravity) String() string {
	if int(self) < len(gravityNames) { return gravityNames[self] }
	return fmt.Sprintf("Gravity(%d)", uint8(self))
}

// Parses gravity names like "north", "south-east" or "SouthWest".
// Dashes, underscores and case are ignored.
func ParseGravity(name string) (Gravity, error) {
	normalized := strings.ToLower(name)
	normalized = strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized)
	for i, gravityName := range gravityNames {
		if normalized == gravityName { return Gravity(i), nil }
	}
	return Center, fmt.Errorf("unknown gravity %q", name)
}

// Returns -1, 0 or +1 for west, center and east.
func (self Gravity) horz() int {
	switch self {
	case NorthWest, West, SouthWest: return -1
	case NorthEast, East, SouthEast: return +1
	default: return 0
	}
}

// Returns -1, 0 or +1 for north, center and south.
func (self Gravity) vert() int {
	switch self {
	case NorthWest, North, NorthEast: return -1
	case SouthWest, South, SouthEast: return +1
	default: return 0
	}
}

// Returns the top-left corner of a box of the given size placed in
// a container according to the gravity and margin.
func (self Gravity) place(containerW, containerH, boxW, boxH, margin int) (int, int) {
	var x, y int
	switch self.horz() {
	case -1: x = margin
	case +1: x = containerW - boxW - margin
	default: x = (containerW - boxW)/2
	}
	switch self.vert() {
	case -1: y = margin
	case +1: y = containerH - boxH - margin
	default: y = (containerH - boxH)/2
	}
	return x, y
}
