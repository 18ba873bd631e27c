package glyphrain

// Aligns tell a [Renderer] how to interpret the coordinates
// that [Renderer.Draw]() receives.
//
// Aligns have a vertical and a horizontal component, which can be
// combined with the | operator: Top | Right, VertCenter | Left, etc.
// If one component is missing, the renderer keeps the current value
// for it.
type Align uint8

const (
	alignVertBits Align = 0b0000_1111
	alignHorzBits Align = 0b1111_0000
)

const (
	Top        Align = 0b0000_0001
	VertCenter Align = 0b0000_0010
	Baseline   Align = 0b0000_0100
	Bottom     Align = 0b0000_1000

	Left       Align = 0b0001_0000
	HorzCenter Align = 0b0010_0000
	Right      Align = 0b0100_0000

	Center = VertCenter | HorzCenter
)

// Returns the vertical component of the align.
func (self Align) Vert() Align { return self & alignVertBits }

// Returns the horizontal component of the align.
func (self Align) Horz() Align { return self & alignHorzBits }

// Returns the result of overwriting the current align with the
// non-empty components of the new align.
func (self Align) Adjusted(align Align) Align {
	vert, horz := align.Vert(), align.Horz()
	if vert != 0 { self = (self & alignHorzBits) | vert }
	if horz != 0 { self = (self & alignVertBits) | horz }
	return self
}

func (self Align) String() string {
	var vert, horz string
	switch self.Vert() {
	case Top: vert = "Top"
	case VertCenter: vert = "VertCenter"
	case Baseline: vert = "Baseline"
	case Bottom: vert = "Bottom"
	default: vert = "VertUnknown"
	}
	switch self.Horz() {
	case Left: horz = "Left"
	case HorzCenter: horz = "HorzCenter"
	case Right: horz = "Right"
	default: horz = "HorzUnknown"
	}
	return "(" + vert + " | " + horz + ")"
}
