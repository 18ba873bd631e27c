package composite

import "fmt"
import "errors"
import "strings"
import "strconv"
import "image/color"

var ErrInvalidConfig = errors.New("invalid composite configuration")

// How the mask luminance is applied to the overlay alpha.
type MaskMode uint8

const (
	// The overlay alpha is multiplied by the mask luminance, so only
	// the overlay pixels that are already opaque can remain visible.
	MaskMultiply MaskMode = iota

	// The overlay alpha is replaced by the mask luminance, which also
	// makes the transparent parts of the overlay visible wherever the
	// mask is bright.
	MaskCopy
)

func (self MaskMode) String() string {
	switch self {
	case MaskMultiply: return "multiply"
	case MaskCopy: return "copy"
	default:
		return "MaskMode(" + strconv.Itoa(int(self)) + ")"
	}
}

// Parses "multiply" or "copy".
func ParseMaskMode(name string) (MaskMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "multiply", "": return MaskMultiply, nil
	case "copy": return MaskCopy, nil
	default:
		return MaskMultiply, fmt.Errorf("unknown mask mode %q (expected multiply or copy)", name)
	}
}

// Config describes a compositing run.
type Config struct {
	Background string // background image path
	Frames string // glob matching the overlay frames, sorted by name

	// Mask image path. If it contains a frame number verb (%d or a
	// padded one like "mask_%03d.png"), the verb is replaced by the
	// 1-based frame number to use one mask per frame. Other percent
	// signs are kept as they are. Empty for no mask.
	Mask string
	InvertMask bool
	MaskMode MaskMode

	Output string // output GIF path
	DelayMs int // delay between frames, stored as centiseconds
	Dither bool // Floyd-Steinberg dithering when reducing colors

	// Pixels that don't change from one frame to the next (within
	// the fuzz tolerance, in [0, 1]) are made transparent.
	Optimize bool
	Fuzz float64

	Overlays []TextOverlay
	DebugDir string // if set, masked overlays are also written here
	Workers int // concurrent frames, runtime.NumCPU() if <= 0
}

// Returns the default compositing settings: 100ms frames, layer
// optimization and no mask. The background path is left empty.
func DefaultConfig() Config {
	return Config{
		Frames: "rain_frames/frame_*.png",
		Output: "out.gif",
		MaskMode: MaskMultiply,
		DelayMs: 100,
		Optimize: true,
	}
}

// Returns the GIF delay in centiseconds for the configured delay.
func (self *Config) DelayCentiseconds() int {
	return (self.DelayMs + 5)/10
}

// Checks the configuration, wrapping [ErrInvalidConfig] on failure.
func (self *Config) Validate() error {
	var problems []string
	if self.Background == "" { problems = append(problems, "missing background path") }
	if self.Frames == "" { problems = append(problems, "missing frames glob") }
	if self.Output == "" { problems = append(problems, "missing output path") }
	if self.DelayMs < 0 { problems = append(problems, fmt.Sprintf("negative delay %dms", self.DelayMs)) }
	if self.Fuzz < 0 || self.Fuzz > 1 {
		problems = append(problems, fmt.Sprintf("fuzz must be in [0, 1] (got %g)", self.Fuzz))
	}
	if self.MaskMode > MaskCopy { problems = append(problems, "unknown mask mode " + self.MaskMode.String()) }
	for i, overlay := range self.Overlays {
		if err := overlay.validate(); err != nil {
			problems = append(problems, fmt.Sprintf("text overlay #%d: %v", i, err))
		}
	}
	if len(problems) == 0 { return nil }
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}

// A line of text drawn on top of every frame.
type TextOverlay struct {
	Text string
	Size float64 // font size in pixels
	Color color.NRGBA
	Gravity Gravity
	Margin int // distance to the edges the gravity points to
	OffsetX, OffsetY int

	Backdrop bool // rounded rectangle behind the text
	BackdropColor color.NRGBA
	BackdropRadius float64
	BackdropPadding int
}

// Returns a white text overlay with the given text, size and gravity
// and a faint black rounded backdrop, disabled by default.
func NewTextOverlay(text string, size float64, gravity Gravity) TextOverlay {
	return TextOverlay{
		Text: text,
		Size: size,
		Color: color.NRGBA{255, 255, 255, 255},
		Gravity: gravity,
		Margin: 24,
		BackdropColor: color.NRGBA{0, 0, 0, 89}, // ~35%
		BackdropRadius: 12,
		BackdropPadding: 12,
	}
}

// Parses a text overlay in "gravity:size:margin:text" format, like
// "north:54:24:Proofs & Reasons". The text may contain colons.
func ParseTextOverlay(spec string) (TextOverlay, error) {
	parts := strings.SplitN(spec, ":", 4)
	if len(parts) != 4 {
		return TextOverlay{}, fmt.Errorf("text overlay %q: expected gravity:size:margin:text", spec)
	}
	gravity, err := ParseGravity(parts[0])
	if err != nil { return TextOverlay{}, fmt.Errorf("text overlay %q: %w", spec, err) }
	size, err := strconv.ParseFloat(parts[1], 64)
	if err != nil { return TextOverlay{}, fmt.Errorf("text overlay %q: bad size: %w", spec, err) }
	margin, err := strconv.Atoi(parts[2])
	if err != nil { return TextOverlay{}, fmt.Errorf("text overlay %q: bad margin: %w", spec, err) }

	overlay := NewTextOverlay(parts[3], size, gravity)
	overlay.Margin = margin
	return overlay, overlay.validate()
}

func (self *TextOverlay) validate() error {
	if self.Text == "" { return errors.New("empty text") }
	if !(self.Size > 0) { return fmt.Errorf("size must be positive (got %g)", self.Size) }
	if self.Margin < 0 { return fmt.Errorf("negative margin %d", self.Margin) }
	if self.BackdropRadius < 0 || self.BackdropPadding < 0 {
		return errors.New("negative backdrop radius or padding")
	}
	return nil
}
