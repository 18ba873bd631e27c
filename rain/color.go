package rain

import "fmt"
import "math"
import "sort"
import "image/color"

import "github.com/tanema/gween/ease"
import "github.com/lucasb-eyer/go-colorful"

var eases = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
}

// Returns the names of the eases accepted for the tail fade.
func Eases() []string {
	names := make([]string, 0, len(eases))
	for name := range eases { names = append(names, name) }
	sort.Strings(names)
	return names
}

// Returns the ease function with the given name.
func LookupEase(name string) (ease.TweenFunc, error) {
	fn, found := eases[name]
	if !found { return nil, fmt.Errorf("unknown tail ease %q (expected one of %v)", name, Eases()) }
	return fn, nil
}

// Returns the normalized position t in [0, 1] of a tail step. Steps go
// from 1 (right behind the head) to streakLen - 1.
func tailPosition(step, streakLen int) float64 {
	t := float64(step - 1)/float64(max(streakLen - 1, 1))
	return min(max(t, 0), 1)
}

// Returns the transparency of a tail step, from 0 (opaque) right behind
// the head, growing towards 255 at the end of the tail. With the linear
// ease, this is round(255*t).
func TailTransparency(step, streakLen int, fn ease.TweenFunc) uint8 {
	t := float32(tailPosition(step, streakLen))
	eased := float64(fn(t, 0, 1, 1))
	return uint8(min(max(math.Round(255*eased), 0), 255))
}

// Returns the non-premultiplied color of a tail step: a fixed hue and
// saturation with a value fading from 1 to 1 - fade along the tail, and
// an alpha of 255 minus [TailTransparency]().
func TailColor(step, streakLen int, hue, saturation, fade float64, fn ease.TweenFunc) color.NRGBA {
	t := tailPosition(step, streakLen)
	r, g, b := colorful.Hsv(hue, saturation, 1 - fade*t).RGB255()
	return color.NRGBA{r, g, b, 255 - TailTransparency(step, streakLen, fn)}
}
