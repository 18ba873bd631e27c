package rain

import "math"
import "testing"
import "image/color"

import "github.com/tanema/gween/ease"

func TestTailTransparencyLaw(t *testing.T) {
	for streakLen := 2; streakLen <= 14; streakLen++ {
		prev := uint8(0)
		for step := 1; step < streakLen; step++ {
			transparency := TailTransparency(step, streakLen, ease.Linear)
			if transparency < prev {
				t.Fatalf("len %d: transparency decreased at step %d", streakLen, step)
			}
			prev = transparency

			expected := math.Round(255*float64(step - 1)/float64(max(streakLen - 1, 1)))
			if math.Abs(float64(transparency) - expected) > 1 {
				t.Fatalf("len %d step %d: expected ~%v, got %d", streakLen, step, expected, transparency)
			}
		}
		if TailTransparency(1, streakLen, ease.Linear) != 0 {
			t.Fatalf("len %d: first tail step must be opaque", streakLen)
		}
	}
	if TailTransparency(13, 14, ease.Linear) < 230 {
		t.Fatal("the tail end should be nearly transparent")
	}
}

func TestTailColor(t *testing.T) {
	first := TailColor(1, 10, 40, 1, 0.1, ease.Linear)
	if first != (color.NRGBA{255, 170, 0, 255}) {
		t.Fatalf("unexpected head-adjacent tail color %v", first)
	}

	last := TailColor(9, 10, 40, 1, 0.1, ease.Linear)
	if last.A != 255 - TailTransparency(9, 10, ease.Linear) {
		t.Fatalf("unexpected tail end alpha %d", last.A)
	}
	if last.R >= first.R { t.Fatalf("tail value should fade (%v vs %v)", last, first) }
	if last.B != 0 { t.Fatalf("unexpected blue component in %v", last) }
}

func TestEases(t *testing.T) {
	for _, name := range Eases() {
		fn, err := LookupEase(name)
		if err != nil { t.Fatal(err) }
		if TailTransparency(1, 8, fn) != 0 { t.Fatalf("%s: first step must be opaque", name) }
		prev := uint8(0)
		for step := 1; step < 8; step++ {
			transparency := TailTransparency(step, 8, fn)
			if transparency < prev { t.Fatalf("%s: non monotonic at step %d", name, step) }
			prev = transparency
		}
	}
	_, err := LookupEase("bounce-everywhere")
	if err == nil { t.Fatal("expected an error for an unknown ease") }
}
