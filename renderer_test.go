package glyphrain

import "math"
import "image"
import "image/color"
import "testing"

import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/font/gofont/gomono"

import "github.com/tinne26/glyphrain/cache"

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	font, err := sfnt.Parse(gomono.TTF)
	if err != nil { t.Fatal(err) }
	renderer := NewRenderer()
	renderer.SetFont(font)
	renderer.SetSize(40)
	return renderer
}

// Returns the bounds of the pixels with non-zero alpha.
func inkBounds(img *image.RGBA) image.Rectangle {
	var ink image.Rectangle
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.RGBAAt(x, y).A == 0 { continue }
			ink = ink.Union(image.Rect(x, y, x + 1, y + 1))
		}
	}
	return ink
}

func TestAlignAdjusted(t *testing.T) {
	align := Baseline | Left
	align = align.Adjusted(Top)
	if align != Top | Left { t.Fatalf("expected (Top | Left), got %s", align) }
	align = align.Adjusted(Right)
	if align != Top | Right { t.Fatalf("expected (Top | Right), got %s", align) }
	align = align.Adjusted(Center)
	if align.Vert() != VertCenter || align.Horz() != HorzCenter {
		t.Fatalf("expected centered align, got %s", align)
	}
}

func TestRendererDrawCentered(t *testing.T) {
	renderer := newTestRenderer(t)
	renderer.SetAlign(Center)
	target := image.NewRGBA(image.Rect(0, 0, 100, 100))
	renderer.Draw(target, "A", 50, 50)

	ink := inkBounds(target)
	if ink.Empty() { t.Fatal("nothing drawn") }
	cx := float64(ink.Min.X + ink.Max.X)/2.0
	cy := float64(ink.Min.Y + ink.Max.Y)/2.0
	if math.Abs(cx - 50) > 4 || math.Abs(cy - 50) > 8 {
		t.Fatalf("glyph not centered around (50, 50), ink bounds %v", ink)
	}
}

func TestRendererColor(t *testing.T) {
	renderer := newTestRenderer(t)
	renderer.SetAlign(Center)
	renderer.SetColor(color.NRGBA{255, 240, 176, 255})
	target := image.NewRGBA(image.Rect(0, 0, 100, 100))
	renderer.Draw(target, "█", 50, 50)

	opaque := 0
	for i := 0; i < len(target.Pix); i += 4 {
		if target.Pix[i + 3] != 255 { continue }
		opaque += 1
		pixel := color.RGBA{target.Pix[i], target.Pix[i + 1], target.Pix[i + 2], target.Pix[i + 3]}
		if pixel != (color.RGBA{255, 240, 176, 255}) {
			t.Fatalf("unexpected opaque pixel color %v", pixel)
		}
	}
	if opaque == 0 { t.Fatal("expected some fully covered pixels") }

	// half transparent fill over transparent target
	renderer.SetColor(color.NRGBA{0, 255, 0, 128})
	target = image.NewRGBA(image.Rect(0, 0, 100, 100))
	renderer.Draw(target, "█", 50, 50)
	maxAlpha := uint8(0)
	for i := 3; i < len(target.Pix); i += 4 { maxAlpha = max(maxAlpha, target.Pix[i]) }
	if maxAlpha < 127 || maxAlpha > 129 {
		t.Fatalf("expected alpha around 128, got %d", maxAlpha)
	}
}

func TestRendererMissingGlyph(t *testing.T) {
	renderer := newTestRenderer(t)
	if renderer.HasGlyph('😀') { t.Fatal("unexpected glyph for '😀'") }
	if !renderer.HasGlyph('λ') { t.Fatal("expected glyph for 'λ'") }

	target := image.NewRGBA(image.Rect(0, 0, 100, 100))
	renderer.Draw(target, "😀", 50, 50)
	if !inkBounds(target).Empty() { t.Fatal("missing glyph drew something") }
	width, _ := renderer.Measure("😀")
	if width != 0 { t.Fatalf("missing glyph has width %f", width) }
}

func TestRendererMeasure(t *testing.T) {
	renderer := newTestRenderer(t)
	oneWidth, oneHeight := renderer.Measure("A")
	fourWidth, _ := renderer.Measure("AAAA")
	if oneWidth <= 0 || oneHeight <= 0 { t.Fatalf("bad measure (%f, %f)", oneWidth, oneHeight) }
	if math.Abs(fourWidth - 4*oneWidth) > 1.0/64.0 {
		t.Fatalf("monospaced width mismatch: %f vs 4*%f", fourWidth, oneWidth)
	}

	twoWidth, twoHeight := renderer.Measure("A\nAA")
	if twoWidth != 2*oneWidth { t.Fatalf("expected widest line width, got %f", twoWidth) }
	if math.Abs(twoHeight - (oneHeight + renderer.LineHeight())) > 1.0/64.0 {
		t.Fatalf("unexpected two line height %f", twoHeight)
	}
}

func TestRendererHorzAlign(t *testing.T) {
	renderer := newTestRenderer(t)
	width, _ := renderer.Measure("AB")

	left := image.NewRGBA(image.Rect(0, 0, 200, 100))
	renderer.SetAlign(Left | Baseline)
	renderer.Draw(left, "AB", 100, 60)

	right := image.NewRGBA(image.Rect(0, 0, 200, 100))
	renderer.SetAlign(Right)
	renderer.Draw(right, "AB", 100 + width, 60)

	leftInk, rightInk := inkBounds(left), inkBounds(right)
	if leftInk != rightInk {
		t.Fatalf("aligns mismatch: left %v, right %v", leftInk, rightInk)
	}
	if leftInk.Min.X < 100 { t.Fatalf("left aligned text starts before x: %v", leftInk) }
}

func TestRendererCache(t *testing.T) {
	glyphCache := cache.NewDefaultCache(1024*1024)
	cached := newTestRenderer(t)
	cached.SetCacheHandler(glyphCache.NewHandler())
	uncached := newTestRenderer(t)

	a := image.NewRGBA(image.Rect(0, 0, 200, 100))
	b := image.NewRGBA(image.Rect(0, 0, 200, 100))
	cached.Draw(a, "λλλ", 10, 60)
	uncached.Draw(b, "λλλ", 10, 60)
	if glyphCache.NumEntries() != 1 {
		t.Fatalf("expected 1 cached mask, got %d", glyphCache.NumEntries())
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] { t.Fatal("cached and uncached draws differ") }
	}

	cached.SetSize(20)
	cached.Draw(a, "λ", 10, 60)
	if glyphCache.NumEntries() != 2 {
		t.Fatalf("expected 2 cached masks after size change, got %d", glyphCache.NumEntries())
	}
}
