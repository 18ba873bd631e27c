package composite

import "os"
import "errors"
import "context"
import "testing"
import "image"
import "image/gif"
import "image/png"
import "image/color"
import "path/filepath"

import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/font/gofont/goregular"

func writeTestPNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	file, err := os.Create(path)
	if err != nil { t.Fatal(err) }
	defer file.Close()
	err = png.Encode(file, img)
	if err != nil { t.Fatal(err) }
}

func solidImage(width, height int, clr color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ { img.Set(x, y, clr) }
	}
	return img
}

// Left half white, right half black.
func halfMask(width, height int) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width/2; x++ { mask.SetGray(x, y, color.Gray{255}) }
	}
	return mask
}

var (
	red   = color.NRGBA{255, 0, 0, 255}
	green = color.NRGBA{0, 255, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
)

// Sets up background, mask and three overlay frames (red, red, green).
func setupScene(t *testing.T) (string, Config) {
	t.Helper()
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "bg.png"), solidImage(40, 30, blue))
	writeTestPNG(t, filepath.Join(dir, "mask.png"), halfMask(40, 30))
	err := os.Mkdir(filepath.Join(dir, "frames"), 0o755)
	if err != nil { t.Fatal(err) }
	for i, clr := range []color.NRGBA{red, red, green} {
		name := filepath.Join(dir, "frames", "frame_000" + string(rune('1' + i)) + ".png")
		writeTestPNG(t, name, solidImage(40, 30, clr))
	}

	cfg := DefaultConfig()
	cfg.Background = filepath.Join(dir, "bg.png")
	cfg.Frames = filepath.Join(dir, "frames", "frame_*.png")
	cfg.Mask = filepath.Join(dir, "mask.png")
	cfg.Output = filepath.Join(dir, "out", "anim.gif")
	cfg.Workers = 2
	return dir, cfg
}

func decodeGIF(t *testing.T, path string) *gif.GIF {
	t.Helper()
	file, err := os.Open(path)
	if err != nil { t.Fatal(err) }
	defer file.Close()
	anim, err := gif.DecodeAll(file)
	if err != nil { t.Fatal(err) }
	return anim
}

func near(clr color.Color, target color.NRGBA) bool {
	r, g, b, a := clr.RGBA()
	if a>>8 != uint32(target.A) { return false }
	diff := func(x uint32, y uint8) bool {
		d := int(x>>8) - int(y)
		return d > -64 && d < 64
	}
	return diff(r, target.R) && diff(g, target.G) && diff(b, target.B)
}

func TestCompositorRun(t *testing.T) {
	_, cfg := setupScene(t)
	result, err := (&Compositor{ Config: cfg }).Run(context.Background())
	if err != nil { t.Fatal(err) }
	if result.Frames != 3 || result.Width != 40 || result.Height != 30 {
		t.Fatalf("unexpected result %+v", result)
	}

	anim := decodeGIF(t, cfg.Output)
	if len(anim.Image) != 3 { t.Fatalf("expected 3 frames, got %d", len(anim.Image)) }
	if anim.LoopCount != 0 { t.Fatalf("expected infinite loop, got %d", anim.LoopCount) }
	for i, delay := range anim.Delay {
		if delay != 10 { t.Fatalf("frame %d: expected 10cs delay, got %d", i, delay) }
	}

	first := anim.Image[0]
	if !near(first.At(5, 5), red) { t.Fatalf("masked-in area should be red, got %v", first.At(5, 5)) }
	if !near(first.At(35, 5), blue) { t.Fatalf("masked-out area should be blue, got %v", first.At(35, 5)) }

	// identical second frame: everything transparent
	_, _, _, a := anim.Image[1].At(5, 5).RGBA()
	if a != 0 { t.Fatal("unchanged pixel was not optimized away") }

	third := anim.Image[2]
	if !near(third.At(5, 5), green) { t.Fatalf("expected green, got %v", third.At(5, 5)) }
	_, _, _, a = third.At(35, 5).RGBA()
	if a != 0 { t.Fatal("unchanged background pixel was not optimized away") }
}

func TestCompositorMaskOptions(t *testing.T) {
	_, cfg := setupScene(t)
	cfg.InvertMask = true
	cfg.Optimize = false
	cfg.Dither = true
	_, err := (&Compositor{ Config: cfg }).Run(context.Background())
	if err != nil { t.Fatal(err) }
	anim := decodeGIF(t, cfg.Output)
	if !near(anim.Image[0].At(5, 5), blue) { t.Fatalf("inverted mask: expected blue, got %v", anim.Image[0].At(5, 5)) }
	if !near(anim.Image[1].At(35, 5), red) { t.Fatalf("inverted mask: expected red, got %v", anim.Image[1].At(35, 5)) }

	overlay := image.NewNRGBA(image.Rect(0, 0, 4, 2)) // fully transparent
	mask := halfMask(4, 2)
	copied := ApplyMask(overlay, mask, MaskCopy)
	if copied.NRGBAAt(0, 0).A != 255 || copied.NRGBAAt(3, 0).A != 0 {
		t.Fatal("copy mode should take the alpha from the mask")
	}
	multiplied := ApplyMask(overlay, mask, MaskMultiply)
	if multiplied.NRGBAAt(0, 0).A != 0 { t.Fatal("multiply mode made a transparent pixel visible") }
}

func TestCompositorDebugAndText(t *testing.T) {
	dir, cfg := setupScene(t)
	cfg.DebugDir = filepath.Join(dir, "debug")
	overlay := NewTextOverlay("Rain", 12, North)
	overlay.Margin = 2
	overlay.Backdrop = true
	cfg.Overlays = []TextOverlay{overlay}

	_, err := (&Compositor{ Config: cfg }).Run(context.Background())
	if !errors.Is(err, ErrInvalidConfig) { t.Fatalf("expected a missing font error, got %v", err) }

	font, err := sfnt.Parse(goregular.TTF)
	if err != nil { t.Fatal(err) }
	_, err = (&Compositor{ Config: cfg, Font: font }).Run(context.Background())
	if err != nil { t.Fatal(err) }
	debugFiles, err := filepath.Glob(filepath.Join(cfg.DebugDir, "overlay_only_*.png"))
	if err != nil || len(debugFiles) != 3 { t.Fatalf("expected 3 debug overlays, got %d (%v)", len(debugFiles), err) }
}

func TestCompositorErrors(t *testing.T) {
	dir, cfg := setupScene(t)
	cfg.Frames = filepath.Join(dir, "nothing_*.png")
	_, err := (&Compositor{ Config: cfg }).Run(context.Background())
	if !errors.Is(err, ErrNoFrames) { t.Fatalf("expected ErrNoFrames, got %v", err) }

	_, cfg = setupScene(t)
	cfg.Background = filepath.Join(dir, "missing.png")
	_, err = (&Compositor{ Config: cfg }).Run(context.Background())
	if err == nil || !errors.Is(err, os.ErrNotExist) { t.Fatalf("expected a missing background error, got %v", err) }

	_, cfg = setupScene(t)
	cfg.Mask = filepath.Join(dir, "mask_%03d.png")
	_, err = (&Compositor{ Config: cfg }).Run(context.Background())
	if err == nil || !errors.Is(err, os.ErrNotExist) { t.Fatalf("expected a missing mask error, got %v", err) }

	cfg = DefaultConfig()
	err = cfg.Validate()
	if !errors.Is(err, ErrInvalidConfig) { t.Fatalf("expected ErrInvalidConfig, got %v", err) }
}

func TestMaskPaths(t *testing.T) {
	tests := []struct{ pattern string; perFrame bool; second string }{
		{"mask.png", false, ""},
		{"100%.png", false, ""},
		{"50%_mask_%03d.png", true, "50%_mask_002.png"},
		{"mask_%d.png", true, "mask_2.png"},
		{"masks/%02d-100%.png", true, "masks/02-100%.png"},
	}
	for _, test := range tests {
		source := newMaskSource(test.pattern, false)
		if (source.verb != nil) != test.perFrame {
			t.Fatalf("%q: expected per frame %t", test.pattern, test.perFrame)
		}
		if test.perFrame && source.framePath(1) != test.second {
			t.Fatalf("%q: expected %q, got %q", test.pattern, test.second, source.framePath(1))
		}
	}

	// a literal percent sign in a single mask path loads that file
	dir, cfg := setupScene(t)
	writeTestPNG(t, filepath.Join(dir, "100%.png"), halfMask(40, 30))
	cfg.Mask = filepath.Join(dir, "100%.png")
	_, err := (&Compositor{ Config: cfg }).Run(context.Background())
	if err != nil { t.Fatalf("mask path with a percent sign: %v", err) }
}

func TestTextLayer(t *testing.T) {
	font, err := sfnt.Parse(goregular.TTF)
	if err != nil { t.Fatal(err) }
	north := NewTextOverlay("North", 10, North)
	north.Margin = 1
	south := NewTextOverlay("South", 10, South)
	south.Margin = 1
	south.Backdrop = true
	south.BackdropPadding = 2

	layer := renderTextLayer(100, 100, []TextOverlay{north, south}, font)
	inkRows := func(y0, y1 int) int {
		count := 0
		for y := y0; y < y1; y++ {
			for x := 0; x < 100; x++ {
				if layer.RGBAAt(x, y).A > 0 { count += 1; break }
			}
		}
		return count
	}
	if inkRows(0, 20) == 0 { t.Fatal("north text missing") }
	if inkRows(80, 100) == 0 { t.Fatal("south text missing") }
	if inkRows(30, 70) != 0 { t.Fatal("unexpected ink in the middle of the layer") }

	// the backdrop is translucent black
	clr := layer.RGBAAt(50, 100 - 1 - 1)
	if clr.A == 0 || clr.A == 255 { t.Fatalf("expected translucent backdrop, got %v", clr) }
}

func TestParsers(t *testing.T) {
	for name, expected := range map[string]Gravity{
		"north": North, "South-East": SouthEast, "south_west": SouthWest, "CENTER": Center,
	} {
		gravity, err := ParseGravity(name)
		if err != nil || gravity != expected { t.Fatalf("ParseGravity(%q) = %s, %v", name, gravity, err) }
	}
	_, err := ParseGravity("up")
	if err == nil { t.Fatal("expected an error for an unknown gravity") }

	overlay, err := ParseTextOverlay("south:24:5:supported by: someone")
	if err != nil { t.Fatal(err) }
	if overlay.Gravity != South || overlay.Size != 24 || overlay.Margin != 5 || overlay.Text != "supported by: someone" {
		t.Fatalf("unexpected overlay %+v", overlay)
	}
	_, err = ParseTextOverlay("south:big:5:text")
	if err == nil { t.Fatal("expected an error for a bad size") }

	mode, err := ParseMaskMode("copy")
	if err != nil || mode != MaskCopy { t.Fatalf("ParseMaskMode: %s, %v", mode, err) }

	cfg := Config{ DelayMs: 45 }
	if cfg.DelayCentiseconds() != 5 { t.Fatalf("expected 5cs, got %d", cfg.DelayCentiseconds()) }
}

func TestNewMaskFill(t *testing.T) {
	mask := NewMask(halfMask(10, 10), 40, 30, false)
	if mask.Rect.Dx() != 40 || mask.Rect.Dy() != 30 { t.Fatalf("unexpected mask size %v", mask.Rect) }
	if mask.GrayAt(5, 15).Y < 250 || mask.GrayAt(35, 15).Y > 5 {
		t.Fatalf("unexpected mask values %d, %d", mask.GrayAt(5, 15).Y, mask.GrayAt(35, 15).Y)
	}
	inverted := NewMask(halfMask(10, 10), 10, 10, true)
	if inverted.GrayAt(0, 0).Y != 0 || inverted.GrayAt(9, 0).Y != 255 { t.Fatal("mask not inverted") }
}
