package rain

import "os"
import "bytes"
import "errors"
import "context"
import "testing"
import "image/png"
import "path/filepath"

import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/font/gofont/gomono"

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols = 4, 5
	cfg.Width, cfg.Height = 80, 48
	cfg.StreakMin, cfg.StreakMax = 2, 3
	cfg.CutoffStart, cfg.CutoffSpan = 1, 0
	cfg.Glyphs = PaletteASCII
	return cfg
}

func newTestExporter(t *testing.T, dir string) *Exporter {
	t.Helper()
	font, err := sfnt.Parse(gomono.TTF)
	if err != nil { t.Fatal(err) }
	return &Exporter{ Dir: dir, Workers: 3, Font: font }
}

func TestFrameFileName(t *testing.T) {
	if FrameFileName(0) != "frame_0001.png" { t.Fatalf("got %s", FrameFileName(0)) }
	if FrameFileName(23) != "frame_0024.png" { t.Fatalf("got %s", FrameFileName(23)) }
}

func TestExport(t *testing.T) {
	gen, err := NewGenerator(smallConfig())
	if err != nil { t.Fatal(err) }

	dirA, dirB := t.TempDir(), t.TempDir()
	paths, err := newTestExporter(t, dirA).Export(context.Background(), gen)
	if err != nil { t.Fatal(err) }
	if len(paths) != 4 { t.Fatalf("expected 4 frames, got %d", len(paths)) }
	for frame, path := range paths {
		if filepath.Base(path) != FrameFileName(frame) { t.Fatalf("unexpected path %s", path) }
		file, err := os.Open(path)
		if err != nil { t.Fatal(err) }
		img, err := png.Decode(file)
		_ = file.Close()
		if err != nil { t.Fatal(err) }
		if img.Bounds().Dx() != 80 || img.Bounds().Dy() != 48 {
			t.Fatalf("unexpected frame size %v", img.Bounds())
		}
	}

	// re-running produces identical files
	_, err = newTestExporter(t, dirB).Export(context.Background(), gen)
	if err != nil { t.Fatal(err) }
	for frame := 0; frame < 4; frame++ {
		a, err := os.ReadFile(filepath.Join(dirA, FrameFileName(frame)))
		if err != nil { t.Fatal(err) }
		b, err := os.ReadFile(filepath.Join(dirB, FrameFileName(frame)))
		if err != nil { t.Fatal(err) }
		if !bytes.Equal(a, b) { t.Fatalf("frame %d differs between runs", frame) }
	}

	entries, err := os.ReadDir(dirA)
	if err != nil { t.Fatal(err) }
	if len(entries) != 4 { t.Fatalf("expected only the 4 frames in the directory, got %d entries", len(entries)) }
}

func TestExportFrameFailure(t *testing.T) {
	gen, err := NewGenerator(smallConfig())
	if err != nil { t.Fatal(err) }
	dir := t.TempDir()

	// a directory in the way of the second frame
	err = os.Mkdir(filepath.Join(dir, FrameFileName(1)), 0o755)
	if err != nil { t.Fatal(err) }

	paths, err := newTestExporter(t, dir).Export(context.Background(), gen)
	if err == nil { t.Fatal("expected an error") }
	var frameErr *FrameError
	if !errors.As(err, &frameErr) || frameErr.Frame != 1 {
		t.Fatalf("expected a FrameError for frame 1, got %v", err)
	}
	if len(paths) != 3 { t.Fatalf("expected the other 3 frames to be written, got %d", len(paths)) }
}

func TestExportErrors(t *testing.T) {
	gen, err := NewGenerator(smallConfig())
	if err != nil { t.Fatal(err) }

	exporter := newTestExporter(t, t.TempDir())
	exporter.Font = nil
	_, err = exporter.Export(context.Background(), gen)
	if !errors.Is(err, ErrNoFont) { t.Fatalf("expected ErrNoFont, got %v", err) }

	blocker := filepath.Join(t.TempDir(), "file")
	err = os.WriteFile(blocker, []byte("x"), 0o644)
	if err != nil { t.Fatal(err) }
	_, err = newTestExporter(t, filepath.Join(blocker, "out")).Export(context.Background(), gen)
	if err == nil { t.Fatal("expected an error when the output directory can't be created") }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	paths, err := newTestExporter(t, t.TempDir()).Export(ctx, gen)
	if !errors.Is(err, context.Canceled) || len(paths) != 0 {
		t.Fatalf("expected a canceled export, got %d paths and %v", len(paths), err)
	}
}
