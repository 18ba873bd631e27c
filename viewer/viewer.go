// Package viewer plays exported frames in a window with Ebitengine.
//
// Frames loop at a fixed delay over a solid background, since rain
// frames are transparent. Space pauses, the arrow keys step through
// frames while paused and Esc or Q close the window.
package viewer

import "os"
import "fmt"
import "sort"
import "time"
import "image"
import "image/color"
import "path/filepath"

import _ "image/png"

import "github.com/hajimehoshi/ebiten/v2"
import "github.com/hajimehoshi/ebiten/v2/inpututil"
import "github.com/hashicorp/go-hclog"

import "github.com/tinne26/glyphrain/preview"

// Options for [Run]().
type Options struct {
	Title string
	Delay time.Duration // 100ms if zero
	Background color.RGBA
	Scale float64 // initial window scale, 1 if zero
	Logger hclog.Logger
}

// Decodes the frames matching the glob, sorted by name.
func LoadFrames(glob string) ([]image.Image, error) {
	paths, err := filepath.Glob(glob)
	if err != nil { return nil, err }
	if len(paths) == 0 { return nil, fmt.Errorf("no frames match %q", glob) }
	sort.Strings(paths)

	frames := make([]image.Image, 0, len(paths))
	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil { return nil, err }
		img, _, err := image.Decode(file)
		_ = file.Close()
		if err != nil { return nil, fmt.Errorf("decoding %q: %w", path, err) }
		frames = append(frames, img)
	}
	return frames, nil
}

// Opens a window and plays the frames until it's closed.
func Run(frames []image.Image, opts Options) error {
	if len(frames) == 0 { return fmt.Errorf("no frames to play") }
	logger := opts.Logger
	if logger == nil { logger = hclog.NewNullLogger() }
	delay := opts.Delay
	if delay <= 0 { delay = 100*time.Millisecond }
	scale := opts.Scale
	if scale <= 0 { scale = 1 }

	player := &player{
		clock: preview.Clock{ Delay: delay, Frames: len(frames) },
		background: opts.Background,
		start: time.Now(),
	}
	for _, frame := range frames {
		player.frames = append(player.frames, ebiten.NewImageFromImage(frame))
	}

	bounds := frames[0].Bounds()
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(int(float64(bounds.Dx())*scale), int(float64(bounds.Dy())*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	logger.Debug("viewer started", "frames", len(frames), "delay", delay)

	err := ebiten.RunGame(player)
	if err == ebiten.Termination { return nil }
	return err
}

type player struct {
	frames []*ebiten.Image
	clock preview.Clock
	background color.RGBA
	start time.Time
	current int
	paused bool
	pausedAt time.Duration
}

func (self *player) Layout(winWidth, winHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	return int(float64(winWidth)*scale), int(float64(winHeight)*scale)
}

func (self *player) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if self.paused {
			self.start = time.Now().Add(-self.pausedAt)
		} else {
			self.pausedAt = time.Since(self.start)
		}
		self.paused = !self.paused
	}

	if self.paused {
		count := len(self.frames)
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) { self.current = (self.current + 1) % count }
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) { self.current = (self.current + count - 1) % count }
		self.pausedAt = time.Duration(self.current)*self.clock.Delay
		return nil
	}
	self.current = self.clock.Frame(time.Since(self.start))
	return nil
}

func (self *player) Draw(canvas *ebiten.Image) {
	canvas.Fill(self.background)
	frame := self.frames[self.current]

	// fit the frame inside the canvas, centered
	canvasBounds, frameBounds := canvas.Bounds(), frame.Bounds()
	scaleX := float64(canvasBounds.Dx())/float64(frameBounds.Dx())
	scaleY := float64(canvasBounds.Dy())/float64(frameBounds.Dy())
	scale := min(scaleX, scaleY)
	var opts ebiten.DrawImageOptions
	opts.GeoM.Scale(scale, scale)
	offsetX := (float64(canvasBounds.Dx()) - float64(frameBounds.Dx())*scale)/2
	offsetY := (float64(canvasBounds.Dy()) - float64(frameBounds.Dy())*scale)/2
	opts.GeoM.Translate(offsetX, offsetY)
	opts.Filter = ebiten.FilterLinear
	canvas.DrawImage(frame, &opts)
}
