package composite

import "os"
import "fmt"
import "sort"
import "errors"
import "context"
import "runtime"
import "regexp"
import "sync"
import "image"
import "image/draw"
import "image/gif"
import "path/filepath"

import "golang.org/x/sync/errgroup"
import "golang.org/x/image/font/sfnt"
import "github.com/hashicorp/go-hclog"

var ErrNoFrames = errors.New("no overlay frames matched")

// Compositor runs the compositing described by its configuration.
type Compositor struct {
	Config Config
	Font *sfnt.Font // required only for text overlays
	Logger hclog.Logger // nil for no logging
}

// Summary of a successful run.
type Result struct {
	Output string
	Frames int
	Width, Height int
}

// Lists the overlay frames matching the configured glob, sorted by name.
func (self *Compositor) FramePaths() ([]string, error) {
	paths, err := filepath.Glob(self.Config.Frames)
	if err != nil { return nil, fmt.Errorf("frames glob %q: %w", self.Config.Frames, err) }
	if len(paths) == 0 { return nil, fmt.Errorf("%w: %q", ErrNoFrames, self.Config.Frames) }
	sort.Strings(paths)
	return paths, nil
}

// Composes every overlay frame and writes the resulting GIF.
// Any failure aborts the run with an error naming the offending path.
func (self *Compositor) Run(ctx context.Context) (*Result, error) {
	cfg := &self.Config
	err := cfg.Validate()
	if err != nil { return nil, err }
	if len(cfg.Overlays) > 0 && self.Font == nil {
		return nil, fmt.Errorf("%w: text overlays require a font", ErrInvalidConfig)
	}
	logger := self.Logger
	if logger == nil { logger = hclog.NewNullLogger() }

	paths, err := self.FramePaths()
	if err != nil { return nil, err }
	bgImage, err := loadImage(cfg.Background)
	if err != nil { return nil, fmt.Errorf("background: %w", err) }
	background := image.NewRGBA(image.Rect(0, 0, bgImage.Bounds().Dx(), bgImage.Bounds().Dy()))
	draw.Draw(background, background.Rect, bgImage, bgImage.Bounds().Min, draw.Src)
	width, height := background.Rect.Dx(), background.Rect.Dy()

	var textLayer *image.RGBA
	if len(cfg.Overlays) > 0 {
		textLayer = renderTextLayer(width, height, cfg.Overlays, self.Font)
	}
	if cfg.DebugDir != "" {
		err = os.MkdirAll(cfg.DebugDir, 0o755)
		if err != nil { return nil, fmt.Errorf("debug directory %q: %w", cfg.DebugDir, err) }
	}
	logger.Info("compositing", "frames", len(paths), "background", cfg.Background,
		"size", fmt.Sprintf("%dx%d", width, height), "mask", cfg.Mask)

	// compose frames concurrently, encode them in order afterwards
	masks := newMaskSource(cfg.Mask, cfg.InvertMask)
	composed := make([]*image.RGBA, len(paths))
	group, groupCtx := errgroup.WithContext(ctx)
	workers := cfg.Workers
	if workers <= 0 { workers = runtime.NumCPU() }
	group.SetLimit(workers)
	for i, path := range paths {
		group.Go(func() error {
			if groupCtx.Err() != nil { return groupCtx.Err() }
			frame, err := self.composeFrame(i, path, background, textLayer, masks)
			if err != nil { return err }
			composed[i] = frame
			logger.Debug("frame composed", "frame", i + 1, "path", path)
			return nil
		})
	}
	err = group.Wait()
	if err != nil { return nil, err }

	builder := newGIFBuilder(cfg)
	for _, frame := range composed { builder.Add(frame) }
	err = writeGIF(cfg.Output, builder.GIF())
	if err != nil { return nil, fmt.Errorf("writing %q: %w", cfg.Output, err) }

	logger.Info("gif written", "path", cfg.Output, "frames", len(composed),
		"delay_cs", cfg.DelayCentiseconds())
	return &Result{ Output: cfg.Output, Frames: len(composed), Width: width, Height: height }, nil
}

func (self *Compositor) composeFrame(index int, path string, background, textLayer *image.RGBA, masks *maskSource) (*image.RGBA, error) {
	cfg := &self.Config
	img, err := loadImage(path)
	if err != nil { return nil, fmt.Errorf("overlay frame: %w", err) }
	overlay := resizeToFit(toNRGBA(img), background.Rect.Dx(), background.Rect.Dy())

	mask, err := masks.Get(index, overlay.Rect.Dx(), overlay.Rect.Dy())
	if err != nil { return nil, err }
	if mask != nil { overlay = ApplyMask(overlay, mask, cfg.MaskMode) }

	if cfg.DebugDir != "" {
		debugPath := filepath.Join(cfg.DebugDir, fmt.Sprintf("overlay_only_%03d.png", index + 1))
		err = writePNG(debugPath, overlay)
		if err != nil { return nil, fmt.Errorf("debug overlay %q: %w", debugPath, err) }
	}

	frame := image.NewRGBA(background.Rect)
	copy(frame.Pix, background.Pix)
	draw.Draw(frame, overlay.Rect, overlay, image.Point{}, draw.Over)
	if textLayer != nil {
		draw.Draw(frame, frame.Rect, textLayer, image.Point{}, draw.Over)
	}
	return frame, nil
}

func writeGIF(path string, anim *gif.GIF) error {
	dir := filepath.Dir(path)
	err := os.MkdirAll(dir, 0o755)
	if err != nil { return err }
	return writeAtomically(path, func(file *os.File) error {
		return gif.EncodeAll(file, anim)
	})
}

// Provides the mask for each frame. A single mask image is decoded
// once and kept resized for each overlay size, while patterns with a
// frame number verb are loaded for each frame.
type maskSource struct {
	pattern string
	verb []int // location of the frame number verb, nil if none
	invert bool

	mutex sync.Mutex
	decoded image.Image
	decodeErr error
	bySize map[image.Point]*image.Gray
}

// Frame number verbs like %d or %03d. Other percent signs in mask
// paths are taken literally.
var frameVerb = regexp.MustCompile(`%0?[1-9]?[0-9]*d`)

func newMaskSource(pattern string, invert bool) *maskSource {
	return &maskSource{
		pattern: pattern,
		verb: frameVerb.FindStringIndex(pattern),
		invert: invert,
		bySize: make(map[image.Point]*image.Gray),
	}
}

// Returns the mask for the given frame index, or nil if no mask is
// configured. Safe for concurrent use.
func (self *maskSource) Get(index int, width, height int) (*image.Gray, error) {
	if self.pattern == "" { return nil, nil }
	if self.verb != nil {
		path := self.framePath(index)
		mask, err := LoadMask(path, width, height, self.invert)
		if err != nil { return nil, fmt.Errorf("mask: %w", err) }
		return mask, nil
	}

	self.mutex.Lock()
	defer self.mutex.Unlock()
	if self.decoded == nil && self.decodeErr == nil {
		self.decoded, self.decodeErr = loadImage(self.pattern)
		if self.decodeErr != nil { self.decodeErr = fmt.Errorf("mask: %w", self.decodeErr) }
	}
	if self.decodeErr != nil { return nil, self.decodeErr }

	size := image.Pt(width, height)
	mask, found := self.bySize[size]
	if !found {
		mask = NewMask(self.decoded, width, height, self.invert)
		self.bySize[size] = mask
	}
	return mask, nil
}

// Returns the mask path for the given frame index, formatting the
// frame verb with the 1-based frame number.
func (self *maskSource) framePath(index int) string {
	start, end := self.verb[0], self.verb[1]
	number := fmt.Sprintf(self.pattern[start : end], index + 1)
	return self.pattern[ : start] + number + self.pattern[end : ]
}
