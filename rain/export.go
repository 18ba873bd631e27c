package rain

import "os"
import "fmt"
import "sync"
import "errors"
import "context"
import "runtime"
import "image"
import "image/png"
import "path/filepath"

import "golang.org/x/sync/errgroup"
import "golang.org/x/image/font/sfnt"
import "github.com/hashicorp/go-hclog"

import "github.com/tinne26/glyphrain"
import "github.com/tinne26/glyphrain/cache"

var ErrNoFont = errors.New("exporter font is nil")

// Returns the file name of the given frame index. File numbers
// start at 1: frame 0 is "frame_0001.png".
func FrameFileName(frame int) string {
	return fmt.Sprintf("frame_%04d.png", frame + 1)
}

// FrameError reports the failure of a single frame. Other frames
// are not affected by it.
type FrameError struct {
	Frame int
	Path string
	Err error
}

func (self *FrameError) Error() string {
	return fmt.Sprintf("frame %d (%s): %v", self.Frame, self.Path, self.Err)
}

func (self *FrameError) Unwrap() error { return self.Err }

// Exporter renders the frames of a [Generator] as PNG files with
// transparent backgrounds.
type Exporter struct {
	Dir string // output directory, created if missing
	Workers int // number of concurrent frames, runtime.NumCPU() if <= 0
	Font *sfnt.Font
	Cache *cache.DefaultCache // shared glyph mask cache, 16MiB one if nil
	Logger hclog.Logger // nil for no logging
}

// Renders every frame of the generator and writes it to the output
// directory. Returns the paths of the frames written, in frame order.
//
// Frames are written to a temporary file first and then renamed, so a
// failing frame never leaves a partial file behind. Failures of single
// frames don't stop the rest; they are all returned together as
// [*FrameError] values joined with [errors.Join](). Once the context is
// canceled, no new frames are started and the context error is included
// in the returned error.
func (self *Exporter) Export(ctx context.Context, gen *Generator) ([]string, error) {
	if self.Font == nil { return nil, ErrNoFont }
	logger := self.Logger
	if logger == nil { logger = hclog.NewNullLogger() }

	err := os.MkdirAll(self.Dir, 0o755)
	if err != nil { return nil, fmt.Errorf("creating output directory %q: %w", self.Dir, err) }

	workers := self.Workers
	if workers <= 0 { workers = runtime.NumCPU() }
	glyphCache := self.Cache
	if glyphCache == nil { glyphCache = cache.NewDefaultCache(16*1024*1024) }

	// one renderer per worker, all sharing the same glyph cache
	renderers := make(chan *glyphrain.Renderer, workers)
	for i := 0; i < workers; i++ {
		renderer := glyphrain.NewRenderer()
		renderer.SetFont(self.Font)
		renderer.SetCacheHandler(glyphCache.NewHandler())
		renderers <- renderer
	}

	frameCount := gen.FrameCount()
	logger.Info("exporting frames", "dir", self.Dir, "frames", frameCount, "workers", workers)

	var mutex sync.Mutex
	var failures []error
	written := make([]bool, frameCount)
	paths := make([]string, frameCount)

	var group errgroup.Group
	group.SetLimit(workers)
	for frame := 0; frame < frameCount; frame++ {
		if ctx.Err() != nil { break }
		paths[frame] = filepath.Join(self.Dir, FrameFileName(frame))
		group.Go(func() error {
			renderer := <-renderers
			defer func() { renderers <- renderer }()

			err := self.exportFrame(gen, frame, paths[frame], renderer)
			if err != nil {
				logger.Error("frame failed", "frame", frame, "path", paths[frame], "error", err)
				mutex.Lock()
				failures = append(failures, &FrameError{ Frame: frame, Path: paths[frame], Err: err })
				mutex.Unlock()
				return nil
			}
			logger.Debug("frame saved", "frame", frame, "path", paths[frame])
			written[frame] = true
			return nil
		})
	}
	_ = group.Wait() // failures are collected on their own

	if ctx.Err() != nil { failures = append(failures, ctx.Err()) }
	var result []string
	for frame, ok := range written {
		if ok { result = append(result, paths[frame]) }
	}
	logger.Info("export finished", "written", len(result), "failed", frameCount - len(result),
		"cached_masks", glyphCache.NumEntries())
	return result, errors.Join(failures...)
}

func (self *Exporter) exportFrame(gen *Generator, frame int, path string, renderer *glyphrain.Renderer) error {
	cfg := gen.Config()
	canvas := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	gen.Paint(canvas, frame, renderer)
	return writePNG(path, canvas)
}

var pngEncoder = png.Encoder{
	CompressionLevel: png.DefaultCompression,
	BufferPool: &encoderBufferPool{},
}

type encoderBufferPool struct { pool sync.Pool }

func (self *encoderBufferPool) Get() *png.EncoderBuffer {
	buffer, _ := self.pool.Get().(*png.EncoderBuffer)
	return buffer
}

func (self *encoderBufferPool) Put(buffer *png.EncoderBuffer) {
	self.pool.Put(buffer)
}

// Writes the image to a temporary file in the same directory
// and renames it to the final path.
func writePNG(path string, img image.Image) error {
	file, err := os.CreateTemp(filepath.Dir(path), ".frame-*.png.tmp")
	if err != nil { return err }
	tmpPath := file.Name()

	err = pngEncoder.Encode(file, img)
	closeErr := file.Close()
	if err == nil { err = closeErr }
	if err == nil { err = os.Rename(tmpPath, path) }
	if err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
