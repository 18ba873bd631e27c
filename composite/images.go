package composite

import "os"
import "fmt"
import "image"
import "image/draw"
import "image/png"
import "path/filepath"

import _ "image/jpeg"
import _ "image/gif"
import _ "golang.org/x/image/bmp"
import _ "golang.org/x/image/webp"
import _ "golang.org/x/image/tiff"

import "github.com/nfnt/resize"

// Decodes the image at the given path. PNG, JPEG, GIF, BMP,
// WebP and TIFF are supported.
func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil { return nil, err }
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil { return nil, fmt.Errorf("decoding %q: %w", path, err) }
	return img, nil
}

// Returns the image as *image.NRGBA with bounds starting at (0, 0).
// The image is copied unless it's already in that form.
func toNRGBA(img image.Image) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Rect.Min == (image.Point{}) {
		return nrgba
	}
	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Rect, img, bounds.Min, draw.Src)
	return nrgba
}

// Scales the image preserving its aspect ratio so it fits inside
// width x height. Images that already match the size are returned
// unchanged.
func resizeToFit(img *image.NRGBA, width, height int) *image.NRGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == width && h == height { return img }
	scale := min(float64(width)/float64(w), float64(height)/float64(h))
	newW := max(1, int(float64(w)*scale + 0.5))
	newH := max(1, int(float64(h)*scale + 0.5))
	return toNRGBA(resize.Resize(uint(newW), uint(newH), img, resize.Bilinear))
}

// Scales the image preserving its aspect ratio so it covers the whole
// width x height area, and then crops the centered area.
func resizeToFill(img image.Image, width, height int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == width && h == height { return img }
	scale := max(float64(width)/float64(w), float64(height)/float64(h))
	newW := max(width, int(float64(w)*scale + 0.5))
	newH := max(height, int(float64(h)*scale + 0.5))
	scaled := resize.Resize(uint(newW), uint(newH), img, resize.Bilinear)

	scaledBounds := scaled.Bounds()
	offset := image.Pt((newW - width)/2, (newH - height)/2).Add(scaledBounds.Min)
	cropped := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(cropped, cropped.Rect, scaled, offset, draw.Src)
	return cropped
}

// Writes the image as a PNG through a temporary file.
func writePNG(path string, img image.Image) error {
	return writeAtomically(path, func(file *os.File) error {
		return png.Encode(file, img)
	})
}

// Creates a temporary file next to path, calls write on it and
// renames it to path if everything went well.
func writeAtomically(path string, write func(*os.File) error) error {
	file, err := os.CreateTemp(filepath.Dir(path), "." + filepath.Base(path) + "-*.tmp")
	if err != nil { return err }
	tmpPath := file.Name()
	err = write(file)
	closeErr := file.Close()
	if err == nil { err = closeErr }
	if err == nil { err = os.Rename(tmpPath, path) }
	if err != nil { _ = os.Remove(tmpPath) }
	return err
}
