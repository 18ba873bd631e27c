package composite

import "image"
import "image/draw"

// Loads the mask image at the given path as a grayscale image of the
// given size (scaled to fill and center-cropped if needed), inverting
// it if requested.
func LoadMask(path string, width, height int, invert bool) (*image.Gray, error) {
	img, err := loadImage(path)
	if err != nil { return nil, err }
	return NewMask(img, width, height, invert), nil
}

// Converts the image to a grayscale mask of the given size. See [LoadMask]().
func NewMask(img image.Image, width, height int, invert bool) *image.Gray {
	filled := resizeToFill(img, width, height)
	gray := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(gray, gray.Rect, filled, filled.Bounds().Min, draw.Src)
	if invert {
		for i, value := range gray.Pix { gray.Pix[i] = 255 - value }
	}
	return gray
}

// Returns a copy of the overlay with its alpha channel modified by the
// mask luminance according to the given mode. The mask must have the
// same size as the overlay.
func ApplyMask(overlay *image.NRGBA, mask *image.Gray, mode MaskMode) *image.NRGBA {
	if overlay.Rect.Size() != mask.Rect.Size() { panic("mask and overlay sizes differ") }
	masked := image.NewNRGBA(image.Rect(0, 0, overlay.Rect.Dx(), overlay.Rect.Dy()))
	for y := 0; y < masked.Rect.Dy(); y++ {
		srcRow := overlay.Pix[y*overlay.Stride : ]
		dstRow := masked.Pix[y*masked.Stride : ]
		maskRow := mask.Pix[y*mask.Stride : ]
		for x := 0; x < masked.Rect.Dx(); x++ {
			copy(dstRow[x*4 : x*4 + 3], srcRow[x*4 : x*4 + 3])
			luminance := maskRow[x]
			switch mode {
			case MaskCopy:
				dstRow[x*4 + 3] = luminance
			default:
				dstRow[x*4 + 3] = mul8(srcRow[x*4 + 3], luminance)
			}
		}
	}
	return masked
}

// Multiplies two 8-bit values interpreted as [0, 1] fractions.
func mul8(a, b uint8) uint8 {
	product := uint32(a)*uint32(b) + 128
	return uint8((product + (product >> 8)) >> 8)
}
