package font

import "golang.org/x/image/font/sfnt"
import "sync/atomic"
import "errors"

var ErrNotFound = errors.New("font property not found or empty")

// One sfnt.Buffer shared by property lookups. It's only used when no one
// else is holding it; concurrent callers fall back to a nil buffer, which
// sfnt accepts at the cost of an allocation.
var sfntBuffer *sfnt.Buffer
var usingSfntBuffer uint32 = 0
func getSfntBuffer() *sfnt.Buffer {
	if !atomic.CompareAndSwapUint32(&usingSfntBuffer, 0, 1) { return nil }
	if sfntBuffer == nil { sfntBuffer = &sfnt.Buffer{} }
	return sfntBuffer
}

func releaseSfntBuffer(buffer *sfnt.Buffer) {
	if buffer != nil { atomic.StoreUint32(&usingSfntBuffer, 0) }
}

// Returns the requested font property for the given font.
// If the property is missing, [ErrNotFound] will be returned.
func GetProperty(font *sfnt.Font, property sfnt.NameID) (string, error) {
	buffer := getSfntBuffer()
	str, err := font.Name(buffer, property)
	releaseSfntBuffer(buffer)
	if err == sfnt.ErrNotFound { return "", ErrNotFound }
	return str, err
}

// Returns the full name of the given font (e.g. "DejaVu Sans Mono").
func GetName(font *sfnt.Font) (string, error) {
	return GetProperty(font, sfnt.NameIDFull)
}

// Returns the runes in the given text that can't be represented by the
// font, without duplicates and in order of appearance.
//
// Rain palettes are often full of math symbols and arrows, so it's good
// practice to check them against the selected font before rendering.
func GetMissingRunes(font *sfnt.Font, text string) ([]rune, error) {
	buffer := getSfntBuffer()
	defer releaseSfntBuffer(buffer)

	var missing []rune
	seen := make(map[rune]struct{})
	for _, codePoint := range text {
		if _, dup := seen[codePoint]; dup { continue }
		seen[codePoint] = struct{}{}
		index, err := font.GlyphIndex(buffer, codePoint)
		if err != nil { return missing, err }
		if index == 0 { missing = append(missing, codePoint) }
	}
	return missing, nil
}
