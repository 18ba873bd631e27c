package rain

import "fmt"
import "strings"

// Named palettes accepted by [NewPalette]().
const (
	PaletteSymbols  = "symbols"
	PaletteCyrillic = "cyrillic"
	PaletteKana     = "kana"
	PaletteBinary   = "binary"
	PaletteASCII    = "ascii"
)

var namedPalettes = map[string]string{
	PaletteSymbols:  ":=?_→←↔↦λ¬∧∨∀∃≤≥≠∘⦃⦄⟦⟧∈⊆⊂⊥⊤⊓⊔∑∏!",
	PaletteCyrillic: "-><=*|\":АБВГДЕЁЖЗИЙКЛМНОПРСТУФХЦЧШЩЪЫЬЭЮЯ0123456789",
	PaletteKana:     runeRange(0xFF71, 0xFF9D),
	PaletteBinary:   "01",
	PaletteASCII:    runeRange('!', '~'),
}

func runeRange(first, last rune) string {
	var builder strings.Builder
	for r := first; r <= last; r++ { builder.WriteRune(r) }
	return builder.String()
}

// An ordered set of glyphs to pick from. Repeated glyphs are kept,
// which makes them proportionally more likely to be picked.
type Palette []rune

// Creates a palette from a named set ("symbols", "cyrillic", "kana",
// "binary" or "ascii") or, for any other value, from the literal glyphs
// in the string. Palettes need at least two distinct glyphs, as
// otherwise vertically adjacent glyphs can't differ.
func NewPalette(glyphs string) (Palette, error) {
	if named, found := namedPalettes[strings.ToLower(glyphs)]; found {
		glyphs = named
	}
	palette := Palette([]rune(glyphs))
	if palette.Distinct() < 2 {
		return nil, fmt.Errorf("palette %q needs at least 2 distinct glyphs", glyphs)
	}
	return palette, nil
}

// Returns the number of distinct glyphs in the palette.
func (self Palette) Distinct() int {
	seen := make(map[rune]struct{}, len(self))
	for _, glyph := range self { seen[glyph] = struct{}{} }
	return len(seen)
}

// Returns the first glyph in the palette that differs from the given
// one. Valid palettes always have one.
func (self Palette) firstDifferentFrom(glyph rune) rune {
	for _, candidate := range self {
		if candidate != glyph { return candidate }
	}
	return glyph
}

func (self Palette) String() string { return string(self) }
