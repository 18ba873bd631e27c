package font

import "fmt"
import "errors"
import "strings"
import "unicode"
import "io/fs"
import "path/filepath"

import "golang.org/x/image/font/sfnt"
import "golang.org/x/image/font/gofont/gomono"

// Name reported for the embedded fallback font.
const DefaultName = "Go Mono"

// Candidates used when [Select]() receives none: DejaVu Sans Mono
// if installed, the embedded Go Mono otherwise.
var DefaultCandidates = []string{"DejaVuSansMono", ""}

var ErrNoUsableFont = errors.New("no usable font found")

// Returned (wrapped) by [Select]() for candidates that were found
// but can't draw some of the required glyphs.
type MissingGlyphsError struct {
	Font string
	Glyphs []rune
}

func (self *MissingGlyphsError) Error() string {
	return fmt.Sprintf("font %q is missing %d glyphs: %q", self.Font, len(self.Glyphs), string(self.Glyphs))
}

// Returns the embedded default font (Go Mono).
func Default() (*sfnt.Font, error) {
	return sfnt.Parse(gomono.TTF)
}

// Selects the first usable font among the given candidates. Each
// candidate can be:
//  - An empty string or "default", which selects the embedded Go Mono.
//  - A path to a .ttf or .otf file.
//  - A font name like "DejaVu Sans Mono". Names are matched ignoring
//    case, spaces, dashes and underscores, first against the file names
//    under the given directories and then against the full names of
//    all the fonts found there.
//
// A font is usable if it has a glyph with a non-zero advance for 'A'
// and a glyph for every rune in the required text, so candidates that
// can't draw the palette are passed over. If no candidate is usable,
// the returned error wraps [ErrNoUsableFont] along with the reason each
// candidate was rejected ([*MissingGlyphsError] for coverage failures).
// An empty candidate list means [DefaultCandidates].
func Select(candidates []string, dirs []string, required string) (*sfnt.Font, string, error) {
	if len(candidates) == 0 { candidates = DefaultCandidates }

	selector := selector{ dirs: dirs, required: required }
	var failures []error
	for _, candidate := range candidates {
		font, name, err := selector.try(candidate)
		if err == nil { return font, name, nil }
		failures = append(failures, fmt.Errorf("candidate %q: %w", candidate, err))
	}
	return nil, "", fmt.Errorf("%w: %w", ErrNoUsableFont, errors.Join(failures...))
}

type selector struct {
	dirs []string
	required string
	library *Library // lazily indexed
}

func (self *selector) try(candidate string) (*sfnt.Font, string, error) {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" || strings.EqualFold(trimmed, "default") {
		font, err := Default()
		if err != nil { return nil, "", err }
		return font, DefaultName, self.check(font, DefaultName)
	}

	if hasValidFontExtension(trimmed) {
		font, name, err := ParseFromPath(trimmed)
		if err != nil { return nil, "", err }
		if name == "" { name = trimmed }
		return font, name, self.check(font, name)
	}

	key := normalizeName(trimmed)
	if key == "" { return nil, "", errors.New("empty font name") }

	// fast path: file names like "DejaVuSansMono.ttf"
	var rejected error
	for _, dir := range self.dirs {
		path := findFileByName(dir, key)
		if path == "" { continue }
		font, name, err := ParseFromPath(path)
		if err == nil { err = self.check(font, name) }
		if err == nil { return font, name, nil }
		rejected = err
	}

	// slow path: index every font in the directories and match full names
	self.indexDirs()
	var match *sfnt.Font
	var matchName string
	_ = self.library.EachFont(func(name string, font *sfnt.Font) error {
		if normalizeName(name) != key { return nil }
		if err := self.check(font, name); err != nil {
			rejected = err
			return nil
		}
		match, matchName = font, name
		return ErrBreakEach
	})
	if match != nil { return match, matchName, nil }
	if rejected != nil { return nil, "", rejected }
	return nil, "", fmt.Errorf("not found in %s", strings.Join(self.dirs, ", "))
}

func (self *selector) indexDirs() {
	if self.library != nil { return }
	self.library = NewLibrary()
	for _, dir := range self.dirs {
		// unreadable dirs simply contribute no fonts
		_, _, _, _ = self.library.ParseTree(dir)
	}
}

func (self *selector) check(font *sfnt.Font, name string) error {
	var buffer sfnt.Buffer
	index, err := font.GlyphIndex(&buffer, 'A')
	if err != nil { return err }
	if index == 0 { return fmt.Errorf("font %q has no glyph for 'A'", name) }
	advance, err := font.GlyphAdvance(&buffer, index, 1000, 0)
	if err != nil { return err }
	if advance <= 0 { return fmt.Errorf("font %q has zero advance for 'A'", name) }

	if self.required == "" { return nil }
	missing, err := GetMissingRunes(font, self.required)
	if err != nil { return err }
	if len(missing) > 0 { return &MissingGlyphsError{ Font: name, Glyphs: missing } }
	return nil
}

// Walks the directory looking for a font file whose normalized base
// name matches the given key. Returns "" if none is found.
func findFileByName(dir string, key string) string {
	var found string
	_ = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil { return filepath.SkipDir }
		if entry.IsDir() || !hasValidFontExtension(path) { return nil }
		base := filepath.Base(path)
		base = base[ : len(base) - len(filepath.Ext(base))]
		if normalizeName(base) == key {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

// Lowercases the name and drops spaces, dashes, underscores and
// any other non letter/digit runes.
func normalizeName(name string) string {
	var builder strings.Builder
	for _, codePoint := range name {
		if !unicode.IsLetter(codePoint) && !unicode.IsDigit(codePoint) { continue }
		builder.WriteRune(unicode.ToLower(codePoint))
	}
	return builder.String()
}
