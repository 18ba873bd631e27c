package font

import "os"
import "fmt"
import "io/fs"
import "errors"
import "path/filepath"

import "golang.org/x/image/font/sfnt"

var ErrAlreadyPresent = errors.New("font already present in the library")

// Special error that can be returned from the [Library.EachFont]()
// callback to stop early. EachFont returns nil in that case.
var ErrBreakEach = errors.New("EachFont() early break")

// A collection of fonts indexed by full name, along the paths
// they were parsed from. [Select]() fills one with the fonts in
// the system directories when a candidate is given by name.
type Library struct {
	fonts map[string]*sfnt.Font
	paths map[string]string
}

// Creates a new, empty font [Library].
func NewLibrary() *Library {
	return &Library{
		fonts: make(map[string]*sfnt.Font),
		paths: make(map[string]string),
	}
}

// Returns the number of fonts in the library.
func (self *Library) Size() int { return len(self.fonts) }

// Returns whether a font with the given full name is in the library.
func (self *Library) HasFont(name string) bool {
	_, found := self.fonts[name]
	return found
}

// Returns the font with the given full name, or nil if not found.
func (self *Library) GetFont(name string) *sfnt.Font {
	return self.fonts[name]
}

// Returns the path the font with the given name was parsed from,
// or "" if the font is not in the library.
func (self *Library) GetPath(name string) string {
	return self.paths[name]
}

// Parses the font at the given path and adds it to the library.
// If a font with the same name is already present, the library
// is left unchanged and [ErrAlreadyPresent] is returned.
func (self *Library) ParseFromPath(path string) (string, error) {
	font, name, err := ParseFromPath(path)
	if err != nil { return "", err }
	if self.HasFont(name) { return name, ErrAlreadyPresent }
	self.fonts[name] = font
	self.paths[name] = path
	return name, nil
}

// Calls fontFunc for each font in the library, in no particular
// order, until it returns an error. [ErrBreakEach] stops the
// iteration without being returned.
func (self *Library) EachFont(fontFunc func(string, *sfnt.Font) error) error {
	for name, font := range self.fonts {
		err := fontFunc(name, font)
		if err == ErrBreakEach { return nil }
		if err != nil { return err }
	}
	return nil
}

// Walks the given directory recursively and adds every font it can
// parse to the library. Files that fail to parse are only counted, as
// system font directories often contain formats sfnt doesn't support.
// Missing roots are not an error.
func (self *Library) ParseTree(root string) (added, skipped, failed int, err error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) { return 0, 0, 0, nil }
		return 0, 0, 0, err
	}
	if !info.IsDir() { return 0, 0, 0, fmt.Errorf("%q is not a directory", root) }

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if entry != nil && entry.IsDir() { return fs.SkipDir }
			failed += 1
			return nil
		}
		if entry.IsDir() || !hasValidFontExtension(path) { return nil }
		_, err = self.ParseFromPath(path)
		switch {
		case err == ErrAlreadyPresent: skipped += 1
		case err != nil: failed += 1
		default: added += 1
		}
		return nil
	})
	return added, skipped, failed, err
}
