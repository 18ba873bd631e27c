package font

import "os"
import "fmt"
import "strings"
import "path/filepath"

import "golang.org/x/image/font/sfnt"

// Parses the given font bytes and returns the font along its full
// name. The bytes must not be modified while the font is in use.
func ParseFromBytes(fontBytes []byte) (*sfnt.Font, string, error) {
	font, err := sfnt.Parse(fontBytes)
	if err != nil { return nil, "", err }
	name, err := GetName(font)
	return font, name, err
}

// Reads and parses the .ttf or .otf font at the given path. Errors
// always include the path.
func ParseFromPath(path string) (*sfnt.Font, string, error) {
	if !hasValidFontExtension(path) {
		return nil, "", fmt.Errorf("%q is not a .ttf or .otf font", path)
	}
	fontBytes, err := os.ReadFile(path)
	if err != nil { return nil, "", err }
	font, name, err := ParseFromBytes(fontBytes)
	if err != nil { return nil, "", fmt.Errorf("parsing %q: %w", path, err) }
	return font, name, nil
}

// System font directories are full of uppercase .TTF files.
func hasValidFontExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf": return true
	default: return false
	}
}
