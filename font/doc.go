// The font subpackage contains helpers to parse fonts, obtain information
// from them (name, missing glyphs) and select the font to render
// the rain with from a list of candidates.
//
// Candidates can be font file paths, font names to be searched for in
// the system font directories, or the empty string for the embedded
// default font (Go Mono). See [Select]().
package font
