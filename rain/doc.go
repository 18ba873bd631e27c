// Package rain implements the procedural part of glyphrain: a grid of
// columns where glyph streaks fall down one row per frame, with bright
// heads, amber tails fading out and occasional flickering glyphs.
//
// All the randomness is either computed once when creating the column
// state ([NewColumns]) or derived from pure per-cell hashes ([Chance]),
// so frames can be rendered in any order and on any number of workers
// while producing identical results. The animation loops seamlessly
// every Rows frames.
package rain
