// Package glyph provides glyph metrics for passage layout.
package glyph

// Metrics reports advance widths and vertical extents for a single font at a
// single size. Implementations are not required to be safe for concurrent use.
type Metrics interface {
	// Name identifies the font and size; equal names must measure equally.
	Name() string
	Advance(r rune) float64
	Width(s string) float64
	Ascent() float64
	Descent() float64
}

// isTerminator reports runes drawn as a return glyph rather than measured.
func isTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\t'
}
