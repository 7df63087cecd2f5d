package glyph

import "github.com/mattn/go-runewidth"

// Cells measures text in terminal cells. A line has height one cell.
type Cells struct{}

// Name implements Metrics.
func (Cells) Name() string { return "cells" }

// Advance implements Metrics. Line terminators take one cell for the return glyph.
func (Cells) Advance(r rune) float64 {
	if isTerminator(r) {
		return 1
	}
	return float64(runewidth.RuneWidth(r))
}

// Width implements Metrics.
func (c Cells) Width(s string) float64 {
	total := 0.0
	for _, r := range s {
		total += c.Advance(r)
	}
	return total
}

// Ascent implements Metrics.
func (Cells) Ascent() float64 { return 1 }

// Descent implements Metrics.
func (Cells) Descent() float64 { return 0 }
