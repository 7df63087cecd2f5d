// Package layout positions passage runes with greedy word wrap.
package layout

import (
	"errors"
	"fmt"

	"golang.org/x/image/math/f64"

	"github.com/verte-zerg/passage/internal/glyph"
)

var (
	// ErrEmptyText is returned when there is nothing to lay out.
	ErrEmptyText = errors.New("layout: empty text")
	// ErrBadGeometry is returned for geometry that cannot hold a line.
	ErrBadGeometry = errors.New("layout: invalid geometry")
)

// Geometry holds the fixed layout configuration shared by the layout engine
// and the render composer.
type Geometry struct {
	LeftMargin float64
	TopMargin  float64
	// WrapX is the horizontal coordinate a word may not cross.
	WrapX            float64
	CharPadding      float64
	HighlightPadding float64
	LineSpacing      float64
}

// Validate checks the geometry preconditions.
func (g Geometry) Validate() error {
	if g.WrapX <= g.LeftMargin {
		return fmt.Errorf("%w: wrap x %v must exceed left margin %v", ErrBadGeometry, g.WrapX, g.LeftMargin)
	}
	if g.CharPadding < 0 || g.HighlightPadding < 0 || g.LineSpacing < 0 {
		return fmt.Errorf("%w: paddings must be >= 0", ErrBadGeometry)
	}
	return nil
}

// BoxHeight is the height of a highlight box for metrics m.
func (g Geometry) BoxHeight(m glyph.Metrics) float64 {
	return m.Ascent() + m.Descent() + 2*g.HighlightPadding
}

// LineHeight is the baseline-to-baseline distance for metrics m.
func (g Geometry) LineHeight(m glyph.Metrics) float64 {
	return g.BoxHeight(m) + g.LineSpacing
}

// Result is the layout of one passage.
type Result struct {
	// Positions holds one baseline anchor per rune.
	Positions []f64.Vec2
	// WrapIndices holds the indices after which a new line starts.
	WrapIndices []int
	LineHeight  float64
}

// Lines returns the number of laid out lines.
func (r Result) Lines() int {
	return len(r.WrapIndices) + 1
}

// Compute lays out text starting at the geometry's top-left margin.
func Compute(text []rune, m glyph.Metrics, g Geometry) (Result, error) {
	if len(text) == 0 {
		return Result{}, ErrEmptyText
	}
	if err := g.Validate(); err != nil {
		return Result{}, err
	}

	lineHeight := g.LineHeight(m)
	next := nextDelimiters(text)
	res := Result{
		Positions:  make([]f64.Vec2, len(text)),
		LineHeight: lineHeight,
	}

	x, y := g.LeftMargin, g.TopMargin
	wrap := func(i int) {
		x = g.LeftMargin
		y += lineHeight
		res.WrapIndices = append(res.WrapIndices, i)
	}

	for i, r := range text {
		res.Positions[i] = f64.Vec2{x, y}
		x += m.Advance(r) + g.CharPadding

		switch r {
		case '\n':
			wrap(i)
		case ' ':
			word := string(text[i+1 : next[i]])
			if x+m.Width(word)+m.Advance(r) > g.WrapX {
				wrap(i)
			}
		}
	}
	return res, nil
}

// nextDelimiters maps every index to the first delimiter after it, or to
// len(text) when none follows.
func nextDelimiters(text []rune) []int {
	next := make([]int, len(text))
	upcoming := len(text)
	for i := len(text) - 1; i >= 0; i-- {
		next[i] = upcoming
		if IsDelimiter(text[i]) {
			upcoming = i
		}
	}
	return next
}
