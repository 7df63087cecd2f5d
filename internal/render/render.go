// Package render composes draw commands for a passage frame.
package render

import (
	"math"

	"golang.org/x/image/math/f64"

	"github.com/verte-zerg/passage/internal/glyph"
	"github.com/verte-zerg/passage/internal/layout"
)

// View configures the decorations around the passage.
type View struct {
	VisibleLines     int
	LastLineVPadding float64
	// ProgressGap is the distance from the viewport bottom to the progress track.
	ProgressGap    float64
	ProgressHeight float64
	ProgressHead   float64
	CursorHeight   float64
	WordBarHeight  float64
	WordBarGap     float64
}

// DefaultView returns decorations sized for pixel rendering.
func DefaultView() View {
	return View{
		VisibleLines:     7,
		LastLineVPadding: 5,
		ProgressGap:      10,
		ProgressHeight:   4,
		ProgressHead:     5,
		CursorHeight:     2,
		WordBarHeight:    2,
		WordBarGap:       2,
	}
}

// GlyphState is the typing state of one rune.
type GlyphState int

const (
	Pending GlyphState = iota
	Correct
	Incorrect
)

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Glyph is one rune placed on its baseline.
type Glyph struct {
	Rune  rune
	X, Y  float64
	Width float64
	// Row is the viewport row, negative above the viewport.
	Row     int
	State   GlyphState
	InWord  bool
	Cursor  bool
	Visible bool
}

// Highlight is the box behind an already typed rune.
type Highlight struct {
	Rect
	Correct bool
}

// Progress is the bar under the viewport.
type Progress struct {
	Fraction float64
	Track    Rect
	Fill     Rect
	Head     Rect
}

// Frame is everything a renderer needs to paint one passage frame.
type Frame struct {
	Glyphs      []Glyph
	Highlights  []Highlight
	WordBar     Rect
	ShowWordBar bool
	Cursor      Rect
	ShowCursor  bool
	Progress    Progress
	Viewport    Rect
	RowMarkers  []f64.Vec2
	LineHeight  float64
	Ascent      float64
	Finished    bool
}

// Input is the state a frame is composed from.
type Input struct {
	Layout   layout.Result
	Text     []rune
	Index    int
	Correct  []bool
	Finished bool
	ScrollY  float64
	Metrics  glyph.Metrics
	Geometry layout.Geometry
	View     View
}

// Compose builds a frame. It does not modify its input.
func Compose(in Input) Frame {
	m, g, v := in.Metrics, in.Geometry, in.View
	lineHeight := in.Layout.LineHeight
	ascent, descent := m.Ascent(), m.Descent()
	boxHeight := g.BoxHeight(m)

	f := Frame{
		LineHeight: lineHeight,
		Ascent:     ascent,
		Finished:   in.Finished,
		Viewport:   viewport(g, v, ascent, descent, lineHeight),
		RowMarkers: rowMarkers(g, v, descent, lineHeight),
	}

	wordStart, wordEnd := layout.CurrentWord(in.Text, in.Index)
	f.Glyphs = make([]Glyph, len(in.Text))
	f.Highlights = make([]Highlight, 0, len(in.Correct))
	for i, r := range in.Text {
		pos := shift(in.Layout.Positions[i], in.ScrollY)
		gl := Glyph{
			Rune:  r,
			X:     pos[0],
			Y:     pos[1],
			Width: m.Advance(r),
			Row:   row(pos[1], g.TopMargin, lineHeight),
		}
		gl.Visible = gl.Row >= 0 && gl.Row < v.VisibleLines
		if i < len(in.Correct) {
			gl.State = Incorrect
			if in.Correct[i] {
				gl.State = Correct
			}
			f.Highlights = append(f.Highlights, Highlight{
				Rect: Rect{
					X: pos[0],
					Y: pos[1] - ascent - g.HighlightPadding,
					W: gl.Width,
					H: boxHeight,
				},
				Correct: in.Correct[i],
			})
		}
		if !in.Finished {
			gl.InWord = i >= wordStart && i < wordEnd
			gl.Cursor = i == in.Index
		}
		f.Glyphs[i] = gl
	}

	if !in.Finished && in.Index >= 0 && in.Index < len(in.Text) {
		// A delimiter under the cursor has no word to mark.
		if !layout.IsDelimiter(in.Text[in.Index]) {
			start := shift(in.Layout.Positions[wordStart], in.ScrollY)
			end := shift(in.Layout.Positions[wordEnd-1], in.ScrollY)
			barBottom := end[1] - ascent - g.HighlightPadding - v.WordBarGap
			f.WordBar = Rect{
				X: start[0],
				Y: barBottom - v.WordBarHeight,
				W: m.Width(string(in.Text[wordStart:wordEnd])),
				H: v.WordBarHeight,
			}
			f.ShowWordBar = true
		}

		cur := shift(in.Layout.Positions[in.Index], in.ScrollY)
		f.Cursor = Rect{
			X: cur[0],
			Y: cur[1] + descent,
			W: m.Advance(in.Text[in.Index]),
			H: v.CursorHeight,
		}
		f.ShowCursor = true
	}

	f.Progress = progress(g, v, f.Viewport, fraction(in))
	return f
}

func fraction(in Input) float64 {
	if in.Finished {
		return 1
	}
	if len(in.Text) < 2 {
		return 0
	}
	return float64(in.Index) / float64(len(in.Text)-1)
}

func viewport(g layout.Geometry, v View, ascent, descent, lineHeight float64) Rect {
	hPadding := g.LeftMargin / 4
	vPadding := g.HighlightPadding + g.LineSpacing
	top := g.TopMargin - ascent - vPadding
	bottom := lowestBoxPoint(g, v, descent, lineHeight)
	left := g.LeftMargin - hPadding
	return Rect{X: left, Y: top, W: g.WrapX + hPadding - left, H: bottom - top}
}

func lowestBoxPoint(g layout.Geometry, v View, descent, lineHeight float64) float64 {
	lines := v.VisibleLines
	if lines < 1 {
		lines = 1
	}
	first := g.TopMargin + descent + g.HighlightPadding
	return first + float64(lines-1)*lineHeight + v.LastLineVPadding
}

func rowMarkers(g layout.Geometry, v View, descent, lineHeight float64) []f64.Vec2 {
	markers := make([]f64.Vec2, 0, v.VisibleLines)
	first := g.TopMargin + descent + g.HighlightPadding
	for i := 0; i < v.VisibleLines; i++ {
		markers = append(markers, f64.Vec2{g.LeftMargin, first + lineHeight*float64(i)})
	}
	return markers
}

func progress(g layout.Geometry, v View, vp Rect, frac float64) Progress {
	support := vp.Y + vp.H + v.ProgressGap
	trackHeight := math.Max(v.ProgressHeight-2, 1)
	x := g.LeftMargin + frac*(g.WrapX-g.LeftMargin)
	fillY := support - v.ProgressHeight - v.ProgressHeight/2
	headX := math.Max(x-v.ProgressHead, g.LeftMargin)
	return Progress{
		Fraction: frac,
		Track:    Rect{X: g.LeftMargin, Y: support - trackHeight/2, W: g.WrapX - g.LeftMargin, H: trackHeight},
		Fill:     Rect{X: g.LeftMargin, Y: fillY, W: x - g.LeftMargin, H: v.ProgressHeight},
		Head:     Rect{X: headX, Y: fillY, W: x - headX, H: v.ProgressHeight},
	}
}

func shift(p f64.Vec2, dy float64) f64.Vec2 {
	return f64.Vec2{p[0], p[1] + dy}
}

func row(y, top, lineHeight float64) int {
	if lineHeight <= 0 {
		return 0
	}
	return int(math.Floor((y-top)/lineHeight + 0.5))
}
