package glyph

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Face measures text with a font.Face.
type Face struct {
	face font.Face
	name string
}

// NewFace wraps face. The name must uniquely identify the face and its size.
func NewFace(face font.Face, name string) *Face {
	return &Face{face: face, name: name}
}

// Basic returns metrics for the fixed 7x13 bitmap face.
func Basic() *Face {
	return NewFace(basicfont.Face7x13, "basic-7x13")
}

// NewGoMono parses the Go Mono font at the given point size (72 DPI).
func NewGoMono(size float64) (*Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size must be > 0, got %v", size)
	}
	parsed, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go mono: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create go mono face: %w", err)
	}
	return NewFace(face, fmt.Sprintf("gomono-%g", size)), nil
}

// Face returns the underlying font face for drawing.
func (f *Face) Face() font.Face { return f.face }

// Name implements Metrics.
func (f *Face) Name() string { return f.name }

// Advance implements Metrics. Line terminators measure as a space.
func (f *Face) Advance(r rune) float64 {
	if isTerminator(r) {
		r = ' '
	}
	adv, ok := f.face.GlyphAdvance(r)
	if !ok {
		adv, _ = f.face.GlyphAdvance('?')
	}
	return toFloat(adv)
}

// Width implements Metrics.
func (f *Face) Width(s string) float64 {
	s = strings.Map(func(r rune) rune {
		if isTerminator(r) {
			return ' '
		}
		return r
	}, s)
	return toFloat(font.MeasureString(f.face, s))
}

// Ascent implements Metrics.
func (f *Face) Ascent() float64 { return toFloat(f.face.Metrics().Ascent) }

// Descent implements Metrics.
func (f *Face) Descent() float64 { return toFloat(f.face.Metrics().Descent) }

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
