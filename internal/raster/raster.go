// Package raster paints render frames into images.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/verte-zerg/passage/internal/layout"
	"github.com/verte-zerg/passage/internal/render"
)

// Palette holds the colors used to paint a frame.
type Palette struct {
	Background color.NRGBA
	Shade      color.NRGBA
	Marker     color.NRGBA
	Pending    color.NRGBA
	Typed      color.NRGBA
	Correct    color.NRGBA
	Incorrect  color.NRGBA
	WordBar    color.NRGBA
	Cursor     color.NRGBA
	Track      color.NRGBA
	Fill       color.NRGBA
	Head       color.NRGBA
}

// DefaultPalette returns the dark theme.
func DefaultPalette() Palette {
	return Palette{
		Background: color.NRGBA{R: 40, G: 43, B: 61, A: 255},
		Shade:      color.NRGBA{R: 28, G: 30, B: 44, A: 255},
		Marker:     color.NRGBA{R: 90, G: 95, B: 120, A: 255},
		Pending:    color.NRGBA{R: 200, G: 204, B: 222, A: 255},
		Typed:      color.NRGBA{R: 245, G: 245, B: 250, A: 255},
		Correct:    color.NRGBA{R: 46, G: 125, B: 84, A: 255},
		Incorrect:  color.NRGBA{R: 168, G: 52, B: 62, A: 255},
		WordBar:    color.NRGBA{R: 120, G: 140, B: 220, A: 255},
		Cursor:     color.NRGBA{R: 250, G: 210, B: 90, A: 255},
		Track:      color.NRGBA{R: 70, G: 74, B: 98, A: 255},
		Fill:       color.NRGBA{R: 120, G: 140, B: 220, A: 255},
		Head:       color.NRGBA{R: 250, G: 210, B: 90, A: 255},
	}
}

// Size returns the image size that fits the frame with the viewport margin
// repeated on the right and bottom.
func Size(f render.Frame) image.Point {
	vp := f.Viewport
	right := vp.X + vp.W + math.Max(vp.X, 0)
	bottom := f.Progress.Track.Y + f.Progress.Track.H
	for _, r := range []render.Rect{f.Progress.Fill, f.Progress.Head} {
		bottom = math.Max(bottom, r.Y+r.H)
	}
	bottom += math.Max(vp.Y, 0)
	return image.Pt(int(math.Ceil(right)), int(math.Ceil(bottom)))
}

// cornerRadius rounds highlight boxes and the cursor.
const cornerRadius = 2

// Draw paints f with face. Shapes go through a software gg context; the
// viewport is cut out of a background frame so content scrolled past its
// edges is covered. Glyphs outside the viewport are skipped.
func Draw(f render.Frame, face font.Face, p Palette) (*image.NRGBA, error) {
	size := Size(f)
	gc := gg.NewContext(size.X, size.Y)
	defer gc.Close()
	pt := &painter{gc: gc}

	gc.ClearWithColor(gg.FromColor(p.Background))
	pt.rect(render.Rect{W: float64(size.X), H: float64(size.Y)}, p.Shade, 0.8)

	vp := f.Viewport
	gc.Push()
	gc.ClipRect(vp.X, vp.Y, vp.W, vp.H)
	for i, h := range f.Highlights {
		if i >= len(f.Glyphs) || !f.Glyphs[i].Visible {
			continue
		}
		c := p.Incorrect
		if h.Correct {
			c = p.Correct
		}
		pt.rounded(h.Rect, cornerRadius, c)
	}
	if f.ShowWordBar {
		pt.rect(f.WordBar, p.WordBar, 1)
	}
	if f.ShowCursor {
		pt.rounded(f.Cursor, cornerRadius, p.Cursor)
	}
	for _, g := range f.Glyphs {
		if g.Visible && g.Rune == '\n' {
			pt.returnGlyph(g, f.Ascent, glyphColor(g, p))
		}
	}
	gc.Pop()

	pt.frame(float64(size.X), float64(size.Y), vp, p.Background)
	for _, m := range f.RowMarkers {
		pt.circle(m[0]-5, m[1]-1, 1, p.Marker)
	}
	track := f.Progress.Track
	pt.rounded(track, track.H/2, p.Track)
	pt.rounded(f.Progress.Fill, track.H/2, p.Fill)
	pt.rounded(f.Progress.Head, math.Min(f.Progress.Head.W, f.Progress.Head.H)/2, p.Head)
	if pt.err != nil {
		return nil, fmt.Errorf("paint frame: %w", pt.err)
	}

	img := imaging.Clone(gc.Image())
	d := &font.Drawer{Dst: img, Face: face}
	for _, g := range f.Glyphs {
		if !g.Visible || layout.IsDelimiter(g.Rune) {
			continue
		}
		d.Src = image.NewUniform(glyphColor(g, p))
		d.Dot = fixed.Point26_6{X: toFixed(g.X), Y: toFixed(g.Y)}
		d.DrawString(string(g.Rune))
	}
	return img, nil
}

// Save writes img to path, scaled by scale. The format follows the
// extension.
func Save(img image.Image, path string, scale float64) error {
	if scale <= 0 {
		return fmt.Errorf("scale must be > 0, got %v", scale)
	}
	if scale != 1 {
		w := int(math.Round(float64(img.Bounds().Dx()) * scale))
		img = imaging.Resize(img, max(w, 1), 0, imaging.Lanczos)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func glyphColor(g render.Glyph, p Palette) color.NRGBA {
	if g.State != render.Pending {
		return p.Typed
	}
	return p.Pending
}

// painter fills and strokes paths on a gg context, keeping the first error.
type painter struct {
	gc  *gg.Context
	err error
}

func (pt *painter) setColor(c color.NRGBA, alpha float64) {
	pt.gc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, alpha*float64(c.A)/255)
}

func (pt *painter) fill() {
	if err := pt.gc.Fill(); err != nil && pt.err == nil {
		pt.err = err
	}
}

func (pt *painter) stroke() {
	if err := pt.gc.Stroke(); err != nil && pt.err == nil {
		pt.err = err
	}
}

func (pt *painter) rect(r render.Rect, c color.NRGBA, alpha float64) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	pt.setColor(c, alpha)
	pt.gc.DrawRectangle(r.X, r.Y, r.W, r.H)
	pt.fill()
}

func (pt *painter) rounded(r render.Rect, radius float64, c color.NRGBA) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	pt.setColor(c, 1)
	pt.gc.DrawRoundedRectangle(r.X, r.Y, r.W, r.H, radius)
	pt.fill()
}

func (pt *painter) circle(x, y, radius float64, c color.NRGBA) {
	pt.setColor(c, 1)
	pt.gc.DrawCircle(x, y, radius)
	pt.fill()
}

// frame fills the canvas except for the viewport hole.
func (pt *painter) frame(w, h float64, vp render.Rect, c color.NRGBA) {
	pt.setColor(c, 1)
	pt.gc.SetFillRule(gg.FillRuleEvenOdd)
	pt.gc.DrawRectangle(0, 0, w, h)
	if vp.W > 0 && vp.H > 0 {
		pt.gc.DrawRectangle(vp.X, vp.Y, vp.W, vp.H)
	}
	pt.fill()
	pt.gc.SetFillRule(gg.FillRuleNonZero)
}

// returnGlyph paints a hooked arrow in place of a newline: a stem down from
// near the top of the line, a leg back to the left and a filled head.
func (pt *painter) returnGlyph(g render.Glyph, ascent float64, c color.NRGBA) {
	w := math.Max(g.Width, 4)
	h := math.Min(2*w, ascent)
	head := math.Max(w/6, 2)
	tip := [2]float64{g.X + w/4, g.Y - h/4}

	pt.setColor(c, 1)
	pt.gc.MoveTo(tip[0], tip[1])
	pt.gc.LineTo(tip[0]+head, tip[1]+head/math.Sqrt(3))
	pt.gc.LineTo(tip[0]+head, tip[1]-head/math.Sqrt(3))
	pt.gc.ClosePath()
	pt.fill()

	pt.gc.SetLineWidth(math.Max(w/8, 1))
	pt.gc.SetLineJoin(gg.LineJoinRound)
	pt.gc.MoveTo(g.X+w*3/4, g.Y-h*7/8)
	pt.gc.LineTo(g.X+w*3/4, tip[1])
	pt.gc.LineTo(tip[0]+head, tip[1])
	pt.stroke()
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
