package scroll

import (
	"time"

	"golang.org/x/image/math/f64"

	"github.com/verte-zerg/passage/internal/layout"
)

// Step is the fixed simulation step.
const Step = time.Second / 60

const maxStepsPerTick = 8

// Tuning configures the scroll vehicle.
type Tuning struct {
	VisibleLines int
	MaxSpeed     float64
	MaxForce     float64
}

// DefaultTuning matches a 30px font with default paddings.
func DefaultTuning() Tuning {
	return Tuning{VisibleLines: 7, MaxSpeed: 5, MaxForce: 2}
}

// Scaled returns t with speed and force multiplied by f, for line heights
// other than the ones t was tuned for.
func (t Tuning) Scaled(f float64) Tuning {
	t.MaxSpeed *= f
	t.MaxForce *= f
	return t
}

// Controller scrolls one line at a time once the cursor reaches the last
// two visible rows.
type Controller struct {
	vehicle       *Vehicle
	visibleLines  int
	lineHeight    float64
	linesScrolled int
	pending       time.Duration
}

// NewController returns a controller for lines of the given height.
func NewController(t Tuning, lineHeight float64) *Controller {
	if t.VisibleLines < 2 {
		t.VisibleLines = 2
	}
	return &Controller{
		vehicle:      NewVehicle(f64.Vec2{}, t.MaxSpeed, t.MaxForce),
		visibleLines: t.VisibleLines,
		lineHeight:   lineHeight,
	}
}

// VisibleLines returns the number of rows shown in the viewport.
func (c *Controller) VisibleLines() int { return c.visibleLines }

// LinesScrolled returns how many lines the target has moved up.
func (c *Controller) LinesScrolled() int { return c.linesScrolled }

// Target returns the offset the controller is easing toward.
func (c *Controller) Target() float64 { return c.vehicle.Target[1] }

// Offset returns the current vertical scroll offset.
func (c *Controller) Offset() float64 { return c.vehicle.Pos[1] }

// Velocity returns the current vertical scroll velocity.
func (c *Controller) Velocity() float64 { return c.vehicle.Vel[1] }

// SetLineHeight updates the line height and retargets the scrolled lines.
func (c *Controller) SetLineHeight(h float64) {
	c.lineHeight = h
	c.vehicle.Target[1] = -h * float64(c.linesScrolled)
}

// Observe scrolls by one line when the cursor has wrapped past the last two
// visible rows. It reports whether the target moved.
func (c *Controller) Observe(wraps []int, cursor int) bool {
	wrapped := layout.LinesBefore(wraps, cursor)
	if wrapped-c.linesScrolled <= c.visibleLines-2 {
		return false
	}
	c.linesScrolled++
	c.vehicle.Target[1] = -c.lineHeight * float64(c.linesScrolled)
	return true
}

// Retarget recomputes the scrolled lines from scratch so the cursor row sits
// within the viewport, e.g. after the wrap positions changed on resize. It
// may scroll back up, unlike Observe.
func (c *Controller) Retarget(wraps []int, cursor int) {
	c.linesScrolled = max(0, layout.LinesBefore(wraps, cursor)-(c.visibleLines-2))
	c.vehicle.Target[1] = -c.lineHeight * float64(c.linesScrolled)
}

// Tick advances the simulation by dt in fixed steps.
func (c *Controller) Tick(dt time.Duration) {
	if dt <= 0 {
		return
	}
	c.pending += dt
	steps := 0
	for c.pending >= Step && steps < maxStepsPerTick {
		c.pending -= Step
		c.vehicle.Update()
		c.vehicle.ReturnHome(c.lineHeight)
		steps++
	}
	// Drop time the simulation could not catch up on.
	c.pending %= Step
}

// Reset returns the controller to the top of the passage.
func (c *Controller) Reset() {
	c.vehicle.Pos = f64.Vec2{}
	c.vehicle.Vel = f64.Vec2{}
	c.vehicle.Acc = f64.Vec2{}
	c.vehicle.Target = f64.Vec2{}
	c.linesScrolled = 0
	c.pending = 0
}
