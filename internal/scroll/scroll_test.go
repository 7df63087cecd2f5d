package scroll

import (
	"math"
	"testing"

	"golang.org/x/image/math/f64"
)

func TestObserveScrollsOnceAfterSixthWrap(t *testing.T) {
	const lineHeight = 48.0
	c := NewController(Tuning{VisibleLines: 7, MaxSpeed: 5, MaxForce: 2}, lineHeight)
	wraps := []int{10, 20, 30, 40, 50, 60, 70, 80}

	for cursor := 0; cursor <= 60; cursor++ {
		if c.Observe(wraps, cursor) {
			t.Fatalf("unexpected scroll at cursor %d", cursor)
		}
	}
	if !c.Observe(wraps, 61) {
		t.Fatalf("expected scroll after the sixth wrapped line")
	}
	for cursor := 61; cursor <= 70; cursor++ {
		if c.Observe(wraps, cursor) {
			t.Fatalf("expected a single scroll, scrolled again at %d", cursor)
		}
	}
	if c.LinesScrolled() != 1 {
		t.Fatalf("expected 1 line scrolled, got %d", c.LinesScrolled())
	}
	if c.Target() != -lineHeight {
		t.Fatalf("expected target %v, got %v", -lineHeight, c.Target())
	}
}

func TestRetargetScrollsBackAfterRewrap(t *testing.T) {
	const lineHeight = 2.0
	c := NewController(Tuning{VisibleLines: 3, MaxSpeed: 1, MaxForce: 1}, lineHeight)
	narrow := []int{9, 19, 29, 39}
	for cursor := 0; cursor <= 35; cursor++ {
		c.Observe(narrow, cursor)
	}
	if c.LinesScrolled() != 2 {
		t.Fatalf("expected 2 lines scrolled, got %d", c.LinesScrolled())
	}

	c.Retarget(nil, 35)
	if c.LinesScrolled() != 0 || c.Target() != 0 {
		t.Fatalf("expected scroll reset on a single line, got %d lines target %v", c.LinesScrolled(), c.Target())
	}

	c.Retarget([]int{4, 9, 14, 19, 24, 29}, 35)
	if c.LinesScrolled() != 5 {
		t.Fatalf("expected 5 lines scrolled, got %d", c.LinesScrolled())
	}
	if c.Target() != -5*lineHeight {
		t.Fatalf("expected target %v, got %v", -5*lineHeight, c.Target())
	}
}

func TestTickConvergesWithoutJumps(t *testing.T) {
	const lineHeight = 48.0
	tuning := Tuning{VisibleLines: 7, MaxSpeed: 5, MaxForce: 2}
	c := NewController(tuning, lineHeight)
	c.Observe([]int{1, 2, 3, 4, 5, 6}, 7)

	prev := c.Offset()
	for i := 0; i < 600; i++ {
		c.Tick(Step)
		if step := math.Abs(c.Offset() - prev); step > tuning.MaxSpeed+1e-9 {
			t.Fatalf("offset jumped by %v on tick %d", step, i)
		}
		if math.Abs(c.Velocity()) > tuning.MaxSpeed+1e-9 {
			t.Fatalf("velocity %v exceeds max speed", c.Velocity())
		}
		prev = c.Offset()
	}
	if math.Abs(c.Offset()-c.Target()) > 0.5 {
		t.Fatalf("expected offset near %v, got %v", c.Target(), c.Offset())
	}
}

func TestTickUsesFixedSteps(t *testing.T) {
	c := NewController(DefaultTuning(), 10)
	c.Observe([]int{1, 2, 3, 4, 5, 6}, 7)
	c.Tick(Step / 2)
	if c.Offset() != 0 {
		t.Fatalf("expected no movement before a full step")
	}
	c.Tick(Step / 2)
	c.Tick(Step)
	if c.Offset() >= 0 {
		t.Fatalf("expected movement toward negative target, got %v", c.Offset())
	}
	c.Reset()
	if c.Offset() != 0 || c.LinesScrolled() != 0 || c.Target() != 0 {
		t.Fatalf("expected reset controller")
	}
}

func TestVehicleUpdateClearsAcceleration(t *testing.T) {
	v := NewVehicle(f64.Vec2{}, 5, 2)
	v.ApplyForce(f64.Vec2{10, 0})
	if v.Acc[0] != 2 {
		t.Fatalf("expected force capped at 2, got %v", v.Acc[0])
	}
	v.Update()
	if v.Acc != (f64.Vec2{}) {
		t.Fatalf("expected acceleration reset, got %v", v.Acc)
	}
	if v.Pos[0] != 2 {
		t.Fatalf("expected position 2, got %v", v.Pos[0])
	}
	if want := 2 * Friction; v.Vel[0] != want {
		t.Fatalf("expected velocity %v, got %v", want, v.Vel[0])
	}
}

func TestArriveSlowsInsideRadius(t *testing.T) {
	v := NewVehicle(f64.Vec2{}, 4, 100)
	far := v.Arrive(f64.Vec2{0, 100}, 10)
	if math.Abs(far[1]-4) > 1e-9 {
		t.Fatalf("expected full speed outside radius, got %v", far)
	}
	near := v.Arrive(f64.Vec2{0, 5}, 10)
	if math.Abs(near[1]-2) > 1e-9 {
		t.Fatalf("expected half speed at half radius, got %v", near)
	}
	home := v.Arrive(f64.Vec2{}, 10)
	if home != (f64.Vec2{}) {
		t.Fatalf("expected no force at the target, got %v", home)
	}
	flee := v.Flee(f64.Vec2{0, 1})
	if flee[1] >= 0 {
		t.Fatalf("expected flee away from target, got %v", flee)
	}
}

func TestTuningScaled(t *testing.T) {
	got := DefaultTuning().Scaled(0.5)
	if got.VisibleLines != 7 || got.MaxSpeed != 2.5 || got.MaxForce != 1 {
		t.Fatalf("unexpected scaled tuning %+v", got)
	}
}
