// Package scroll eases a scroll offset toward the line being typed.
package scroll

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Friction scales velocity after every update.
const Friction = 0.995

// Vehicle is a point mass driven by steering forces.
type Vehicle struct {
	Pos      f64.Vec2
	Vel      f64.Vec2
	Acc      f64.Vec2
	Target   f64.Vec2
	MaxSpeed float64
	MaxForce float64
}

// NewVehicle returns a vehicle at rest at the origin, homed on target.
func NewVehicle(target f64.Vec2, maxSpeed, maxForce float64) *Vehicle {
	return &Vehicle{Target: target, MaxSpeed: maxSpeed, MaxForce: maxForce}
}

// Update integrates one step. Acceleration is consumed.
func (v *Vehicle) Update() {
	v.Vel = add(v.Vel, v.Acc)
	v.Vel = limit(v.Vel, v.MaxSpeed)
	v.Pos = add(v.Pos, v.Vel)
	v.Vel = scale(v.Vel, Friction)
	v.Acc = f64.Vec2{}
}

// ApplyForce adds f to the acceleration, capped at MaxForce.
func (v *Vehicle) ApplyForce(f f64.Vec2) {
	v.Acc = limit(add(v.Acc, f), v.MaxForce)
}

// ReturnHome steers toward Target, slowing within radius.
func (v *Vehicle) ReturnHome(radius float64) {
	v.ApplyForce(v.Arrive(v.Target, radius))
}

// Seek returns the steering force toward target at full speed.
func (v *Vehicle) Seek(target f64.Vec2) f64.Vec2 {
	desired := setMag(sub(target, v.Pos), v.MaxSpeed)
	return limit(sub(desired, v.Vel), v.MaxForce)
}

// Flee returns the steering force away from target.
func (v *Vehicle) Flee(target f64.Vec2) f64.Vec2 {
	return scale(v.Seek(target), -1)
}

// Arrive returns the steering force toward target. Inside radius the desired
// speed falls linearly to zero at the target.
func (v *Vehicle) Arrive(target f64.Vec2, radius float64) f64.Vec2 {
	desired := sub(target, v.Pos)
	distance := mag(desired)
	speed := v.MaxSpeed
	if radius > 0 && distance < radius {
		speed = v.MaxSpeed * distance / radius
	}
	desired = setMag(desired, speed)
	return limit(sub(desired, v.Vel), v.MaxForce)
}

func add(a, b f64.Vec2) f64.Vec2 { return f64.Vec2{a[0] + b[0], a[1] + b[1]} }

func sub(a, b f64.Vec2) f64.Vec2 { return f64.Vec2{a[0] - b[0], a[1] - b[1]} }

func scale(a f64.Vec2, k float64) f64.Vec2 { return f64.Vec2{a[0] * k, a[1] * k} }

func mag(a f64.Vec2) float64 { return math.Hypot(a[0], a[1]) }

func setMag(a f64.Vec2, m float64) f64.Vec2 {
	l := mag(a)
	if l == 0 {
		return f64.Vec2{}
	}
	return scale(a, m/l)
}

func limit(a f64.Vec2, m float64) f64.Vec2 {
	if mag(a) > m {
		return setMag(a, m)
	}
	return a
}
