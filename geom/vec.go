// Package geom holds the small amount of 2D geometry the game needs: vectors,
// circle overlap and the arena rectangle. It has no dependencies so the
// predicates can be tested and reused by any system.
package geom

import "math"

// Vec2 is a 2D vector in arena units.
type Vec2 struct {
	X, Y float32
}

// V is shorthand for Vec2{x, y}.
func V(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromAngle returns the vector of the given length pointing at angle radians.
func FromAngle(angle float64, length float32) Vec2 {
	return Vec2{
		X: float32(math.Cos(angle)) * length,
		Y: float32(math.Sin(angle)) * length,
	}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) LenSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Len() float32 {
	return float32(math.Sqrt(float64(v.LenSq())))
}

// Normalize returns the unit vector in v's direction. The zero vector is
// returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// Angle returns atan2(y, x).
func (v Vec2) Angle() float64 {
	return math.Atan2(float64(v.Y), float64(v.X))
}

// Rotate returns v rotated by angle radians counter-clockwise.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	s, c := float32(sin), float32(cos)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// DistSq returns the squared distance between v and o.
func (v Vec2) DistSq(o Vec2) float32 {
	return v.Sub(o).LenSq()
}
