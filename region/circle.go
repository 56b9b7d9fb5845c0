package region

import (
	"math"

	"github.com/golang/geo/s1"

	"github.com/hupe1980/sphergo/geom"
)

// Circle is a spherical cap: all points within an opening angle of a
// center. A negative opening angle yields the empty region; an opening
// angle of π or more yields the full sphere.
type Circle struct {
	center geom.UnitVector
	radius s1.Angle
}

// NewCircle returns the cap with the given center and opening angle.
func NewCircle(center geom.UnitVector, radius s1.Angle) Circle {
	return Circle{center: center, radius: radius}
}

// PointCircle returns the degenerate cap holding exactly one point.
func PointCircle(center geom.UnitVector) Circle {
	return Circle{center: center}
}

// FullCircle returns the cap covering the whole sphere.
func FullCircle() Circle {
	return Circle{center: geom.UnitVectorFromNormalized(0, 0, 1), radius: math.Pi}
}

// EmptyCircle returns the cap containing no points.
func EmptyCircle() Circle {
	return Circle{center: geom.UnitVectorFromNormalized(0, 0, 1), radius: -1}
}

// Center returns the cap center.
func (c Circle) Center() geom.UnitVector { return c.center }

// Radius returns the opening angle.
func (c Circle) Radius() s1.Angle { return c.radius }

// IsEmpty reports whether the cap contains no points.
func (c Circle) IsEmpty() bool { return c.radius < 0 }

// IsFull reports whether the cap covers the whole sphere.
func (c Circle) IsFull() bool { return c.radius >= math.Pi }

// Contains reports whether the cap contains v. The boundary is closed.
func (c Circle) Contains(v geom.UnitVector) bool {
	if c.IsEmpty() {
		return false
	}
	return c.center.Angle(v) <= c.radius
}

// Relate classifies a triangle against the cap using the exact minimum
// and maximum angle from the cap center to the triangle. Comparisons are
// arranged so floating point rounding can only degrade a decidable case
// to Intersects, never the other way around.
func (c Circle) Relate(t geom.Triangle) Relation {
	if c.IsEmpty() {
		return Disjoint
	}
	if c.IsFull() {
		return Contains
	}
	if t.MinAngleTo(c.center) > c.radius {
		return Disjoint
	}
	if t.MaxAngleTo(c.center) <= c.radius {
		return Contains
	}
	return Intersects
}
