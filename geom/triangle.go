package geom

import (
	"math"

	"github.com/golang/geo/s1"
)

// Triangle is a spherical triangle given by its three corners in
// counter-clockwise order. Vertex order is significant: point location
// and subdivision both depend on it.
type Triangle struct {
	V0, V1, V2 UnitVector
}

// Vertices returns the corners in order.
func (t Triangle) Vertices() [3]UnitVector {
	return [3]UnitVector{t.V0, t.V1, t.V2}
}

// Contains reports whether v lies inside the triangle. Edges are closed:
// a point exactly on an edge or corner is contained.
func (t Triangle) Contains(v UnitVector) bool {
	return Orientation(t.V0, t.V1, v) >= 0 &&
		Orientation(t.V1, t.V2, v) >= 0 &&
		Orientation(t.V2, t.V0, v) >= 0
}

// Subdivide returns the four children of the triangle produced by
// midpoint quadrisection, in canonical order: the corner triangle at V0,
// at V1, at V2, and finally the central triangle formed entirely of edge
// midpoints. The order and vertex orientation of each child match the
// cell numbering used by hierarchical pixelizations built on this rule.
func (t Triangle) Subdivide() [4]Triangle {
	m12 := Midpoint(t.V1, t.V2)
	m20 := Midpoint(t.V2, t.V0)
	m01 := Midpoint(t.V0, t.V1)
	return [4]Triangle{
		{t.V0, m01, m20},
		{t.V1, m12, m01},
		{t.V2, m20, m12},
		{m12, m20, m01},
	}
}

// MinAngleTo returns the smallest angle between v and any point of the
// triangle. The result is zero when the triangle contains v.
func (t Triangle) MinAngleTo(v UnitVector) s1.Angle {
	if t.Contains(v) {
		return 0
	}
	d := edgeAngle(v, t.V0, t.V1)
	d = min(d, edgeAngle(v, t.V1, t.V2))
	return min(d, edgeAngle(v, t.V2, t.V0))
}

// MaxAngleTo returns the largest angle between v and any point of the
// triangle. The maximum is attained either at a corner or, when the
// triangle contains the antipode of v, at that antipode (angle π).
func (t Triangle) MaxAngleTo(v UnitVector) s1.Angle {
	return math.Pi - t.MinAngleTo(v.Antipode())
}

// edgeAngle returns the angle from p to the closest point of the
// geodesic segment (a, b).
func edgeAngle(p, a, b UnitVector) s1.Angle {
	n := a.Cross(b.Vector)
	// n×a and n×b are the in-plane directions at a toward b and at b away
	// from a; the two dot products bound the wedge in which the closest
	// point is interior to the segment.
	if p.Dot(n.Cross(a.Vector)) >= 0 && p.Dot(n.Cross(b.Vector)) <= 0 {
		nn := n.Norm()
		if nn == 0 {
			return p.Angle(a)
		}
		sin := math.Abs(p.Dot(n)) / nn
		return s1.Angle(math.Asin(math.Min(1, sin)))
	}
	return min(p.Angle(a), p.Angle(b))
}
