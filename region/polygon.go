package region

import (
	"errors"
	"fmt"

	"github.com/hupe1980/sphergo/geom"
)

var (
	// ErrTooFewVertices is returned when a polygon is constructed from
	// fewer than three vertices.
	ErrTooFewVertices = errors.New("a convex polygon requires at least 3 vertices")
	// ErrNotConvex is returned when the vertices do not form a
	// counter-clockwise convex polygon.
	ErrNotConvex = errors.New("vertices do not form a counter-clockwise convex polygon")
)

// ConvexPolygon is a geodesically convex spherical polygon given by its
// vertices in counter-clockwise order. Edges are closed: a point exactly
// on an edge is inside.
type ConvexPolygon struct {
	vertices []geom.UnitVector
}

// NewConvexPolygon validates that the vertices wind counter-clockwise
// and form a convex polygon, and returns it.
func NewConvexPolygon(vertices ...geom.UnitVector) (*ConvexPolygon, error) {
	n := len(vertices)
	if n < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewVertices, n)
	}
	for i := range n {
		if geom.Orientation(vertices[i], vertices[(i+1)%n], vertices[(i+2)%n]) <= 0 {
			return nil, ErrNotConvex
		}
	}
	return &ConvexPolygon{vertices: vertices}, nil
}

// NewTriangleRegion returns the triangle itself as a region.
func NewTriangleRegion(t geom.Triangle) (*ConvexPolygon, error) {
	return NewConvexPolygon(t.V0, t.V1, t.V2)
}

// Vertices returns the vertices in counter-clockwise order.
func (p *ConvexPolygon) Vertices() []geom.UnitVector {
	return append([]geom.UnitVector(nil), p.vertices...)
}

// Contains reports whether v lies inside the polygon (closed edges).
func (p *ConvexPolygon) Contains(v geom.UnitVector) bool {
	n := len(p.vertices)
	for i := range n {
		if geom.Orientation(p.vertices[i], p.vertices[(i+1)%n], v) < 0 {
			return false
		}
	}
	return true
}

// Relate classifies a triangle against the polygon. Both figures are
// convex, so the triangle is contained exactly when all three of its
// vertices are; disjointness additionally requires that no vertex of
// either figure lies in the other and that no edges cross. Anything the
// tests cannot decide is reported as Intersects.
func (p *ConvexPolygon) Relate(t geom.Triangle) Relation {
	tv := t.Vertices()
	inside := 0
	for _, v := range tv {
		if p.Contains(v) {
			inside++
		}
	}
	if inside == 3 {
		return Contains
	}
	if inside > 0 {
		return Intersects
	}
	for _, v := range p.vertices {
		if t.Contains(v) {
			return Intersects
		}
	}
	n := len(p.vertices)
	for i := range n {
		a, b := p.vertices[i], p.vertices[(i+1)%n]
		for j := range 3 {
			if edgesCross(a, b, tv[j], tv[(j+1)%3]) {
				return Intersects
			}
		}
	}
	return Disjoint
}

// edgesCross reports whether the geodesic segments (a, b) and (c, d)
// cross at an interior point. Touching endpoints are resolved by the
// closed containment tests in Relate.
func edgesCross(a, b, c, d geom.UnitVector) bool {
	acd := geom.Orientation(a, c, d)
	bcd := geom.Orientation(b, c, d)
	if acd*bcd >= 0 {
		return false
	}
	cab := geom.Orientation(c, a, b)
	dab := geom.Orientation(d, a, b)
	return cab*dab < 0
}
