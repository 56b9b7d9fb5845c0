package region

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"

	"github.com/hupe1980/sphergo/geom"
)

// Box is a longitude/latitude box: an s1 interval of longitudes (which
// may wrap across the antimeridian) times an r1 interval of latitudes,
// both in radians.
type Box struct {
	lon s1.Interval
	lat r1.Interval
}

// NewBox returns the box with the given longitude and latitude
// intervals. Latitudes are clamped to [-π/2, π/2].
func NewBox(lon s1.Interval, lat r1.Interval) Box {
	lat.Lo = math.Max(lat.Lo, -math.Pi/2)
	lat.Hi = math.Min(lat.Hi, math.Pi/2)
	return Box{lon: lon, lat: lat}
}

// NewBoxFromDegrees returns the box spanning from (lonLo, latLo) to
// (lonHi, latHi) in degrees. The longitude interval runs from lonLo
// counter-clockwise to lonHi, so lonLo > lonHi wraps across the
// antimeridian.
func NewBoxFromDegrees(lonLo, latLo, lonHi, latHi float64) Box {
	return NewBox(
		s1.IntervalFromEndpoints(normalizeRadians(lonLo*math.Pi/180), normalizeRadians(lonHi*math.Pi/180)),
		r1.Interval{Lo: latLo * math.Pi / 180, Hi: latHi * math.Pi / 180},
	)
}

// normalizeRadians maps an angle to [-π, π] as s1.Interval requires.
func normalizeRadians(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// Lon returns the longitude interval.
func (b Box) Lon() s1.Interval { return b.lon }

// Lat returns the latitude interval.
func (b Box) Lat() r1.Interval { return b.lat }

// IsEmpty reports whether the box contains no points.
func (b Box) IsEmpty() bool {
	return b.lon.IsEmpty() || b.lat.Lo > b.lat.Hi
}

// Contains reports whether the box contains v.
func (b Box) Contains(v geom.UnitVector) bool {
	ll := v.LonLat()
	return b.lat.Contains(ll.Lat.Radians()) && b.lon.Contains(ll.Lon.Radians())
}

// Relate classifies a triangle against the box by way of the triangle's
// longitude/latitude bounding rectangle. The bound is a superset of the
// triangle, so the classification is conservative: it can only degrade a
// decidable case to Intersects.
func (b Box) Relate(t geom.Triangle) Relation {
	if b.IsEmpty() {
		return Disjoint
	}
	lon, lat := triangleRect(t)
	if b.lon.ContainsInterval(lon) && b.lat.ContainsInterval(lat) {
		return Contains
	}
	if !b.lon.Intersects(lon) || !b.lat.Intersects(lat) {
		return Disjoint
	}
	return Intersects
}

// triangleRect returns a longitude/latitude rectangle covering the
// triangle. Vertex coordinates seed the bound; each edge then extends
// the latitude interval by the edge's great-circle latitude extrema, and
// a triangle containing a pole widens the bound to the full longitude
// circle and the pole's latitude.
func triangleRect(t geom.Triangle) (s1.Interval, r1.Interval) {
	v := t.Vertices()

	lon := s1.EmptyInterval()
	lat := r1.EmptyInterval()
	for _, p := range v {
		ll := p.LonLat()
		lat = lat.AddPoint(ll.Lat.Radians())
	}
	for i := range 3 {
		a, c := v[i], v[(i+1)%3]
		// An edge shorter than π stays within the lune of its endpoint
		// meridians, so the short longitude arc between them covers it.
		lon = lon.Union(s1.IntervalFromPointPair(
			a.LonLat().Lon.Radians(), c.LonLat().Lon.Radians()))
		lat = edgeLatExtrema(a, c, lat)
	}

	north := geom.UnitVectorFromNormalized(0, 0, 1)
	if t.Contains(north) {
		lon = s1.FullInterval()
		lat.Hi = math.Pi / 2
	}
	if t.Contains(north.Antipode()) {
		lon = s1.FullInterval()
		lat.Lo = -math.Pi / 2
	}
	return lon, lat
}

// edgeLatExtrema extends lat by the latitude extrema attained on the
// interior of the geodesic segment (a, c), if any.
func edgeLatExtrema(a, c geom.UnitVector, lat r1.Interval) r1.Interval {
	n := a.Cross(c.Vector)
	if n.Norm() == 0 {
		return lat
	}
	// The great circle's northern/southern extremes lie along the
	// projection of the z axis onto the circle's plane. A circle whose
	// normal is the z axis is the equator and has no interior extremum.
	w := r3.Vector{X: 0, Y: 0, Z: 1}.Sub(n.Mul(n.Z / n.Norm2()))
	if w.Norm() == 0 {
		return lat
	}
	w = w.Normalize()
	for _, e := range []r3.Vector{w, w.Mul(-1)} {
		if e.Dot(n.Cross(a.Vector)) >= 0 && e.Dot(n.Cross(c.Vector)) <= 0 {
			lat = lat.AddPoint(math.Asin(math.Max(-1, math.Min(1, e.Z))))
		}
	}
	return lat
}
