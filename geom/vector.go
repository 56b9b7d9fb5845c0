package geom

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// ErrZeroVector is returned when a direction cannot be derived because
// the input vector has zero length.
var ErrZeroVector = errors.New("cannot normalize the zero vector")

// UnitVector is a unit 3-vector, i.e. a point on the surface of the unit
// sphere. The zero value is not a valid unit vector; construct values
// with NewUnitVector, UnitVectorFromNormalized or UnitVectorFromLonLat.
type UnitVector struct {
	r3.Vector
}

// NewUnitVector returns the unit vector with the direction of (x, y, z).
// It returns ErrZeroVector if the input has zero length.
func NewUnitVector(x, y, z float64) (UnitVector, error) {
	v := r3.Vector{X: x, Y: y, Z: z}
	if v == (r3.Vector{}) {
		return UnitVector{}, ErrZeroVector
	}
	return UnitVector{v.Normalize()}, nil
}

// UnitVectorFromNormalized wraps components that are already normalized.
// The caller is trusted; no check is performed.
func UnitVectorFromNormalized(x, y, z float64) UnitVector {
	return UnitVector{r3.Vector{X: x, Y: y, Z: z}}
}

// UnitVectorFromLonLat returns the unit vector for a longitude/latitude
// position.
func UnitVectorFromLonLat(ll LonLat) UnitVector {
	lon := ll.Lon.Radians()
	lat := ll.Lat.Radians()
	cosLat := math.Cos(lat)
	return UnitVector{r3.Vector{
		X: math.Cos(lon) * cosLat,
		Y: math.Sin(lon) * cosLat,
		Z: math.Sin(lat),
	}}
}

// Midpoint returns the normalized midpoint of a and b. The midpoint of
// antipodal points is undefined; callers only ever midpoint the corners
// of a spherical triangle, which are never antipodal.
func Midpoint(a, b UnitVector) UnitVector {
	return UnitVector{a.Add(b.Vector).Normalize()}
}

// Angle returns the angle between v and other. The underlying atan2
// formulation is numerically stable for both small and near-π angles.
func (v UnitVector) Angle(other UnitVector) s1.Angle {
	return v.Vector.Angle(other.Vector)
}

// Antipode returns the point diametrically opposite v.
func (v UnitVector) Antipode() UnitVector {
	return UnitVector{v.Mul(-1)}
}

// LonLat returns the longitude/latitude position of v.
func (v UnitVector) LonLat() LonLat {
	return LonLat{
		Lon: s1.Angle(math.Atan2(v.Y, v.X)),
		Lat: s1.Angle(math.Asin(math.Max(-1, math.Min(1, v.Z)))),
	}
}

// ApproxEqual reports whether v and other are within a small fixed angle
// of each other. Intended for tests.
func (v UnitVector) ApproxEqual(other UnitVector) bool {
	return v.Angle(other) <= 1e-14
}

func (v UnitVector) String() string {
	return fmt.Sprintf("[%v, %v, %v]", v.X, v.Y, v.Z)
}

// Orientation returns the sign (-1, 0 or +1) of the determinant of the
// three unit vectors, computed as a·(b×c). The sign tells which side of
// the great circle through b and c the vector a lies on; zero means a is
// on the circle. Callers must treat a non-negative result as inclusive
// (see the package documentation for why this tie rule matters).
func Orientation(a, b, c UnitVector) int {
	d := a.Dot(b.Cross(c.Vector))
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	default:
		return 0
	}
}
