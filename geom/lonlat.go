package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
)

// LonLat is a longitude/latitude position on the sphere. Longitude is
// normalized to (-180°, 180°] and latitude clamped to [-90°, 90°] by the
// constructors.
type LonLat struct {
	Lon s1.Angle
	Lat s1.Angle
}

// LonLatFromDegrees returns the LonLat for the given coordinates in
// degrees, normalizing the longitude and clamping the latitude.
func LonLatFromDegrees(lon, lat float64) LonLat {
	return LonLat{
		Lon: s1.Angle(normalizeLon(lon*math.Pi/180)) * s1.Radian,
		Lat: s1.Angle(clampLat(lat*math.Pi/180)) * s1.Radian,
	}
}

// LonLatFromRadians returns the LonLat for the given coordinates in
// radians, normalizing the longitude and clamping the latitude.
func LonLatFromRadians(lon, lat float64) LonLat {
	return LonLat{
		Lon: s1.Angle(normalizeLon(lon)) * s1.Radian,
		Lat: s1.Angle(clampLat(lat)) * s1.Radian,
	}
}

func (ll LonLat) String() string {
	return fmt.Sprintf("[%.7f, %.7f]", ll.Lon.Degrees(), ll.Lat.Degrees())
}

// normalizeLon maps lon to (-π, π].
func normalizeLon(lon float64) float64 {
	lon = math.Mod(lon, 2*math.Pi)
	if lon <= -math.Pi {
		lon += 2 * math.Pi
	} else if lon > math.Pi {
		lon -= 2 * math.Pi
	}
	return lon
}

// clampLat clamps lat to [-π/2, π/2].
func clampLat(lat float64) float64 {
	return math.Max(-math.Pi/2, math.Min(math.Pi/2, lat))
}
