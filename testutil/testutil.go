package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/golang/geo/s1"

	"github.com/hupe1980/sphergo/geom"
	"github.com/hupe1980/sphergo/region"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Float64 returns, as a float64, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UnitVector returns a point drawn uniformly from the unit sphere.
func (r *RNG) UnitVector() geom.UnitVector {
	r.mu.Lock()
	defer r.mu.Unlock()
	z := 2*r.rand.Float64() - 1
	phi := 2 * math.Pi * r.rand.Float64()
	s := math.Sqrt(1 - z*z)
	return geom.UnitVectorFromNormalized(s*math.Cos(phi), s*math.Sin(phi), z)
}

// LonLat returns a position with uniform longitude and a latitude drawn
// so the position is uniform on the sphere.
func (r *RNG) LonLat() geom.LonLat {
	return r.UnitVector().LonLat()
}

// Circle returns a cap with a uniform random center and a radius drawn
// uniformly from (0, maxRadius].
func (r *RNG) Circle(maxRadius s1.Angle) region.Circle {
	center := r.UnitVector()
	return region.NewCircle(center, s1.Angle(1-r.Float64())*maxRadius)
}

// UnitVectors returns n points drawn uniformly from the unit sphere.
func (r *RNG) UnitVectors(n int) []geom.UnitVector {
	out := make([]geom.UnitVector, n)
	for i := range out {
		out[i] = r.UnitVector()
	}
	return out
}
