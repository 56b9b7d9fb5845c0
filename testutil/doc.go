// Package testutil provides testing utilities for sphergo.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe random number generator with
// helpers for sampling points and regions on the sphere.
//
// # Random Geometry
//
//	rng := testutil.NewRNG(seed)
//	v := rng.UnitVector()            // uniform on the sphere
//	c := rng.Circle(10 * math.Pi / 180) // random cap, radius up to 10°
package testutil
