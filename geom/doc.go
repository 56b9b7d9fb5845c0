// Package geom provides the numeric primitives for spherical geometry:
// unit vectors on the sphere, longitude/latitude coordinates, spherical
// triangles, and the orientation predicate that classifies a point
// against a great-circle arc.
//
// All angles are s1.Angle values (radians internally); all positions are
// unit 3-vectors backed by r3.Vector.
//
// # Orientation Convention
//
// Orientation returns the sign of the determinant of three unit vectors.
// A result of exactly zero means the third vector lies on the great
// circle through the first two. Callers throughout this module treat a
// non-negative sign as "inside", so every point on the sphere belongs to
// exactly one cell at any subdivision level and boundary ties always
// resolve toward lower child indices. Do not introduce an epsilon here.
package geom
