// Package htm implements the Hierarchical Triangular Mesh pixelization
// of the unit sphere: a recursive quadrisection of 8 root spherical
// triangles into ever finer cells ("trixels"), each named by a
// bit-packed 64-bit identifier suitable for database range queries.
//
// # Identifiers
//
// A cell identifier encodes the root triangle number (8-15) in its top
// four significant bits, followed by two bits per subdivision level
// selecting one of four children. A valid identifier therefore has an
// odd bit length of at least 3, and its level is (bitlength-3)/2. The
// identifiers of all descendants of a cell at a given level form one
// contiguous range, which is what makes HTM covers useful as index
// ranges.
//
// # Queries
//
// A Pixelization is constructed at a fixed subdivision level and is
// immutable afterwards; concurrent queries against the same instance
// need no synchronization. Index locates the cell containing a point by
// direct descent. Envelope and Interior map an arbitrary region to a
// range set of cell identifiers: the envelope is a superset of the cells
// intersecting the region, the interior a subset of the cells fully
// inside it.
package htm
