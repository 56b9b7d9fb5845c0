// Package sphergo provides hierarchical spatial indexing for the unit
// sphere.
//
// Sphergo maps spherical regions (circles, convex polygons, boxes) to
// compact sets of integer cell identifiers, so that a downstream store
// can answer "objects near this region" with range scans instead of
// full scans. It is the spatial-indexing substrate for catalogs of
// positions on the sphere, such as astronomical object catalogs.
//
// # Quick Start
//
//	p, _ := htm.New(10)
//
//	// Which cell holds this point?
//	v := geom.UnitVectorFromLonLat(geom.LonLatFromDegrees(83.6, 22.0))
//	id := p.Index(v)
//
//	// Which cells might intersect a 1° circle around it?
//	cover, _ := p.Envelope(region.NewCircle(v, 1*math.Pi/180), 64)
//	for _, r := range cover.Ranges() {
//	    // scan catalog rows with r.Lo <= cellID < r.Hi
//	}
//
// # Envelope vs. Interior
//
// An envelope cover is superset-safe: it contains every cell that might
// intersect the region, so range scans over it never miss a matching
// object (they may return candidates that need a final exact filter).
// An interior cover is subset-safe: it contains only cells proven to lie
// fully inside the region, so every object in it matches with no further
// filtering. Bounding the result size with maxRanges preserves the
// respective guarantee: envelopes only ever grow, interiors only ever
// shrink.
//
// # Concurrency
//
// A pixelization is immutable after construction and shares no mutable
// state between queries; use one instance from any number of goroutines.
// CoverAll and InteriorAll fan a batch of regions out across a bounded
// worker group.
//
// # Packages
//
//   - htm: the Hierarchical Triangular Mesh pixelization
//   - region: circle, convex polygon and box regions, and the Region
//     capability for user-defined ones
//   - rangeset: the interval-set result type, with a wire codec and a
//     Roaring bitmap bridge
//   - geom: unit vectors, spherical triangles and the orientation
//     predicate
package sphergo
