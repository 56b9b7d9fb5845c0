// Package rangeset provides an ordered set of disjoint half-open uint64
// intervals, used to accumulate and bound the cell identifier ranges
// produced by a pixelization query.
//
// A Set maintains the invariant that no two intervals touch or overlap:
// inserting an interval merges it with any neighbors it meets. Because
// the representation is canonical, set equality is plain interval
// equality.
//
// # The 2^64 Sentinel
//
// The upper bound of the finest-level identifier universe does not fit a
// uint64, so an interval whose Hi field is 0 denotes an end of 2^64. The
// sentinel can only ever appear in the last interval of a Set.
//
// # Bounding Result Size
//
// Two budget operations reduce the interval count, with opposite biases:
// Compact merges the cheapest adjacent pairs and therefore only ever
// grows the covered set (safe for envelope results), while Prune drops
// the smallest whole intervals and only ever shrinks it (required for
// interior results).
package rangeset
