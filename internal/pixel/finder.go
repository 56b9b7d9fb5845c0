// Package pixel implements the generic region-to-ranges search shared by
// pixelization schemes: a recursive walk over a subdivision tree that
// classifies each cell against a region and accumulates the matching
// leaf identifier ranges into a range set.
package pixel

import (
	"fmt"

	"github.com/hupe1980/sphergo/geom"
	"github.com/hupe1980/sphergo/rangeset"
	"github.com/hupe1980/sphergo/region"
)

// Mode selects which guarantee the resulting range set carries.
type Mode uint8

const (
	// Envelope collects every leaf cell that might intersect the region.
	// The result is a superset of the exact answer; bounding its size can
	// only grow it further.
	Envelope Mode = iota
	// Interior collects only leaf cells proven to lie fully inside the
	// region. The result is a subset of the exact answer; bounding its
	// size can only shrink it further.
	Interior
)

func (m Mode) String() string {
	if m == Interior {
		return "interior"
	}
	return "envelope"
}

// Cell pairs a cell identifier with its triangle.
type Cell struct {
	ID uint64
	T  geom.Triangle
}

// Scheme is the subdivision geometry a Finder walks: the fixed top-level
// cells and the quadrisection rule producing four children with
// identifiers id*4+k. Implementations must be stateless or immutable.
type Scheme interface {
	// NumRoots returns the number of top-level cells.
	NumRoots() int
	// Root returns the identifier and triangle of top-level cell r.
	Root(r int) Cell
	// Children returns the four children of a cell in canonical order.
	Children(c Cell) [4]Cell
}

// Find walks the subdivision tree of scheme down to level against reg
// and returns the resulting range set, bounded to maxRanges intervals
// (0 means unbounded). The scheme and region type parameters let a
// caller with concrete types monomorphize the hot recursive step; the
// pixelization facades instantiate R with the region.Region interface.
func Find[S Scheme, R region.Region](scheme S, reg R, level, maxRanges int, mode Mode) (*rangeset.Set, error) {
	f := finder[S, R]{
		scheme: scheme,
		region: reg,
		ranges: rangeset.New(),
		level:  level,
		mode:   mode,
	}
	for r := range scheme.NumRoots() {
		if err := f.visit(scheme.Root(r), 0); err != nil {
			return nil, err
		}
	}
	if mode == Envelope {
		f.ranges.Compact(maxRanges)
	} else {
		f.ranges.Prune(maxRanges)
	}
	return f.ranges, nil
}

type finder[S Scheme, R region.Region] struct {
	scheme S
	region R
	ranges *rangeset.Set
	level  int
	mode   Mode
}

func (f *finder[S, R]) visit(c Cell, level int) error {
	switch rel := f.region.Relate(c.T); rel {
	case region.Disjoint:
		// Nothing under this cell can match, in either mode.

	case region.Contains:
		// The whole subtree is inside the region: emit the full leaf
		// identifier range arithmetically instead of recursing. At the
		// top of the identifier space the exclusive bound wraps to the
		// range set's 2^64 sentinel.
		shift := uint(2 * (f.level - level))
		f.ranges.Insert(c.ID<<shift, (c.ID+1)<<shift)

	case region.Intersects:
		if level < f.level {
			for _, child := range f.scheme.Children(c) {
				if err := f.visit(child, level+1); err != nil {
					return err
				}
			}
			return nil
		}
		// Partial overlap at the finest level: an envelope keeps the
		// cell conservatively, an interior cannot prove containment and
		// drops it conservatively.
		if f.mode == Envelope {
			f.ranges.Insert(c.ID, c.ID+1)
		}

	default:
		return fmt.Errorf("%w: %d", region.ErrBadRelation, rel)
	}
	return nil
}
