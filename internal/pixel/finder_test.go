package pixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sphergo/geom"
	"github.com/hupe1980/sphergo/rangeset"
	"github.com/hupe1980/sphergo/region"
)

// fakeScheme is a single-root scheme whose triangles carry their child
// index in V0.X, so test regions can classify cells without any real
// geometry. The root is tagged rootTag.
type fakeScheme struct{}

const rootTag = 9

func tagged(tag int) geom.Triangle {
	return geom.Triangle{V0: geom.UnitVectorFromNormalized(float64(tag), 0, 0)}
}

func tagOf(t geom.Triangle) int {
	return int(t.V0.X)
}

func (fakeScheme) NumRoots() int { return 1 }

func (fakeScheme) Root(r int) Cell {
	return Cell{ID: 1, T: tagged(rootTag)}
}

func (fakeScheme) Children(c Cell) [4]Cell {
	var out [4]Cell
	for k := range out {
		out[k] = Cell{ID: c.ID*4 + uint64(k), T: tagged(k)}
	}
	return out
}

// relateFunc adapts a function to the region capability.
type relateFunc func(geom.Triangle) region.Relation

func (f relateFunc) Relate(t geom.Triangle) region.Relation { return f(t) }

func constRegion(rel region.Relation) relateFunc {
	return func(geom.Triangle) region.Relation { return rel }
}

// evenContains keeps even-tagged subtrees entirely and prunes odd ones;
// the root is partial.
func evenContains(t geom.Triangle) region.Relation {
	switch tag := tagOf(t); {
	case tag == rootTag:
		return region.Intersects
	case tag%2 == 0:
		return region.Contains
	default:
		return region.Disjoint
	}
}

// evenIntersects recurses into even-tagged subtrees and prunes odd ones.
func evenIntersects(t geom.Triangle) region.Relation {
	if tag := tagOf(t); tag != rootTag && tag%2 == 1 {
		return region.Disjoint
	}
	return region.Intersects
}

func TestFindFullRegion(t *testing.T) {
	for _, mode := range []Mode{Envelope, Interior} {
		t.Run(mode.String(), func(t *testing.T) {
			set, err := Find(fakeScheme{}, constRegion(region.Contains), 3, 0, mode)
			require.NoError(t, err)
			// The single root collapses to one range without recursion.
			assert.Equal(t, []rangeset.Range{{Lo: 1 << 6, Hi: 2 << 6}}, set.Ranges())
		})
	}
}

func TestFindDisjointRegion(t *testing.T) {
	for _, mode := range []Mode{Envelope, Interior} {
		t.Run(mode.String(), func(t *testing.T) {
			set, err := Find(fakeScheme{}, constRegion(region.Disjoint), 3, 0, mode)
			require.NoError(t, err)
			assert.True(t, set.Empty())
		})
	}
}

func TestFindIntersectingLeaves(t *testing.T) {
	t.Run("EnvelopeKeepsLeaves", func(t *testing.T) {
		set, err := Find(fakeScheme{}, constRegion(region.Intersects), 2, 0, Envelope)
		require.NoError(t, err)
		// Every leaf under the root is emitted and merges into one range.
		assert.Equal(t, []rangeset.Range{{Lo: 1 << 4, Hi: 2 << 4}}, set.Ranges())
	})

	t.Run("InteriorDropsLeaves", func(t *testing.T) {
		set, err := Find(fakeScheme{}, constRegion(region.Intersects), 2, 0, Interior)
		require.NoError(t, err)
		assert.True(t, set.Empty())
	})
}

func TestFindPruning(t *testing.T) {
	// Odd children are disjoint at every level: only cells 4 and 6
	// survive at level 1, and only their even children at level 2.
	set, err := Find(fakeScheme{}, relateFunc(evenIntersects), 2, 0, Envelope)
	require.NoError(t, err)
	assert.Equal(t, []rangeset.Range{
		{Lo: 16, Hi: 17}, {Lo: 18, Hi: 19}, {Lo: 24, Hi: 25}, {Lo: 26, Hi: 27},
	}, set.Ranges())
}

func TestFindSubtreeCollapse(t *testing.T) {
	// Entirely-contained level-1 subtrees are emitted arithmetically as
	// whole level-2 ranges.
	set, err := Find(fakeScheme{}, relateFunc(evenContains), 2, 0, Envelope)
	require.NoError(t, err)
	assert.Equal(t, []rangeset.Range{{Lo: 16, Hi: 20}, {Lo: 24, Hi: 28}}, set.Ranges())

	interior, err := Find(fakeScheme{}, relateFunc(evenContains), 2, 0, Interior)
	require.NoError(t, err)
	assert.True(t, interior.Equal(set), "contained subtrees qualify for both modes")
}

func TestFindBudget(t *testing.T) {
	t.Run("EnvelopeCompacts", func(t *testing.T) {
		set, err := Find(fakeScheme{}, relateFunc(evenContains), 2, 1, Envelope)
		require.NoError(t, err)
		// Bridging the gap keeps a superset.
		assert.Equal(t, []rangeset.Range{{Lo: 16, Hi: 28}}, set.Ranges())
	})

	t.Run("InteriorPrunes", func(t *testing.T) {
		set, err := Find(fakeScheme{}, relateFunc(evenContains), 2, 1, Interior)
		require.NoError(t, err)
		// Dropping an interval keeps a subset.
		assert.Equal(t, []rangeset.Range{{Lo: 16, Hi: 20}}, set.Ranges())
	})
}

func TestFindBadRelation(t *testing.T) {
	_, err := Find(fakeScheme{}, constRegion(region.Relation(42)), 2, 0, Envelope)
	assert.ErrorIs(t, err, region.ErrBadRelation)
}
