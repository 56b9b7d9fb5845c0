package sphergo

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/sphergo/rangeset"
	"github.com/hupe1980/sphergo/region"
)

// Pixelization is the query surface a pixelization scheme exposes: a
// mapping from spherical regions to range sets of cell identifiers at
// one fixed subdivision level. Implementations must be immutable after
// construction so a single instance can serve concurrent queries.
type Pixelization interface {
	// Level returns the subdivision level of the cells the queries
	// produce.
	Level() int

	// Envelope returns a superset cover: every cell that might intersect
	// r, in at most maxRanges intervals (0 means unbounded).
	Envelope(r region.Region, maxRanges int) (*rangeset.Set, error)

	// Interior returns a subset cover: only cells proven to lie fully
	// inside r, in at most maxRanges intervals (0 means unbounded).
	Interior(r region.Region, maxRanges int) (*rangeset.Set, error)

	// Universe returns the set of all cell identifiers at this level.
	Universe() *rangeset.Set
}

// CoverAll runs one envelope query per region against p, with bounded
// parallelism, and returns the covers in input order. The first failing
// query cancels the rest. A query itself has no suspension points, so
// ctx is only consulted between queries.
func CoverAll(ctx context.Context, p Pixelization, regions []region.Region, maxRanges int, optFns ...Option) ([]*rangeset.Set, error) {
	return coverAll(ctx, regions, optFns, func(r region.Region) (*rangeset.Set, error) {
		return p.Envelope(r, maxRanges)
	})
}

// InteriorAll is CoverAll for interior queries.
func InteriorAll(ctx context.Context, p Pixelization, regions []region.Region, maxRanges int, optFns ...Option) ([]*rangeset.Set, error) {
	return coverAll(ctx, regions, optFns, func(r region.Region) (*rangeset.Set, error) {
		return p.Interior(r, maxRanges)
	})
}

func coverAll(ctx context.Context, regions []region.Region, optFns []Option, query func(region.Region) (*rangeset.Set, error)) ([]*rangeset.Set, error) {
	if len(regions) == 0 {
		return nil, ErrNoRegions
	}

	o := applyOptions(optFns)

	sets := make([]*rangeset.Set, len(regions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.parallelism)

	for i, r := range regions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			set, err := query(r)
			if err != nil {
				return err
			}
			sets[i] = set
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sets, nil
}
