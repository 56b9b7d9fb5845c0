package htm

import (
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/sphergo"
	"github.com/hupe1980/sphergo/geom"
	"github.com/hupe1980/sphergo/internal/pixel"
	"github.com/hupe1980/sphergo/rangeset"
	"github.com/hupe1980/sphergo/region"
)

// ErrInvalidLevel is returned by New for a subdivision level outside
// [0, MaxLevel].
var ErrInvalidLevel = errors.New("invalid HTM subdivision level")

type options struct {
	logger  *sphergo.Logger
	metrics sphergo.MetricsCollector
}

// Option configures a Pixelization.
type Option func(*options)

// WithLogger configures the logger used around queries. The default
// discards all output.
func WithLogger(logger *sphergo.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics configures the collector that observes query timings and
// result sizes. The default is a no-op.
func WithMetrics(collector sphergo.MetricsCollector) Option {
	return func(o *options) {
		if collector != nil {
			o.metrics = collector
		}
	}
}

// Pixelization maps points and regions to HTM cells at one fixed
// subdivision level. It is immutable after construction: concurrent
// queries against the same instance need no synchronization, and every
// query allocates and returns its own range set.
type Pixelization struct {
	level   int
	logger  *sphergo.Logger
	metrics sphergo.MetricsCollector
}

// New returns a Pixelization for the given subdivision level. It
// returns ErrInvalidLevel if level is outside [0, MaxLevel].
func New(level int, optFns ...Option) (*Pixelization, error) {
	if level < 0 || level > MaxLevel {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	o := options{
		logger:  sphergo.NoopLogger(),
		metrics: sphergo.NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return &Pixelization{level: level, logger: o.logger.WithLevel(level), metrics: o.metrics}, nil
}

// Level returns the configured subdivision level.
func (p *Pixelization) Level() int {
	return p.level
}

// Index returns the identifier of the level-p.Level() trixel containing
// v. It descends directly from the containing root triangle, choosing a
// child per level by two or three half-plane tests; no search is
// involved and it never fails for a unit vector. Boundary points resolve
// to the lowest-numbered candidate child via the non-negative
// orientation convention.
func (p *Pixelization) Index(v geom.UnitVector) CellID {
	start := time.Now()

	// Pick the root triangle from the coordinate signs. The equality
	// tie-breaks are part of the tiling contract: every point, including
	// points on root boundaries, maps to exactly one root.
	var r int
	if v.Z < 0 {
		switch {
		case v.Y > 0:
			if v.X > 0 {
				r = 0
			} else {
				r = 1
			}
		case v.Y == 0:
			if v.X >= 0 {
				r = 0
			} else {
				r = 2
			}
		default:
			if v.X < 0 {
				r = 2
			} else {
				r = 3
			}
		}
	} else {
		switch {
		case v.Y > 0:
			if v.X > 0 {
				r = 7
			} else {
				r = 6
			}
		case v.Y == 0:
			if v.X >= 0 {
				r = 7
			} else {
				r = 5
			}
		default:
			if v.X < 0 {
				r = 5
			} else {
				r = 4
			}
		}
	}

	t := rootTriangle(r)
	id := uint64(r) + 8
	for l := 0; l < p.level; l++ {
		m01 := geom.Midpoint(t.V0, t.V1)
		m20 := geom.Midpoint(t.V2, t.V0)
		id <<= 2
		if geom.Orientation(v, m01, m20) >= 0 {
			t.V1, t.V2 = m01, m20
			continue
		}
		m12 := geom.Midpoint(t.V1, t.V2)
		if geom.Orientation(v, m12, m01) >= 0 {
			t = geom.Triangle{V0: t.V1, V1: m12, V2: m01}
			id++
		} else if geom.Orientation(v, m20, m12) >= 0 {
			t = geom.Triangle{V0: t.V2, V1: m20, V2: m12}
			id += 2
		} else {
			t = geom.Triangle{V0: m12, V1: m20, V2: m01}
			id += 3
		}
	}

	p.metrics.RecordIndex(time.Since(start))
	return CellID(id)
}

// Envelope returns a range set covering every level-p.Level() cell that
// might intersect r, bounded to at most maxRanges intervals (0 means
// unbounded). Bounding can only add spurious cells, never drop candidate
// ones: the result is always a superset of the exact envelope.
func (p *Pixelization) Envelope(r region.Region, maxRanges int) (*rangeset.Set, error) {
	start := time.Now()
	set, err := pixel.Find(scheme{}, r, p.level, maxRanges, pixel.Envelope)
	p.observe(pixel.Envelope, set, start, err)
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Interior returns a range set covering only level-p.Level() cells
// guaranteed to lie fully inside r, bounded to at most maxRanges
// intervals (0 means unbounded). Bounding can only drop cells, never add
// unproven ones: the result is always a subset of the exact interior.
func (p *Pixelization) Interior(r region.Region, maxRanges int) (*rangeset.Set, error) {
	start := time.Now()
	set, err := pixel.Find(scheme{}, r, p.level, maxRanges, pixel.Interior)
	p.observe(pixel.Interior, set, start, err)
	if err != nil {
		return nil, err
	}
	return set, nil
}

func (p *Pixelization) observe(mode pixel.Mode, set *rangeset.Set, start time.Time, err error) {
	elapsed := time.Since(start)
	ranges := 0
	if set != nil {
		ranges = set.Len()
	}
	if mode == pixel.Envelope {
		p.metrics.RecordEnvelope(elapsed, ranges, err)
	} else {
		p.metrics.RecordInterior(elapsed, ranges, err)
	}
	log := p.logger.WithMode(mode.String())
	if err != nil {
		log.Error("pixelization query failed", "error", err)
		return
	}
	log.Debug("pixelization query", "ranges", ranges, "duration", elapsed)
}

// Universe returns the range set holding every cell identifier at this
// pixelization's level.
func (p *Pixelization) Universe() *rangeset.Set {
	set := rangeset.New()
	shift := uint(2 * p.level)
	set.Insert(8<<shift, 16<<shift) // the bound wraps to the 2^64 sentinel at MaxLevel
	return set
}

// Pixel returns the trixel named by id as a convex polygon region, for
// use as the query region of further searches.
func (p *Pixelization) Pixel(id CellID) (*region.ConvexPolygon, error) {
	t, err := id.Triangle()
	if err != nil {
		return nil, err
	}
	return region.NewTriangleRegion(t)
}

// ToString returns the textual form of id, or ErrInvalidCellID.
func (p *Pixelization) ToString(id CellID) (string, error) {
	return FormatCellID(id)
}
