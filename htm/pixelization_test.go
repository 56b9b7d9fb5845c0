package htm

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sphergo"
	"github.com/hupe1980/sphergo/geom"
	"github.com/hupe1980/sphergo/region"
	"github.com/hupe1980/sphergo/testutil"
)

func TestNew(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		for _, level := range []int{0, 8, MaxLevel} {
			p, err := New(level)
			require.NoError(t, err)
			assert.Equal(t, level, p.Level())
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, level := range []int{-1, MaxLevel + 1, 100} {
			_, err := New(level)
			assert.ErrorIs(t, err, ErrInvalidLevel)
		}
	})
}

func TestIndex(t *testing.T) {
	t.Run("Level0IsRootSelection", func(t *testing.T) {
		p, err := New(0)
		require.NoError(t, err)

		tests := []struct {
			name    string
			x, y, z float64
			want    CellID
		}{
			{"SouthXPlus", 1, 0.1, -0.5, 8},
			{"SouthYPlus", -0.1, 1, -0.5, 9},
			{"SouthXMinus", -1, -0.1, -0.5, 10},
			{"SouthYMinus", 0.1, -1, -0.5, 11},
			{"NorthYMinus", 0.1, -1, 0.5, 12},
			{"NorthXMinus", -1, -0.1, 0.5, 13},
			{"NorthYPlus", -0.1, 1, 0.5, 14},
			{"NorthXPlus", 1, 0.1, 0.5, 15},
			{"OnEquatorPrimeMeridian", 1, 0, 0, 15},
			{"SouthPole", 0, 0, -1, 8},
			{"NorthPole", 0, 0, 1, 15},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				v, err := geom.NewUnitVector(tt.x, tt.y, tt.z)
				require.NoError(t, err)
				assert.Equal(t, tt.want, p.Index(v))
			})
		}
	})

	t.Run("ResultLevelMatches", func(t *testing.T) {
		rng := testutil.NewRNG(4711)
		for _, level := range []int{0, 1, 5, 20, MaxLevel} {
			p, err := New(level)
			require.NoError(t, err)
			for range 20 {
				assert.Equal(t, level, p.Index(rng.UnitVector()).Level())
			}
		}
	})

	t.Run("TriangleContainsPoint", func(t *testing.T) {
		p, err := New(12)
		require.NoError(t, err)
		rng := testutil.NewRNG(1234)
		for range 200 {
			v := rng.UnitVector()
			tri, err := p.Index(v).Triangle()
			require.NoError(t, err)
			assert.True(t, tri.Contains(v), "trixel %v does not contain %v", p.Index(v), v)
		}
	})

	t.Run("PrefixConsistency", func(t *testing.T) {
		// The coarse cell of a point is always the ancestor of its finer
		// cell.
		coarse, err := New(4)
		require.NoError(t, err)
		fine, err := New(9)
		require.NoError(t, err)
		rng := testutil.NewRNG(7)
		for range 100 {
			v := rng.UnitVector()
			assert.Equal(t, coarse.Index(v), fine.Index(v)>>10)
		}
	})
}

func TestIndexTriangleInverseConsistency(t *testing.T) {
	// Descending toward any vertex of a trixel must land on a trixel
	// touching that vertex: either the vertex is (numerically nearly)
	// one of the result's corners, or the result contains it outright.
	rng := testutil.NewRNG(31)
	p, err := New(8)
	require.NoError(t, err)
	for range 50 {
		tri, err := randomCellID(rng, 8).Triangle()
		require.NoError(t, err)
		for _, v := range tri.Vertices() {
			got, err := p.Index(v).Triangle()
			require.NoError(t, err)
			touches := got.Contains(v)
			for _, c := range got.Vertices() {
				touches = touches || c.Angle(v) < 1e-9
			}
			assert.True(t, touches)
		}
	}
}

func TestUniverse(t *testing.T) {
	for _, level := range []int{0, 3, MaxLevel} {
		p, err := New(level)
		require.NoError(t, err)
		u := p.Universe()
		assert.Equal(t, 1, u.Len())
		assert.True(t, u.Contains(uint64(8)<<(2*level)))
		assert.False(t, u.Contains(uint64(8)<<(2*level)-1))
		if level < MaxLevel {
			assert.Equal(t, uint64(8)<<(2*level), u.Cardinality())
		}
	}
}

func TestEnvelopeFullSphere(t *testing.T) {
	for _, level := range []int{0, 2, 5} {
		p, err := New(level)
		require.NoError(t, err)

		envelope, err := p.Envelope(region.FullCircle(), 0)
		require.NoError(t, err)
		assert.True(t, envelope.Equal(p.Universe()), "level %d", level)

		interior, err := p.Interior(region.FullCircle(), 0)
		require.NoError(t, err)
		assert.True(t, interior.Equal(p.Universe()), "level %d", level)
	}
}

func TestEnvelopeEmptyRegion(t *testing.T) {
	p, err := New(5)
	require.NoError(t, err)

	envelope, err := p.Envelope(region.EmptyCircle(), 0)
	require.NoError(t, err)
	assert.True(t, envelope.Empty())

	interior, err := p.Interior(region.EmptyCircle(), 0)
	require.NoError(t, err)
	assert.True(t, interior.Empty())
}

func TestEnvelopeSinglePoint(t *testing.T) {
	p, err := New(7)
	require.NoError(t, err)
	rng := testutil.NewRNG(271828)

	for range 25 {
		v := rng.UnitVector()
		pt := region.PointCircle(v)

		envelope, err := p.Envelope(pt, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), envelope.Cardinality())
		assert.True(t, envelope.Contains(uint64(p.Index(v))))

		interior, err := p.Interior(pt, 0)
		require.NoError(t, err)
		assert.True(t, interior.Empty(), "a point can never fill a trixel")
	}
}

func TestEnvelopeContainsInterior(t *testing.T) {
	rng := testutil.NewRNG(1618)
	for range 20 {
		level := 1 + rng.Intn(7)
		p, err := New(level)
		require.NoError(t, err)
		circle := rng.Circle(30 * math.Pi / 180)

		envelope, err := p.Envelope(circle, 0)
		require.NoError(t, err)
		interior, err := p.Interior(circle, 0)
		require.NoError(t, err)

		for _, r := range interior.Ranges() {
			assert.True(t, envelope.ContainsRange(r.Lo, r.Hi),
				"level %d circle %v: interior %v not in envelope %v", level, circle, r, envelope)
		}
	}
}

func TestEnvelopeCircleCoverage(t *testing.T) {
	// Every point sampled inside the region must be covered by the
	// envelope, with or without a range budget.
	p, err := New(6)
	require.NoError(t, err)
	rng := testutil.NewRNG(55)

	center := rng.UnitVector()
	circle := region.NewCircle(center, 10*math.Pi/180)

	unbounded, err := p.Envelope(circle, 0)
	require.NoError(t, err)
	bounded, err := p.Envelope(circle, 4)
	require.NoError(t, err)
	assert.LessOrEqual(t, bounded.Len(), 4)

	interior, err := p.Interior(circle, 0)
	require.NoError(t, err)
	boundedInterior, err := p.Interior(circle, 2)
	require.NoError(t, err)
	assert.LessOrEqual(t, boundedInterior.Len(), 2)

	for range 300 {
		// Sample points inside the circle by construction.
		v := center
		for rng.Float64() < 0.95 {
			v = geom.Midpoint(v, rng.UnitVector())
			if center.Angle(v) > 10*math.Pi/180 {
				break
			}
		}
		if center.Angle(v) > 10*math.Pi/180 {
			continue
		}
		id := uint64(p.Index(v))
		assert.True(t, unbounded.Contains(id))
		assert.True(t, bounded.Contains(id), "compaction must not lose coverage")
	}

	// The bounded interior is a subset of the unbounded one, which is a
	// subset of the envelope.
	for _, r := range boundedInterior.Ranges() {
		assert.True(t, interior.ContainsRange(r.Lo, r.Hi))
	}
	for _, r := range interior.Ranges() {
		assert.True(t, unbounded.ContainsRange(r.Lo, r.Hi))
	}
}

func TestPixel(t *testing.T) {
	p, err := New(4)
	require.NoError(t, err)

	t.Run("TrixelAsRegion", func(t *testing.T) {
		id := p.Index(geom.UnitVectorFromLonLat(geom.LonLatFromDegrees(40, 20)))
		poly, err := p.Pixel(id)
		require.NoError(t, err)

		tri, err := id.Triangle()
		require.NoError(t, err)
		corners := tri.Vertices()
		assert.Equal(t, corners[:], poly.Vertices())

		centroid := geom.Midpoint(geom.Midpoint(tri.V0, tri.V1), tri.V2)
		assert.True(t, poly.Contains(centroid))
		assert.False(t, poly.Contains(centroid.Antipode()))
	})

	t.Run("ShrunkenTrixelEnvelope", func(t *testing.T) {
		// A region strictly inside a trixel covers only identifiers
		// descending from that trixel.
		id := p.Index(geom.UnitVectorFromLonLat(geom.LonLatFromDegrees(40, 20)))
		tri, err := id.Triangle()
		require.NoError(t, err)
		centroid := geom.Midpoint(geom.Midpoint(tri.V0, tri.V1), tri.V2)
		inner, err := region.NewConvexPolygon(
			geom.Midpoint(tri.V0, centroid),
			geom.Midpoint(tri.V1, centroid),
			geom.Midpoint(tri.V2, centroid),
		)
		require.NoError(t, err)

		fine, err := New(8)
		require.NoError(t, err)
		envelope, err := fine.Envelope(inner, 0)
		require.NoError(t, err)
		require.False(t, envelope.Empty())
		for _, r := range envelope.Ranges() {
			assert.GreaterOrEqual(t, r.Lo, uint64(id.RangeMin(8)))
			assert.LessOrEqual(t, r.Hi, uint64(id.RangeMax(8))+1)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := p.Pixel(CellID(6))
		assert.ErrorIs(t, err, ErrInvalidCellID)
	})
}

func TestToString(t *testing.T) {
	p, err := New(0)
	require.NoError(t, err)

	s, err := p.ToString(8)
	require.NoError(t, err)
	assert.Equal(t, "S0", s)

	_, err = p.ToString(5)
	assert.ErrorIs(t, err, ErrInvalidCellID)
}

func TestPixelizationObservability(t *testing.T) {
	var buf bytes.Buffer
	logger := sphergo.NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	metrics := &sphergo.BasicMetricsCollector{}
	p, err := New(4, WithMetrics(metrics), WithLogger(logger))
	require.NoError(t, err)

	v := geom.UnitVectorFromLonLat(geom.LonLatFromDegrees(10, 10))
	p.Index(v)
	_, err = p.Envelope(region.NewCircle(v, 0.1), 0)
	require.NoError(t, err)
	_, err = p.Interior(region.NewCircle(v, 0.1), 0)
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.IndexCount)
	assert.Equal(t, int64(1), stats.EnvelopeCount)
	assert.Equal(t, int64(1), stats.InteriorCount)
	assert.Equal(t, int64(0), stats.EnvelopeErrors)

	// Queries log with the mode and subdivision level as structured
	// fields.
	out := buf.String()
	assert.Contains(t, out, "mode=envelope")
	assert.Contains(t, out, "mode=interior")
	assert.Contains(t, out, "level=4")
}

func TestPixelizationBadRegion(t *testing.T) {
	metrics := &sphergo.BasicMetricsCollector{}
	p, err := New(3, WithMetrics(metrics))
	require.NoError(t, err)

	_, err = p.Envelope(badRegion{}, 0)
	assert.ErrorIs(t, err, region.ErrBadRelation)
	assert.Equal(t, int64(1), metrics.GetStats().EnvelopeErrors)
}

type badRegion struct{}

func (badRegion) Relate(geom.Triangle) region.Relation { return region.Relation(7) }

func BenchmarkIndex(b *testing.B) {
	p, err := New(20)
	if err != nil {
		b.Fatal(err)
	}
	rng := testutil.NewRNG(1)
	points := rng.UnitVectors(1024)

	b.ResetTimer()
	for i := 0; b.Loop(); i++ {
		_ = p.Index(points[i%len(points)])
	}
}

func BenchmarkEnvelope(b *testing.B) {
	p, err := New(8)
	if err != nil {
		b.Fatal(err)
	}
	rng := testutil.NewRNG(2)
	circle := rng.Circle(5 * math.Pi / 180)

	b.ResetTimer()
	for b.Loop() {
		if _, err := p.Envelope(circle, 64); err != nil {
			b.Fatal(err)
		}
	}
}
