package rangeset

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	sets := map[string]*Set{
		"Empty":    New(),
		"Single":   FromRanges(Range{10, 20}),
		"Multiple": FromRanges(Range{0, 5}, Range{100, 2000}, Range{1 << 40, 1<<40 + 3}),
		"Sentinel": FromRanges(Range{7, 9}, Range{math.MaxUint64 - 100, 0}),
		"Universe": FromRanges(Range{0, 0}),
	}
	compressions := map[string]Compression{
		"None": CompressionNone,
		"LZ4":  CompressionLZ4,
		"ZSTD": CompressionZSTD,
	}

	for sname, s := range sets {
		for cname, c := range compressions {
			t.Run(sname+"/"+cname, func(t *testing.T) {
				data, err := Encode(s, c)
				require.NoError(t, err)

				got, err := Decode(data)
				require.NoError(t, err)
				assert.True(t, got.Equal(s), "got %v, want %v", got, s)
			})
		}
	}
}

func TestCodecCompressionHelps(t *testing.T) {
	// A long run of regularly spaced intervals compresses well.
	s := New()
	for i := uint64(0); i < 4096; i++ {
		s.Insert(i*64, i*64+17)
	}

	raw, err := Encode(s, CompressionNone)
	require.NoError(t, err)
	zstd, err := Encode(s, CompressionZSTD)
	require.NoError(t, err)
	lz4, err := Encode(s, CompressionLZ4)
	require.NoError(t, err)

	assert.Less(t, len(zstd), len(raw))
	assert.Less(t, len(lz4), len(raw))
}

func TestCodecIncompressibleStoredRaw(t *testing.T) {
	// A tiny payload cannot shrink; the header must fall back to
	// CompressionNone so decoding needs no decompressor.
	s := FromRanges(Range{42, 43})
	data, err := Encode(s, CompressionZSTD)
	require.NoError(t, err)
	assert.Equal(t, byte(CompressionNone), data[5])

	got, err := Decode(data)
	require.NoError(t, err)
	assert.True(t, got.Equal(s))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	tests := map[string][]byte{
		"Truncated":       {'S', 'G', 'R'},
		"BadMagic":        {'X', 'X', 'X', 'X', 1, 0, 0},
		"BadVersion":      {'S', 'G', 'R', 'S', 99, 0, 0},
		"BadCompression":  {'S', 'G', 'R', 'S', 1, 77, 0},
		"MissingPayload":  {'S', 'G', 'R', 'S', 1, 0},
		"TruncatedCounts": {'S', 'G', 'R', 'S', 1, 0, 4, 2},
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(data)
			assert.Error(t, err)
		})
	}
}

func TestDecodeRejectsExcessiveCount(t *testing.T) {
	// A header may claim more intervals than its payload could possibly
	// hold (each interval takes at least two payload bytes). Decode must
	// reject the count up front rather than allocate for it.
	for _, count := range []uint64{8, 1 << 30, 1 << 62} {
		payload := binary.AppendUvarint(nil, count)
		data := []byte{'S', 'G', 'R', 'S', 1, 0}
		data = binary.AppendUvarint(data, uint64(len(payload)))
		data = append(data, payload...)

		_, err := Decode(data)
		assert.ErrorIs(t, err, ErrInvalidEncoding, "count %d", count)
	}
}

func TestDecodeRejectsUnsortedIntervals(t *testing.T) {
	// Hand-built payload with a second interval that touches the first:
	// count=2, (delta=5, len=3), (delta=0, len=2).
	data := []byte{'S', 'G', 'R', 'S', 1, 0, 5, 2, 5, 3, 0, 2}
	_, err := Decode(data)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestBitmap(t *testing.T) {
	t.Run("MatchesSet", func(t *testing.T) {
		s := FromRanges(Range{3, 6}, Range{100, 130})
		rb, err := s.Bitmap()
		require.NoError(t, err)
		assert.Equal(t, s.Cardinality(), rb.GetCardinality())
		for v := range s.All() {
			assert.True(t, rb.Contains(v))
		}
		assert.False(t, rb.Contains(6))
	})

	t.Run("Empty", func(t *testing.T) {
		rb, err := New().Bitmap()
		require.NoError(t, err)
		assert.True(t, rb.IsEmpty())
	})

	t.Run("UniverseRejected", func(t *testing.T) {
		s := FromRanges(Range{10, 0})
		_, err := s.Bitmap()
		assert.ErrorIs(t, err, ErrUniverseBitmap)
	})
}
