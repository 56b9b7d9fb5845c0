package rangeset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block compression applied to an encoded set.
type Compression uint8

const (
	// CompressionNone stores the payload raw.
	CompressionNone Compression = 0
	// CompressionLZ4 applies LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD applies ZSTD block compression (better ratio).
	CompressionZSTD Compression = 2
)

var (
	// ErrInvalidEncoding is returned by Decode for malformed input.
	ErrInvalidEncoding = errors.New("invalid range set encoding")
	// ErrUnknownCompression is returned for an unrecognized compression byte.
	ErrUnknownCompression = errors.New("unknown compression type")
)

// Encoded sets start with a fixed header:
// magic (4 bytes) | version (1 byte) | compression (1 byte) |
// uncompressed payload size (uvarint) | payload.
var codecMagic = [4]byte{'S', 'G', 'R', 'S'}

const codecVersion = 1

// ZSTD coder pools, shared across encodes/decodes.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Encode serializes the set with the requested compression. The payload
// is a varint-delta encoding of the intervals; when compression does not
// shrink it, the payload is stored raw and the header records
// CompressionNone.
func Encode(s *Set, c Compression) ([]byte, error) {
	payload := appendPayload(nil, s)
	rawSize := len(payload)

	switch c {
	case CompressionNone:
	case CompressionLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(payload)))
		n, err := lz4.CompressBlock(payload, dst, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if n > 0 && n < len(payload) {
			payload, c = dst[:n], CompressionLZ4
		} else {
			c = CompressionNone
		}
	case CompressionZSTD:
		enc := getZstdEncoder()
		dst := enc.EncodeAll(payload, nil)
		zstdEncoderPool.Put(enc)
		if len(dst) < len(payload) {
			payload = dst
		} else {
			c = CompressionNone
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}

	out := make([]byte, 0, len(payload)+16)
	out = append(out, codecMagic[:]...)
	out = append(out, codecVersion, byte(c))
	out = binary.AppendUvarint(out, uint64(rawSize))
	return append(out, payload...), nil
}

// appendPayload appends the varint-delta interval encoding: interval
// count, then per interval the distance from the previous end and the
// interval length. Both values use the natural uint64 wrap for the Hi ==
// 0 sentinel, so the encoding needs no special cases.
func appendPayload(dst []byte, s *Set) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(s.ranges)))
	var prev uint64
	for _, r := range s.ranges {
		dst = binary.AppendUvarint(dst, r.Lo-prev)
		dst = binary.AppendUvarint(dst, r.Hi-r.Lo)
		prev = r.Hi
	}
	return dst
}

// Decode deserializes a set produced by Encode.
func Decode(data []byte) (*Set, error) {
	if len(data) < 6 || [4]byte(data[:4]) != codecMagic {
		return nil, ErrInvalidEncoding
	}
	if data[4] != codecVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidEncoding, data[4])
	}
	c := Compression(data[5])
	rest := data[6:]
	size, n := binary.Uvarint(rest)
	if n <= 0 {
		return nil, ErrInvalidEncoding
	}
	payload := rest[n:]

	switch c {
	case CompressionNone:
	case CompressionLZ4:
		dst := make([]byte, size)
		m, err := lz4.UncompressBlock(payload, dst)
		if err != nil || uint64(m) != size {
			return nil, fmt.Errorf("%w: lz4 payload", ErrInvalidEncoding)
		}
		payload = dst
	case CompressionZSTD:
		dec := getZstdDecoder()
		dst, err := dec.DecodeAll(payload, make([]byte, 0, size))
		zstdDecoderPool.Put(dec)
		if err != nil || uint64(len(dst)) != size {
			return nil, fmt.Errorf("%w: zstd payload", ErrInvalidEncoding)
		}
		payload = dst
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}

	return decodePayload(payload)
}

func decodePayload(payload []byte) (*Set, error) {
	count, n := binary.Uvarint(payload)
	if n <= 0 {
		return nil, ErrInvalidEncoding
	}
	payload = payload[n:]
	// Each interval occupies at least two payload bytes (two uvarints),
	// so a larger count cannot be satisfied. Rejecting it here keeps a
	// crafted header from driving the allocation below.
	if count > uint64(len(payload))/2 {
		return nil, ErrInvalidEncoding
	}
	s := &Set{ranges: make([]Range, 0, count)}
	var prev uint64
	for k := uint64(0); k < count; k++ {
		delta, n := binary.Uvarint(payload)
		if n <= 0 {
			return nil, ErrInvalidEncoding
		}
		payload = payload[n:]
		length, n := binary.Uvarint(payload)
		if n <= 0 {
			return nil, ErrInvalidEncoding
		}
		payload = payload[n:]

		lo := prev + delta
		hi := lo + length
		// Intervals must be sorted, non-touching and non-empty; a Hi == 0
		// sentinel may only close the final interval.
		if k > 0 && (prev == 0 || lo <= prev) {
			return nil, ErrInvalidEncoding
		}
		if hi != 0 && hi <= lo {
			return nil, ErrInvalidEncoding
		}
		s.ranges = append(s.ranges, Range{Lo: lo, Hi: hi})
		prev = hi
	}
	if len(payload) != 0 {
		return nil, ErrInvalidEncoding
	}
	return s, nil
}
