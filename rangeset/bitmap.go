package rangeset

import (
	"errors"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// ErrUniverseBitmap is returned by Bitmap when the set's last interval
// ends at 2^64, which a 64-bit Roaring bitmap cannot address.
var ErrUniverseBitmap = errors.New("set extends to 2^64 and cannot be materialized as a bitmap")

// Bitmap materializes the set as a 64-bit Roaring bitmap, for downstream
// stores that consume bitmaps rather than interval lists.
func (s *Set) Bitmap() (*roaring64.Bitmap, error) {
	rb := roaring64.New()
	for _, r := range s.ranges {
		if r.Hi == 0 {
			return nil, ErrUniverseBitmap
		}
		rb.AddRange(r.Lo, r.Hi)
	}
	return rb, nil
}
