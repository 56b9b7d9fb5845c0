package htm

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/hupe1980/sphergo/geom"
)

// MaxLevel is the deepest subdivision level whose cell identifiers fit
// 64 bits: 4 root bits plus 2 bits per level.
const MaxLevel = (64 - 4) / 2

// ErrInvalidCellID is returned for identifiers whose bit length has the
// wrong parity or whose level is out of range.
var ErrInvalidCellID = errors.New("invalid HTM cell identifier")

// CellID is a bit-packed HTM cell identifier. The top four significant
// bits encode the root triangle number (8-15); each following bit pair
// selects one of four children, most significant pair first.
type CellID uint64

// Level returns the subdivision level of the identifier, or -1 if the
// identifier is not the index of any trixel. The -1 sentinel (rather
// than an error) makes Level usable as a validity probe.
func (c CellID) Level() int {
	// The index of the MSB must be an odd integer >= 3.
	j := bits.Len64(uint64(c)) - 1
	if j < 3 || j&1 == 0 {
		return -1
	}
	return (j - 3) >> 1
}

// IsValid reports whether c is the identifier of some trixel.
func (c CellID) IsValid() bool {
	return c.Level() >= 0
}

// Root returns the root triangle number (8-15), or -1 for an invalid
// identifier.
func (c CellID) Root() int {
	l := c.Level()
	if l < 0 {
		return -1
	}
	return int(c >> uint(2*l))
}

// ChildPosition returns which child of its parent this cell is (0-3).
// It is only meaningful for cells at level 1 or deeper; for root cells
// and invalid identifiers it returns -1.
func (c CellID) ChildPosition() int {
	if c.Level() < 1 {
		return -1
	}
	return int(c & 3)
}

// Parent returns the identifier of the containing cell one level up.
// The second result is false for root cells and invalid identifiers.
func (c CellID) Parent() (CellID, bool) {
	if c.Level() < 1 {
		return 0, false
	}
	return c >> 2, true
}

// Children returns the identifiers of the four children in canonical
// order. Cells at MaxLevel and invalid identifiers have no children and
// return the zero array.
func (c CellID) Children() [4]CellID {
	l := c.Level()
	if l < 0 || l >= MaxLevel {
		return [4]CellID{}
	}
	base := c << 2
	return [4]CellID{base, base | 1, base | 2, base | 3}
}

// RangeMin returns the smallest identifier of any descendant of c at the
// given level. It returns 0 (an invalid identifier) when c is invalid or
// level is not in [c.Level(), MaxLevel].
func (c CellID) RangeMin(level int) CellID {
	l := c.Level()
	if l < 0 || level < l || level > MaxLevel {
		return 0
	}
	return c << uint(2*(level-l))
}

// RangeMax returns the largest identifier of any descendant of c at the
// given level. It returns 0 when c is invalid or level is not in
// [c.Level(), MaxLevel].
func (c CellID) RangeMax(level int) CellID {
	l := c.Level()
	if l < 0 || level < l || level > MaxLevel {
		return 0
	}
	shift := uint(2 * (level - l))
	return (c+1)<<shift - 1 // wraps correctly at the top of the space
}

// Triangle returns the corner vectors of the trixel named by c,
// reconstructed by replaying the encoded subdivision path from the root
// triangle down, most significant child pair first.
func (c CellID) Triangle() (geom.Triangle, error) {
	l := c.Level()
	if l < 0 {
		return geom.Triangle{}, fmt.Errorf("%w: %#x", ErrInvalidCellID, uint64(c))
	}
	shift := uint(2 * l)
	t := rootTriangle(int(c>>shift) & 7)
	for shift >= 2 {
		shift -= 2
		t = t.Subdivide()[(c>>shift)&3]
	}
	return t, nil
}

// String formats the identifier as a hemisphere letter ('N' or 'S')
// followed by one base-4 digit per encoded level, most significant
// first; the first digit is the root triangle number modulo 4. Invalid
// identifiers format as "Invalid: " plus the hexadecimal value, so
// String never fails; use FormatCellID for the error-returning form.
func (c CellID) String() string {
	s, err := FormatCellID(c)
	if err != nil {
		return fmt.Sprintf("Invalid: %#x", uint64(c))
	}
	return s
}

// FormatCellID returns the textual form of c (see CellID.String), or
// ErrInvalidCellID for an invalid identifier. The result is always
// exactly c.Level()+2 characters long.
func FormatCellID(c CellID) (string, error) {
	l := c.Level()
	if l < 0 {
		return "", fmt.Errorf("%w: %#x", ErrInvalidCellID, uint64(c))
	}
	buf := make([]byte, l+2)
	// Base-4 digits from least to most significant; the bit left over
	// above the digits is the hemisphere.
	i := uint64(c)
	for p := len(buf) - 1; p >= 1; p-- {
		buf[p] = '0' + byte(i&3)
		i >>= 2
	}
	if i&1 == 0 {
		buf[0] = 'S'
	} else {
		buf[0] = 'N'
	}
	return string(buf), nil
}

// ParseCellID is the inverse of FormatCellID.
func ParseCellID(s string) (CellID, error) {
	if len(s) < 2 || len(s) > MaxLevel+2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCellID, s)
	}
	var id uint64
	switch s[0] {
	case 'S':
		id = 2
	case 'N':
		id = 3
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCellID, s)
	}
	if i := strings.IndexFunc(s[1:], func(r rune) bool { return r < '0' || r > '3' }); i >= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCellID, s)
	}
	for _, r := range s[1:] {
		id = id<<2 | uint64(r-'0')
	}
	return CellID(id), nil
}
