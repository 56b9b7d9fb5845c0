package rangeset

import (
	"fmt"
	"iter"
	"math"
	"slices"
	"sort"
	"strings"
)

// Range is a half-open interval [Lo, Hi) of uint64 values. Hi == 0 is a
// sentinel for 2^64 and may only appear in the last interval of a Set.
type Range struct {
	Lo uint64
	Hi uint64
}

// Cardinality returns the number of values in the range. The full
// universe [0, 2^64) saturates to math.MaxUint64.
func (r Range) Cardinality() uint64 {
	if r.Lo == 0 && r.Hi == 0 {
		return math.MaxUint64
	}
	return r.Hi - r.Lo // wraps correctly for the Hi == 0 sentinel
}

func (r Range) String() string {
	if r.Hi == 0 {
		return fmt.Sprintf("[%d, 2^64)", r.Lo)
	}
	return fmt.Sprintf("[%d, %d)", r.Lo, r.Hi)
}

// Set is an ordered collection of disjoint half-open uint64 intervals.
// No two intervals touch or overlap; Insert merges as needed, so the
// representation is canonical. The zero value is an empty, ready-to-use
// set. A Set is not safe for concurrent mutation.
type Set struct {
	ranges []Range
}

// New returns an empty set.
func New() *Set {
	return &Set{}
}

// FromRanges returns a set containing every given range, in any order.
func FromRanges(ranges ...Range) *Set {
	s := New()
	for _, r := range ranges {
		s.Insert(r.Lo, r.Hi)
	}
	return s
}

// hiBelow reports whether the exclusive end hi lies strictly below v,
// treating hi == 0 as 2^64.
func hiBelow(hi, v uint64) bool {
	return hi != 0 && hi < v
}

// hiAbove reports whether the exclusive end hi lies strictly above v,
// treating hi == 0 as 2^64.
func hiAbove(hi, v uint64) bool {
	return hi == 0 || hi > v
}

// maxHi returns the larger of two exclusive ends under the sentinel
// ordering.
func maxHi(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	return max(a, b)
}

// Insert adds the half-open interval [lo, hi) to the set, merging it
// with any intervals it overlaps or touches. hi == 0 with lo != 0 means
// [lo, 2^64); lo == hi == 0 inserts the full universe. Inserting an
// empty interval (lo == hi != 0) is a no-op, as is the malformed case
// lo > hi.
func (s *Set) Insert(lo, hi uint64) {
	if hi != 0 && lo >= hi {
		return
	}
	// First interval whose end reaches lo (touching counts as mergeable).
	i := sort.Search(len(s.ranges), func(k int) bool {
		return !hiBelow(s.ranges[k].Hi, lo)
	})
	// First interval past i that starts strictly beyond hi.
	j := i + sort.Search(len(s.ranges)-i, func(k int) bool {
		return hi != 0 && s.ranges[i+k].Lo > hi
	})
	if i == j {
		s.ranges = slices.Insert(s.ranges, i, Range{Lo: lo, Hi: hi})
		return
	}
	merged := Range{
		Lo: min(lo, s.ranges[i].Lo),
		Hi: maxHi(hi, s.ranges[j-1].Hi),
	}
	s.ranges[i] = merged
	s.ranges = slices.Delete(s.ranges, i+1, j)
}

// Add inserts the single value id.
func (s *Set) Add(id uint64) {
	s.Insert(id, id+1) // id+1 wraps to the sentinel for MaxUint64
}

// Compact reduces the set to at most maxRanges intervals by repeatedly
// merging the adjacent pair separated by the smallest gap (the merge
// that adds the fewest spurious values). Equal gaps merge the earlier
// pair first. The result always covers a superset of the original set.
// maxRanges <= 0 means unbounded: Compact is a no-op.
func (s *Set) Compact(maxRanges int) {
	if maxRanges <= 0 || len(s.ranges) <= maxRanges {
		return
	}
	n := len(s.ranges) - maxRanges
	type gap struct {
		size uint64
		idx  int
	}
	gaps := make([]gap, len(s.ranges)-1)
	for k := range gaps {
		// Only the last interval can carry the Hi == 0 sentinel, so every
		// gap is well defined.
		gaps[k] = gap{size: s.ranges[k+1].Lo - s.ranges[k].Hi, idx: k}
	}
	slices.SortFunc(gaps, func(a, b gap) int {
		if a.size != b.size {
			if a.size < b.size {
				return -1
			}
			return 1
		}
		return a.idx - b.idx
	})
	bridge := make([]bool, len(s.ranges)-1)
	for _, g := range gaps[:n] {
		bridge[g.idx] = true
	}
	out := s.ranges[:1]
	for k := 1; k < len(s.ranges); k++ {
		if bridge[k-1] {
			out[len(out)-1].Hi = s.ranges[k].Hi
		} else {
			out = append(out, s.ranges[k])
		}
	}
	s.ranges = out
}

// Prune reduces the set to at most maxRanges intervals by dropping whole
// intervals, smallest cardinality first (equal cardinalities drop the
// interval with the larger Lo first). The result always covers a subset
// of the original set. maxRanges <= 0 means unbounded: Prune is a no-op.
func (s *Set) Prune(maxRanges int) {
	if maxRanges <= 0 || len(s.ranges) <= maxRanges {
		return
	}
	n := len(s.ranges) - maxRanges
	order := make([]int, len(s.ranges))
	for k := range order {
		order[k] = k
	}
	slices.SortFunc(order, func(a, b int) int {
		ca, cb := s.ranges[a].Cardinality(), s.ranges[b].Cardinality()
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		if s.ranges[a].Lo > s.ranges[b].Lo {
			return -1
		}
		return 1
	})
	drop := make([]bool, len(s.ranges))
	for _, k := range order[:n] {
		drop[k] = true
	}
	out := s.ranges[:0]
	for k, r := range s.ranges {
		if !drop[k] {
			out = append(out, r)
		}
	}
	s.ranges = out
}

// Len returns the number of intervals in the set.
func (s *Set) Len() int {
	return len(s.ranges)
}

// Empty reports whether the set contains no values.
func (s *Set) Empty() bool {
	return len(s.ranges) == 0
}

// Cardinality returns the number of values in the set, saturating to
// math.MaxUint64 for the full universe.
func (s *Set) Cardinality() uint64 {
	var total uint64
	for _, r := range s.ranges {
		c := r.Cardinality()
		if c > math.MaxUint64-total {
			return math.MaxUint64
		}
		total += c
	}
	return total
}

// Contains reports whether id is in the set.
func (s *Set) Contains(id uint64) bool {
	i := sort.Search(len(s.ranges), func(k int) bool {
		return hiAbove(s.ranges[k].Hi, id)
	})
	return i < len(s.ranges) && s.ranges[i].Lo <= id
}

// ContainsRange reports whether every value of [lo, hi) is in the set.
// Because the representation is canonical, a covered interval is always
// covered by a single stored interval. An empty interval is trivially
// contained.
func (s *Set) ContainsRange(lo, hi uint64) bool {
	if hi != 0 && lo >= hi {
		return true
	}
	i := sort.Search(len(s.ranges), func(k int) bool {
		return hiAbove(s.ranges[k].Hi, lo)
	})
	if i >= len(s.ranges) || s.ranges[i].Lo > lo {
		return false
	}
	return s.ranges[i].Hi == 0 || (hi != 0 && hi <= s.ranges[i].Hi)
}

// Intersects reports whether any value of [lo, hi) is in the set.
func (s *Set) Intersects(lo, hi uint64) bool {
	if hi != 0 && lo >= hi {
		return false
	}
	i := sort.Search(len(s.ranges), func(k int) bool {
		return hiAbove(s.ranges[k].Hi, lo)
	})
	return i < len(s.ranges) && (hi == 0 || s.ranges[i].Lo < hi)
}

// Ranges returns a copy of the intervals in ascending order.
func (s *Set) Ranges() []Range {
	return slices.Clone(s.ranges)
}

// All returns an iterator over every value in the set, in ascending
// order. Iterating a full-universe set visits 2^64 values; callers
// normally range over Ranges instead for large sets.
func (s *Set) All() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for _, r := range s.ranges {
			last := r.Hi - 1 // wraps to MaxUint64 for the sentinel
			for v := r.Lo; ; v++ {
				if !yield(v) {
					return
				}
				if v == last {
					break
				}
			}
		}
	}
}

// Equal reports whether s and other contain exactly the same values.
// The canonical representation makes this a plain interval comparison.
func (s *Set) Equal(other *Set) bool {
	return slices.Equal(s.ranges, other.ranges)
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return &Set{ranges: slices.Clone(s.ranges)}
}

func (s *Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, r := range s.ranges {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(r.String())
	}
	b.WriteByte('}')
	return b.String()
}
