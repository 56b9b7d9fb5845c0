package region

import (
	"errors"

	"github.com/hupe1980/sphergo/geom"
)

// ErrBadRelation indicates that a Region returned a Relation value other
// than Disjoint, Intersects or Contains. This is a contract violation by
// the region implementation; a query that observes it fails rather than
// risk a silent misclassification.
var ErrBadRelation = errors.New("region returned an undefined relation")

// Relation classifies a spherical triangle against a region.
type Relation uint8

const (
	// Disjoint means the triangle and the region share no point.
	Disjoint Relation = iota
	// Intersects means the triangle and the region overlap partially,
	// or the relationship could not be decided more precisely.
	Intersects
	// Contains means the region fully contains the triangle.
	Contains
)

func (r Relation) String() string {
	switch r {
	case Disjoint:
		return "Disjoint"
	case Intersects:
		return "Intersects"
	case Contains:
		return "Contains"
	default:
		return "Undefined"
	}
}

// Region is the capability a pixelization query needs from a spherical
// region. Implementations must be safe for concurrent use; the provided
// regions are immutable after construction.
type Region interface {
	// Relate classifies the triangle against the region. Reporting
	// Intersects instead of a decidable Disjoint or Contains is
	// permitted; the reverse is not.
	Relate(t geom.Triangle) Relation
}
