package sphergo

import "errors"

// ErrNoRegions is returned by the batch helpers when called with an
// empty region list.
var ErrNoRegions = errors.New("no regions to cover")
