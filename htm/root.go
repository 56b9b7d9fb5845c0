package htm

import (
	"github.com/hupe1980/sphergo/geom"
	"github.com/hupe1980/sphergo/internal/pixel"
)

// Raw corner coordinates of the 8 root triangles, four per hemisphere,
// rotationally arranged around the poles. Kept as plain numbers so no
// package-level vector values need constructing at init time; unit
// vectors are built from the raw components at the point of use.
var rootVertex = [8][3][3]float64{
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{0, 1, 0}, {0, 0, -1}, {-1, 0, 0}},
	{{-1, 0, 0}, {0, 0, -1}, {0, -1, 0}},
	{{0, -1, 0}, {0, 0, -1}, {1, 0, 0}},
	{{1, 0, 0}, {0, 0, 1}, {0, -1, 0}},
	{{0, -1, 0}, {0, 0, 1}, {-1, 0, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
}

// rootTriangle returns the corners of root triangle r in [0, 7] (the
// cell with identifier r+8).
func rootTriangle(r int) geom.Triangle {
	v := &rootVertex[r]
	return geom.Triangle{
		V0: geom.UnitVectorFromNormalized(v[0][0], v[0][1], v[0][2]),
		V1: geom.UnitVectorFromNormalized(v[1][0], v[1][1], v[1][2]),
		V2: geom.UnitVectorFromNormalized(v[2][0], v[2][1], v[2][2]),
	}
}

// scheme adapts the HTM subdivision geometry to the generic pixel
// finder.
type scheme struct{}

func (scheme) NumRoots() int { return 8 }

func (scheme) Root(r int) pixel.Cell {
	return pixel.Cell{ID: uint64(r) + 8, T: rootTriangle(r)}
}

func (scheme) Children(c pixel.Cell) [4]pixel.Cell {
	sub := c.T.Subdivide()
	id := c.ID << 2
	return [4]pixel.Cell{
		{ID: id, T: sub[0]},
		{ID: id + 1, T: sub[1]},
		{ID: id + 2, T: sub[2]},
		{ID: id + 3, T: sub[3]},
	}
}
