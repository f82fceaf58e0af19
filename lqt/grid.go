package lqt

import (
	"math"
	"math/bits"
	"slices"

	"github.com/aukilabs/lqtree/spatial"
)

// Grid describes the leaf layer of a linear quadtree. Coordinates given to a
// grid are relative to its origin; cells are UnitWidth by UnitHeight and the
// leaf layer has Side() cells along each axis.
//
// Coordinates outside the grid are truncated to the nearest edge cell.
type Grid struct {
	Depth      int
	UnitWidth  float64
	UnitHeight float64
}

// Side returns the number of leaf cells along each axis.
func (g Grid) Side() uint32 {
	return 1 << (g.Depth - 1)
}

// CellCount returns the number of cells of all layers.
func (g Grid) CellCount() int {
	return CellCount(g.Depth)
}

func (g Grid) leafLayer() int {
	return g.Depth - 1
}

// Cell returns the coordinate of the leaf cell holding the given point.
func (g Grid) Cell(x, y float64) (cx, cy uint32) {
	side := g.Side()
	return truncate(x/g.UnitWidth, side), truncate(y/g.UnitHeight, side)
}

func truncate(v float64, side uint32) uint32 {
	v = math.Floor(v)
	if !(v > 0) {
		return 0
	}
	if v >= float64(side) {
		return side - 1
	}
	return uint32(v)
}

// QuadKey returns the Morton key of the leaf cell holding the given point.
func (g Grid) QuadKey(x, y float64) uint64 {
	return Morton(g.Cell(x, y))
}

// LinearIndex returns the index of the smallest cell that fully contains the
// given rectangle.
//
// The keys of the top-left and bottom-right corners share their leading bit
// pairs for as long as both corners are in the same cell. The first
// differing pair is the layer below the one where the rectangle lives.
func (g Grid) LinearIndex(e spatial.Extrema) int {
	topLeft := g.QuadKey(e.MinX, e.MinY)
	bottomRight := g.QuadKey(e.MaxX, e.MaxY)

	climb := (bits.Len64(topLeft^bottomRight) + 1) / 2
	return ToIndex(g.leafLayer()-climb, topLeft>>(2*climb))
}

// ContainedIndices returns, in ascending order, the indices of every cell
// that overlaps the leaf cells covered by the given rectangle: the leaf cells
// themselves and all their ancestors up to the root.
func (g Grid) ContainedIndices(e spatial.Extrema) []int {
	x0, y0 := g.Cell(e.MinX, e.MinY)
	x1, y1 := g.Cell(e.MaxX, e.MaxY)
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}

	leaf := g.leafLayer()
	var indices []int

	for layer := 0; layer <= leaf; layer++ {
		shift := leaf - layer
		for y := y0 >> shift; y <= y1>>shift; y++ {
			for x := x0 >> shift; x <= x1>>shift; x++ {
				indices = append(indices, ToIndex(layer, Morton(x, y)))
			}
		}
	}

	slices.Sort(indices)
	return indices
}

// CellExtrema returns the area covered by a cell, relative to the grid
// origin.
func (g Grid) CellExtrema(index int) spatial.Extrema {
	layer, morton := FromIndex(index)
	x, y := FromMorton(morton)

	scale := float64(uint64(1) << (g.leafLayer() - layer))
	width := g.UnitWidth * scale
	height := g.UnitHeight * scale

	return spatial.Extrema{
		MinX: float64(x) * width,
		MinY: float64(y) * height,
		MaxX: float64(x+1) * width,
		MaxY: float64(y+1) * height,
	}
}
