package lqt

import "math/bits"

// CellCount returns the number of cells of a tree with the given depth, all
// layers included.
func CellCount(depth int) int {
	return layerOffset(depth)
}

// LayerSize returns the number of cells of a layer.
func LayerSize(layer int) int {
	return 1 << (2 * layer)
}

// layerOffset is the number of cells in the layers above the given one, which
// is also the index of the layer's first cell.
func layerOffset(layer int) int {
	return (1<<(2*layer) - 1) / 3
}

// ToIndex returns the linear index of the cell with the given Morton order
// within its layer.
func ToIndex(layer int, morton uint64) int {
	return layerOffset(layer) + int(morton)
}

// FromIndex returns the layer and the Morton order within the layer of the
// cell with the given linear index. index must not be negative.
func FromIndex(index int) (layer int, morton uint64) {
	// floor(log4(3*index + 1))
	layer = (bits.Len64(uint64(3*index+1)) - 1) / 2
	return layer, uint64(index - layerOffset(layer))
}

// ParentToRootIndices returns the indices of the strict ancestors of a cell,
// from its immediate parent up to the root. The root has no ancestors.
func ParentToRootIndices(index int) []int {
	layer, morton := FromIndex(index)
	if layer == 0 {
		return nil
	}

	ancestors := make([]int, 0, layer)
	for l := layer - 1; l >= 0; l-- {
		morton >>= 2
		ancestors = append(ancestors, ToIndex(l, morton))
	}
	return ancestors
}

// SharedNode returns the index of the deepest cell that is an ancestor of, or
// equal to, both given cells.
func SharedNode(i, j int) int {
	li, mi := FromIndex(i)
	lj, mj := FromIndex(j)

	for li > lj {
		mi >>= 2
		li--
	}
	for lj > li {
		mj >>= 2
		lj--
	}

	for mi != mj {
		mi >>= 2
		mj >>= 2
		li--
	}
	return ToIndex(li, mi)
}
