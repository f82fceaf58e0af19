// Package lqt implements the arithmetic of a fixed-depth linear quadtree:
// Morton keys of grid cells, the flat index that names every cell of every
// layer, and the mapping from rectangles to the cells that hold them.
package lqt

// Morton interleaves the bits of a grid cell coordinate into its Z-order key.
// Bit i of x lands on bit 2i of the key and bit i of y on bit 2i+1, so each
// pair of key bits, read from the most significant end, selects a quadrant.
func Morton(x, y uint32) uint64 {
	return spread(x) | spread(y)<<1
}

// FromMorton is the inverse of Morton.
func FromMorton(key uint64) (x, y uint32) {
	return compact(key), compact(key >> 1)
}

func spread(v uint32) uint64 {
	x := uint64(v)
	x = (x | x<<16) & 0x0000ffff0000ffff
	x = (x | x<<8) & 0x00ff00ff00ff00ff
	x = (x | x<<4) & 0x0f0f0f0f0f0f0f0f
	x = (x | x<<2) & 0x3333333333333333
	x = (x | x<<1) & 0x5555555555555555
	return x
}

func compact(v uint64) uint32 {
	x := v & 0x5555555555555555
	x = (x | x>>1) & 0x3333333333333333
	x = (x | x>>2) & 0x0f0f0f0f0f0f0f0f
	x = (x | x>>4) & 0x00ff00ff00ff00ff
	x = (x | x>>8) & 0x0000ffff0000ffff
	x = (x | x>>16) & 0x00000000ffffffff
	return uint32(x)
}
