package lqt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMorton(t *testing.T) {
	tests := []struct {
		x, y uint32
		want uint64
	}{
		{0, 0, 0},
		{1, 0, 1},
		{0, 1, 2},
		{1, 1, 3},
		{2, 0, 4},
		{1, 2, 9},
		{6, 2, 28},
		{7, 3, 31},
		{7, 7, 63},
		{0xffffffff, 0xffffffff, 0xffffffffffffffff},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d,%d", tt.x, tt.y), func(t *testing.T) {
			require.Equal(t, tt.want, Morton(tt.x, tt.y))

			x, y := FromMorton(tt.want)
			require.Equal(t, tt.x, x)
			require.Equal(t, tt.y, y)
		})
	}
}

func TestMortonParentKey(t *testing.T) {
	// Dropping the last bit pair of a key gives the key of the parent cell.
	for x := uint32(0); x < 16; x++ {
		for y := uint32(0); y < 16; y++ {
			require.Equal(t, Morton(x/2, y/2), Morton(x, y)>>2)
		}
	}
}
