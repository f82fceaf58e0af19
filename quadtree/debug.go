package quadtree

import (
	"github.com/aukilabs/lqtree/cells"
	"github.com/aukilabs/lqtree/lqt"
	"github.com/aukilabs/lqtree/spatial"
	"github.com/segmentio/encoding/json"
)

// DebugInfo is a snapshot of how a tree's entries are spread over its cells.
type DebugInfo struct {
	Depth      int             `json:"depth"`
	CellWidth  float64         `json:"cell_width"`
	CellHeight float64         `json:"cell_height"`
	Boundary   spatial.Extrema `json:"boundary"`
	CellCount  int             `json:"cell_count"`
	EntryCount int             `json:"entry_count"`

	// The number of entries per layer, root first.
	LayerOccupancy []int `json:"layer_occupancy"`

	// The number of entries per non-empty cell.
	Occupancy map[int]int `json:"occupancy"`
}

func (t *Tree[K, O, B]) DebugInfo() DebugInfo {
	info := DebugInfo{
		Depth:          t.config.Depth,
		CellWidth:      t.config.CellWidth,
		CellHeight:     t.config.CellHeight,
		Boundary:       t.boundary,
		CellCount:      t.grid.CellCount(),
		EntryCount:     t.store.Len(),
		LayerOccupancy: make([]int, t.config.Depth),
		Occupancy:      make(map[int]int),
	}

	t.store.Each(func(cell int, entries []cells.Entry[K, O, B]) {
		layer, _ := lqt.FromIndex(cell)
		info.LayerOccupancy[layer] += len(entries)
		info.Occupancy[cell] = len(entries)
	})
	return info
}

// JSON returns the JSON representation of the snapshot.
func (i DebugInfo) JSON() ([]byte, error) {
	return json.Marshal(i)
}
