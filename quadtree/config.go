package quadtree

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/lqtree/lqt"
	"github.com/aukilabs/lqtree/spatial"
)

const (
	// The leaf cell size targeted when sizing a tree from its boundary.
	DefaultCellSize = 256

	// The deepest supported tree. A tree allocates one slot per cell, so
	// depth 10 already means 349525 slots.
	MaxDepth = 10
)

// Config describes the shape of a tree: its depth and the size of its leaf
// cells.
type Config struct {
	Depth      int
	CellWidth  float64
	CellHeight float64
}

// AutoConfig returns the config of a tree whose leaf cells are about
// DefaultCellSize wide and whose leaf layer covers the given boundary.
func AutoConfig(boundary spatial.Extrema) Config {
	leaves := math.Ceil(math.Max(boundary.Width(), boundary.Height()) / DefaultCellSize)
	depth := 1 + int(math.Ceil(math.Log2(leaves)))
	depth = min(max(depth, 2), MaxDepth)

	side := float64(int(1) << (depth - 1))
	return Config{
		Depth:      depth,
		CellWidth:  math.Max(1, boundary.Width()/side),
		CellHeight: math.Max(1, boundary.Height()/side),
	}
}

func (c Config) Validate() error {
	if c.Depth < 2 || c.Depth > MaxDepth {
		return errors.New("tree depth is out of range").
			WithType(spatial.ErrTypeInvalidDepth).
			WithTag("depth", c.Depth).
			WithTag("max_depth", MaxDepth)
	}

	if !validCellSize(c.CellWidth) || !validCellSize(c.CellHeight) {
		return errors.New("cell size must be at least 1").
			WithType(spatial.ErrTypeInvalidCellSize).
			WithTag("cell_width", c.CellWidth).
			WithTag("cell_height", c.CellHeight)
	}
	return nil
}

func validCellSize(v float64) bool {
	return v >= 1 && !math.IsInf(v, 0)
}

func (c Config) grid() lqt.Grid {
	return lqt.Grid{
		Depth:      c.Depth,
		UnitWidth:  c.CellWidth,
		UnitHeight: c.CellHeight,
	}
}
