package spatial_test

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/lqtree/naive"
	"github.com/aukilabs/lqtree/spatial"
	"github.com/aukilabs/lqtree/spatial/spatialtest"
	"github.com/stretchr/testify/require"
)

type shape = spatialtest.Shape

func square(x, y, size float64, label string) shape {
	return shape{
		Rect:  spatialtest.Rect{Left: x, Top: y, Right: x + size, Bottom: y + size},
		Label: label,
	}
}

func TestExtremaValidate(t *testing.T) {
	tests := []struct {
		name    string
		extrema spatial.Extrema
		valid   bool
	}{
		{
			name:    "valid",
			extrema: spatial.Extrema{MinX: -10, MinY: 5, MaxX: 10, MaxY: 6},
			valid:   true,
		},
		{
			name:    "no width",
			extrema: spatial.Extrema{MinX: 10, MaxX: 10, MaxY: 5},
		},
		{
			name:    "inverted height",
			extrema: spatial.Extrema{MaxX: 10, MinY: 5, MaxY: 1},
		},
		{
			name:    "nan",
			extrema: spatial.Extrema{MaxX: math.NaN(), MaxY: 10},
		},
		{
			name:    "infinite",
			extrema: spatial.Extrema{MinX: math.Inf(-1), MaxX: 10, MaxY: 10},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.extrema.Validate()
			if test.valid {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.Equal(t, spatial.ErrTypeInvalidBoundary, errors.Type(err))
		})
	}
}

func TestExtremaIntersects(t *testing.T) {
	base := spatial.Extrema{MinX: 10, MinY: 10, MaxX: 20, MaxY: 20}

	tests := []struct {
		name     string
		other    spatial.Extrema
		expected bool
	}{
		{name: "overlap", other: spatial.Extrema{MinX: 15, MinY: 15, MaxX: 25, MaxY: 25}, expected: true},
		{name: "contained", other: spatial.Extrema{MinX: 12, MinY: 12, MaxX: 13, MaxY: 13}, expected: true},
		{name: "touching edge", other: spatial.Extrema{MinX: 20, MinY: 0, MaxX: 30, MaxY: 10}, expected: true},
		{name: "point on corner", other: spatial.Extrema{MinX: 20, MinY: 20, MaxX: 20, MaxY: 20}, expected: true},
		{name: "left", other: spatial.Extrema{MinX: 0, MinY: 10, MaxX: 9, MaxY: 20}},
		{name: "below", other: spatial.Extrema{MinX: 10, MinY: 21, MaxX: 20, MaxY: 30}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, base.Intersects(test.other))
			require.Equal(t, test.expected, test.other.Intersects(base))
		})
	}
}

func TestExtremaTranslate(t *testing.T) {
	e := spatial.Extrema{MinX: 10, MinY: 20, MaxX: 30, MaxY: 40}.Translate(-10, 5)
	require.Equal(t, spatial.Extrema{MinX: 0, MinY: 25, MaxX: 20, MaxY: 45}, e)
	require.Equal(t, float64(20), e.Width())
	require.Equal(t, float64(20), e.Height())
}

func TestGeometryValidate(t *testing.T) {
	require.NoError(t, spatialtest.Geometry().Validate())

	tests := []struct {
		name  string
		unset func(*spatial.Geometry[shape, spatialtest.Rect])
	}{
		{
			name:  "extrema",
			unset: func(g *spatial.Geometry[shape, spatialtest.Rect]) { g.Extrema = nil },
		},
		{
			name:  "intersects",
			unset: func(g *spatial.Geometry[shape, spatialtest.Rect]) { g.Intersects = nil },
		},
		{
			name:  "bounding box",
			unset: func(g *spatial.Geometry[shape, spatialtest.Rect]) { g.BoundingBox = nil },
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := spatialtest.Geometry()
			test.unset(&g)

			err := g.Validate()
			require.Error(t, err)
			require.Equal(t, spatial.ErrTypeMissingGeometry, errors.Type(err))
		})
	}
}

func TestFold(t *testing.T) {
	idx, err := naive.New[int](spatialtest.Geometry())
	require.NoError(t, err)

	idx.Insert(2, square(0, 0, 1, "b"))
	idx.Insert(3, square(0, 0, 1, "c"))
	idx.Insert(1, square(0, 0, 1, "a"))

	concat := func(k int, s shape, acc string) string {
		return acc + s.Label
	}

	require.Equal(t, "abc", spatial.Foldl(idx, concat, ""))
	require.Equal(t, "cba", spatial.Foldr(idx, concat, ""))

	sum := func(k int, s shape, acc int) int {
		return acc + k
	}
	require.Equal(t, 6, spatial.Foldl(idx, sum, 0))
}

func TestSynchronized(t *testing.T) {
	idx, err := naive.New[string](spatialtest.Geometry())
	require.NoError(t, err)

	s := spatial.NewSynchronized(idx)
	require.Equal(t, naive.Kind, s.Kind())

	t.Run("concurrent writes and reads", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()

				for j := 0; j < 50; j++ {
					key := fmt.Sprintf("%d-%d", i, j)
					s.Insert(key, square(float64(j), float64(j), 1, key))
					s.Get(key)
					s.CollideWith(spatialtest.Any, spatialtest.Rect{Right: 10, Bottom: 10})
					s.Len()
				}
			}(i)
		}
		wg.Wait()

		require.Equal(t, 400, s.Len())
		require.Len(t, s.Keys(), 400)
	})

	t.Run("update and remove", func(t *testing.T) {
		s.Update("0-0", func(o shape, found bool) (shape, bool) {
			require.True(t, found)
			o.Label = "updated"
			return o, true
		})

		o, ok := s.Get("0-0")
		require.True(t, ok)
		require.Equal(t, "updated", o.Label)

		s.Remove("0-0")
		_, ok = s.Get("0-0")
		require.False(t, ok)
		require.Equal(t, 399, s.Len())
	})

	t.Run("derived indexes are synchronized", func(t *testing.T) {
		filtered := s.Filter(func(k string, o shape) bool {
			return o.Rect.Left == 0
		})
		require.IsType(t, &spatial.Synchronized[string, shape, spatialtest.Rect]{}, filtered)
		require.Equal(t, 7, filtered.Len())

		mapped := s.Map(func(k string, o shape) shape { return o })
		require.IsType(t, &spatial.Synchronized[string, shape, spatialtest.Rect]{}, mapped)
		require.Equal(t, s.Keys(), mapped.Keys())

		clone := s.Clone()
		require.IsType(t, &spatial.Synchronized[string, shape, spatialtest.Rect]{}, clone)
		clone.Remove("1-0")
		require.Equal(t, 399, s.Len())
		require.Equal(t, 398, clone.Len())
	})

	t.Run("collisions", func(t *testing.T) {
		collisions := s.DetectCollisions(func(a, b shape) bool {
			return a.Rect.Left == 49 && b.Rect.Left == 49
		})
		require.Len(t, collisions, 28)
		require.Len(t, s.Items(), 399)
		require.Len(t, s.Values(), 399)
		require.Len(t, s.ToMap(), 399)
	})
}
