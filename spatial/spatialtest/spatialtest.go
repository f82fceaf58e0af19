// Package spatialtest provides shapes and helpers to test spatial indexes.
package spatialtest

import (
	"cmp"
	"math/rand"
	"slices"

	"github.com/aukilabs/lqtree/spatial"
)

// Rect is a rectangle given by its edges.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func (r Rect) Extrema() spatial.Extrema {
	return spatial.Extrema{
		MinX: r.Left,
		MinY: r.Top,
		MaxX: r.Right,
		MaxY: r.Bottom,
	}
}

// Shape is a test object.
type Shape struct {
	Rect  Rect
	Label string
	Tag   int
}

// Geometry returns the geometry of shapes, whose bounding box is their
// rectangle. Rectangles sharing an edge intersect.
func Geometry() spatial.Geometry[Shape, Rect] {
	return spatial.Geometry[Shape, Rect]{
		Extrema: Rect.Extrema,
		Intersects: func(a, b Rect) bool {
			return a.Extrema().Intersects(b.Extrema())
		},
		BoundingBox: func(s Shape) Rect {
			return s.Rect
		},
	}
}

// Always is a collision predicate that accepts every pair.
func Always(a, b Shape) bool {
	return true
}

// Any is a query predicate that accepts every shape.
func Any(s Shape) bool {
	return true
}

// RandomRect returns a rectangle of at most maxSize by maxSize whose top-left
// corner is within the given area. One rectangle out of ten is a point.
func RandomRect(r *rand.Rand, area spatial.Extrema, maxSize float64) Rect {
	left := area.MinX + r.Float64()*area.Width()
	top := area.MinY + r.Float64()*area.Height()

	if r.Intn(10) == 0 {
		return Rect{Left: left, Top: top, Right: left, Bottom: top}
	}

	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + r.Float64()*maxSize,
		Bottom: top + r.Float64()*maxSize,
	}
}

// Pair is a collision reduced to its keys, lowest key first.
type Pair[K cmp.Ordered] struct {
	A K
	B K
}

// Pairs returns the sorted key pairs of the given collisions.
func Pairs[K cmp.Ordered, O any](collisions []spatial.Collision[K, O]) []Pair[K] {
	pairs := make([]Pair[K], len(collisions))
	for i, c := range collisions {
		a, b := c.A.Key, c.B.Key
		if b < a {
			a, b = b, a
		}
		pairs[i] = Pair[K]{A: a, B: b}
	}

	slices.SortFunc(pairs, func(x, y Pair[K]) int {
		if c := cmp.Compare(x.A, y.A); c != 0 {
			return c
		}
		return cmp.Compare(x.B, y.B)
	})
	return pairs
}

// Keys returns the sorted keys of the given items.
func Keys[K cmp.Ordered, O any](items []spatial.Item[K, O]) []K {
	keys := make([]K, len(items))
	for i, item := range items {
		keys[i] = item.Key
	}
	slices.Sort(keys)
	return keys
}
