// Package spatial holds the vocabulary shared by the spatial indexes: the
// rectangle type, the client supplied geometry functions and the Index
// interface implemented by the quadtree and naive containers.
package spatial

import (
	"cmp"
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Extrema is an axis-aligned rectangle given by its minimum and maximum
// corners.
type Extrema struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

func (e Extrema) Width() float64 {
	return e.MaxX - e.MinX
}

func (e Extrema) Height() float64 {
	return e.MaxY - e.MinY
}

// Translate returns the rectangle moved by dx and dy.
func (e Extrema) Translate(dx, dy float64) Extrema {
	return Extrema{
		MinX: e.MinX + dx,
		MinY: e.MinY + dy,
		MaxX: e.MaxX + dx,
		MaxY: e.MaxY + dy,
	}
}

// Intersects reports whether both rectangles share at least one point.
// Touching edges count as an intersection.
func (e Extrema) Intersects(o Extrema) bool {
	return e.MinX <= o.MaxX && o.MinX <= e.MaxX &&
		e.MinY <= o.MaxY && o.MinY <= e.MaxY
}

// Validate checks that the rectangle can be used as an index boundary.
func (e Extrema) Validate() error {
	for _, v := range []float64{e.MinX, e.MinY, e.MaxX, e.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("boundary has a non-finite coordinate").
				WithType(ErrTypeInvalidBoundary).
				WithTag("boundary", e)
		}
	}

	if e.MinX >= e.MaxX || e.MinY >= e.MaxY {
		return errors.New("boundary has no area").
			WithType(ErrTypeInvalidBoundary).
			WithTag("boundary", e)
	}
	return nil
}

// Geometry is the set of pure functions through which an index looks at the
// objects it stores. O is the stored object type and B its bounding box type.
type Geometry[O, B any] struct {
	// Returns the extrema of a bounding box.
	Extrema func(B) Extrema

	// Reports whether two bounding boxes overlap.
	Intersects func(a, b B) bool

	// Returns the bounding box of an object.
	BoundingBox func(O) B
}

func (g Geometry[O, B]) Validate() error {
	switch {
	case g.Extrema == nil:
		return errors.New("geometry extrema function is missing").
			WithType(ErrTypeMissingGeometry)

	case g.Intersects == nil:
		return errors.New("geometry intersects function is missing").
			WithType(ErrTypeMissingGeometry)

	case g.BoundingBox == nil:
		return errors.New("geometry bounding box function is missing").
			WithType(ErrTypeMissingGeometry)
	}
	return nil
}

// Item is a stored object with its key.
type Item[K cmp.Ordered, O any] struct {
	Key    K
	Object O
}

// Collision is an unordered pair of overlapping items.
type Collision[K cmp.Ordered, O any] struct {
	A Item[K, O]
	B Item[K, O]
}

// Index is the interface that describes a keyed container of objects that
// answers overlap queries.
//
// Mutating methods modify the receiver. Callers that need to keep a snapshot
// use Clone. Map and Filter never modify the receiver.
type Index[K cmp.Ordered, O, B any] interface {
	// Returns the index kind, used as a metrics label.
	Kind() string

	// Inserts an object under the given key, using the geometry to compute
	// its bounding box. An object already stored under the key is replaced.
	Insert(key K, object O)

	// Inserts an object with an explicit bounding box.
	InsertWithBox(key K, box B, object O)

	// Calls f with the object stored under the key and whether it was found.
	// The returned object is inserted when ok is true, otherwise the key is
	// removed.
	Update(key K, f func(object O, found bool) (O, bool))

	// Removes the object stored under the key. Removing a missing key is a
	// no-op.
	Remove(key K)

	// Returns the object stored under the key.
	Get(key K) (O, bool)

	// Returns the number of stored objects.
	Len() int

	// Returns the keys in ascending order.
	Keys() []K

	// Returns the objects, ordered by key.
	Values() []O

	// Returns the items, ordered by key.
	Items() []Item[K, O]

	// Returns the objects by key.
	ToMap() map[K]O

	// Returns a new index where each object is replaced by f's result. The
	// bounding boxes are recomputed from the new objects.
	Map(f func(key K, object O) O) Index[K, O, B]

	// Returns a new index that contains only the items for which f returns
	// true.
	Filter(f func(key K, object O) bool) Index[K, O, B]

	// Returns every pair of stored objects whose bounding boxes intersect and
	// for which isCollided returns true. Each pair is reported once, in no
	// particular order.
	DetectCollisions(isCollided func(a, b O) bool) []Collision[K, O]

	// Returns the items whose bounding box intersects the query box and for
	// which predicate returns true, in no particular order.
	CollideWith(predicate func(O) bool, query B) []Item[K, O]

	// Returns a deep copy of the index.
	Clone() Index[K, O, B]
}

// Foldl reduces the items of an index from the lowest key to the highest.
func Foldl[K cmp.Ordered, O, B, A any](idx Index[K, O, B], f func(key K, object O, acc A) A, acc A) A {
	for _, item := range idx.Items() {
		acc = f(item.Key, item.Object, acc)
	}
	return acc
}

// Foldr reduces the items of an index from the highest key to the lowest.
func Foldr[K cmp.Ordered, O, B, A any](idx Index[K, O, B], f func(key K, object O, acc A) A, acc A) A {
	items := idx.Items()
	for i := len(items) - 1; i >= 0; i-- {
		acc = f(items[i].Key, items[i].Object, acc)
	}
	return acc
}
