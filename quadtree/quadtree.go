// Package quadtree implements a fixed-depth linear quadtree index.
//
// Every object is filed in the smallest cell that fully contains its bounding
// box. Two objects can only overlap when one's cell is the other's cell or
// one of its ancestors, so collision detection compares each cell with itself
// and with its ancestors instead of comparing every pair of objects.
package quadtree

import (
	"cmp"
	"maps"
	"slices"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/lqtree/cells"
	"github.com/aukilabs/lqtree/lqt"
	"github.com/aukilabs/lqtree/naive"
	"github.com/aukilabs/lqtree/spatial"
)

const Kind = "quadtree"

type location struct {
	cell   int
	offset int
}

// Tree is a linear quadtree over a fixed boundary. Bounding boxes partly or
// fully outside the boundary are filed in the edge cells closest to them.
type Tree[K cmp.Ordered, O, B any] struct {
	config    Config
	grid      lqt.Grid
	boundary  spatial.Extrema
	geometry  spatial.Geometry[O, B]
	locations map[K]location
	store     *cells.Store[K, O, B]
}

// New returns an empty tree sized from the given boundary with AutoConfig.
func New[K cmp.Ordered, O, B any](geometry spatial.Geometry[O, B], boundary spatial.Extrema) (*Tree[K, O, B], error) {
	if err := boundary.Validate(); err != nil {
		return nil, err
	}
	return newTree[K](geometry, boundary, AutoConfig(boundary))
}

// NewCustom returns an empty index with the given tree shape. A depth below 2
// leaves no room for a tree and returns a naive index instead.
func NewCustom[K cmp.Ordered, O, B any](geometry spatial.Geometry[O, B], boundary spatial.Extrema, conf Config) (spatial.Index[K, O, B], error) {
	if err := boundary.Validate(); err != nil {
		return nil, err
	}

	if conf.Depth < 2 {
		logs.WithTag("depth", conf.Depth).
			Debug("quadtree is too shallow, using a naive index")

		idx, err := naive.New[K](geometry)
		if err != nil {
			return nil, err
		}
		return idx, nil
	}

	t, err := newTree[K](geometry, boundary, conf)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func newTree[K cmp.Ordered, O, B any](geometry spatial.Geometry[O, B], boundary spatial.Extrema, conf Config) (*Tree[K, O, B], error) {
	if err := geometry.Validate(); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	t := &Tree[K, O, B]{
		config:    conf,
		grid:      conf.grid(),
		boundary:  boundary,
		geometry:  geometry,
		locations: make(map[K]location),
	}
	t.store = cells.NewStore[K, O, B](t.grid.CellCount())

	logs.WithTag("depth", conf.Depth).
		WithTag("cell_width", conf.CellWidth).
		WithTag("cell_height", conf.CellHeight).
		WithTag("cell_count", t.grid.CellCount()).
		Debug("quadtree created")
	return t, nil
}

func (t *Tree[K, O, B]) Kind() string {
	return Kind
}

// Config returns the shape of the tree.
func (t *Tree[K, O, B]) Config() Config {
	return t.config
}

// Boundary returns the area partitioned by the tree.
func (t *Tree[K, O, B]) Boundary() spatial.Extrema {
	return t.boundary
}

// cellOf returns the index of the cell where a bounding box is filed.
func (t *Tree[K, O, B]) cellOf(box B) int {
	return t.grid.LinearIndex(t.local(box))
}

// local returns the extrema of a bounding box relative to the boundary
// origin.
func (t *Tree[K, O, B]) local(box B) spatial.Extrema {
	return t.geometry.Extrema(box).Translate(-t.boundary.MinX, -t.boundary.MinY)
}

func (t *Tree[K, O, B]) Insert(key K, object O) {
	t.InsertWithBox(key, t.geometry.BoundingBox(object), object)
}

func (t *Tree[K, O, B]) InsertWithBox(key K, box B, object O) {
	e := cells.Entry[K, O, B]{Key: key, Object: object, Box: box}
	cell := t.cellOf(box)

	loc, ok := t.locations[key]
	switch {
	case !ok:
		t.locations[key] = location{cell: cell, offset: t.store.Add(cell, e)}

	case loc.cell == cell:
		t.store.Update(loc.cell, loc.offset, e)

	default:
		t.removeAt(loc)
		t.locations[key] = location{cell: cell, offset: t.store.Add(cell, e)}
	}
}

// removeAt removes the entry at the given location and records the new
// location of the entry that took its place.
func (t *Tree[K, O, B]) removeAt(loc location) {
	moved, relocated := t.store.RemoveAt(loc.cell, loc.offset)
	if relocated {
		t.locations[moved] = loc
		spatial.InstrumentRelocation(Kind)
	}
}

func (t *Tree[K, O, B]) Update(key K, f func(O, bool) (O, bool)) {
	current, found := t.Get(key)

	object, ok := f(current, found)
	if !ok {
		t.Remove(key)
		return
	}
	t.Insert(key, object)
}

func (t *Tree[K, O, B]) Remove(key K) {
	loc, ok := t.locations[key]
	if !ok {
		return
	}

	t.removeAt(loc)
	delete(t.locations, key)
}

func (t *Tree[K, O, B]) Get(key K) (O, bool) {
	loc, ok := t.locations[key]
	if !ok {
		var zero O
		return zero, false
	}
	return t.entry(key, loc).Object, true
}

// entry returns the entry recorded at a location and checks that it belongs
// to the given key.
func (t *Tree[K, O, B]) entry(key K, loc location) cells.Entry[K, O, B] {
	e := t.store.At(loc.cell, loc.offset)
	if e.Key != key {
		panic(errors.New("location points to another entry").
			WithType(spatial.ErrTypeBrokenInvariant).
			WithTag("key", key).
			WithTag("found_key", e.Key).
			WithTag("cell", loc.cell).
			WithTag("offset", loc.offset))
	}
	return e
}

func (t *Tree[K, O, B]) Len() int {
	return len(t.locations)
}

func (t *Tree[K, O, B]) Keys() []K {
	return slices.Sorted(maps.Keys(t.locations))
}

func (t *Tree[K, O, B]) Values() []O {
	keys := t.Keys()
	values := make([]O, len(keys))
	for i, k := range keys {
		values[i] = t.entry(k, t.locations[k]).Object
	}
	return values
}

func (t *Tree[K, O, B]) Items() []spatial.Item[K, O] {
	keys := t.Keys()
	items := make([]spatial.Item[K, O], len(keys))
	for i, k := range keys {
		items[i] = spatial.Item[K, O]{Key: k, Object: t.entry(k, t.locations[k]).Object}
	}
	return items
}

func (t *Tree[K, O, B]) ToMap() map[K]O {
	m := make(map[K]O, len(t.locations))
	t.store.Each(func(_ int, entries []cells.Entry[K, O, B]) {
		for _, e := range entries {
			m[e.Key] = e.Object
		}
	})
	return m
}

// Map returns a new tree built from scratch, where each object is replaced by
// f's result and filed by its new bounding box.
func (t *Tree[K, O, B]) Map(f func(K, O) O) spatial.Index[K, O, B] {
	mapped := t.empty()
	t.store.Each(func(_ int, entries []cells.Entry[K, O, B]) {
		for _, e := range entries {
			object := f(e.Key, e.Object)
			mapped.InsertWithBox(e.Key, t.geometry.BoundingBox(object), object)
		}
	})
	return mapped
}

// Filter returns a new tree built from scratch with the items for which f
// returns true.
func (t *Tree[K, O, B]) Filter(f func(K, O) bool) spatial.Index[K, O, B] {
	filtered := t.empty()
	t.store.Each(func(cell int, entries []cells.Entry[K, O, B]) {
		for _, e := range entries {
			if f(e.Key, e.Object) {
				filtered.locations[e.Key] = location{cell: cell, offset: filtered.store.Add(cell, e)}
			}
		}
	})
	return filtered
}

func (t *Tree[K, O, B]) DetectCollisions(isCollided func(a, b O) bool) []spatial.Collision[K, O] {
	start := time.Now()

	var collisions []spatial.Collision[K, O]
	candidates := 0

	check := func(a, b cells.Entry[K, O, B]) {
		candidates++
		if t.geometry.Intersects(a.Box, b.Box) && isCollided(a.Object, b.Object) {
			collisions = append(collisions, spatial.Collision[K, O]{
				A: spatial.Item[K, O]{Key: a.Key, Object: a.Object},
				B: spatial.Item[K, O]{Key: b.Key, Object: b.Object},
			})
		}
	}

	t.store.Each(func(cell int, entries []cells.Entry[K, O, B]) {
		for i := range entries {
			for j := i + 1; j < len(entries); j++ {
				check(entries[i], entries[j])
			}
		}

		for _, ancestor := range lqt.ParentToRootIndices(cell) {
			above := t.store.Cell(ancestor)
			for i := range entries {
				for j := range above {
					check(entries[i], above[j])
				}
			}
		}
	})

	spatial.InstrumentDetection(Kind, start, candidates, len(collisions))
	return collisions
}

func (t *Tree[K, O, B]) CollideWith(predicate func(O) bool, query B) []spatial.Item[K, O] {
	var matches []spatial.Item[K, O]
	candidates := 0

	for _, cell := range t.grid.ContainedIndices(t.local(query)) {
		for _, e := range t.store.Cell(cell) {
			candidates++
			if t.geometry.Intersects(query, e.Box) && predicate(e.Object) {
				matches = append(matches, spatial.Item[K, O]{Key: e.Key, Object: e.Object})
			}
		}
	}

	spatial.InstrumentQuery(Kind, candidates, len(matches))
	return matches
}

func (t *Tree[K, O, B]) Clone() spatial.Index[K, O, B] {
	return &Tree[K, O, B]{
		config:    t.config,
		grid:      t.grid,
		boundary:  t.boundary,
		geometry:  t.geometry,
		locations: maps.Clone(t.locations),
		store:     t.store.Clone(),
	}
}

func (t *Tree[K, O, B]) empty() *Tree[K, O, B] {
	return &Tree[K, O, B]{
		config:    t.config,
		grid:      t.grid,
		boundary:  t.boundary,
		geometry:  t.geometry,
		locations: make(map[K]location, len(t.locations)),
		store:     cells.NewStore[K, O, B](t.grid.CellCount()),
	}
}
