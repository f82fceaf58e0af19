// Package naive implements a spatial index without any spatial structure.
// Collision detection compares every pair of objects and region queries scan
// every object. It is the fallback of shallow quadtrees and the reference the
// quadtree is tested against.
package naive

import (
	"cmp"
	"maps"
	"slices"
	"time"

	"github.com/aukilabs/lqtree/spatial"
)

const Kind = "naive"

type entry[O, B any] struct {
	object O
	box    B
}

// Index is a flat key to object map.
type Index[K cmp.Ordered, O, B any] struct {
	geometry spatial.Geometry[O, B]
	entries  map[K]entry[O, B]
}

// New returns an empty naive index.
func New[K cmp.Ordered, O, B any](geometry spatial.Geometry[O, B]) (*Index[K, O, B], error) {
	if err := geometry.Validate(); err != nil {
		return nil, err
	}

	return &Index[K, O, B]{
		geometry: geometry,
		entries:  make(map[K]entry[O, B]),
	}, nil
}

func (idx *Index[K, O, B]) Kind() string {
	return Kind
}

func (idx *Index[K, O, B]) Insert(key K, object O) {
	idx.InsertWithBox(key, idx.geometry.BoundingBox(object), object)
}

func (idx *Index[K, O, B]) InsertWithBox(key K, box B, object O) {
	idx.entries[key] = entry[O, B]{object: object, box: box}
}

func (idx *Index[K, O, B]) Update(key K, f func(O, bool) (O, bool)) {
	current, found := idx.Get(key)

	object, ok := f(current, found)
	if !ok {
		idx.Remove(key)
		return
	}
	idx.Insert(key, object)
}

func (idx *Index[K, O, B]) Remove(key K) {
	delete(idx.entries, key)
}

func (idx *Index[K, O, B]) Get(key K) (O, bool) {
	e, ok := idx.entries[key]
	return e.object, ok
}

func (idx *Index[K, O, B]) Len() int {
	return len(idx.entries)
}

func (idx *Index[K, O, B]) Keys() []K {
	return slices.Sorted(maps.Keys(idx.entries))
}

func (idx *Index[K, O, B]) Values() []O {
	keys := idx.Keys()
	values := make([]O, len(keys))
	for i, k := range keys {
		values[i] = idx.entries[k].object
	}
	return values
}

func (idx *Index[K, O, B]) Items() []spatial.Item[K, O] {
	keys := idx.Keys()
	items := make([]spatial.Item[K, O], len(keys))
	for i, k := range keys {
		items[i] = spatial.Item[K, O]{Key: k, Object: idx.entries[k].object}
	}
	return items
}

func (idx *Index[K, O, B]) ToMap() map[K]O {
	m := make(map[K]O, len(idx.entries))
	for k, e := range idx.entries {
		m[k] = e.object
	}
	return m
}

func (idx *Index[K, O, B]) Map(f func(K, O) O) spatial.Index[K, O, B] {
	mapped := idx.empty()
	for k, e := range idx.entries {
		mapped.Insert(k, f(k, e.object))
	}
	return mapped
}

func (idx *Index[K, O, B]) Filter(f func(K, O) bool) spatial.Index[K, O, B] {
	filtered := idx.empty()
	for k, e := range idx.entries {
		if f(k, e.object) {
			filtered.entries[k] = e
		}
	}
	return filtered
}

func (idx *Index[K, O, B]) DetectCollisions(isCollided func(a, b O) bool) []spatial.Collision[K, O] {
	start := time.Now()
	keys := idx.Keys()

	var collisions []spatial.Collision[K, O]
	candidates := 0

	for i, ka := range keys {
		a := idx.entries[ka]

		for _, kb := range keys[i+1:] {
			b := idx.entries[kb]

			candidates++
			if idx.geometry.Intersects(a.box, b.box) && isCollided(a.object, b.object) {
				collisions = append(collisions, spatial.Collision[K, O]{
					A: spatial.Item[K, O]{Key: ka, Object: a.object},
					B: spatial.Item[K, O]{Key: kb, Object: b.object},
				})
			}
		}
	}

	spatial.InstrumentDetection(Kind, start, candidates, len(collisions))
	return collisions
}

func (idx *Index[K, O, B]) CollideWith(predicate func(O) bool, query B) []spatial.Item[K, O] {
	var matches []spatial.Item[K, O]

	for k, e := range idx.entries {
		if idx.geometry.Intersects(query, e.box) && predicate(e.object) {
			matches = append(matches, spatial.Item[K, O]{Key: k, Object: e.object})
		}
	}

	spatial.InstrumentQuery(Kind, len(idx.entries), len(matches))
	return matches
}

func (idx *Index[K, O, B]) Clone() spatial.Index[K, O, B] {
	clone := idx.empty()
	maps.Copy(clone.entries, idx.entries)
	return clone
}

func (idx *Index[K, O, B]) empty() *Index[K, O, B] {
	return &Index[K, O, B]{
		geometry: idx.geometry,
		entries:  make(map[K]entry[O, B], len(idx.entries)),
	}
}
