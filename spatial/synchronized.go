package spatial

import (
	"cmp"
	"sync"
)

// Synchronized is an Index guarded by a read-write mutex, for hosts that
// share a single index between goroutines.
//
// Callbacks given to Update, Map, Filter, DetectCollisions and CollideWith
// run while the lock is held and must not call back into the same
// Synchronized index.
type Synchronized[K cmp.Ordered, O, B any] struct {
	mutex sync.RWMutex
	index Index[K, O, B]
}

// NewSynchronized wraps the given index. The index must not be used directly
// afterwards.
func NewSynchronized[K cmp.Ordered, O, B any](idx Index[K, O, B]) *Synchronized[K, O, B] {
	return &Synchronized[K, O, B]{index: idx}
}

func (s *Synchronized[K, O, B]) Kind() string {
	return s.index.Kind()
}

func (s *Synchronized[K, O, B]) Insert(key K, object O) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.index.Insert(key, object)
}

func (s *Synchronized[K, O, B]) InsertWithBox(key K, box B, object O) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.index.InsertWithBox(key, box, object)
}

func (s *Synchronized[K, O, B]) Update(key K, f func(O, bool) (O, bool)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.index.Update(key, f)
}

func (s *Synchronized[K, O, B]) Remove(key K) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.index.Remove(key)
}

func (s *Synchronized[K, O, B]) Get(key K) (O, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.index.Get(key)
}

func (s *Synchronized[K, O, B]) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.index.Len()
}

func (s *Synchronized[K, O, B]) Keys() []K {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.index.Keys()
}

func (s *Synchronized[K, O, B]) Values() []O {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.index.Values()
}

func (s *Synchronized[K, O, B]) Items() []Item[K, O] {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.index.Items()
}

func (s *Synchronized[K, O, B]) ToMap() map[K]O {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.index.ToMap()
}

func (s *Synchronized[K, O, B]) Map(f func(K, O) O) Index[K, O, B] {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return NewSynchronized(s.index.Map(f))
}

func (s *Synchronized[K, O, B]) Filter(f func(K, O) bool) Index[K, O, B] {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return NewSynchronized(s.index.Filter(f))
}

func (s *Synchronized[K, O, B]) DetectCollisions(isCollided func(a, b O) bool) []Collision[K, O] {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.index.DetectCollisions(isCollided)
}

func (s *Synchronized[K, O, B]) CollideWith(predicate func(O) bool, query B) []Item[K, O] {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.index.CollideWith(predicate, query)
}

func (s *Synchronized[K, O, B]) Clone() Index[K, O, B] {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return NewSynchronized(s.index.Clone())
}
