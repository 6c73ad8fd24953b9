// Package handle implements the stable-address multiset of stored intervals
// described by the index's data model: addresses handed out here must stay
// valid across insertion and deletion of *other* handles, so that endpoint
// nodes can safely hold on to them as bucket identities.
package handle

import (
	"cmp"
	"container/list"

	"github.com/edirooss/intervalidx/internal/interval"
)

// Handle is a stable identity for one stored copy of an interval. Equality
// is identity, not value: two handles compare equal iff they name the same
// stored slot, even if the underlying intervals are value-equal.
type Handle[V cmp.Ordered] struct {
	elem *list.Element
}

// Interval returns the stored interval this handle names.
func (h *Handle[V]) Interval() interval.Interval[V] {
	return h.elem.Value.(interval.Interval[V])
}

// Equal reports whether h and o name the same stored slot.
func (h *Handle[V]) Equal(o *Handle[V]) bool {
	return h == o || (h != nil && o != nil && h.elem == o.elem)
}

// Store is an append-only linked collection of intervals. A container/list
// is used rather than a slice precisely because the design forbids shifting
// array elements: *list.Element addresses, once handed out, never move,
// which is exactly the stability the index's bucket indices depend on.
type Store[V cmp.Ordered] struct {
	l *list.List
}

// New returns an empty Store.
func New[V cmp.Ordered]() *Store[V] {
	return &Store[V]{l: list.New()}
}

// Push appends i and returns a stable handle to it.
func (s *Store[V]) Push(i interval.Interval[V]) *Handle[V] {
	return &Handle[V]{elem: s.l.PushBack(i)}
}

// Erase removes the stored copy h identifies. h must have been returned by
// this Store and not already erased.
func (s *Store[V]) Erase(h *Handle[V]) {
	s.l.Remove(h.elem)
}

// Len returns the number of stored intervals.
func (s *Store[V]) Len() int {
	return s.l.Len()
}

// Iter calls fn for every stored interval. Order is unspecified but stable
// between mutations, matching the abstract API's contract.
func (s *Store[V]) Iter(fn func(interval.Interval[V])) {
	for e := s.l.Front(); e != nil; e = e.Next() {
		fn(e.Value.(interval.Interval[V]))
	}
}

// Clear empties the store.
func (s *Store[V]) Clear() {
	s.l.Init()
}
