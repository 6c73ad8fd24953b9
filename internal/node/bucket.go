package node

import (
	"cmp"
	"sort"

	"github.com/edirooss/intervalidx/internal/handle"
)

// bucket is a sorted-slice ordered multiset of handles. Buckets localize a
// small, bounded subset of the stored intervals to one endpoint node, so a
// sorted slice with binary-search insertion beats a balanced tree's constant
// overhead here (see DESIGN.md for why this isn't a dependency gap).
type bucket[V cmp.Ordered] struct {
	items []*handle.Handle[V]
	less  func(a, b *handle.Handle[V]) bool
}

func newBucket[V cmp.Ordered](less func(a, b *handle.Handle[V]) bool) *bucket[V] {
	return &bucket[V]{less: less}
}

func (b *bucket[V]) insert(h *handle.Handle[V]) {
	i := sort.Search(len(b.items), func(i int) bool { return !b.less(b.items[i], h) })
	b.items = append(b.items, nil)
	copy(b.items[i+1:], b.items[i:])
	b.items[i] = h
}

// removeHandle removes h by identity. Reports whether it was present.
func (b *bucket[V]) removeHandle(h *handle.Handle[V]) bool {
	for i, x := range b.items {
		if x.Equal(h) {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return true
		}
	}
	return false
}

// findEqual returns the first handle whose interval is value-equal to query.
func (b *bucket[V]) findEqual(query func(*handle.Handle[V]) bool) *handle.Handle[V] {
	for _, x := range b.items {
		if query(x) {
			return x
		}
	}
	return nil
}

func (b *bucket[V]) front() *handle.Handle[V] {
	if len(b.items) == 0 {
		return nil
	}
	return b.items[0]
}

func (b *bucket[V]) len() int { return len(b.items) }

// collectWhile emits handles from the front while keep holds, stopping at
// the first miss. Correctness relies on bucket order: once an interval fails
// the predicate from the extremal end, every later entry also fails.
func (b *bucket[V]) collectWhile(keep func(*handle.Handle[V]) bool, sink func(*handle.Handle[V])) {
	for _, h := range b.items {
		if !keep(h) {
			return
		}
		sink(h)
	}
}

// drainWhile removes handles from the front while keep holds and returns
// them, leaving the rest of the bucket untouched.
func (b *bucket[V]) drainWhile(keep func(*handle.Handle[V]) bool) []*handle.Handle[V] {
	i := 0
	for i < len(b.items) && keep(b.items[i]) {
		i++
	}
	drained := b.items[:i:i]
	b.items = b.items[i:]
	return drained
}
