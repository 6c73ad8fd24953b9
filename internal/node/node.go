// Package node implements the endpoint node contract shared by both
// container back-ends (§4.3): a key plus two ordered bucket indices of
// handles localized to that node. It knows nothing about skip-list levels
// or treap priorities — those are structural concerns layered on top by
// internal/skiplist and internal/cartesian.
package node

import (
	"cmp"
	"fmt"

	"github.com/edirooss/intervalidx/internal/handle"
	"github.com/edirooss/intervalidx/internal/interval"
)

// Node holds one endpoint key plus the by-inf and by-sup bucket indices of
// every stored handle localized there (invariants 2-5 in the data model).
type Node[V cmp.Ordered] struct {
	Key        V
	OwnerCount int

	byInf *bucket[V] // ordered by (inf ASC, inf_closed, sup ASC, sup_closed)
	bySup *bucket[V] // ordered by (sup DESC, sup_closed, inf DESC, inf_closed)
}

// New returns an empty node keyed on key, with OwnerCount 0. Callers set
// OwnerCount once they know how many intervals own this key.
func New[V cmp.Ordered](key V) *Node[V] {
	return &Node[V]{
		Key:   key,
		byInf: newBucket(lessByInf[V]),
		bySup: newBucket(lessBySup[V]),
	}
}

func lessByInf[V cmp.Ordered](a, b *handle.Handle[V]) bool {
	ai, bi := a.Interval(), b.Interval()
	if ai.Inf() != bi.Inf() {
		return ai.Inf() < bi.Inf()
	}
	if ai.InfClosed() != bi.InfClosed() {
		return ai.InfClosed()
	}
	if ai.Sup() != bi.Sup() {
		return ai.Sup() < bi.Sup()
	}
	if ai.SupClosed() != bi.SupClosed() {
		return bi.SupClosed()
	}
	return false
}

func lessBySup[V cmp.Ordered](a, b *handle.Handle[V]) bool {
	ai, bi := a.Interval(), b.Interval()
	if ai.Sup() != bi.Sup() {
		return ai.Sup() > bi.Sup()
	}
	if ai.SupClosed() != bi.SupClosed() {
		return ai.SupClosed()
	}
	if ai.Inf() != bi.Inf() {
		return ai.Inf() > bi.Inf()
	}
	if ai.InfClosed() != bi.InfClosed() {
		return bi.InfClosed()
	}
	return false
}

// Place inserts h into both bucket indices.
func (n *Node[V]) Place(h *handle.Handle[V]) {
	n.byInf.insert(h)
	n.bySup.insert(h)
}

// PlaceIfMatches places h iff its interval contains-or-infs this node's key.
func (n *Node[V]) PlaceIfMatches(h *handle.Handle[V]) bool {
	if !h.Interval().ContainsOrInf(n.Key) {
		return false
	}
	n.Place(h)
	return true
}

// Erase finds the handle whose interval matches query by value in both
// indices, removes it from both, and returns it.
func (n *Node[V]) Erase(query interval.Interval[V]) (*handle.Handle[V], bool) {
	h := n.byInf.findEqual(func(x *handle.Handle[V]) bool { return x.Interval().Equal(query) })
	if h == nil {
		return nil, false
	}
	okInf := n.byInf.removeHandle(h)
	okSup := n.bySup.removeHandle(h)
	if !okInf || !okSup {
		panic(fmt.Sprintf("node: handle %v present in one bucket index but not the other", h.Interval()))
	}
	return h, true
}

// CollectByLBound emits handles from by_inf whose interval contains v,
// stopping at the first miss.
func (n *Node[V]) CollectByLBound(v V, sink func(interval.Interval[V])) {
	n.byInf.collectWhile(
		func(h *handle.Handle[V]) bool { return h.Interval().Contains(v) },
		func(h *handle.Handle[V]) { sink(h.Interval()) },
	)
}

// CollectByRBound is the by_sup symmetric of CollectByLBound.
func (n *Node[V]) CollectByRBound(v V, sink func(interval.Interval[V])) {
	n.bySup.collectWhile(
		func(h *handle.Handle[V]) bool { return h.Interval().Contains(v) },
		func(h *handle.Handle[V]) { sink(h.Interval()) },
	)
}

// FrontLBoundContains peeks the smallest-inf element of by_inf; used by
// is_contained to check a whole bucket in O(1).
func (n *Node[V]) FrontLBoundContains(v V) bool {
	h := n.byInf.front()
	return h != nil && h.Interval().Contains(v)
}

// FrontRBoundContains peeks the largest-sup element of by_sup.
func (n *Node[V]) FrontRBoundContains(v V) bool {
	h := n.bySup.front()
	return h != nil && h.Interval().Contains(v)
}

// MoveLBoundIdxTo drains from the front of by_inf every handle whose
// interval contains-or-infs other.Key, removing it from both of this node's
// indices and placing it into other. This is the mechanical re-bucketing
// step invoked when a structural change makes other a better holder.
func (n *Node[V]) MoveLBoundIdxTo(other *Node[V]) {
	drained := n.byInf.drainWhile(func(h *handle.Handle[V]) bool { return h.Interval().ContainsOrInf(other.Key) })
	for _, h := range drained {
		if !n.bySup.removeHandle(h) {
			panic(fmt.Sprintf("node: handle %v in by_inf missing from by_sup during move", h.Interval()))
		}
		other.Place(h)
	}
}

// MoveRBoundIdxTo is the by_sup symmetric of MoveLBoundIdxTo.
func (n *Node[V]) MoveRBoundIdxTo(other *Node[V]) {
	drained := n.bySup.drainWhile(func(h *handle.Handle[V]) bool { return h.Interval().ContainsOrInf(other.Key) })
	for _, h := range drained {
		if !n.byInf.removeHandle(h) {
			panic(fmt.Sprintf("node: handle %v in by_sup missing from by_inf during move", h.Interval()))
		}
		other.Place(h)
	}
}

// BucketSizes reports (|by_inf|, |by_sup|), used by the node tests and by
// SkipList.Dump.
func (n *Node[V]) BucketSizes() (int, int) {
	return n.byInf.len(), n.bySup.len()
}

// EachLBound calls fn for every handle currently in by_inf, in order.
func (n *Node[V]) EachLBound(fn func(*handle.Handle[V])) {
	for _, h := range n.byInf.items {
		fn(h)
	}
}
