// Package cartesian implements the interval Cartesian tree (treap)
// back-end: a BST on endpoint key, heap-ordered on a random priority,
// offering the same bucket discipline as internal/skiplist over a
// different structural skeleton (§4.5 of the specification).
package cartesian

import (
	"cmp"
	"math/rand/v2"

	"github.com/edirooss/intervalidx/internal/handle"
	"github.com/edirooss/intervalidx/internal/interval"
	"github.com/edirooss/intervalidx/internal/node"
)

// ctNode is one treap node: a node.Node plus BST/heap structure.
type ctNode[V cmp.Ordered] struct {
	nd       *node.Node[V]
	priority uint64
	left     *ctNode[V]
	right    *ctNode[V]
}

// Tree is the interval Cartesian tree container. The zero value is not
// usable; construct with New.
type Tree[V cmp.Ordered] struct {
	root  *ctNode[V]
	store *handle.Store[V]
	rng   *rand.Rand
}

// New returns an empty Tree.
func New[V cmp.Ordered]() *Tree[V] {
	return &Tree[V]{
		store: handle.New[V](),
		rng:   rand.New(rand.NewPCG(1, 1)),
	}
}

// Seed reseeds the priority-generation RNG for reproducible runs.
func (t *Tree[V]) Seed(x uint64) {
	t.rng = rand.New(rand.NewPCG(x, x^0x9e3779b97f4a7c15))
}

func (t *Tree[V]) search(k V) *ctNode[V] {
	v := t.root
	for v != nil {
		switch {
		case k == v.nd.Key:
			return v
		case k < v.nd.Key:
			v = v.left
		default:
			v = v.right
		}
	}
	return nil
}

// placeToMatching walks from the root offering h to every node passed
// over, following the same direction rule as a BST search for h's lbound.
// Invariant 4 guarantees exactly one node on the path accepts it.
func (t *Tree[V]) placeToMatching(h *handle.Handle[V]) {
	inf := h.Interval().Inf()
	v := t.root
	for {
		if v.nd.PlaceIfMatches(h) {
			return
		}
		if v.nd.Key < inf {
			v = v.right
		} else {
			v = v.left
		}
	}
}

func (t *Tree[V]) deleteFromMatching(iv interval.Interval[V]) (*handle.Handle[V], bool) {
	inf := iv.Inf()
	v := t.root
	for v != nil {
		if h, ok := v.nd.Erase(iv); ok {
			return h, true
		}
		if v.nd.Key < inf {
			v = v.right
		} else {
			v = v.left
		}
	}
	return nil, false
}

func split[V cmp.Ordered](n *ctNode[V], x V) (*ctNode[V], *ctNode[V]) {
	if n == nil {
		return nil, nil
	}
	if n.nd.Key < x {
		l, r := split(n.right, x)
		n.right = l
		return n, r
	}
	l, r := split(n.left, x)
	n.left = r
	return l, n
}

func merge[V cmp.Ordered](n1, n2 *ctNode[V]) *ctNode[V] {
	switch {
	case n1 == nil:
		return n2
	case n2 == nil:
		return n1
	}
	if n1.priority < n2.priority {
		n2.left = merge(n1, n2.left)
		return n2
	}
	n1.right = merge(n1.right, n2)
	return n1
}

// Insert stores iv, creating an endpoint node for iv.Inf() if one doesn't
// already exist, re-bucketing as needed to preserve localization.
func (t *Tree[V]) Insert(iv interval.Interval[V]) {
	h := t.store.Push(iv)
	lbound := iv.Inf()

	if found := t.search(lbound); found != nil {
		found.nd.OwnerCount++
		t.placeToMatching(h)
		return
	}

	nd := node.New(lbound)
	nd.OwnerCount = 1
	leaf := &ctNode[V]{nd: nd, priority: t.rng.Uint64()}

	// Descend past higher-priority ancestors to leaf's BST insertion point.
	v := t.root
	childPtr := &t.root
	for v != nil && v.priority > leaf.priority {
		if leaf.nd.Key < v.nd.Key {
			childPtr = &v.left
		} else {
			childPtr = &v.right
		}
		v = *childPtr
	}
	*childPtr = leaf

	// Split the subtree rooted at v (key-ordered, so this is valid even
	// though v may be an arbitrary interior node) around leaf's key.
	left, right := split(v, leaf.nd.Key)
	leaf.left = left
	leaf.right = right

	for u := leaf.left; u != nil; u = u.right {
		u.nd.MoveRBoundIdxTo(nd)
	}
	for u := leaf.right; u != nil; u = u.left {
		u.nd.MoveLBoundIdxTo(nd)
	}

	t.placeToMatching(h)
}

// InsertMany inserts every interval in ivs and returns the count inserted.
func (t *Tree[V]) InsertMany(ivs []interval.Interval[V]) int {
	for _, iv := range ivs {
		t.Insert(iv)
	}
	return len(ivs)
}

// Remove deletes one stored copy of iv (matched by value), reporting
// whether a copy was found. On a miss, no state changes.
func (t *Tree[V]) Remove(iv interval.Interval[V]) bool {
	h, ok := t.deleteFromMatching(iv)
	if !ok {
		return false
	}

	lbound := iv.Inf()
	v := t.root
	childPtr := &t.root
	for v != nil && v.nd.Key != lbound {
		if lbound < v.nd.Key {
			childPtr = &v.left
		} else {
			childPtr = &v.right
		}
		v = *childPtr
	}
	if v == nil {
		panic("cartesian: erased handle but did not reach its owning node")
	}
	v.nd.OwnerCount--
	if v.nd.OwnerCount > 0 {
		t.store.Erase(h)
		return true
	}

	// Repeatedly fold in whichever child spine has higher priority at its
	// root, draining buckets as each node is passed over, until both
	// children are exhausted; then merge what's left as v's replacement.
	u, w := v.left, v.right
	for u != nil || w != nil {
		if u == nil || (w != nil && w.priority > u.priority) {
			v.nd.MoveRBoundIdxTo(w.nd)
			w = w.left
		} else {
			v.nd.MoveLBoundIdxTo(u.nd)
			u = u.right
		}
	}
	*childPtr = merge(v.left, v.right)

	t.store.Erase(h)
	return true
}

// IsContained reports whether any stored interval contains val.
func (t *Tree[V]) IsContained(val V) bool {
	v := t.root
	for v != nil {
		if val > v.nd.Key {
			if v.nd.FrontRBoundContains(val) {
				return true
			}
			v = v.right
		} else {
			if v.nd.FrontLBoundContains(val) {
				return true
			}
			if v.nd.Key == val {
				return false
			}
			v = v.left
		}
	}
	return false
}

// FindIntervals emits every stored interval containing val to sink. Output
// order is unspecified.
func (t *Tree[V]) FindIntervals(val V, sink func(interval.Interval[V])) {
	v := t.root
	for v != nil {
		if val > v.nd.Key {
			v.nd.CollectByRBound(val, sink)
			v = v.right
		} else {
			v.nd.CollectByLBound(val, sink)
			if v.nd.Key == val {
				break
			}
			v = v.left
		}
	}
}

// Clear empties the tree back to a fresh, empty state.
func (t *Tree[V]) Clear() {
	t.root = nil
	t.store.Clear()
}

// Size returns the number of stored intervals.
func (t *Tree[V]) Size() int { return t.store.Len() }

// Iter calls fn for every stored interval, in unspecified but
// mutation-stable order.
func (t *Tree[V]) Iter(fn func(interval.Interval[V])) { t.store.Iter(fn) }
