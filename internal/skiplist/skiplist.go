// Package skiplist implements the Interval Skip List (ISL): a
// level-linked, randomized ordered structure of endpoint nodes whose
// insert/remove algorithms re-bucket interval handles across neighbouring
// levels to keep every stored interval localized to exactly one node
// (§4.4 of the specification).
package skiplist

import (
	"cmp"
	"fmt"
	"math/rand/v2"

	"github.com/edirooss/intervalidx/internal/handle"
	"github.com/edirooss/intervalidx/internal/interval"
	"github.com/edirooss/intervalidx/internal/node"
)

// MaxLevel caps a node's height: levels are numbered 0..MaxLevel-1.
const MaxLevel = 48

// slNode is one level-linked node. nd is nil only for the header, which
// carries forward pointers but no key or buckets of its own.
type slNode[V cmp.Ordered] struct {
	nd      *node.Node[V]
	forward []*slNode[V]
}

func (n *slNode[V]) key() V { return n.nd.Key }

// SkipList is the ISL container. The zero value is not usable; construct
// with New.
type SkipList[V cmp.Ordered] struct {
	header   *slNode[V]
	maxLevel int // highest level index currently spliced into (0-based)
	store    *handle.Store[V]
	rng      *rand.Rand
}

// New returns an empty SkipList.
func New[V cmp.Ordered]() *SkipList[V] {
	return &SkipList[V]{
		header: &slNode[V]{forward: make([]*slNode[V], MaxLevel)},
		store:  handle.New[V](),
		rng:    rand.New(rand.NewPCG(1, 1)),
	}
}

// Seed reseeds the level-generation RNG for reproducible runs.
func (sl *SkipList[V]) Seed(x uint64) {
	sl.rng = rand.New(rand.NewPCG(x, x^0x9e3779b97f4a7c15))
}

// randomLevel draws a geometric(1/2) value clipped to MaxLevel-1.
func (sl *SkipList[V]) randomLevel() int {
	lvl := 0
	for sl.rng.Uint64()&1 == 1 && lvl < MaxLevel-1 {
		lvl++
	}
	return lvl
}

// search returns the node keyed on k, or nil.
func (sl *SkipList[V]) search(k V) *node.Node[V] {
	v := sl.header
	for i := sl.maxLevel; i >= 0; i-- {
		for v.forward[i] != nil && v.forward[i].key() < k {
			v = v.forward[i]
		}
		if v.forward[i] != nil && v.forward[i].key() == k {
			return v.forward[i].nd
		}
	}
	return nil
}

// Insert stores iv, creating an endpoint node for iv.Inf() if one doesn't
// already exist, re-bucketing as needed to preserve localization.
func (sl *SkipList[V]) Insert(iv interval.Interval[V]) {
	h := sl.store.Push(iv)
	lbound := iv.Inf()

	if existing := sl.search(lbound); existing != nil {
		// Case A: the key already has a node. Walk top-down and place the
		// handle at the first node whose bucket accepts it; invariant 4
		// guarantees that node is the unique maximal position.
		existing.OwnerCount++
		v := sl.header
		for i := sl.maxLevel; i >= 0; i-- {
			for v.forward[i] != nil && v.forward[i].key() < lbound {
				v = v.forward[i]
				if v.nd.PlaceIfMatches(h) {
					return
				}
			}
			if v.forward[i] != nil && v.forward[i].nd.PlaceIfMatches(h) {
				return
			}
		}
		panic("skiplist: no node accepted handle for existing lbound key")
	}

	// Case B: no node for lbound. Create one at a randomly drawn height and
	// splice it in, draining neighbouring buckets level by level.
	lvl := sl.randomLevel()
	nd := node.New(lbound)
	nd.OwnerCount = 1
	newSl := &slNode[V]{nd: nd, forward: make([]*slNode[V], lvl+1)}

	placed := false
	v := sl.header
	top := sl.maxLevel
	if lvl > top {
		top = lvl
	}
	for i := top; i >= lvl; i-- {
		for v.forward[i] != nil && v.forward[i].key() < lbound {
			v = v.forward[i]
			if !placed {
				placed = v.nd.PlaceIfMatches(h)
			}
		}
		// At i == lvl, v.forward[i] will become the new node's right
		// neighbour post-splice, which fits the handle no worse than v does.
		if !placed && i != lvl && v.forward[i] != nil {
			placed = v.forward[i].nd.PlaceIfMatches(h)
		}
	}
	if !placed {
		nd.Place(h)
	}

	if v.forward[lvl] != nil && len(v.forward[lvl].forward) == lvl+1 {
		// v.forward[lvl] sits at the same top height as the new node and is
		// about to become its right neighbour at that height: it may be
		// holding intervals that now belong to the leftmost node of that
		// height, i.e. the new node.
		v.forward[lvl].nd.MoveLBoundIdxTo(nd)
	}
	newSl.forward[lvl] = v.forward[lvl]
	v.forward[lvl] = newSl

	// Phase 2: descend below lvl, stealing intervals from the left-hand
	// nodes passed over and from right neighbours not already processed one
	// level up (the prev_right de-duplication below).
	prevRight := newSl.forward[lvl]
	for i := lvl - 1; i >= 0; i-- {
		for v.forward[i] != nil && v.forward[i].key() < lbound {
			v = v.forward[i]
			v.nd.MoveRBoundIdxTo(nd)
		}
		if v.forward[i] != nil && v.forward[i] != prevRight {
			v.forward[i].nd.MoveLBoundIdxTo(nd)
			prevRight = v.forward[i]
		}
		newSl.forward[i] = v.forward[i]
		v.forward[i] = newSl
	}

	if lvl > sl.maxLevel {
		for i := sl.maxLevel + 1; i <= lvl; i++ {
			sl.header.forward[i] = newSl
		}
		sl.maxLevel = lvl
	}
}

// InsertMany inserts every interval in ivs and returns the count inserted.
func (sl *SkipList[V]) InsertMany(ivs []interval.Interval[V]) int {
	for _, iv := range ivs {
		sl.Insert(iv)
	}
	return len(ivs)
}

// Remove deletes one stored copy of iv (matched by value), reporting
// whether a copy was found. On a miss, no state changes.
func (sl *SkipList[V]) Remove(iv interval.Interval[V]) bool {
	v := sl.header
	var removed *handle.Handle[V]
	lbound := iv.Inf()

	i := sl.maxLevel
	for ; i >= 0; i-- {
		for v.forward[i] != nil && v.forward[i].key() < lbound {
			v = v.forward[i]
			if removed == nil {
				if h, ok := v.nd.Erase(iv); ok {
					removed = h
				}
			}
		}
		if removed == nil && v.forward[i] != nil {
			if h, ok := v.forward[i].nd.Erase(iv); ok {
				removed = h
			}
		}
		if v.forward[i] != nil && v.forward[i].key() == lbound {
			break
		}
	}
	if removed == nil {
		return false
	}

	rm := v.forward[i]
	if rm == nil || rm.key() != lbound {
		panic("skiplist: erased handle but did not reach its owning node")
	}
	rm.nd.OwnerCount--

	if rm.nd.OwnerCount == 0 {
		// Splice rm out of every level it participates in, redistributing
		// its buckets to the nodes that become its neighbours' new
		// neighbours.
		if rm.forward[i] != nil {
			rm.nd.MoveRBoundIdxTo(rm.forward[i].nd)
		}
		v.forward[i] = rm.forward[i]
		for i--; i >= 0; i-- {
			for v.forward[i] != rm {
				v = v.forward[i]
				rm.nd.MoveLBoundIdxTo(v.nd)
			}
			if rm.forward[i] != rm.forward[i+1] {
				rm.nd.MoveRBoundIdxTo(rm.forward[i].nd)
			}
			v.forward[i] = rm.forward[i]
		}
	}

	sl.store.Erase(removed)
	return true
}

// FindIntervals emits every stored interval containing v to sink. Output
// order is unspecified.
func (sl *SkipList[V]) FindIntervals(v V, sink func(interval.Interval[V])) {
	w := sl.header
	var prevRight *slNode[V]
	for i := sl.maxLevel; i >= 0; i-- {
		for w.forward[i] != nil && w.forward[i].key() < v {
			w = w.forward[i]
			w.nd.CollectByRBound(v, sink)
		}
		if w.forward[i] != nil && w.forward[i] != prevRight {
			// Intervals with inf == v and an open left endpoint don't
			// contain v, so they're correctly excluded by collecting with
			// the strict Contains predicate here.
			w.forward[i].nd.CollectByLBound(v, sink)
			if w.forward[i].key() == v {
				break
			}
			prevRight = w.forward[i]
		}
	}
}

// IsContained reports whether any stored interval contains v.
func (sl *SkipList[V]) IsContained(v V) bool {
	w := sl.header
	for i := sl.maxLevel; i >= 0; i-- {
		for w.forward[i] != nil && w.forward[i].key() < v {
			w = w.forward[i]
			if w.nd.FrontRBoundContains(v) {
				return true
			}
		}
		if w.forward[i] != nil {
			if w.forward[i].nd.FrontLBoundContains(v) {
				return true
			}
			if w.forward[i].key() == v {
				break
			}
		}
	}
	return false
}

// Clear empties the skip list back to a fresh, empty state.
func (sl *SkipList[V]) Clear() {
	for i := range sl.header.forward {
		sl.header.forward[i] = nil
	}
	sl.maxLevel = 0
	sl.store.Clear()
}

// Size returns the number of stored intervals.
func (sl *SkipList[V]) Size() int { return sl.store.Len() }

// Iter calls fn for every stored interval, in unspecified but
// mutation-stable order.
func (sl *SkipList[V]) Iter(fn func(interval.Interval[V])) { sl.store.Iter(fn) }

// Dump writes a line-per-level text rendering of the structure, as a
// debugging aid. The core algorithms never call it, and it is not exposed
// through pkg/intervalindex, so the /debug/dump endpoint does not use it.
func (sl *SkipList[V]) Dump(w func(string)) {
	for lvl := sl.maxLevel; lvl >= 0; lvl-- {
		line := fmt.Sprintf("level %d: ", lvl)
		for n := sl.header.forward[lvl]; n != nil; n = n.forward[lvl] {
			li, ri := n.nd.BucketSizes()
			line += fmt.Sprintf("[key=%v owners=%d |inf|=%d |sup|=%d] -> ", n.key(), n.nd.OwnerCount, li, ri)
		}
		line += "nil"
		w(line)
	}
}
