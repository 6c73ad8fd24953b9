// Package reftest provides a linear-scan reference oracle shared by the
// skiplist and cartesian property tests: a plain slice of intervals,
// checked by brute force against whatever invariant the test is probing.
package reftest

import (
	"cmp"
	"sort"

	"github.com/edirooss/intervalidx/internal/interval"
)

// Oracle is a multiset of intervals, queried by linear scan. It exists
// purely as a correctness baseline; it makes no claim to efficiency.
type Oracle[V cmp.Ordered] struct {
	items []interval.Interval[V]
}

// Insert appends iv.
func (o *Oracle[V]) Insert(iv interval.Interval[V]) { o.items = append(o.items, iv) }

// Remove deletes one value-equal copy of iv, reporting whether one existed.
func (o *Oracle[V]) Remove(iv interval.Interval[V]) bool {
	for i, x := range o.items {
		if x.Equal(iv) {
			o.items = append(o.items[:i], o.items[i+1:]...)
			return true
		}
	}
	return false
}

// FindIntervals returns every stored interval containing v, in insertion
// order; compare it against a back-end's (unordered) output through Keys.
func (o *Oracle[V]) FindIntervals(v V) []interval.Interval[V] {
	var out []interval.Interval[V]
	for _, iv := range o.items {
		if iv.Contains(v) {
			out = append(out, iv)
		}
	}
	return out
}

// IsContained reports whether any stored interval contains v.
func (o *Oracle[V]) IsContained(v V) bool {
	for _, iv := range o.items {
		if iv.Contains(v) {
			return true
		}
	}
	return false
}

// Size returns the number of stored intervals.
func (o *Oracle[V]) Size() int { return len(o.items) }

// Sorted is a comparison key for an interval, used to compare two
// multisets of intervals irrespective of order.
type Sorted[V cmp.Ordered] struct {
	Inf, Sup             V
	InfClosed, SupClosed bool
}

// Keys converts ivs to a sorted slice of comparison keys, so that two
// equal multisets compare equal regardless of emission order.
func Keys[V cmp.Ordered](ivs []interval.Interval[V]) []Sorted[V] {
	keys := make([]Sorted[V], len(ivs))
	for i, iv := range ivs {
		keys[i] = Sorted[V]{iv.Inf(), iv.Sup(), iv.InfClosed(), iv.SupClosed()}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Inf != b.Inf {
			return a.Inf < b.Inf
		}
		if a.Sup != b.Sup {
			return a.Sup < b.Sup
		}
		if a.InfClosed != b.InfClosed {
			return !a.InfClosed
		}
		return !a.SupClosed && b.SupClosed
	})
	return keys
}
