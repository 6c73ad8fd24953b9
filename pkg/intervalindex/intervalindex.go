// Package intervalindex is the public facade over the two interval-index
// back-ends: it picks an implementation (ISL or Cartesian tree) behind one
// Index[V] contract and owns the error values callers see. The back-ends
// themselves (internal/skiplist, internal/cartesian) stay unexported so
// this is the only supported entry point.
package intervalindex

import (
	"cmp"

	"github.com/edirooss/intervalidx/internal/cartesian"
	"github.com/edirooss/intervalidx/internal/interval"
	"github.com/edirooss/intervalidx/internal/skiplist"
)

// ErrInvalidInterval is re-exported so callers don't need to import
// internal/interval to check it with errors.Is.
var ErrInvalidInterval = interval.ErrInvalidInterval

// Interval is the endpoint-pair value stored and emitted by an Index,
// re-exported so callers never need to import internal/interval directly.
type Interval[V cmp.Ordered] = interval.Interval[V]

// NewInterval constructs an Interval, returning ErrInvalidInterval if
// inf > sup.
func NewInterval[V cmp.Ordered](inf, sup V, infClosed, supClosed bool) (Interval[V], error) {
	return interval.New(inf, sup, infClosed, supClosed)
}

// Backend names which back-end an Index was constructed with.
type Backend int

const (
	BackendISL Backend = iota
	BackendCartesian
)

func (b Backend) String() string {
	switch b {
	case BackendISL:
		return "isl"
	case BackendCartesian:
		return "cartesian"
	default:
		return "unknown"
	}
}

// backend is the common shape both internal containers already satisfy;
// Index wraps one of them plus the endpoint-construction convenience
// methods below.
type backend[V cmp.Ordered] interface {
	Insert(Interval[V])
	InsertMany([]Interval[V]) int
	Remove(Interval[V]) bool
	FindIntervals(V, func(Interval[V]))
	IsContained(V) bool
	Clear()
	Size() int
	Iter(func(Interval[V]))
	Seed(uint64)
}

// Index is the facade type every caller outside this module should use.
type Index[V cmp.Ordered] struct {
	b       backend[V]
	backend Backend
}

// NewISL returns an empty Index backed by the Interval Skip List.
func NewISL[V cmp.Ordered]() *Index[V] {
	return &Index[V]{b: skiplist.New[V](), backend: BackendISL}
}

// NewCartesian returns an empty Index backed by the interval Cartesian tree.
func NewCartesian[V cmp.Ordered]() *Index[V] {
	return &Index[V]{b: cartesian.New[V](), backend: BackendCartesian}
}

// Backend reports which back-end this Index uses.
func (ix *Index[V]) Backend() Backend { return ix.backend }

// Seed reseeds the back-end's internal RNG (level heights for ISL, treap
// priorities for Cartesian), for reproducible runs.
func (ix *Index[V]) Seed(x uint64) { ix.b.Seed(x) }

// Insert constructs an interval from its components and stores it,
// returning ErrInvalidInterval if inf > sup. No state changes on error.
func (ix *Index[V]) Insert(inf, sup V, infClosed, supClosed bool) error {
	iv, err := interval.New(inf, sup, infClosed, supClosed)
	if err != nil {
		return err
	}
	ix.b.Insert(iv)
	return nil
}

// InsertInterval stores an already-constructed interval.Interval. Exposed
// for callers (and tests) that already hold a validated Interval[V], e.g.
// when replaying the same multiset across two Index instances for an
// insert-order-independence check.
func (ix *Index[V]) InsertInterval(iv Interval[V]) { ix.b.Insert(iv) }

// InsertMany stores every already-constructed interval in ivs (all
// validated at construction, so this never fails) and returns the count
// inserted.
func (ix *Index[V]) InsertMany(ivs []Interval[V]) int {
	return ix.b.InsertMany(ivs)
}

// Remove deletes one stored copy of the interval matching the given
// components by value, reporting whether a copy was found. A false result
// (NotFound) is a normal outcome, not an error.
func (ix *Index[V]) Remove(inf, sup V, infClosed, supClosed bool) bool {
	iv, err := interval.New(inf, sup, infClosed, supClosed)
	if err != nil {
		return false
	}
	return ix.b.Remove(iv)
}

// RemoveInterval is the InsertInterval symmetric for Remove.
func (ix *Index[V]) RemoveInterval(iv Interval[V]) bool { return ix.b.Remove(iv) }

// FindIntervals emits every stored interval containing v to sink.
func (ix *Index[V]) FindIntervals(v V, sink func(Interval[V])) { ix.b.FindIntervals(v, sink) }

// FindIntervalsSlice is a convenience wrapper over FindIntervals that
// collects results into a freshly allocated slice.
func (ix *Index[V]) FindIntervalsSlice(v V) []Interval[V] {
	var out []Interval[V]
	ix.b.FindIntervals(v, func(iv Interval[V]) { out = append(out, iv) })
	return out
}

// IsContained reports whether any stored interval contains v.
func (ix *Index[V]) IsContained(v V) bool { return ix.b.IsContained(v) }

// Clear empties the index.
func (ix *Index[V]) Clear() { ix.b.Clear() }

// Size returns the number of stored intervals.
func (ix *Index[V]) Size() int { return ix.b.Size() }

// Iter calls fn for every stored interval, in unspecified but
// mutation-stable order.
func (ix *Index[V]) Iter(fn func(Interval[V])) { ix.b.Iter(fn) }
