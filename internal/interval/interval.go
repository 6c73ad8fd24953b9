// Package interval defines the immutable endpoint-pair value the index
// stores: a one-dimensional range with independently open or closed
// endpoints.
package interval

import (
	"cmp"
	"errors"
	"fmt"
)

// ErrInvalidInterval is returned when a constructor's inf <= sup precondition
// is violated. It is fatal at the call site: no container state is touched.
var ErrInvalidInterval = errors.New("interval: inf must be <= sup")

// Interval is an immutable (inf, sup, infClosed, supClosed) tuple over an
// ordered value type V.
type Interval[V cmp.Ordered] struct {
	inf, sup             V
	infClosed, supClosed bool
}

// New builds an Interval, rejecting inf > sup with ErrInvalidInterval.
func New[V cmp.Ordered](inf, sup V, infClosed, supClosed bool) (Interval[V], error) {
	if inf > sup {
		return Interval[V]{}, fmt.Errorf("%w: inf=%v sup=%v", ErrInvalidInterval, inf, sup)
	}
	return Interval[V]{inf: inf, sup: sup, infClosed: infClosed, supClosed: supClosed}, nil
}

// MustNew is New, panicking on an invalid interval. Intended for tests and
// literal construction sites where inf <= sup is known statically.
func MustNew[V cmp.Ordered](inf, sup V, infClosed, supClosed bool) Interval[V] {
	i, err := New(inf, sup, infClosed, supClosed)
	if err != nil {
		panic(err)
	}
	return i
}

func (i Interval[V]) Inf() V           { return i.inf }
func (i Interval[V]) Sup() V           { return i.sup }
func (i Interval[V]) InfClosed() bool  { return i.infClosed }
func (i Interval[V]) SupClosed() bool  { return i.supClosed }

// Contains reports whether v falls within the interval, respecting endpoint
// openness: a closed endpoint is included, an open one is not.
func (i Interval[V]) Contains(v V) bool {
	lok := v > i.inf
	if i.infClosed {
		lok = lok || v == i.inf
	}
	rok := v < i.sup
	if i.supClosed {
		rok = rok || v == i.sup
	}
	return lok && rok
}

// ContainsOrInf holds iff Contains(v) or v equals the left endpoint,
// regardless of its openness. Bucket membership (internal/node) uses this
// looser predicate so that an interval whose inf coincides with a node's key
// is unambiguously localized there even when the left endpoint is open.
func (i Interval[V]) ContainsOrInf(v V) bool {
	return i.Contains(v) || v == i.inf
}

// ContainsInterval reports whether this interval contains [l, r], i.e.
// inf <= l && sup >= r.
func (i Interval[V]) ContainsInterval(l, r V) bool {
	return i.inf <= l && i.sup >= r
}

// Equal is structural equality: same endpoints, same openness.
func (i Interval[V]) Equal(o Interval[V]) bool {
	return i.inf == o.inf && i.sup == o.sup && i.infClosed == o.infClosed && i.supClosed == o.supClosed
}

func (i Interval[V]) String() string {
	l, r := "(", ")"
	if i.infClosed {
		l = "["
	}
	if i.supClosed {
		r = "]"
	}
	return fmt.Sprintf("%s%v, %v%s", l, i.inf, i.sup, r)
}
