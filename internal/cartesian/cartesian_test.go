package cartesian

import (
	"cmp"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/edirooss/intervalidx/internal/interval"
	"github.com/edirooss/intervalidx/internal/reftest"
)

func TestScenarioS1(t *testing.T) {
	ct := New[float64]()
	ct.Insert(interval.MustNew[float64](0, 3, false, true))
	ct.Insert(interval.MustNew[float64](3, 5, false, true))

	got := collect(ct, 3)
	want := []interval.Interval[float64]{interval.MustNew[float64](0, 3, false, true)}
	assertSameMultiset(t, got, want)
}

func TestScenarioS2(t *testing.T) {
	ct := New[float64]()
	ct.Insert(interval.MustNew[float64](-5, 0, false, false))
	ct.Insert(interval.MustNew[float64](0, 5, false, false))

	assertSameMultiset(t, collect(ct, 0), nil)
	assertSameMultiset(t, collect(ct, -2.5), []interval.Interval[float64]{interval.MustNew[float64](-5, 0, false, false)})
	assertSameMultiset(t, collect(ct, 2.5), []interval.Interval[float64]{interval.MustNew[float64](0, 5, false, false)})
}

func TestScenarioS3(t *testing.T) {
	ct := New[int]()
	for i := 0; i <= 9; i++ {
		ct.Insert(interval.MustNew(i, i+3, true, true))
	}
	want := []interval.Interval[int]{
		interval.MustNew(2, 5, true, true),
		interval.MustNew(3, 6, true, true),
		interval.MustNew(4, 7, true, true),
	}
	assertSameMultiset(t, collect(ct, 4), want)
}

func TestScenarioS4(t *testing.T) {
	ct := New[int]()
	degenerate := interval.MustNew(2, 2, false, false)
	ct.Insert(degenerate)
	ct.Insert(degenerate)

	if ct.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", ct.Size())
	}
	if got := collect(ct, 2); len(got) != 0 {
		t.Fatalf("stabbing an open degenerate interval at its own point must emit nothing, got %v", got)
	}
	if !ct.Remove(degenerate) {
		t.Fatalf("Remove should find one of the two stored copies")
	}
	if ct.Size() != 1 {
		t.Fatalf("Size() = %d after one Remove, want 1", ct.Size())
	}
}

func TestScenarioS5(t *testing.T) {
	eps := math.Nextafter(1, 2) - 1
	ct := New[float64]()
	iv := interval.MustNew(1, 1+eps, false, true)
	ct.Insert(iv)

	if got := collect(ct, 1); len(got) != 0 {
		t.Fatalf("stabbing the open inf boundary must emit nothing, got %v", got)
	}
	assertSameMultiset(t, collect(ct, 1+eps), []interval.Interval[float64]{iv})
}

func TestScenarioS6Stress(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress scenario in -short mode")
	}
	const n = 20000
	const lo, hi = -100000, 100000

	ct := New[int]()
	ct.Seed(42)
	rng := rand.New(rand.NewPCG(42, 7))
	var oracle reftest.Oracle[int]

	for i := 0; i < n; i++ {
		a := rng.IntN(hi-lo+1) + lo
		b := rng.IntN(hi-lo+1) + lo
		if a > b {
			a, b = b, a
		}
		iv := interval.MustNew(a, b, rng.IntN(2) == 0, rng.IntN(2) == 0)
		ct.Insert(iv)
		oracle.Insert(iv)
	}

	for i := 0; i < 2000; i++ {
		v := rng.IntN(hi-lo+1) + lo
		assertSameMultiset(t, collect(ct, v), oracle.FindIntervals(v))
		if ct.IsContained(v) != oracle.IsContained(v) {
			t.Fatalf("IsContained(%d) disagrees with linear scan", v)
		}
	}
}

func TestSizeTracksInsertAndRemove(t *testing.T) {
	ct := New[int]()
	ivs := []interval.Interval[int]{
		interval.MustNew(1, 5, true, true),
		interval.MustNew(1, 5, true, true), // duplicate
		interval.MustNew(2, 8, true, false),
	}
	for _, iv := range ivs {
		ct.Insert(iv)
	}
	if ct.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", ct.Size())
	}
	if !ct.Remove(ivs[0]) {
		t.Fatalf("Remove should locate a stored duplicate")
	}
	if ct.Size() != 2 {
		t.Fatalf("Size() = %d after one Remove, want 2", ct.Size())
	}
}

func TestRemoveOnEmptyReturnsFalse(t *testing.T) {
	ct := New[int]()
	if ct.Remove(interval.MustNew(0, 1, true, true)) {
		t.Fatalf("Remove on an empty tree must return false")
	}
}

func TestInsertRemoveRoundTrip(t *testing.T) {
	ct := New[int]()
	iv := interval.MustNew(10, 20, true, true)
	ct.Insert(iv)
	before := collect(ct, 15)

	if !ct.Remove(iv) {
		t.Fatalf("Remove should find the just-inserted interval")
	}
	if ct.Size() != 0 {
		t.Fatalf("Size() = %d after removing the only interval, want 0", ct.Size())
	}

	ct.Insert(iv)
	after := collect(ct, 15)
	assertSameMultiset(t, before, after)
}

func TestClearThenReinsert(t *testing.T) {
	ct := New[int]()
	ivs := []interval.Interval[int]{
		interval.MustNew(0, 10, true, true),
		interval.MustNew(5, 15, true, true),
		interval.MustNew(-5, 5, true, true),
	}
	for _, iv := range ivs {
		ct.Insert(iv)
	}
	want := map[int][]interval.Interval[int]{}
	for v := -5; v <= 15; v++ {
		want[v] = collect(ct, v)
	}

	ct.Clear()
	if ct.Size() != 0 {
		t.Fatalf("Size() = %d after Clear, want 0", ct.Size())
	}
	for _, iv := range ivs {
		ct.Insert(iv)
	}
	for v := -5; v <= 15; v++ {
		assertSameMultiset(t, collect(ct, v), want[v])
	}
}

func TestInsertOrderIndependence(t *testing.T) {
	base := []interval.Interval[int]{
		interval.MustNew(0, 10, true, true),
		interval.MustNew(3, 7, false, false),
		interval.MustNew(5, 5, true, true),
		interval.MustNew(-2, 3, true, false),
		interval.MustNew(7, 20, false, true),
	}
	perms := [][]int{
		{0, 1, 2, 3, 4},
		{4, 3, 2, 1, 0},
		{2, 0, 4, 1, 3},
	}

	var results [][]interval.Interval[int]
	for _, perm := range perms {
		ct := New[int]()
		for _, idx := range perm {
			ct.Insert(base[idx])
		}
		for v := -2; v <= 20; v++ {
			results = append(results, collect(ct, v))
		}
	}

	first := results[:23]
	for p := 1; p < len(perms); p++ {
		chunk := results[p*23 : (p+1)*23]
		for i := range first {
			assertSameMultiset(t, first[i], chunk[i])
		}
	}
}

func collect[V cmp.Ordered](ct *Tree[V], v V) []interval.Interval[V] {
	var out []interval.Interval[V]
	ct.FindIntervals(v, func(iv interval.Interval[V]) { out = append(out, iv) })
	return out
}

func assertSameMultiset[V cmp.Ordered](t *testing.T, got, want []interval.Interval[V]) {
	t.Helper()
	gk, wk := reftest.Keys(got), reftest.Keys(want)
	if len(gk) != len(wk) {
		t.Fatalf("got %d intervals, want %d (got=%v want=%v)", len(gk), len(wk), got, want)
	}
	for i := range gk {
		if gk[i] != wk[i] {
			t.Fatalf("multiset mismatch at position %d: got %v, want %v", i, got, want)
		}
	}
}
