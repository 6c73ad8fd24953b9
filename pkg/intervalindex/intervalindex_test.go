package intervalindex

import (
	"errors"
	"testing"
)

func TestInsertRejectsInvalidInterval(t *testing.T) {
	ix := NewISL[int]()
	err := ix.Insert(5, 1, true, true)
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("want ErrInvalidInterval, got %v", err)
	}
	if ix.Size() != 0 {
		t.Fatalf("Size() = %d after rejected insert, want 0", ix.Size())
	}
}

func TestBackendReporting(t *testing.T) {
	isl := NewISL[int]()
	ct := NewCartesian[int]()
	if isl.Backend() != BackendISL {
		t.Fatalf("NewISL should report BackendISL")
	}
	if ct.Backend() != BackendCartesian {
		t.Fatalf("NewCartesian should report BackendCartesian")
	}
	if BackendISL.String() != "isl" || BackendCartesian.String() != "cartesian" {
		t.Fatalf("Backend.String() values changed unexpectedly")
	}
}

func TestBothBackendsAgree(t *testing.T) {
	for _, newIx := range []func() *Index[int]{
		func() *Index[int] { return NewISL[int]() },
		func() *Index[int] { return NewCartesian[int]() },
	} {
		ix := newIx()
		if err := ix.Insert(0, 10, true, true); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if err := ix.Insert(5, 15, false, true); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}

		if !ix.IsContained(7) {
			t.Fatalf("[%s] expected 7 to be contained", ix.Backend())
		}
		got := ix.FindIntervalsSlice(7)
		if len(got) != 2 {
			t.Fatalf("[%s] FindIntervalsSlice(7) = %v, want 2 intervals", ix.Backend(), got)
		}

		if ix.Remove(0, 10, true, true) != true {
			t.Fatalf("[%s] Remove should find the stored interval", ix.Backend())
		}
		if ix.Size() != 1 {
			t.Fatalf("[%s] Size() = %d after one Remove, want 1", ix.Backend(), ix.Size())
		}
	}
}

func TestRemoveNotFoundIsNotAnError(t *testing.T) {
	ix := NewISL[int]()
	if ix.Remove(0, 1, true, true) {
		t.Fatalf("Remove on an empty index must return false, not an error")
	}
}

func TestInsertMany(t *testing.T) {
	ix := NewCartesian[int]()
	a, _ := NewInterval(0, 5, true, true)
	b, _ := NewInterval(5, 10, false, true)
	n := ix.InsertMany([]Interval[int]{a, b})
	if n != 2 || ix.Size() != 2 {
		t.Fatalf("InsertMany inserted %d, index size %d, want 2 and 2", n, ix.Size())
	}
}

func TestSeedIsAcceptedWithoutPanicking(t *testing.T) {
	ix := NewISL[int]()
	ix.Seed(1234)
	if err := ix.Insert(0, 1, true, true); err != nil {
		t.Fatalf("unexpected error after Seed: %v", err)
	}
}
