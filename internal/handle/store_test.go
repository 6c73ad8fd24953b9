package handle

import (
	"testing"

	"github.com/edirooss/intervalidx/internal/interval"
)

func TestPushReturnsStableHandle(t *testing.T) {
	s := New[int]()
	iv := interval.MustNew(1, 2, true, true)
	h := s.Push(iv)
	if !h.Interval().Equal(iv) {
		t.Fatalf("handle's interval should round-trip")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
}

func TestHandleAddressSurvivesOtherPushesAndErases(t *testing.T) {
	s := New[int]()
	iv := interval.MustNew(1, 2, true, true)
	h := s.Push(iv)

	for i := 0; i < 50; i++ {
		other := s.Push(interval.MustNew(i, i+10, true, true))
		if i%3 == 0 {
			s.Erase(other)
		}
	}

	if !h.Interval().Equal(iv) {
		t.Fatalf("handle stopped naming its original interval after unrelated churn")
	}
}

func TestErase(t *testing.T) {
	s := New[int]()
	h1 := s.Push(interval.MustNew(1, 2, true, true))
	h2 := s.Push(interval.MustNew(3, 4, true, true))

	s.Erase(h1)
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after erasing one of two", s.Len())
	}
	if !h2.Interval().Equal(interval.MustNew(3, 4, true, true)) {
		t.Fatalf("surviving handle corrupted by erase of sibling")
	}
}

func TestEqualIsIdentityNotValue(t *testing.T) {
	s := New[int]()
	iv := interval.MustNew(1, 2, true, true)
	a := s.Push(iv)
	b := s.Push(iv) // value-equal, distinct slot
	if a.Equal(b) {
		t.Fatalf("distinct slots with value-equal intervals must not compare Equal")
	}
	if !a.Equal(a) {
		t.Fatalf("a handle must equal itself")
	}
}

func TestIterAndClear(t *testing.T) {
	s := New[int]()
	s.Push(interval.MustNew(1, 2, true, true))
	s.Push(interval.MustNew(3, 4, true, true))

	var seen int
	s.Iter(func(interval.Interval[int]) { seen++ })
	if seen != 2 {
		t.Fatalf("Iter visited %d items, want 2", seen)
	}

	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Len() = %d after Clear, want 0", s.Len())
	}
}
