package interval

import (
	"errors"
	"testing"
)

func TestNewRejectsInfGreaterThanSup(t *testing.T) {
	_, err := New(5, 3, true, true)
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("want ErrInvalidInterval, got %v", err)
	}
}

func TestNewAllowsDegenerateInfEqualSup(t *testing.T) {
	iv, err := New(3, 3, true, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !iv.Contains(3) {
		t.Fatalf("[3,3] should contain 3")
	}
}

func TestContainsRespectsOpenness(t *testing.T) {
	cases := []struct {
		name                 string
		infClosed, supClosed bool
		v                    float64
		want                 bool
	}{
		{"open at inf boundary", false, true, 0, false},
		{"closed at inf boundary", true, true, 0, true},
		{"open at sup boundary", true, false, 5, false},
		{"closed at sup boundary", true, true, 5, true},
		{"interior", false, false, 2.5, true},
		{"below range", true, true, -1, false},
		{"above range", true, true, 6, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			iv := MustNew(0.0, 5.0, tc.infClosed, tc.supClosed)
			if got := iv.Contains(tc.v); got != tc.want {
				t.Errorf("Contains(%v) = %v, want %v", tc.v, got, tc.want)
			}
		})
	}
}

func TestContainsOrInf(t *testing.T) {
	iv := MustNew(0, 5, false, false) // (0, 5)
	if iv.Contains(0) {
		t.Fatalf("open interval should not contain its own inf")
	}
	if !iv.ContainsOrInf(0) {
		t.Fatalf("ContainsOrInf must hold at inf regardless of openness")
	}
}

func TestEqualIsStructural(t *testing.T) {
	a := MustNew(1, 2, true, false)
	b := MustNew(1, 2, true, false)
	c := MustNew(1, 2, true, true)
	if !a.Equal(b) {
		t.Fatalf("value-equal intervals should compare Equal")
	}
	if a.Equal(c) {
		t.Fatalf("differing closedness must not compare Equal")
	}
}

func TestStringRendersBoundaryStyle(t *testing.T) {
	cases := map[string]Interval[int]{
		"[1, 2]": MustNew(1, 2, true, true),
		"(1, 2)": MustNew(1, 2, false, false),
		"[1, 2)": MustNew(1, 2, true, false),
	}
	for want, iv := range cases {
		if got := iv.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
