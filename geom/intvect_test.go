package geom

import "testing"

func TestArithmetic(t *testing.T) {
	v := Vect(1, 2, 3)
	w := Vect(4, 5, 6)

	if sum := v.Add(w); sum != Vect(5, 7, 9) {
		t.Errorf("Expected v.Add(w) = (5,7,9), got %v.", sum)
	}
	if diff := w.Sub(v); diff != Vect(3, 3, 3) {
		t.Errorf("Expected w.Sub(v) = (3,3,3), got %v.", diff)
	}
	if s := v.Scale(2); s != Vect(2, 4, 6) {
		t.Errorf("Expected v.Scale(2) = (2,4,6), got %v.", s)
	}
	if n := v.Neg(); n != Vect(-1, -2, -3) {
		t.Errorf("Expected v.Neg() = (-1,-2,-3), got %v.", n)
	}
}

func TestNormsAndReductions(t *testing.T) {
	v := Vect(-1, 2, -3)
	if n := v.L1Norm(); n != 6 {
		t.Errorf("Expected L1Norm() = 6, got %d.", n)
	}
	if s := v.Sum(); s != -2 {
		t.Errorf("Expected Sum() = -2, got %d.", s)
	}
	if p := Vect(2, 3, 4).Product(); p != 24 {
		t.Errorf("Expected Product() = 24, got %d.", p)
	}
}

func TestMinMax(t *testing.T) {
	a, b := Vect(1, 5, 3), Vect(4, 2, 3)
	if m := Min(a, b); m != Vect(1, 2, 3) {
		t.Errorf("Expected Min(a,b) = (1,2,3), got %v.", m)
	}
	if m := Max(a, b); m != Vect(4, 5, 3) {
		t.Errorf("Expected Max(a,b) = (4,5,3), got %v.", m)
	}
}

func TestComparisons(t *testing.T) {
	a, b, c := Vect(1, 1, 1), Vect(2, 2, 2), Vect(1, 2, 0)
	if !a.LE(b) {
		t.Errorf("Expected a <= b.")
	}
	if !a.LT(b) {
		t.Errorf("Expected a < b.")
	}
	if a.LE(c) {
		t.Errorf("Expected a <= c to be false (c has a smaller component).")
	}
	if !Zero.Eq(Vect(0, 0, 0)) {
		t.Errorf("Expected Zero == (0,0,0).")
	}
	if !Unit.Eq(Vect(1, 1, 1)) {
		t.Errorf("Expected Unit == (1,1,1).")
	}
}
