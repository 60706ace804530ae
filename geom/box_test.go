package geom

import "testing"

func TestSizeAndDimensions(t *testing.T) {
	b := NewBox(Vect(0, 0, 0), Vect(3, 3, 3))
	if d := b.Dimensions(); d != Vect(4, 4, 4) {
		t.Errorf("Expected Dimensions() = (4,4,4), got %v.", d)
	}
	if s := b.Size(); s != 64 {
		t.Errorf("Expected Size() = 64, got %d.", s)
	}
}

func TestEmpty(t *testing.T) {
	b := NewBox(Vect(3, 0, 0), Vect(1, 5, 5))
	if !b.IsEmpty() {
		t.Errorf("Expected box with hi[0] < lo[0] to be empty.")
	}
	if b.Size() != 0 {
		t.Errorf("Expected Size() of empty box to be 0, got %d.", b.Size())
	}
}

func TestShiftAndGrow(t *testing.T) {
	b := NewBox(Vect(0, 0, 0), Vect(1, 1, 1))
	shifted := b.Shift(Vect(2, 0, -1))
	if !shifted.Eq(NewBox(Vect(2, 0, -1), Vect(3, 1, 0))) {
		t.Errorf("Unexpected shifted box: %v.", shifted)
	}

	grown := b.Grow(1)
	if !grown.Eq(NewBox(Vect(-1, -1, -1), Vect(2, 2, 2))) {
		t.Errorf("Unexpected grown box: %v.", grown)
	}

	back := grown.Grow(-1)
	if !back.Eq(b) {
		t.Errorf("grow(r).grow(-r) should be the identity, got %v.", back)
	}

	growDir := b.GrowDir(2, 0)
	if !growDir.Eq(NewBox(Vect(-2, 0, 0), Vect(3, 1, 1))) {
		t.Errorf("Unexpected GrowDir result: %v.", growDir)
	}

	growLo := b.GrowLo(1, 1)
	if !growLo.Eq(NewBox(Vect(0, -1, 0), Vect(1, 1, 1))) {
		t.Errorf("Unexpected GrowLo result: %v.", growLo)
	}

	growHi := b.GrowHi(1, 1)
	if !growHi.Eq(NewBox(Vect(0, 0, 0), Vect(1, 2, 1))) {
		t.Errorf("Unexpected GrowHi result: %v.", growHi)
	}
}

func TestAdjBox(t *testing.T) {
	b := NewBox(Vect(0, 0, 0), Vect(3, 3, 3))

	outside := b.AdjBox(2, 0, 1)
	if !outside.Eq(NewBox(Vect(4, 0, 0), Vect(5, 3, 3))) {
		t.Errorf("Unexpected outside adjacent box: %v.", outside)
	}

	inside := b.AdjBox(-2, 0, 1)
	if !inside.Eq(NewBox(Vect(2, 0, 0), Vect(3, 3, 3))) {
		t.Errorf("Unexpected inside adjacent box: %v.", inside)
	}

	outsideLo := b.AdjBox(2, 0, -1)
	if !outsideLo.Eq(NewBox(Vect(-2, 0, 0), Vect(-1, 3, 3))) {
		t.Errorf("Unexpected outside-low adjacent box: %v.", outsideLo)
	}

	insideLo := b.AdjBox(-2, 0, -1)
	if !insideLo.Eq(NewBox(Vect(0, 0, 0), Vect(1, 3, 3))) {
		t.Errorf("Unexpected inside-low adjacent box: %v.", insideLo)
	}
}

func TestContains(t *testing.T) {
	b := NewBox(Vect(0, 0, 0), Vect(3, 3, 3))
	if !b.Contains(Vect(1, 2, 3)) {
		t.Errorf("Expected b to contain (1,2,3).")
	}
	if b.Contains(Vect(4, 0, 0)) {
		t.Errorf("Expected b to not contain (4,0,0).")
	}

	sub := NewBox(Vect(1, 1, 1), Vect(2, 2, 2))
	if !b.ContainsBox(sub) {
		t.Errorf("Expected b to contain sub-box %v.", sub)
	}
	if sub.ContainsBox(b) {
		t.Errorf("Expected sub-box to not contain the larger box b.")
	}
}

func TestIntersect(t *testing.T) {
	a := NewBox(Vect(0, 0, 0), Vect(3, 3, 3))
	b := NewBox(Vect(2, 2, 2), Vect(5, 5, 5))

	ab := Intersect(a, b)
	ba := Intersect(b, a)
	if !ab.Eq(ba) {
		t.Errorf("Intersect should commute: %v != %v.", ab, ba)
	}
	if !ab.Eq(NewBox(Vect(2, 2, 2), Vect(3, 3, 3))) {
		t.Errorf("Unexpected intersection: %v.", ab)
	}

	if aa := Intersect(a, a); !aa.Eq(a) {
		t.Errorf("Intersect(a,a) should be idempotent, got %v.", aa)
	}

	disjoint := NewBox(Vect(10, 10, 10), Vect(11, 11, 11))
	if in := Intersect(a, disjoint); !in.IsEmpty() {
		t.Errorf("Expected empty intersection with disjoint box, got %v.", in)
	}
}
