package layout

import (
	"testing"

	"github.com/phil-mansfield/haloflow/geom"
)

func TestNewAcceptsEvenPartition(t *testing.T) {
	domain := geom.NewBox(geom.Zero, geom.Vect(9, 9, 9)) // [0..9]^3, 10 cells/axis
	dbl, err := New(domain, geom.Vect(5, 5, 5), 1, 0)
	if err != nil {
		t.Fatalf("Expected 2x2x2 partition to be accepted, got error: %v", err)
	}
	if dbl.NumBoxes() != 8 {
		t.Errorf("Expected 8 boxes, got %d.", dbl.NumBoxes())
	}
}

func TestNewRejectsUnevenPartition(t *testing.T) {
	domain := geom.NewBox(geom.Zero, geom.Vect(8, 8, 8)) // [0..8]^3, 9 cells/axis
	_, err := New(domain, geom.Vect(5, 5, 5), 1, 0)
	if err == nil {
		t.Fatalf("Expected uneven partition (9 does not divide by 5) to be rejected.")
	}
}

func TestNewRejectsUnevenProcessSplit(t *testing.T) {
	domain := geom.NewBox(geom.Zero, geom.Vect(9, 9, 9))
	_, err := New(domain, geom.Vect(5, 5, 5), 3, 0) // 8 boxes, 3 procs
	if err == nil {
		t.Fatalf("Expected 8 boxes over 3 processes to be rejected.")
	}
}

func TestPartitionCoverage(t *testing.T) {
	domain := geom.NewBox(geom.Zero, geom.Vect(3, 3, 3))
	dbl, err := New(domain, geom.Vect(2, 2, 2), 1, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	covered := map[geom.IntVect]int{}
	it := dbl.Iter()
	for it.Next() {
		b := it.Box()
		for x := b.Lo()[0]; x <= b.Hi()[0]; x++ {
			for y := b.Lo()[1]; y <= b.Hi()[1]; y++ {
				for z := b.Lo()[2]; z <= b.Hi()[2]; z++ {
					covered[geom.Vect(x, y, z)]++
				}
			}
		}
	}

	for x := 0; x <= 3; x++ {
		for y := 0; y <= 3; y++ {
			for z := 0; z <= 3; z++ {
				n := covered[geom.Vect(x, y, z)]
				if n != 1 {
					t.Fatalf("Cell (%d,%d,%d) covered %d times, want exactly 1.", x, y, z, n)
				}
			}
		}
	}
}

func TestOwnerBlockPartitioning(t *testing.T) {
	domain := geom.NewBox(geom.Zero, geom.Vect(3, 3, 3))
	dbl, err := New(domain, geom.Vect(2, 2, 2), 2, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// 8 boxes over 2 procs: [0,4) -> proc 0, [4,8) -> proc 1.
	for k := 0; k < 8; k++ {
		want := 0
		if k >= 4 {
			want = 1
		}
		if got := dbl.Owner(k); got != want {
			t.Errorf("Box %d: expected owner %d, got %d.", k, want, got)
		}
	}
	if dbl.NumLocalBoxes() != 4 {
		t.Errorf("Expected 4 local boxes on rank 0, got %d.", dbl.NumLocalBoxes())
	}
}

func TestDataIteratorRestrictsToLocalRange(t *testing.T) {
	domain := geom.NewBox(geom.Zero, geom.Vect(3, 3, 3))
	dbl, err := New(domain, geom.Vect(2, 2, 2), 2, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	count := 0
	it := dbl.DataIter()
	for it.Next() {
		idx := it.Index()
		if idx.Global < 4 || idx.Global >= 8 {
			t.Errorf("DataIterator on rank 1 yielded out-of-range global index %d.", idx.Global)
		}
		if idx.Local < 0 || idx.Local >= 4 {
			t.Errorf("DataIterator on rank 1 yielded out-of-range local index %d.", idx.Local)
		}
		count++
	}
	if count != 4 {
		t.Errorf("Expected 4 local boxes, visited %d.", count)
	}
}

func TestNeighborIteratorCompleteness(t *testing.T) {
	// A 3x3x3 lattice of boxes so the center box has a full, untrimmed
	// neighbourhood entirely inside the lattice.
	domain := geom.NewBox(geom.Zero, geom.Vect(5, 5, 5))
	dbl, err := New(domain, geom.Vect(2, 2, 2), 1, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// Global index of the lattice-center box (1,1,1) with stride (1,3,9).
	center := BoxIndex{Global: 1 + 1*3 + 1*9}

	count := 0
	it := dbl.Neighbors(center, TrimCenter)
	seen := map[int]bool{}
	for it.Next() {
		idx := it.Index()
		if seen[idx.Global] {
			t.Errorf("Neighbor %d yielded more than once.", idx.Global)
		}
		seen[idx.Global] = true
		count++
	}
	want := pow(3, geom.SpaceDim) - 1
	if count != want {
		t.Errorf("Expected %d neighbours (3^D - 1), got %d.", want, count)
	}
}

func TestNeighborIteratorTrimsFaces(t *testing.T) {
	domain := geom.NewBox(geom.Zero, geom.Vect(5, 5, 5))
	dbl, err := New(domain, geom.Vect(2, 2, 2), 1, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	center := BoxIndex{Global: 1 + 1*3 + 1*9}

	it := dbl.Neighbors(center, TrimCenter|TrimFace)
	for it.Next() {
		if it.NbrDir().L1Norm() == 1 {
			t.Errorf("Face neighbour with L1 norm 1 should have been trimmed.")
		}
	}
}

func TestPeriodicIteratorWrapsAtBoundary(t *testing.T) {
	domain := geom.NewBox(geom.Zero, geom.Vect(3, 3, 3))
	dbl, err := New(domain, geom.Vect(2, 2, 2), 1, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// Box 0 sits at lattice (0,0,0), a domain corner in every axis.
	pos := BoxIndex{Global: 0}

	found := false
	it := dbl.PeriodicNeighbors(pos, TrimCenter, PeriodicX)
	for it.Next() {
		d := it.NbrDir()
		if d == geom.Vect(-1, 0, 0) {
			found = true
			// Box 0 wraps to the box at lattice (1,0,0) along +x.
			if it.Index().Global != 1 {
				t.Errorf("Expected periodic wrap to box 1, got %d.", it.Index().Global)
			}
		}
	}
	if !found {
		t.Errorf("Expected a periodic neighbour in the -x direction.")
	}
}

func TestPeriodicIteratorSkipsUnenabledAxes(t *testing.T) {
	domain := geom.NewBox(geom.Zero, geom.Vect(3, 3, 3))
	dbl, err := New(domain, geom.Vect(2, 2, 2), 1, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	pos := BoxIndex{Global: 0}

	it := dbl.PeriodicNeighbors(pos, TrimCenter, PeriodicMask(0))
	if it.Next() {
		t.Errorf("Expected no periodic neighbours with an empty periodic mask, got one.")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	domain := geom.NewBox(geom.Zero, geom.Vect(3, 3, 3))
	dbl, err := New(domain, geom.Vect(2, 2, 2), 1, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	clone := dbl.Clone()
	if clone.Tag() == dbl.Tag() {
		t.Errorf("Expected Clone to produce an independent box table (different Tag).")
	}
	if clone.NumBoxes() != dbl.NumBoxes() {
		t.Errorf("Expected clone to have the same box count.")
	}
}
