package diagnostics

import (
	"math"
	"testing"

	"github.com/phil-mansfield/haloflow/fab"
	"github.com/phil-mansfield/haloflow/geom"
	"github.com/phil-mansfield/haloflow/layout"
	"github.com/phil-mansfield/haloflow/leveldata"
)

func TestComponentStatsOfConstantFieldIsExact(t *testing.T) {
	box := geom.NewBox(geom.Zero, geom.Vect(3, 3, 3))
	f := fab.NewFilled[float64](box, 1, 5)

	s := ComponentStats(f, box, 0)
	if s.Mean != 5 || s.Stddev != 0 || s.N != box.Size() {
		t.Errorf("got %+v, want mean=5 stddev=0 n=%d", s, box.Size())
	}
}

func TestLevelStatsAggregatesAcrossBoxes(t *testing.T) {
	domain := geom.NewBox(geom.Zero, geom.Vect(3, 3, 1))
	dbl, err := layout.New(domain, geom.Vect(2, 2, 2), 1, 0)
	if err != nil {
		t.Fatalf("layout.New: %v", err)
	}
	ld := leveldata.New[float64](dbl, 1, 0)

	it := dbl.DataIter()
	for it.Next() {
		f := ld.At(it.Index())
		f.SetVal(float64(it.Index().Global))
	}

	s := LevelStats(ld, 0)
	if s.N != domain.Size() {
		t.Errorf("N = %d, want %d", s.N, domain.Size())
	}
	// Boxes are filled with values 0..3; mean should be 1.5.
	if math.Abs(s.Mean-1.5) > 1e-9 {
		t.Errorf("Mean = %v, want 1.5", s.Mean)
	}
}

func TestCorrelationMatrixDiagonalIsOne(t *testing.T) {
	domain := geom.NewBox(geom.Zero, geom.Vect(3, 3, 1))
	dbl, err := layout.New(domain, geom.Vect(2, 2, 2), 1, 0)
	if err != nil {
		t.Fatalf("layout.New: %v", err)
	}
	ld := leveldata.New[float64](dbl, 2, 0)

	it := dbl.DataIter()
	for it.Next() {
		f := ld.At(it.Index())
		f.SetValComp(0, float64(it.Index().Global))
		f.SetValComp(1, float64(-it.Index().Global))
	}

	corr := CorrelationMatrix(ld)
	r, c := corr.Dims()
	if r != 2 || c != 2 {
		t.Fatalf("dims = %d,%d, want 2,2", r, c)
	}
	if math.Abs(corr.At(0, 0)-1) > 1e-9 || math.Abs(corr.At(1, 1)-1) > 1e-9 {
		t.Errorf("diagonal not 1: %v, %v", corr.At(0, 0), corr.At(1, 1))
	}
	// Component 1 is the negation of component 0: perfectly anti-correlated.
	if math.Abs(corr.At(0, 1)+1) > 1e-9 {
		t.Errorf("corr(0,1) = %v, want -1", corr.At(0, 1))
	}
}

func TestPerBoxStatsLabelsEachBoxByLocation(t *testing.T) {
	domain := geom.NewBox(geom.Zero, geom.Vect(3, 3, 1))
	dbl, err := layout.New(domain, geom.Vect(2, 2, 2), 1, 0)
	if err != nil {
		t.Fatalf("layout.New: %v", err)
	}
	ld := leveldata.New[float64](dbl, 1, 0)

	it := dbl.DataIter()
	for it.Next() {
		f := ld.At(it.Index())
		f.SetVal(float64(it.Index().Global))
	}

	boxes := PerBoxStats(ld, 0)
	if len(boxes) != dbl.NumBoxes() {
		t.Fatalf("got %d box entries, want %d", len(boxes), dbl.NumBoxes())
	}
	for _, b := range boxes {
		want := dbl.Box(b.Global)
		if b.SmallEnd != want.SmallEnd() || b.BigEnd != want.BigEnd() {
			t.Errorf("box %d: corners %v..%v, want %v..%v", b.Global, b.SmallEnd, b.BigEnd, want.SmallEnd(), want.BigEnd())
		}
		if b.Center != want.Center() {
			t.Errorf("box %d: center %v, want %v", b.Global, b.Center, want.Center())
		}
		if b.Stats.Mean != float64(b.Global) {
			t.Errorf("box %d: mean %v, want %v", b.Global, b.Stats.Mean, float64(b.Global))
		}
	}
}
