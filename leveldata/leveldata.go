/*Package leveldata implements LevelData, the distributed container that
holds one BaseFab per locally-owned box of a DisjointBoxLayout.
*/
package leveldata

import (
	"github.com/phil-mansfield/haloflow/fab"
	"github.com/phil-mansfield/haloflow/haloerr"
	"github.com/phil-mansfield/haloflow/layout"
)

// LevelData holds one BaseFab per box locally owned by dbl, each defined on
// dbl's box grown by nghost, with ncomp components. Its lifecycle is bound
// to its DBL: LevelData is not copyable and not move-assignable once
// defined, because outstanding Copier plans reference its BaseFabs'
// storage identity.
type LevelData[T fab.Numeric] struct {
	dbl    *layout.DBL
	ncomp  int
	nghost int
	fabs   []*fab.BaseFab[T]
}

// New allocates a LevelData over dbl: one BaseFab per locally-owned box,
// each on dbl's box grown by nghost, with ncomp components.
func New[T fab.Numeric](dbl *layout.DBL, ncomp, nghost int) *LevelData[T] {
	ld := &LevelData[T]{dbl: dbl, ncomp: ncomp, nghost: nghost}
	ld.fabs = make([]*fab.BaseFab[T], dbl.NumLocalBoxes())
	it := dbl.DataIter()
	for it.Next() {
		grown := it.Box().Grow(nghost)
		ld.fabs[it.Index().Local] = fab.New[T](grown, ncomp)
	}
	return ld
}

// DBL returns the layout this LevelData is distributed over.
func (ld *LevelData[T]) DBL() *layout.DBL { return ld.dbl }

// NComp returns the number of components per cell.
func (ld *LevelData[T]) NComp() int { return ld.ncomp }

// NGhost returns the ghost radius each local fab was grown by.
func (ld *LevelData[T]) NGhost() int { return ld.nghost }

// checkLocal validates that idx.Local names one of ld's local fabs. A
// BoxIndex carries no DBL identity, so an index derived from a different DBL
// is not detected.
func (ld *LevelData[T]) checkLocal(idx layout.BoxIndex) {
	if idx.Local < 0 || idx.Local >= len(ld.fabs) {
		haloerr.Internal(
			"LevelData: BoxIndex{Global:%d,Local:%d} does not name a box locally owned by this process.",
			idx.Global, idx.Local)
	}
}

// At returns the local BaseFab for idx. idx must name a locally-owned box;
// indexing with a non-local BoxIndex is a programming error.
func (ld *LevelData[T]) At(idx layout.BoxIndex) *fab.BaseFab[T] {
	ld.checkLocal(idx)
	return ld.fabs[idx.Local]
}

// AtLocal returns the local BaseFab at local index i directly, bypassing
// BoxIndex validation. Used by DataIterator-driven loops that already know
// they hold a local index.
func (ld *LevelData[T]) AtLocal(i int) *fab.BaseFab[T] { return ld.fabs[i] }

// SetVal fills every component of every cell of every local fab with val.
func (ld *LevelData[T]) SetVal(val T) {
	for _, f := range ld.fabs {
		f.SetVal(val)
	}
}

// SetValComp fills every cell of the given component of every local fab
// with val.
func (ld *LevelData[T]) SetValComp(comp int, val T) {
	for _, f := range ld.fabs {
		f.SetValComp(comp, val)
	}
}
