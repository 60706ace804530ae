package layout

import "github.com/phil-mansfield/haloflow/geom"

// BoxIndex names one box in a DBL-wide enumeration. Global is its position
// across the whole DBL; Local is its position within this process's owned
// range, or -1 if the box is not locally owned.
type BoxIndex struct {
	Global int
	Local  int
}

// LayoutIterator enumerates every box in a DBL across all processes, in
// increasing global-index order.
type LayoutIterator struct {
	dbl *DBL
	pos int
}

// Iter returns a LayoutIterator positioned before the first box.
func (d *DBL) Iter() *LayoutIterator {
	return &LayoutIterator{dbl: d, pos: -1}
}

// Next advances the iterator and returns false once exhausted.
func (it *LayoutIterator) Next() bool {
	it.pos++
	return it.pos < it.dbl.NumBoxes()
}

// Index returns the current BoxIndex.
func (it *LayoutIterator) Index() BoxIndex {
	return BoxIndex{Global: it.pos, Local: it.dbl.GlobalToLocal(it.pos)}
}

// Box returns the box at the iterator's current position.
func (it *LayoutIterator) Box() geom.Box { return it.dbl.Box(it.pos) }

// Owner returns the owning process of the box at the iterator's current
// position.
func (it *LayoutIterator) Owner() int { return it.dbl.Owner(it.pos) }

// DataIterator restricts LayoutIterator to this process's owned range.
type DataIterator struct {
	dbl *DBL
	pos int // global index; starts at localBegin-1
}

// DataIter returns a DataIterator positioned before this process's first
// locally-owned box.
func (d *DBL) DataIter() *DataIterator {
	return &DataIterator{dbl: d, pos: d.localBegin - 1}
}

// Next advances the iterator and returns false once exhausted.
func (it *DataIterator) Next() bool {
	it.pos++
	return it.pos < it.dbl.localEnd
}

// Index returns the current BoxIndex.
func (it *DataIterator) Index() BoxIndex {
	return BoxIndex{Global: it.pos, Local: it.pos - it.dbl.localBegin}
}

// Box returns the box at the iterator's current position.
func (it *DataIterator) Box() geom.Box { return it.dbl.Box(it.pos) }

// stencilOffsets enumerates every offset in {-1,0,1}^SpaceDim, in row-Fortran
// order, including the zero (center) offset.
func stencilOffsets() []geom.IntVect {
	offsets := make([]geom.IntVect, 0, pow(3, geom.SpaceDim))
	var v geom.IntVect
	for i := range v {
		v[i] = -1
	}
	for {
		cp := v
		offsets = append(offsets, cp)
		axis := 0
		for axis < geom.SpaceDim {
			v[axis]++
			if v[axis] <= 1 {
				break
			}
			v[axis] = -1
			axis++
		}
		if axis == geom.SpaceDim {
			return offsets
		}
	}
}

func pow(base, exp int) int {
	p := 1
	for i := 0; i < exp; i++ {
		p *= base
	}
	return p
}

// NeighborIterator enumerates the lattice-adjacent boxes of a fixed layout
// position, trimmed by codimension, and skipping offsets that fall outside
// the lattice bounds (those are the province of PeriodicIterator).
type NeighborIterator struct {
	dbl     *DBL
	center  geom.IntVect // lattice coordinates of the center box
	offsets []geom.IntVect
	trim    TrimMask

	i       int
	curDir  geom.IntVect
	curGlob int
}

// Neighbors returns a NeighborIterator over the lattice neighbours of pos,
// trimmed by trim.
func (d *DBL) Neighbors(pos BoxIndex, trim TrimMask) *NeighborIterator {
	return &NeighborIterator{
		dbl:     d,
		center:  unravel(pos.Global, d.numPerAxis, d.stride),
		offsets: stencilOffsets(),
		trim:    trim,
		i:       -1,
	}
}

// Next advances the iterator and returns false once exhausted.
func (it *NeighborIterator) Next() bool {
	for {
		it.i++
		if it.i >= len(it.offsets) {
			return false
		}
		d := it.offsets[it.i]
		n := d.L1Norm()
		if TrimMask(1<<uint(n))&it.trim != 0 {
			continue
		}
		nIdx := it.center.Add(d)
		if !inBounds(nIdx, it.dbl.numPerAxis) {
			continue
		}
		it.curDir = d
		it.curGlob = ravel(nIdx, it.dbl.stride)
		return true
	}
}

// Index returns the current neighbour's BoxIndex.
func (it *NeighborIterator) Index() BoxIndex {
	return BoxIndex{Global: it.curGlob, Local: it.dbl.GlobalToLocal(it.curGlob)}
}

// Box returns the current neighbour's box.
func (it *NeighborIterator) Box() geom.Box { return it.dbl.Box(it.curGlob) }

// NbrDir returns the stencil offset, in {-1,0,+1}^D, from the center
// position to the current neighbour.
func (it *NeighborIterator) NbrDir() geom.IntVect { return it.curDir }

func inBounds(idx, n geom.IntVect) bool {
	for i := 0; i < geom.SpaceDim; i++ {
		if idx[i] < 0 || idx[i] >= n[i] {
			return false
		}
	}
	return true
}

// PeriodicIterator enumerates the out-of-domain stencil offsets of a layout
// position, in directions enabled by a periodic mask, yielding the
// wrapped-around box on the opposite side of the domain together with the
// outward-pointing direction.
type PeriodicIterator struct {
	dbl      *DBL
	center   geom.IntVect
	offsets  []geom.IntVect
	trim     TrimMask
	periodic PeriodicMask

	i       int
	curDir  geom.IntVect
	curGlob int
}

// PeriodicNeighbors returns a PeriodicIterator over the periodic-image
// neighbours of pos.
func (d *DBL) PeriodicNeighbors(pos BoxIndex, trim TrimMask, periodic PeriodicMask) *PeriodicIterator {
	return &PeriodicIterator{
		dbl:      d,
		center:   unravel(pos.Global, d.numPerAxis, d.stride),
		offsets:  stencilOffsets(),
		trim:     trim,
		periodic: periodic,
		i:        -1,
	}
}

// axisEnabled reports whether axis is enabled in the periodic mask.
func axisEnabled(periodic PeriodicMask, axis int) bool {
	return periodic&(1<<uint(axis)) != 0
}

// Next advances the iterator and returns false once exhausted.
func (it *PeriodicIterator) Next() bool {
	n := it.dbl.numPerAxis
	for {
		it.i++
		if it.i >= len(it.offsets) {
			return false
		}
		d := it.offsets[it.i]
		l1 := d.L1Norm()
		if TrimMask(1<<uint(l1))&it.trim != 0 {
			continue
		}

		raw := it.center.Add(d)
		wrapped := raw
		anyWrap := false
		blocked := false
		for axis := 0; axis < geom.SpaceDim; axis++ {
			if raw[axis] < 0 || raw[axis] >= n[axis] {
				if !axisEnabled(it.periodic, axis) {
					blocked = true
					break
				}
				anyWrap = true
				wrapped[axis] = ((raw[axis] % n[axis]) + n[axis]) % n[axis]
			}
		}
		if blocked || !anyWrap {
			continue
		}

		it.curDir = d
		it.curGlob = ravel(wrapped, it.dbl.stride)
		return true
	}
}

// Index returns the current periodic neighbour's BoxIndex, as enumerated on
// the wrapped (opposite-side) lattice position.
func (it *PeriodicIterator) Index() BoxIndex {
	return BoxIndex{Global: it.curGlob, Local: it.dbl.GlobalToLocal(it.curGlob)}
}

// Box returns the current periodic neighbour's (unshifted) box.
func (it *PeriodicIterator) Box() geom.Box { return it.dbl.Box(it.curGlob) }

// NbrDir returns the outward-pointing stencil offset from the center
// position toward the periodic image. Callers place the periodic image by
// shifting Box() by centerBox.Lo() - Box().Lo() + NbrDir()*centerBox.Dimensions().
func (it *PeriodicIterator) NbrDir() geom.IntVect { return it.curDir }
