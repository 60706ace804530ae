/*Package fab implements BaseFab, the contiguous per-box data buffer that
LevelData distributes one-per-box across a DisjointBoxLayout.
*/
package fab

import (
	"unsafe"

	"github.com/phil-mansfield/haloflow/geom"
	"github.com/phil-mansfield/haloflow/haloerr"
)

// Numeric constrains the scalar element type a BaseFab may hold. Only the
// element's byte size is ever specialized on; there is no virtual dispatch.
type Numeric interface {
	~int32 | ~int64 | ~float32 | ~float64
}

// ComponentFlags is a bitmask selecting a subset of a fab's components.
// AllComponents selects every component up to 64 of them, which is the
// practical ceiling for a bitmask-addressed component set.
type ComponentFlags uint64

// AllComponents selects every component regardless of ncomp.
const AllComponents ComponentFlags = ^ComponentFlags(0)

// BaseFab owns a contiguous array of size(box) x ncomp elements of T.
// Component c occupies the contiguous stride [c*size(box), (c+1)*size(box)).
// Within a component, cells are laid out in Fortran order (fastest index
// first).
type BaseFab[T Numeric] struct {
	box   geom.Box
	ncomp int
	data  []T
}

// New allocates a zero-filled BaseFab over box with ncomp components.
func New[T Numeric](box geom.Box, ncomp int) *BaseFab[T] {
	f := &BaseFab[T]{}
	f.Define(box, ncomp)
	return f
}

// NewFilled allocates a BaseFab over box with ncomp components, every cell
// initialised to fill.
func NewFilled[T Numeric](box geom.Box, ncomp int, fill T) *BaseFab[T] {
	f := &BaseFab[T]{}
	f.DefineFill(box, ncomp, fill)
	return f
}

// Define (re)allocates the fab's storage over box with ncomp components,
// zero-filled. Any previous storage is released.
func (f *BaseFab[T]) Define(box geom.Box, ncomp int) {
	f.box = box
	f.ncomp = ncomp
	f.data = make([]T, box.Size()*ncomp)
}

// DefineFill (re)allocates like Define, then fills every cell with fill.
func (f *BaseFab[T]) DefineFill(box geom.Box, ncomp int, fill T) {
	f.Define(box, ncomp)
	f.SetVal(fill)
}

// Box returns the box the fab is defined on.
func (f *BaseFab[T]) Box() geom.Box { return f.box }

// NComp returns the number of components.
func (f *BaseFab[T]) NComp() int { return f.ncomp }

// IsEmpty returns true iff the fab has never been Define'd.
func (f *BaseFab[T]) IsEmpty() bool { return f.data == nil }

// BytesPerElement returns sizeof(T), used to size Copier message buffers.
func BytesPerElement[T Numeric]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// index returns the row-Fortran linear offset of v within one component.
func (f *BaseFab[T]) index(v geom.IntVect) int {
	dims := f.box.Dimensions()
	rel := v.Sub(f.box.Lo())
	idx, stride := 0, 1
	for i := 0; i < geom.SpaceDim; i++ {
		idx += rel[i] * stride
		stride *= dims[i]
	}
	return idx
}

// At returns the value at cell v, component comp.
func (f *BaseFab[T]) At(v geom.IntVect, comp int) T {
	if !f.box.Contains(v) {
		haloerr.Internal("BaseFab.At: cell %v is not in box %v.", v, f.box)
	}
	return f.data[comp*f.box.Size()+f.index(v)]
}

// Set assigns the value at cell v, component comp.
func (f *BaseFab[T]) Set(v geom.IntVect, comp int, val T) {
	if !f.box.Contains(v) {
		haloerr.Internal("BaseFab.Set: cell %v is not in box %v.", v, f.box)
	}
	f.data[comp*f.box.Size()+f.index(v)] = val
}

// AtLinear returns the value at raw cell offset `linear` within component
// comp, where linear is a row-Fortran offset as produced by Box iteration.
func (f *BaseFab[T]) AtLinear(linear, comp int) T {
	return f.data[comp*f.box.Size()+linear]
}

// SetLinear assigns the value at raw cell offset `linear` within component
// comp.
func (f *BaseFab[T]) SetLinear(linear, comp int, val T) {
	f.data[comp*f.box.Size()+linear] = val
}

// SetVal fills every component of every cell with val.
func (f *BaseFab[T]) SetVal(val T) {
	for i := range f.data {
		f.data[i] = val
	}
}

// SetValComp fills every cell of a single component with val.
func (f *BaseFab[T]) SetValComp(comp int, val T) {
	n := f.box.Size()
	seg := f.data[comp*n : (comp+1)*n]
	for i := range seg {
		seg[i] = val
	}
}

// SetValRegion fills every cell of region, in every component, with val.
// region must be contained in the fab's box.
func (f *BaseFab[T]) SetValRegion(region geom.Box, val T) {
	if region.IsEmpty() {
		return
	}
	if !f.box.ContainsBox(region) {
		haloerr.Internal("BaseFab.SetValRegion: region %v not contained in box %v.", region, f.box)
	}
	forEachCell(region, func(v geom.IntVect) {
		for c := 0; c < f.ncomp; c++ {
			f.Set(v, c, val)
		}
	})
}

// Copy copies nComp components (selected by flags, default all bits set)
// from src's regionSrc into dst's regionDst starting at compDstStart /
// compStart respectively. regionSrc and regionDst must have equal size; the
// per-cell correspondence aligns their lower corners.
func Copy[T Numeric](
	dst *BaseFab[T], regionDst geom.Box, compDstStart int,
	src *BaseFab[T], regionSrc geom.Box, compStart int,
	nComp int, flags ComponentFlags,
) {
	if regionDst.IsEmpty() || regionSrc.IsEmpty() {
		return
	}
	if regionSrc.Size() != regionDst.Size() {
		haloerr.Internal("BaseFab.Copy: region sizes differ (%d vs %d).",
			regionSrc.Size(), regionDst.Size())
	}
	if !dst.box.ContainsBox(regionDst) {
		haloerr.Internal("BaseFab.Copy: regionDst %v not contained in dst box %v.",
			regionDst, dst.box)
	}
	if !src.box.ContainsBox(regionSrc) {
		haloerr.Internal("BaseFab.Copy: regionSrc %v not contained in src box %v.",
			regionSrc, src.box)
	}

	offset := regionDst.Lo().Sub(regionSrc.Lo())
	// dst and src may alias with overlapping regions (never true for
	// exchange callers): read the whole source region into a temporary
	// before writing, so the copy behaves as if through a temporary.
	n := regionSrc.Size()
	tmp := make([]T, n)
	for k := 0; k < nComp; k++ {
		if flags != AllComponents && flags&(1<<uint(k)) == 0 {
			continue
		}
		srcComp, dstComp := compStart+k, compDstStart+k

		i := 0
		forEachCell(regionSrc, func(v geom.IntVect) {
			tmp[i] = src.At(v, srcComp)
			i++
		})
		i = 0
		forEachCell(regionSrc, func(v geom.IntVect) {
			dst.Set(v.Add(offset), dstComp, tmp[i])
			i++
		})
	}
}

// LinearOut serialises region's cells, components [startComp, endComp)
// selected by flags (default AllComponents), into buf in component-major,
// Fortran cell order. buf must be at least (number of components flags
// selects in [startComp, endComp)) * region.Size() * sizeof(T) bytes, which
// is (endComp-startComp) * region.Size() * sizeof(T) for AllComponents;
// components flags excludes are skipped
// entirely rather than zero-filled, so callers passing a non-default flags
// must pass the same flags to the matching LinearIn.
func (f *BaseFab[T]) LinearOut(buf []byte, region geom.Box, startComp, endComp int, flags ComponentFlags) {
	if region.IsEmpty() {
		return
	}
	if !f.box.ContainsBox(region) {
		haloerr.Internal("BaseFab.LinearOut: region %v not contained in box %v.", region, f.box)
	}
	elemSize := BytesPerElement[T]()
	pos := 0
	for c := startComp; c < endComp; c++ {
		if flags != AllComponents && flags&(1<<uint(c-startComp)) == 0 {
			continue
		}
		forEachCell(region, func(v geom.IntVect) {
			val := f.At(v, c)
			b := unsafe.Slice((*byte)(unsafe.Pointer(&val)), elemSize)
			copy(buf[pos:pos+elemSize], b)
			pos += elemSize
		})
	}
}

// LinearIn is the inverse of LinearOut: it reads component-major, Fortran
// cell order data out of buf and writes it into region's cells, components
// [startComp, endComp) selected by flags.
func (f *BaseFab[T]) LinearIn(buf []byte, region geom.Box, startComp, endComp int, flags ComponentFlags) {
	if region.IsEmpty() {
		return
	}
	if !f.box.ContainsBox(region) {
		haloerr.Internal("BaseFab.LinearIn: region %v not contained in box %v.", region, f.box)
	}
	elemSize := BytesPerElement[T]()
	pos := 0
	for c := startComp; c < endComp; c++ {
		if flags != AllComponents && flags&(1<<uint(c-startComp)) == 0 {
			continue
		}
		forEachCell(region, func(v geom.IntVect) {
			var val T
			b := unsafe.Slice((*byte)(unsafe.Pointer(&val)), elemSize)
			copy(b, buf[pos:pos+elemSize])
			pos += elemSize
			f.Set(v, c, val)
		})
	}
}

// forEachCell visits every cell of region in row-Fortran order.
func forEachCell(region geom.Box, fn func(geom.IntVect)) {
	if region.IsEmpty() {
		return
	}
	lo, hi := region.Lo(), region.Hi()
	v := lo
	for {
		fn(v)
		axis := 0
		for axis < geom.SpaceDim {
			v[axis]++
			if v[axis] <= hi[axis] {
				break
			}
			v[axis] = lo[axis]
			axis++
		}
		if axis == geom.SpaceDim {
			return
		}
	}
}
