package geom

// Box is the closed, cell-centred integer interval {x : lo <= x <= hi
// componentwise}. A Box with hi[i] < lo[i] for some i is empty.
type Box struct {
	lo, hi IntVect
}

// NewBox builds the Box [lo, hi].
func NewBox(lo, hi IntVect) Box {
	return Box{lo, hi}
}

// Lo returns the box's low corner.
func (b Box) Lo() IntVect { return b.lo }

// Hi returns the box's high corner.
func (b Box) Hi() IntVect { return b.hi }

// SmallEnd is a named alias for Lo, matching the corner-accessor naming used
// by the framework this core was distilled from.
func (b Box) SmallEnd() IntVect { return b.lo }

// BigEnd is a named alias for Hi.
func (b Box) BigEnd() IntVect { return b.hi }

// IsEmpty returns true iff hi[i] < lo[i] for some dimension i.
func (b Box) IsEmpty() bool {
	for i := 0; i < SpaceDim; i++ {
		if b.hi[i] < b.lo[i] {
			return true
		}
	}
	return false
}

// Dimensions returns hi - lo + 1, the per-axis cell counts. Meaningless
// (may contain non-positive entries) for an empty box.
func (b Box) Dimensions() IntVect {
	return b.hi.Sub(b.lo).AddScalar(1)
}

// Size returns the number of cells in the box, 0 if the box is empty.
func (b Box) Size() int {
	if b.IsEmpty() {
		return 0
	}
	return b.Dimensions().Product()
}

// Center returns the box's cell-centred midpoint, rounded toward lo.
func (b Box) Center() IntVect {
	var c IntVect
	for i := 0; i < SpaceDim; i++ {
		c[i] = b.lo[i] + (b.hi[i]-b.lo[i])/2
	}
	return c
}

// Shift returns the box translated by v.
func (b Box) Shift(v IntVect) Box {
	return Box{b.lo.Add(v), b.hi.Add(v)}
}

// Grow returns the box symmetrically widened by r in every dimension.
// Negative r shrinks the box.
func (b Box) Grow(r int) Box {
	return Box{b.lo.AddScalar(-r), b.hi.AddScalar(r)}
}

// GrowDir returns the box symmetrically widened by r along dimension dir
// only.
func (b Box) GrowDir(r, dir int) Box {
	lo, hi := b.lo, b.hi
	lo[dir] -= r
	hi[dir] += r
	return Box{lo, hi}
}

// GrowLo returns the box widened by r on the low face of dimension dir only.
// Negative r shrinks from that side.
func (b Box) GrowLo(r, dir int) Box {
	lo := b.lo
	lo[dir] -= r
	return Box{lo, b.hi}
}

// GrowHi returns the box widened by r on the high face of dimension dir
// only. Negative r shrinks from that side.
func (b Box) GrowHi(r, dir int) Box {
	hi := b.hi
	hi[dir] += r
	return Box{b.lo, hi}
}

// AdjBox returns the box of width |w| cells adjacent to the side (-1 for the
// low face, +1 for the high face) of dimension dir. If w > 0 the returned
// slab lies just outside b; if w < 0 it lies just inside b (its outermost
// interior cells). w == 0 yields an empty box.
func (b Box) AdjBox(w, dir, side int) Box {
	if w == 0 {
		return Box{Unit, Zero}
	}
	lo, hi := b.lo, b.hi
	width := w
	if width < 0 {
		width = -width
	}
	switch {
	case side > 0 && w > 0:
		lo[dir] = b.hi[dir] + 1
		hi[dir] = b.hi[dir] + width
	case side > 0 && w < 0:
		hi[dir] = b.hi[dir]
		lo[dir] = b.hi[dir] - width + 1
	case side < 0 && w > 0:
		hi[dir] = b.lo[dir] - 1
		lo[dir] = b.lo[dir] - width
	default: // side < 0 && w < 0
		lo[dir] = b.lo[dir]
		hi[dir] = b.lo[dir] + width - 1
	}
	return Box{lo, hi}
}

// Contains returns true iff v lies within the closed interval [lo, hi].
func (b Box) Contains(v IntVect) bool {
	return b.lo.LE(v) && v.LE(b.hi)
}

// ContainsBox returns true iff other is entirely contained within b. An
// empty other box is trivially contained.
func (b Box) ContainsBox(other Box) bool {
	if other.IsEmpty() {
		return true
	}
	return b.Contains(other.lo) && b.Contains(other.hi)
}

// Intersect returns the intersection of a and b: lo := max(a.lo, b.lo),
// hi := min(a.hi, b.hi). The result may be empty.
func Intersect(a, b Box) Box {
	return Box{Max(a.lo, b.lo), Min(a.hi, b.hi)}
}

// Eq returns true iff a and b describe the same interval, treating all
// empty boxes as equal to each other regardless of their corner values.
func (b Box) Eq(other Box) bool {
	if b.IsEmpty() && other.IsEmpty() {
		return true
	}
	return b.lo == other.lo && b.hi == other.hi
}

func (b Box) String() string {
	return b.lo.String() + ".." + b.hi.String()
}
