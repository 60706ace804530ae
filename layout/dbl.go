/*Package layout implements DisjointBoxLayout: a process-wide, immutable
partition of a problem domain Box into equally-sized sub-boxes, one owner
process per sub-box, plus the geometric neighbour/periodic-neighbour queries
the halo-exchange Copier is built from.
*/
package layout

import (
	"fmt"

	"github.com/phil-mansfield/haloflow/geom"
	"github.com/phil-mansfield/haloflow/haloerr"
)

// TrimMask is a bitmask of codimensions excluded from neighbour enumeration.
// Bit (1<<n) trims codimension n, where n is the L1 norm of a stencil
// offset: n=0 is the box itself, n=1 a face neighbour, n=2 an edge
// neighbour, n=3 a corner neighbour (3D only).
type TrimMask uint8

const (
	TrimCenter TrimMask = 1 << 0
	TrimFace   TrimMask = 1 << 1
	TrimEdge   TrimMask = 1 << 2
	TrimCorner TrimMask = 1 << 3
)

// PeriodicMask is a bitmask of axes with periodic (wrap-around) boundary
// conditions.
type PeriodicMask uint8

const (
	PeriodicX PeriodicMask = 1 << 0
	PeriodicY PeriodicMask = 1 << 1
	PeriodicZ PeriodicMask = 1 << 2
)

// entry is one (box, owner) pair in the DBL-wide box table.
type entry struct {
	box   geom.Box
	owner int
}

// boxTable is the shared, immutable array of (box, owner) pairs. Copies of a
// DBL share a pointer to the same boxTable, so *boxTable also serves as the
// DBL's process-stable identity ("tag") for iterator/LevelData validation.
type boxTable struct {
	entries []entry
}

// DBL is an immutable partition of a problem domain Box into equally-sized
// sub-boxes assigned to processes in contiguous linear blocks.
type DBL struct {
	domain     geom.Box
	maxBoxSize geom.IntVect
	numPerAxis geom.IntVect // N: number of sub-boxes per axis
	stride     geom.IntVect
	table      *boxTable

	numProc                int
	rank                   int
	localBegin, localEnd   int
}

// New builds a DBL over domain, split into sub-boxes no larger than
// maxBoxSize per axis, distributed across numProc processes with this
// process identified by rank. It returns an UnevenPartition error if
// domain's dimensions don't divide evenly by maxBoxSize, or if the
// resulting box count doesn't divide evenly by numProc.
func New(domain geom.Box, maxBoxSize geom.IntVect, numProc, rank int) (*DBL, error) {
	dims := domain.Dimensions()
	n := dims.Div(maxBoxSize)
	if !n.Mul(maxBoxSize).Eq(dims) {
		return nil, fmt.Errorf(
			"UnevenPartition: domain dimensions %v do not divide evenly by max box size %v",
			dims, maxBoxSize)
	}
	total := n.Product()
	if numProc <= 0 || total%numProc != 0 {
		return nil, fmt.Errorf(
			"UnevenPartition: %d boxes do not divide evenly across %d processes",
			total, numProc)
	}
	if rank < 0 || rank >= numProc {
		return nil, fmt.Errorf("rank %d is out of range [0,%d)", rank, numProc)
	}

	stride := strideFor(n)
	entries := make([]entry, total)
	for k := 0; k < total; k++ {
		idx := unravel(k, n, stride)
		lo := domain.Lo().Add(idx.Mul(maxBoxSize))
		hi := lo.Add(maxBoxSize).AddScalar(-1)
		owner := (k * numProc) / total
		entries[k] = entry{geom.NewBox(lo, hi), owner}
	}

	blockSize := total / numProc
	return &DBL{
		domain:     domain,
		maxBoxSize: maxBoxSize,
		numPerAxis: n,
		stride:     stride,
		table:      &boxTable{entries},
		numProc:    numProc,
		rank:       rank,
		localBegin: rank * blockSize,
		localEnd:   (rank + 1) * blockSize,
	}, nil
}

// Clone returns a deep copy of the DBL: an independent box table but the
// same domain, partition geometry, and process assignment. Clone exists for
// tests that need an independent copy to mutate the source, since ordinary
// (shallow) copies share the box table by design.
func (d *DBL) Clone() *DBL {
	entries := make([]entry, len(d.table.entries))
	copy(entries, d.table.entries)
	clone := *d
	clone.table = &boxTable{entries}
	return &clone
}

// Tag returns a process-stable identity for this DBL's box table. Two DBLs
// (or iterators drawn from them) with equal Tag values were derived from the
// same New/Clone call and may be mixed safely; TagMismatch is a programming
// error otherwise.
func (d *DBL) Tag() interface{} { return d.table }

// Domain returns the problem domain box.
func (d *DBL) Domain() geom.Box { return d.domain }

// MaxBoxSize returns the maximum sub-box size vector.
func (d *DBL) MaxBoxSize() geom.IntVect { return d.maxBoxSize }

// NumBoxes returns the total number of sub-boxes in the layout.
func (d *DBL) NumBoxes() int { return len(d.table.entries) }

// NumProc returns the number of processes the layout is distributed across.
func (d *DBL) NumProc() int { return d.numProc }

// Rank returns this process's rank.
func (d *DBL) Rank() int { return d.rank }

// NumLocalBoxes returns the number of boxes owned by this process.
func (d *DBL) NumLocalBoxes() int { return d.localEnd - d.localBegin }

// Box returns the box at global index i.
func (d *DBL) Box(i int) geom.Box { return d.table.entries[i].box }

// Owner returns the owning process rank of the box at global index i.
func (d *DBL) Owner(i int) int { return d.table.entries[i].owner }

// GlobalToLocal returns the local index of global index i on this process,
// or -1 if i is not locally owned.
func (d *DBL) GlobalToLocal(i int) int {
	if i < d.localBegin || i >= d.localEnd {
		return -1
	}
	return i - d.localBegin
}

// LocalToGlobal returns the global index corresponding to local index i.
func (d *DBL) LocalToGlobal(i int) int { return d.localBegin + i }

// checkTag kills the process (via haloerr.Internal) if other does not share
// this DBL's box table. Nothing calls it: the iterators and LevelData do not
// check which DBL an index came from.
func (d *DBL) checkTag(other interface{}) {
	if d.Tag() != other {
		haloerr.Internal("TagMismatch: iterator was built from a different DisjointBoxLayout.")
	}
}

func strideFor(n geom.IntVect) geom.IntVect {
	var s geom.IntVect
	s[0] = 1
	for i := 1; i < geom.SpaceDim; i++ {
		s[i] = s[i-1] * n[i-1]
	}
	return s
}

// unravel converts a linear lattice index into its per-axis lattice
// coordinates, the inverse of ravel.
func unravel(k int, n, stride geom.IntVect) geom.IntVect {
	var idx geom.IntVect
	for i := 0; i < geom.SpaceDim; i++ {
		idx[i] = (k / stride[i]) % n[i]
	}
	return idx
}

// ravel converts per-axis lattice coordinates into a linear lattice index,
// the inverse of unravel. idx must already be reduced into [0,n) per axis.
func ravel(idx, stride geom.IntVect) int {
	return idx.Mul(stride).Sum()
}
