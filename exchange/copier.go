package exchange

import (
	"github.com/phil-mansfield/haloflow/fab"
	"github.com/phil-mansfield/haloflow/geom"
	"github.com/phil-mansfield/haloflow/haloerr"
	"github.com/phil-mansfield/haloflow/layout"
	"github.com/phil-mansfield/haloflow/leveldata"
	"github.com/phil-mansfield/haloflow/transport"
)

// MessagingEnabled gates whether a Copier allocates message buffers and
// prepares outbound regions for non-local motions at all. It is a
// build-time switch, not a per-call option: a single-process configuration
// that never runs under more than one rank can leave it off, in which case
// every motion the Copier plans must be local, and NewCopierRange kills the
// process (via haloerr.Internal, raised from finishMotion) if that invariant
// is violated.
var MessagingEnabled = true

// CompletionPolicy selects how ExchangeEnd (and Exchange) drains a Copier's
// outstanding requests. The policy is fixed at build time; it is not a
// per-Copier option because it reflects a property of the Transport
// implementation's scheduler, not of any one exchange.
type CompletionPolicy int

const (
	// WaitAnyPolicy unpacks each remote motion's data as soon as its own
	// receive completes, in arrival order.
	WaitAnyPolicy CompletionPolicy = iota
	// WaitAllPolicy waits for every outstanding request before unpacking
	// any of them, then unpacks in plan order.
	WaitAllPolicy
)

// Policy is the process-wide completion draining policy. See
// CompletionPolicy.
var Policy = WaitAnyPolicy

// Copier is a precomputed halo-exchange plan: the full list of Motion2Way
// data movements a LevelData's ghost cells require, bound to a Transport for
// the non-local ones. Building a Copier walks every locally-owned box's
// lattice neighbours (via layout.NeighborIterator) and periodic images (via
// layout.PeriodicIterator) exactly once; Exchange/ExchangeBegin/ExchangeEnd
// replay the resulting plan as many times as the caller likes, so long as
// the LevelData's DisjointBoxLayout has not changed.
type Copier[T fab.Numeric] struct {
	ld *leveldata.LevelData[T]
	tr transport.Transport

	startComp, numComp int
	bytesPerCell       int
	useCompression     bool

	motions []*Motion2Way

	pending       []transport.Request
	pendingMotion []int
}

// NewCopier builds a Copier moving every component of ld's ghost cells, per
// the periodic axes in periodic and the codimensions excluded by trim.
func NewCopier[T fab.Numeric](
	ld *leveldata.LevelData[T], tr transport.Transport,
	periodic layout.PeriodicMask, trim layout.TrimMask,
) *Copier[T] {
	return NewCopierRange[T](ld, tr, 0, ld.NComp(), periodic, trim)
}

// NewCopierRange builds a Copier restricted to the numComp components
// starting at startComp, for scenarios that only need to exchange a subset
// of a LevelData's components (e.g. a single freshly-updated field).
func NewCopierRange[T fab.Numeric](
	ld *leveldata.LevelData[T], tr transport.Transport,
	startComp, numComp int,
	periodic layout.PeriodicMask, trim layout.TrimMask,
) *Copier[T] {
	c := &Copier[T]{
		ld:           ld,
		tr:           tr,
		startComp:    startComp,
		numComp:      numComp,
		bytesPerCell: fab.BytesPerElement[T]() * numComp,
	}

	nghost := ld.NGhost()
	if nghost <= 0 {
		return c
	}

	dbl := ld.DBL()
	c.motions = make([]*Motion2Way, 0, predictSize(dbl.NumLocalBoxes()))

	it := dbl.DataIter()
	for it.Next() {
		L := it.Index()
		Lbox := it.Box()

		nit := dbl.Neighbors(L, trim)
		for nit.Next() {
			R := nit.Index()
			m := c.buildInteriorMotion(dbl, nghost, L, Lbox, R, nit.Box(), nit.NbrDir())
			c.motions = append(c.motions, m)
		}

		pit := dbl.PeriodicNeighbors(L, trim, periodic)
		for pit.Next() {
			R := pit.Index()
			d := pit.NbrDir()
			shiftBy := Lbox.Lo().Sub(pit.Box().Lo()).Add(d.Mul(Lbox.Dimensions()))
			Rshift := pit.Box().Shift(shiftBy)
			m := c.buildPeriodicMotion(dbl, nghost, L, Lbox, R, Rshift, shiftBy, d)
			c.motions = append(c.motions, m)
		}
	}
	return c
}

// UseCompression toggles lossless zstd wire compression (transport package)
// for this Copier's remote message buffers. Must be called before the first
// Exchange/ExchangeBegin, since it changes buffer sizing.
func (c *Copier[T]) UseCompression(on bool) {
	c.useCompression = on
	for _, m := range c.motions {
		if m.IsLocal {
			continue
		}
		rawSend := c.bytesPerCell * m.RegionSend.Size()
		rawRecv := c.bytesPerCell * m.RegionRecv.Size()
		if on {
			m.sendBuf = make([]byte, transport.CompressedBufSize(rawSend))
			m.recvBuf = make([]byte, transport.CompressedBufSize(rawRecv))
		} else {
			m.sendBuf = make([]byte, rawSend)
			m.recvBuf = make([]byte, rawRecv)
		}
	}
}

// Motions returns the Copier's planned data movements, in build order. The
// slice must not be mutated by callers other than through the exported
// per-Motion2Way fields (CompFlags) intended for tuning.
func (c *Copier[T]) Motions() []*Motion2Way { return c.motions }

// CopierStats summarises a built plan, for tuning box sizes and reporting
// (cmd/haloctl exchange bench).
type CopierStats struct {
	LocalMotions  int
	RemoteMotions int
	SendBytes     int
	RecvBytes     int
}

// Stats returns a summary of c's plan: how many motions are local memory
// copies versus messages, and the total bytes buffered for the remote ones.
func (c *Copier[T]) Stats() CopierStats {
	var s CopierStats
	for _, m := range c.motions {
		if m.IsLocal {
			s.LocalMotions++
			continue
		}
		s.RemoteMotions++
		s.SendBytes += len(m.sendBuf)
		s.RecvBytes += len(m.recvBuf)
	}
	return s
}

func (c *Copier[T]) buildInteriorMotion(
	dbl *layout.DBL, nghost int,
	L layout.BoxIndex, Lbox geom.Box, R layout.BoxIndex, Rbox geom.Box, d geom.IntVect,
) *Motion2Way {
	regionRecv := geom.Intersect(Lbox.Grow(nghost), Rbox)
	var regionSend geom.Box
	if MessagingEnabled {
		regionSend = geom.Intersect(Lbox, Rbox.Grow(nghost))
	}
	regionSendRemote := regionRecv
	return c.finishMotion(dbl, L, R, regionRecv, regionSend, regionSendRemote, d)
}

func (c *Copier[T]) buildPeriodicMotion(
	dbl *layout.DBL, nghost int,
	L layout.BoxIndex, Lbox geom.Box, R layout.BoxIndex, Rshift geom.Box, shiftBy, d geom.IntVect,
) *Motion2Way {
	regionRecv := geom.Intersect(Lbox.Grow(nghost), Rshift)
	var regionSend geom.Box
	if MessagingEnabled {
		regionSend = geom.Intersect(Lbox, Rshift.Grow(nghost))
	}
	regionSendRemote := regionRecv.Shift(shiftBy.Neg())
	return c.finishMotion(dbl, L, R, regionRecv, regionSend, regionSendRemote, d)
}

func (c *Copier[T]) finishMotion(
	dbl *layout.DBL, L, R layout.BoxIndex,
	regionRecv, regionSend, regionSendRemote geom.Box, d geom.IntVect,
) *Motion2Way {
	isLocal := dbl.Owner(R.Global) == dbl.Rank()
	m := &Motion2Way{
		Local: L, Remote: R,
		RegionRecv: regionRecv, RegionSend: regionSend, RegionSendRemote: regionSendRemote,
		SendDir:    d,
		TagSend:    tagFor(L.Global, d),
		TagRecv:    tagFor(R.Global, d.Neg()),
		IsLocal:    isLocal,
		RemoteRank: dbl.Owner(R.Global),
		CompFlags:  fab.AllComponents,
	}
	if !isLocal {
		if !MessagingEnabled {
			haloerr.Internal("exchange: non-local motion planned with MessagingEnabled == false")
		}
		rawSend := c.bytesPerCell * regionSend.Size()
		rawRecv := c.bytesPerCell * regionRecv.Size()
		m.sendBuf = make([]byte, rawSend)
		m.recvBuf = make([]byte, rawRecv)
	}
	return m
}

// predictSize estimates the number of motions a DBL with localBoxes locally
// owned boxes will produce, so the plan slice can be pre-reserved instead of
// grown incrementally. It need not be exact: interior and periodic
// candidates both draw from the same 3^SpaceDim-1 stencil, so twice that
// count per local box is a safe, cheap upper bound.
func predictSize(localBoxes int) int {
	stencil := 1
	for i := 0; i < geom.SpaceDim; i++ {
		stencil *= 3
	}
	return localBoxes * (stencil - 1) * 2
}
