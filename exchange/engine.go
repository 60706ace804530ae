package exchange

import (
	"github.com/phil-mansfield/haloflow/fab"
	"github.com/phil-mansfield/haloflow/transport"
)

// Exchange runs c's whole plan to completion: every local motion is applied
// as a direct memory copy, every remote motion is sent and received, and the
// call blocks until all ghost cells are filled. It is exactly
// ExchangeBegin followed immediately by ExchangeEnd, offered for callers
// that have no computation to overlap with the messaging.
func (c *Copier[T]) Exchange() {
	c.ExchangeBegin()
	c.ExchangeEnd()
}

// ExchangeBegin applies every local motion immediately, then posts
// non-blocking sends and receives for every remote motion and returns
// without waiting for them. The caller may do unrelated work before calling
// ExchangeEnd to complete the exchange; a second ExchangeBegin must not be
// issued before the matching ExchangeEnd.
func (c *Copier[T]) ExchangeBegin() {
	c.doLocalCopies()
	c.pending, c.pendingMotion = c.postRemote()
}

// ExchangeEnd waits for every request ExchangeBegin posted and unpacks each
// arriving receive buffer into its destination fab's ghost region.
func (c *Copier[T]) ExchangeEnd() {
	c.drainAndUnpack(c.pending, c.pendingMotion)
	c.pending, c.pendingMotion = nil, nil
}

// doLocalCopies applies every motion whose remote box is owned by this
// process directly, via fab.Copy, without going through the Transport.
func (c *Copier[T]) doLocalCopies() {
	for _, m := range c.motions {
		if !m.IsLocal {
			continue
		}
		dst := c.ld.At(m.Local)
		src := c.ld.At(m.Remote)
		fab.Copy(dst, m.RegionRecv, c.startComp, src, m.RegionSendRemote, c.startComp, c.numComp, m.CompFlags)
	}
}

// postRemote serialises every non-local motion's outbound region into its
// send buffer, posts the matching Isend/Irecv pair, and returns the flat
// request list together with a parallel slice mapping each slot back to its
// motion index. Requests are stored [send0, recv0, send1, recv1, ...]; a
// slot's parity identifies whether it is the send or the receive half of its
// pair, since only the receive half needs unpacking once it completes.
func (c *Copier[T]) postRemote() ([]transport.Request, []int) {
	n := 0
	for _, m := range c.motions {
		if !m.IsLocal {
			n++
		}
	}
	if n == 0 {
		return nil, nil
	}

	reqs := make([]transport.Request, 0, 2*n)
	slotMotion := make([]int, 0, 2*n)

	for i, m := range c.motions {
		if m.IsLocal {
			continue
		}
		srcFab := c.ld.At(m.Local)
		if c.useCompression {
			raw := make([]byte, c.bytesPerCell*m.RegionSend.Size())
			srcFab.LinearOut(raw, m.RegionSend, c.startComp, c.startComp+c.numComp, m.CompFlags)
			transport.EncodeCompressed(m.sendBuf, raw)
		} else {
			srcFab.LinearOut(m.sendBuf, m.RegionSend, c.startComp, c.startComp+c.numComp, m.CompFlags)
		}

		sendReq := c.tr.Isend(m.sendBuf, m.RemoteRank, m.TagSend)
		recvReq := c.tr.Irecv(m.recvBuf, m.RemoteRank, m.TagRecv)
		reqs = append(reqs, sendReq, recvReq)
		slotMotion = append(slotMotion, i, i)
	}
	return reqs, slotMotion
}

// drainAndUnpack waits for reqs per the process-wide Policy and, for each
// slot that is a receive (odd index in the [send,recv] pairing postRemote
// produces), unpacks its motion's recvBuf into the destination fab.
func (c *Copier[T]) drainAndUnpack(reqs []transport.Request, slotMotion []int) {
	if len(reqs) == 0 {
		return
	}

	switch Policy {
	case WaitAllPolicy:
		c.tr.WaitAll(reqs)
		for slot, midx := range slotMotion {
			if slot%2 == 1 {
				c.unpack(c.motions[midx])
			}
		}

	default: // WaitAnyPolicy
		active := make([]int, len(reqs))
		for i := range active {
			active[i] = i
		}
		for len(active) > 0 {
			sub := make([]transport.Request, len(active))
			for j, idx := range active {
				sub[j] = reqs[idx]
			}
			chosen := c.tr.WaitAny(sub)
			slot := active[chosen]
			active[chosen] = active[len(active)-1]
			active = active[:len(active)-1]

			if slot%2 == 1 {
				c.unpack(c.motions[slotMotion[slot]])
			}
		}
	}
}

// unpack decompresses (if enabled) and writes m's recvBuf into its
// destination fab's ghost region.
func (c *Copier[T]) unpack(m *Motion2Way) {
	dstFab := c.ld.At(m.Local)
	if c.useCompression {
		raw := make([]byte, c.bytesPerCell*m.RegionRecv.Size())
		transport.DecodeCompressed(m.recvBuf, raw)
		dstFab.LinearIn(raw, m.RegionRecv, c.startComp, c.startComp+c.numComp, m.CompFlags)
	} else {
		dstFab.LinearIn(m.recvBuf, m.RegionRecv, c.startComp, c.startComp+c.numComp, m.CompFlags)
	}
}
