/*Package exchange implements the halo-exchange plan (Copier, Motion2Way) and
the engine that drives it: local memory copies plus non-blocking messages,
overlapped with computation via ExchangeBegin/ExchangeEnd.
*/
package exchange

import (
	"github.com/phil-mansfield/haloflow/fab"
	"github.com/phil-mansfield/haloflow/geom"
	"github.com/phil-mansfield/haloflow/layout"
)

// Motion2Way is one planned data movement between an ordered pair of boxes.
type Motion2Way struct {
	Local, Remote layout.BoxIndex

	// RegionRecv is the slice of the local box's grown (ghost) region that
	// Remote supplies.
	RegionRecv geom.Box
	// RegionSend is the outbound region this side sends to its remote
	// counterpart. Only populated when MessagingEnabled is set.
	RegionSend geom.Box
	// RegionSendRemote is the same cells as RegionRecv, expressed in the
	// remote box's own coordinate frame; used directly for the direct
	// memory copy when the pair is intra-process.
	RegionSendRemote geom.Box

	// SendDir is the direction, in {-1,0,+1}^D, from Local to Remote.
	SendDir geom.IntVect

	TagSend, TagRecv int

	IsLocal    bool
	RemoteRank int

	// CompFlags selects which of the Copier's [startComp,startComp+numComp)
	// components this motion actually moves. AllComponents by default.
	CompFlags fab.ComponentFlags

	sendBuf, recvBuf []byte
}

// tagFor computes 27*globalIndex + encode(dir), the tag formula spec section
// 4.5 requires: unique across the whole problem, which is stricter than the
// minimum requirement (uniqueness only among simultaneously outstanding
// messages from the same sender) but simplifies matching.
func tagFor(globalIndex int, dir geom.IntVect) int {
	return 27*globalIndex + encodeDir(dir)
}

// encodeDir packs a {-1,0,+1}^SpaceDim direction into a base-3 number in
// [0,27): (d[0]+1) + 3*(d[1]+1) + 9*(d[2]+1), with absent axes counting as 0.
func encodeDir(d geom.IntVect) int {
	code, weight := 0, 1
	for i := 0; i < geom.SpaceDim; i++ {
		code += (d[i] + 1) * weight
		weight *= 3
	}
	return code
}
