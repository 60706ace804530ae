/*Package transport defines the message-passing substrate the exchange
engine drives: non-blocking two-sided sends/receives, wait-any/wait-all
completion draining, a global sum reduction, and process lifecycle.
local.go provides an in-memory implementation satisfying the contract for
single- and multi-rank testing without a real MPI installation; a real MPI
binding is available under the haloflow_mpi build tag (see mpi_cgo.go).
*/
package transport

// Request is a handle to one outstanding non-blocking Isend or Irecv.
type Request interface {
	// Wait blocks until the operation completes.
	Wait()
	// Test reports whether the operation has already completed, without
	// blocking.
	Test() bool
}

// Transport is the message-passing contract the exchange engine requires.
// Any substrate exposing these semantics — including a single-process
// in-memory stub for P=1 — satisfies it.
type Transport interface {
	// Init performs one-time, process-wide transport startup. Must be
	// called exactly once before any other Transport method.
	Init() error
	// Finalize performs one-time, process-wide transport shutdown. No
	// Transport methods may be called afterward.
	Finalize()

	// Size returns the number of processes in the transport's world.
	Size() int
	// Rank returns this process's rank, 0 <= Rank() < Size().
	Rank() int

	// Isend posts a non-blocking send of buf to peer, tagged tag. buf must
	// not be modified until the returned Request completes.
	Isend(buf []byte, peer, tag int) Request
	// Irecv posts a non-blocking receive of len(buf) bytes from peer,
	// tagged tag, into buf. buf must not be read until the returned
	// Request completes.
	Irecv(buf []byte, peer, tag int) Request

	// WaitAny blocks until at least one of reqs completes and returns its
	// index. Panics if reqs is empty.
	WaitAny(reqs []Request) int
	// WaitAll blocks until every request in reqs has completed.
	WaitAll(reqs []Request)

	// ReduceSum performs a global sum reduction of local across every
	// process and returns the result to all of them.
	ReduceSum(local float64) float64
}
