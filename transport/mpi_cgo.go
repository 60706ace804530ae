//go:build haloflow_mpi

package transport

// This file adapts the cgo MPI binding technique used by
// github.com/phil-mansfield/guppy's lib/mpi/mpi.go into a Transport
// implementation. It is only compiled with the haloflow_mpi build tag,
// since it requires an MPI development installation (mpicc --showme:compile
// / --showme:link determine the CFLAGS/LDFLAGS below on a given machine).

/*
#cgo LDFLAGS: -pthread -L/usr/lib/x86_64-linux-gnu/openmpi/lib -lmpi
#cgo CFLAGS: -std=gnu99 -Wall -I/usr/lib/x86_64-linux-gnu/openmpi/include/openmpi -I/usr/lib/x86_64-linux-gnu/openmpi/include -pthread
#include <mpi.h>
#include <stdlib.h>

MPI_Comm get_MPI_COMM_WORLD() {
    return (MPI_Comm)(MPI_COMM_WORLD);
}
*/
import "C"

import (
	"unsafe"
)

var commWorld C.MPI_Comm = C.get_MPI_COMM_WORLD()

// processError panics with MPI's own error string, matching lib/mpi/mpi.go's
// convention: a non-reliable transport is a programming/environment error,
// not something an exchange can recover from.
func processError(err C.int) {
	if err == 0 {
		return
	}
	buf := make([]C.char, C.MPI_MAX_ERROR_STRING)
	n := C.int(0)
	C.MPI_Error_string(err, &buf[0], &n)
	panic(C.GoString(&buf[0]))
}

// MPITransport is a Transport backed by a real MPI implementation via cgo.
type MPITransport struct {
	comm C.MPI_Comm
}

// NewMPITransport returns a Transport over MPI_COMM_WORLD. Init must still
// be called before use.
func NewMPITransport() *MPITransport {
	return &MPITransport{comm: commWorld}
}

func (t *MPITransport) Init() error {
	err := C.MPI_Init(nil, nil)
	if err != 0 {
		processError(err)
	}
	return nil
}

func (t *MPITransport) Finalize() {
	processError(C.MPI_Finalize())
}

func (t *MPITransport) Size() int {
	n := C.int(-1)
	processError(C.MPI_Comm_size(t.comm, &n))
	return int(n)
}

func (t *MPITransport) Rank() int {
	n := C.int(-1)
	processError(C.MPI_Comm_rank(t.comm, &n))
	return int(n)
}

// mpiRequest wraps an MPI_Request; Wait/Test drive MPI_Wait/MPI_Test
// directly rather than caching a completion flag, since MPI itself is the
// source of truth for request state.
type mpiRequest struct {
	req C.MPI_Request
}

func (r *mpiRequest) Wait() {
	var status C.MPI_Status
	processError(C.MPI_Wait(&r.req, &status))
}

func (r *mpiRequest) Test() bool {
	var status C.MPI_Status
	flag := C.int(0)
	processError(C.MPI_Test(&r.req, &flag, &status))
	return flag != 0
}

func (t *MPITransport) Isend(buf []byte, peer, tag int) Request {
	r := &mpiRequest{}
	processError(C.MPI_Isend(
		unsafe.Pointer(&buf[0]), C.int(len(buf)), C.MPI_BYTE,
		C.int(peer), C.int(tag), t.comm, &r.req))
	return r
}

func (t *MPITransport) Irecv(buf []byte, peer, tag int) Request {
	r := &mpiRequest{}
	processError(C.MPI_Irecv(
		unsafe.Pointer(&buf[0]), C.int(len(buf)), C.MPI_BYTE,
		C.int(peer), C.int(tag), t.comm, &r.req))
	return r
}

func (t *MPITransport) WaitAny(reqs []Request) int {
	creqs := make([]C.MPI_Request, len(reqs))
	for i, r := range reqs {
		creqs[i] = r.(*mpiRequest).req
	}
	idx := C.int(-1)
	var status C.MPI_Status
	processError(C.MPI_Waitany(C.int(len(creqs)), &creqs[0], &idx, &status))
	for i, r := range reqs {
		r.(*mpiRequest).req = creqs[i]
	}
	return int(idx)
}

func (t *MPITransport) WaitAll(reqs []Request) {
	creqs := make([]C.MPI_Request, len(reqs))
	for i, r := range reqs {
		creqs[i] = r.(*mpiRequest).req
	}
	statuses := make([]C.MPI_Status, len(reqs))
	processError(C.MPI_Waitall(C.int(len(creqs)), &creqs[0], &statuses[0]))
}

func (t *MPITransport) ReduceSum(local float64) float64 {
	in := C.double(local)
	var out C.double
	processError(C.MPI_Allreduce(
		unsafe.Pointer(&in), unsafe.Pointer(&out), 1,
		C.MPI_DOUBLE, C.MPI_SUM, t.comm))
	return float64(out)
}
