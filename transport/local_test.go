package transport

import (
	"sync"
	"testing"
)

func TestSingleProcessSendRecv(t *testing.T) {
	tr := NewSingleProcess()
	send := []byte{1, 2, 3, 4}
	recv := make([]byte, 4)

	sreq := tr.Isend(send, 0, 42)
	rreq := tr.Irecv(recv, 0, 42)
	tr.WaitAll([]Request{sreq, rreq})

	for i := range send {
		if recv[i] != send[i] {
			t.Fatalf("Expected recv[%d] = %d, got %d.", i, send[i], recv[i])
		}
	}
}

func TestMultiRankSendRecv(t *testing.T) {
	world := NewWorld(2)
	t0, t1 := world.Rank(0), world.Rank(1)

	var wg sync.WaitGroup
	wg.Add(2)

	var recv0, recv1 [3]byte
	go func() {
		defer wg.Done()
		s := t0.Isend([]byte{7, 8, 9}, 1, 5)
		r := t0.Irecv(recv0[:], 1, 6)
		t0.WaitAll([]Request{s, r})
	}()
	go func() {
		defer wg.Done()
		s := t1.Isend([]byte{1, 2, 3}, 0, 6)
		r := t1.Irecv(recv1[:], 0, 5)
		t1.WaitAll([]Request{s, r})
	}()
	wg.Wait()

	if recv0 != [3]byte{1, 2, 3} {
		t.Errorf("Expected rank 0 to receive {1,2,3}, got %v.", recv0)
	}
	if recv1 != [3]byte{7, 8, 9} {
		t.Errorf("Expected rank 1 to receive {7,8,9}, got %v.", recv1)
	}
}

func TestWaitAnyReturnsCompletedIndex(t *testing.T) {
	tr := NewSingleProcess()
	buf := make([]byte, 1)

	slow := tr.Irecv(buf, 0, 99) // never sent: stays outstanding
	fast := tr.Isend([]byte{1}, 0, 100)

	idx := tr.WaitAny([]Request{slow, fast})
	if idx != 1 {
		t.Errorf("Expected the completed send (index 1) to win WaitAny, got %d.", idx)
	}
}

func TestReduceSum(t *testing.T) {
	world := NewWorld(4)
	var wg sync.WaitGroup
	results := make([]float64, 4)
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func(r int) {
			defer wg.Done()
			tr := world.Rank(r)
			results[r] = tr.ReduceSum(float64(r + 1))
		}(r)
	}
	wg.Wait()

	for i, got := range results {
		if got != 10 { // 1+2+3+4
			t.Errorf("Rank %d: expected reduced sum 10, got %v.", i, got)
		}
	}
}

func TestZstdRoundTrip(t *testing.T) {
	src := make([]byte, 256)
	for i := range src {
		src[i] = byte(i)
	}
	dst := make([]byte, CompressedBufSize(len(src)))
	EncodeCompressed(dst, src)

	out := make([]byte, len(src))
	DecodeCompressed(dst, out)

	for i := range src {
		if out[i] != src[i] {
			t.Fatalf("Round-trip mismatch at byte %d: got %d, want %d.", i, out[i], src[i])
		}
	}
}
