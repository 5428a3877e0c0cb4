package harness

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestBarrierHoldsUntilAllArrive(t *testing.T) {
	const workers = 8
	bar := newBarrier(workers + 1)

	var arrived atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(time.Duration(arrived.Load()) * time.Millisecond)
			arrived.Add(1)
			bar.Wait()
		}()
	}

	bar.Wait()
	// The orchestrator can only get here after every worker arrived.
	if got := arrived.Load(); got != workers {
		t.Fatalf("orchestrator released after %d of %d arrivals", got, workers)
	}
	wg.Wait()
}

func TestBarrierIsReusableAcrossPhases(t *testing.T) {
	const workers = 4
	bar := newBarrier(workers + 1)

	var phase1, phase2 atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			phase1.Add(1)
			bar.Wait()
			phase2.Add(1)
			bar.Wait()
		}()
	}

	bar.Wait()
	if got := phase1.Load(); got != workers {
		t.Fatalf("phase 1 released after %d arrivals", got)
	}

	bar.Wait()
	if got := phase2.Load(); got != workers {
		t.Fatalf("phase 2 released after %d arrivals", got)
	}
	wg.Wait()
}

func TestBarrierSizeOne(t *testing.T) {
	bar := newBarrier(1)
	done := make(chan struct{})
	go func() {
		bar.Wait()
		bar.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("single-participant barrier blocked")
	}
}
