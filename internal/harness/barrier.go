package harness

import "sync"

// barrier is a reusable rendezvous point for a fixed number of
// participants. No participant passes Wait until all have arrived; the
// barrier then resets for the next phase.
type barrier struct {
	mu      sync.Mutex
	size    int
	arrived int
	release chan struct{}
}

func newBarrier(size int) *barrier {
	if size < 1 {
		panic("barrier size must be at least one")
	}
	return &barrier{size: size, release: make(chan struct{})}
}

// Wait blocks until all participants of the current phase have arrived. The
// last arrival releases everyone and opens the next phase.
func (b *barrier) Wait() {
	b.mu.Lock()
	b.arrived++
	if b.arrived == b.size {
		b.arrived = 0
		close(b.release)
		b.release = make(chan struct{})
		b.mu.Unlock()
		return
	}
	release := b.release
	b.mu.Unlock()
	<-release
}
