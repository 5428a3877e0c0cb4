package core

// MaxBurst is the maximum number of packets one batch may hold, matching the
// burst limit of the datapath the engine models.
const MaxBurst = 32

// Batch is a bounded, ordered collection of packets. It is the unit of work
// submitted to the engine. A batch is never shared between goroutines.
type Batch struct {
	packets []*Packet
}

// NewBatch returns an empty batch with capacity MaxBurst.
func NewBatch() *Batch {
	return &Batch{packets: make([]*Packet, 0, MaxBurst)}
}

// Append adds a packet to the batch. Appending past MaxBurst is a caller
// error and is rejected with ErrBatchFull.
func (b *Batch) Append(p *Packet) error {
	if len(b.packets) >= MaxBurst {
		return ErrBatchFull
	}
	b.packets = append(b.packets, p)
	return nil
}

// Len returns the number of packets currently in the batch.
func (b *Batch) Len() int {
	return len(b.packets)
}

// Packets returns the packets in insertion order. The batch retains
// ownership; the slice must not be held across a Reset.
func (b *Batch) Packets() []*Packet {
	return b.packets
}

// Reset empties the batch, keeping its backing storage.
func (b *Batch) Reset() {
	b.packets = b.packets[:0]
}
