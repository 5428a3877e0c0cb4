// Package core defines core data structures with zero external dependencies.
package core

import "time"

// Packet is one network frame plus the connection-tracking metadata the
// engine attaches to it. The batch that holds a packet owns it; ownership
// transfers into the engine only for the duration of an Execute call.
type Packet struct {
	Data      []byte    // Raw frame data
	Timestamp time.Time // Capture timestamp (zero for synthetic packets)
	OrigLen   uint32    // Original frame length

	ctState CTState
}

// NewPacket wraps a raw frame. The caller must not reuse data afterwards.
func NewPacket(data []byte) *Packet {
	return &Packet{Data: data, OrigLen: uint32(len(data))}
}

// CTState returns the classification state assigned by the last engine pass.
func (p *Packet) CTState() CTState {
	return p.ctState
}

// SetCTState replaces the packet's classification state. Called by the
// engine as a side effect of Execute.
func (p *Packet) SetCTState(s CTState) {
	p.ctState = s
}
