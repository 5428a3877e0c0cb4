package tracker

import (
	"net/netip"
	"sync"

	"firestige.xyz/ctbench/internal/core"
	"firestige.xyz/ctbench/internal/core/decoder"
)

const (
	etherTypeIPv4 = 0x0800
	etherTypeIPv6 = 0x86DD

	protocolTCP = 6
	protocolUDP = 17
)

// Options configures the built-in engine.
type Options struct {
	// MaxConns caps the number of tracked connections; 0 means unlimited.
	// Packets for connections beyond the cap are classified but not
	// committed.
	MaxConns int
}

// connKey identifies a connection regardless of direction: endpoints are
// stored in a canonical order.
type connKey struct {
	zone  uint16
	proto uint8
	ipA   netip.Addr
	portA uint16
	ipB   netip.Addr
	portB uint16
}

// conn remembers which orientation created the entry so the reply direction
// can be recognized.
type conn struct {
	origSrcIP   netip.Addr
	origSrcPort uint16
}

// memEngine is a deliberately small in-memory tracker: no timeouts, no NAT,
// no TCP state machine. It exists so Execute has observable effects; real
// engines plug in behind the Engine interface.
type memEngine struct {
	opts Options

	mu      sync.Mutex
	conns   map[connKey]*conn
	dropped uint64
}

// New returns an empty in-memory engine.
func New(opts Options) Engine {
	return &memEngine{
		opts:  opts,
		conns: make(map[connKey]*conn),
	}
}

func (e *memEngine) Execute(batch *core.Batch, dlType uint16, commit bool, zone uint16) {
	if dlType != etherTypeIPv4 && dlType != etherTypeIPv6 {
		for _, pkt := range batch.Packets() {
			pkt.SetCTState(core.StateInvalid)
		}
		return
	}

	for _, pkt := range batch.Packets() {
		flow, err := decoder.Extract(pkt.Data)
		if err != nil || flow.DLType() != dlType || !connTrackable(&flow) {
			pkt.SetCTState(core.StateInvalid)
			continue
		}
		pkt.SetCTState(e.classify(&flow, commit, zone))
	}
}

// connTrackable reports whether the flow carries a transport the tracker
// understands.
func connTrackable(flow *core.Flow) bool {
	p := flow.Transport.Protocol
	return p == protocolTCP || p == protocolUDP
}

func (e *memEngine) classify(flow *core.Flow, commit bool, zone uint16) core.CTState {
	key, srcIP, srcPort := canonicalKey(flow, zone)

	e.mu.Lock()
	defer e.mu.Unlock()

	if c, ok := e.conns[key]; ok {
		state := core.StateTracked | core.StateEstablished
		if c.origSrcIP != srcIP || c.origSrcPort != srcPort {
			state |= core.StateReplyDir
		}
		return state
	}

	if commit {
		if e.opts.MaxConns > 0 && len(e.conns) >= e.opts.MaxConns {
			e.dropped++
		} else {
			e.conns[key] = &conn{origSrcIP: srcIP, origSrcPort: srcPort}
		}
	}
	return core.StateTracked | core.StateNew
}

// canonicalKey orders the endpoints so both directions of a connection map
// to the same key, and returns the packet's own source endpoint for
// direction matching.
func canonicalKey(flow *core.Flow, zone uint16) (connKey, netip.Addr, uint16) {
	srcIP, dstIP := flow.IP.SrcIP, flow.IP.DstIP
	srcPort, dstPort := flow.Transport.SrcPort, flow.Transport.DstPort

	key := connKey{
		zone:  zone,
		proto: flow.Transport.Protocol,
		ipA:   srcIP,
		portA: srcPort,
		ipB:   dstIP,
		portB: dstPort,
	}
	if cmp := srcIP.Compare(dstIP); cmp > 0 || (cmp == 0 && srcPort > dstPort) {
		key.ipA, key.ipB = dstIP, srcIP
		key.portA, key.portB = dstPort, srcPort
	}
	return key, srcIP, srcPort
}

// Len returns the number of committed connections.
func (e *memEngine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.conns)
}

// Dropped returns the number of commits rejected by the MaxConns cap.
func (e *memEngine) Dropped() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dropped
}

func (e *memEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.conns = nil
}
