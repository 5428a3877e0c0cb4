// Package core defines core types with zero external dependencies.
package core

import "net/netip"

// EthernetHeader represents L2 Ethernet frame header.
type EthernetHeader struct {
	SrcMAC    [6]byte
	DstMAC    [6]byte
	EtherType uint16   // 0x0800=IPv4, 0x86DD=IPv6
	VLANs     []uint16 // 0~2 VLAN IDs (QinQ scenarios have 2)
}

// IPHeader represents L3 IP header (IPv4/IPv6).
type IPHeader struct {
	Version  uint8
	SrcIP    netip.Addr // Go stdlib value type, zero allocation
	DstIP    netip.Addr
	Protocol uint8 // TCP=6, UDP=17
	TTL      uint8
	TotalLen uint16
}

// TransportHeader represents L4 transport layer header (TCP/UDP).
type TransportHeader struct {
	SrcPort  uint16
	DstPort  uint16
	Protocol uint8 // Redundant storage for convenience
	// TCP-specific fields (only populated for TCP)
	TCPFlags uint8
	SeqNum   uint32
	AckNum   uint32
}

// Flow is the result of one full protocol-field extraction pass over a
// frame. The engine keys connections on its 5-tuple; the replay grouper keys
// batches on its discriminant.
type Flow struct {
	Ethernet  EthernetHeader
	IP        IPHeader
	Transport TransportHeader

	// L4 is a zero-copy slice over the frame's transport header, so callers
	// can rewrite ports in place. Nil when decoding stopped before L4.
	L4 []byte
}

// DLType returns the grouping discriminant: the outermost non-VLAN
// EtherType. Engine submissions must be uniform in this value.
func (f *Flow) DLType() uint16 {
	return f.Ethernet.EtherType
}
