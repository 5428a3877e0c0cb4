package decoder

import (
	"encoding/binary"
	"net/netip"

	"firestige.xyz/ctbench/internal/core"
)

const (
	ipv4HeaderMinLen = 20
	ipv6HeaderLen    = 40
)

// decodeIP decodes an IPv4 or IPv6 header. Returns the header and the L4
// payload.
func decodeIP(data []byte) (core.IPHeader, []byte, error) {
	if len(data) < 1 {
		return core.IPHeader{}, nil, core.ErrPacketTooShort
	}

	switch data[0] >> 4 {
	case 4:
		return decodeIPv4(data)
	case 6:
		return decodeIPv6(data)
	default:
		return core.IPHeader{}, nil, core.ErrUnsupportedProto
	}
}

func decodeIPv4(data []byte) (core.IPHeader, []byte, error) {
	if len(data) < ipv4HeaderMinLen {
		return core.IPHeader{}, nil, core.ErrPacketTooShort
	}

	// IHL is in 32-bit words
	headerLen := int(data[0]&0x0F) * 4
	if headerLen < ipv4HeaderMinLen || len(data) < headerLen {
		return core.IPHeader{}, nil, core.ErrPacketTooShort
	}

	ip := core.IPHeader{
		Version:  4,
		TotalLen: binary.BigEndian.Uint16(data[2:4]),
		TTL:      data[8],
		Protocol: data[9],
	}

	src, ok := netip.AddrFromSlice(data[12:16])
	if !ok {
		return ip, nil, core.ErrPacketTooShort
	}
	dst, ok := netip.AddrFromSlice(data[16:20])
	if !ok {
		return ip, nil, core.ErrPacketTooShort
	}
	ip.SrcIP, ip.DstIP = src, dst

	return ip, data[headerLen:], nil
}

func decodeIPv6(data []byte) (core.IPHeader, []byte, error) {
	if len(data) < ipv6HeaderLen {
		return core.IPHeader{}, nil, core.ErrPacketTooShort
	}

	ip := core.IPHeader{
		Version:  6,
		TotalLen: uint16(ipv6HeaderLen) + binary.BigEndian.Uint16(data[4:6]),
		Protocol: data[6], // Next Header
		TTL:      data[7], // Hop Limit
	}

	src, ok := netip.AddrFromSlice(data[8:24])
	if !ok {
		return ip, nil, core.ErrPacketTooShort
	}
	dst, ok := netip.AddrFromSlice(data[24:40])
	if !ok {
		return ip, nil, core.ErrPacketTooShort
	}
	ip.SrcIP, ip.DstIP = src, dst

	// Extension headers are not walked; the tracker treats unknown next
	// headers as unsupported transports.
	return ip, data[ipv6HeaderLen:], nil
}
