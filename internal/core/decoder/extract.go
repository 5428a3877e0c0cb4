package decoder

import "firestige.xyz/ctbench/internal/core"

// Extract runs a full protocol-field extraction pass over one frame. The
// returned flow is filled as far as decoding got, so a caller always has the
// grouping discriminant even when an inner layer was truncated: non-IP
// frames return with only the Ethernet header set and no error, truncated
// frames return the partial flow together with the decode error.
func Extract(data []byte) (core.Flow, error) {
	var flow core.Flow

	eth, l3, err := decodeEthernet(data)
	flow.Ethernet = eth
	if err != nil {
		return flow, err
	}

	if eth.EtherType != etherTypeIPv4 && eth.EtherType != etherTypeIPv6 {
		// ARP, LLDP etc. — classification stops at L2.
		return flow, nil
	}

	ip, l4, err := decodeIP(l3)
	flow.IP = ip
	if err != nil {
		return flow, err
	}

	// Zero-copy view of the transport header; callers rewrite ports through
	// this slice.
	flow.L4 = l4

	transport, err := decodeTransport(l4, ip.Protocol)
	flow.Transport = transport
	if err != nil {
		return flow, err
	}

	return flow, nil
}
