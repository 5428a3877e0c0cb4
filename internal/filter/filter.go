// Package filter implements userspace BPF packet filtering. Filters compile
// a tcpdump-style expression once and then run the program in-process, so
// they work uniformly over any packet source, not just live pcap handles.
package filter

import (
	"fmt"

	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
	"golang.org/x/net/bpf"
)

// Filter decides whether a raw frame passes.
type Filter interface {
	Match(data []byte) bool
}

type bpfFilter struct {
	vm *bpf.VM
}

// Compile builds a filter from a tcpdump-style expression for Ethernet
// frames. snapLen bounds the bytes the program may inspect.
func Compile(expr string, snapLen int) (Filter, error) {
	pcapBpf, err := pcap.CompileBPFFilter(layers.LinkTypeEthernet, snapLen, expr)
	if err != nil {
		return nil, fmt.Errorf("failed to compile BPF filter: %w", err)
	}

	rawBpf := make([]bpf.RawInstruction, len(pcapBpf))
	for i, ins := range pcapBpf {
		rawBpf[i] = bpf.RawInstruction{Op: ins.Code, Jt: ins.Jt, Jf: ins.Jf, K: ins.K}
	}

	insts, allDecoded := bpf.Disassemble(rawBpf)
	if !allDecoded {
		return nil, fmt.Errorf("BPF filter %q uses unsupported instructions", expr)
	}

	vm, err := bpf.NewVM(insts)
	if err != nil {
		return nil, fmt.Errorf("failed to load BPF program: %w", err)
	}

	return &bpfFilter{vm: vm}, nil
}

// Match runs the program over the frame. A verdict of 0 bytes means drop.
func (f *bpfFilter) Match(data []byte) bool {
	n, err := f.vm.Run(data)
	return err == nil && n > 0
}
