package harness

import (
	"encoding/binary"
	"errors"
	"io"
	"sync"

	"github.com/google/gopacket"

	"firestige.xyz/ctbench/internal/core"
)

// submission records one Execute call seen by the fake engine.
type submission struct {
	size   int
	dlType uint16
	commit bool
	zone   uint16
}

// fakeEngine counts submissions and marks every packet tracked+new.
type fakeEngine struct {
	mu   sync.Mutex
	subs []submission
}

func (f *fakeEngine) Execute(batch *core.Batch, dlType uint16, commit bool, zone uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, submission{size: batch.Len(), dlType: dlType, commit: commit, zone: zone})
	for _, pkt := range batch.Packets() {
		pkt.SetCTState(core.StateTracked | core.StateNew)
	}
}

func (f *fakeEngine) Close() {}

func (f *fakeEngine) submissions() []submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]submission, len(f.subs))
	copy(out, f.subs)
	return out
}

var errReadBroken = errors.New("broken capture")

// memSource serves frames from memory. failAfter >= 0 injects a read error
// once that many frames have been served.
type memSource struct {
	frames    [][]byte
	idx       int
	failAfter int
}

func newMemSource(frames ...[]byte) *memSource {
	return &memSource{frames: frames, failAfter: -1}
}

func (s *memSource) ReadPacket() ([]byte, gopacket.CaptureInfo, error) {
	if s.failAfter >= 0 && s.idx == s.failAfter {
		return nil, gopacket.CaptureInfo{}, errReadBroken
	}
	if s.idx >= len(s.frames) {
		return nil, gopacket.CaptureInfo{}, io.EOF
	}
	data := s.frames[s.idx]
	s.idx++
	return data, gopacket.CaptureInfo{Length: len(data), CaptureLength: len(data)}, nil
}

func (s *memSource) Close() error { return nil }

// udpTestFrame builds an IPv4/UDP frame (discriminant 0x0800) with the given
// UDP ports between fixed hosts.
func udpTestFrame(srcPort, dstPort uint16) []byte {
	frame := make([]byte, 42)
	frame[12], frame[13] = 0x08, 0x00
	frame[14] = 0x45
	binary.BigEndian.PutUint16(frame[16:18], 28)
	frame[22] = 64
	frame[23] = 17
	copy(frame[26:30], []byte{10, 1, 1, 1})
	copy(frame[30:34], []byte{10, 1, 1, 2})
	binary.BigEndian.PutUint16(frame[34:36], srcPort)
	binary.BigEndian.PutUint16(frame[36:38], dstPort)
	binary.BigEndian.PutUint16(frame[38:40], 8)
	return frame
}

// arpTestFrame builds a stub ARP frame (discriminant 0x0806).
func arpTestFrame() []byte {
	frame := make([]byte, 42)
	frame[12], frame[13] = 0x08, 0x06
	return frame
}
