package core

import (
	"errors"
	"testing"
)

func TestBatchAppendWithinCapacity(t *testing.T) {
	b := NewBatch()

	for i := 0; i < MaxBurst; i++ {
		if err := b.Append(NewPacket([]byte{0x01})); err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
	}

	if b.Len() != MaxBurst {
		t.Errorf("Expected len %d, got %d", MaxBurst, b.Len())
	}
}

func TestBatchAppendBeyondCapacity(t *testing.T) {
	b := NewBatch()

	for i := 0; i < MaxBurst; i++ {
		if err := b.Append(NewPacket([]byte{0x01})); err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
	}

	err := b.Append(NewPacket([]byte{0x01}))
	if !errors.Is(err, ErrBatchFull) {
		t.Errorf("Expected ErrBatchFull, got %v", err)
	}
	if b.Len() != MaxBurst {
		t.Errorf("Len changed after rejected append: %d", b.Len())
	}
}

func TestBatchReset(t *testing.T) {
	b := NewBatch()
	_ = b.Append(NewPacket([]byte{0x01}))
	_ = b.Append(NewPacket([]byte{0x02}))

	b.Reset()

	if b.Len() != 0 {
		t.Errorf("Expected empty batch after reset, got len %d", b.Len())
	}
	if err := b.Append(NewPacket([]byte{0x03})); err != nil {
		t.Errorf("Append after reset failed: %v", err)
	}
}

func TestCTStateString(t *testing.T) {
	tests := []struct {
		state    CTState
		expected string
	}{
		{0, ""},
		{StateNew | StateTracked, "new|trk"},
		{StateEstablished | StateReplyDir | StateTracked, "est|rpl|trk"},
		{StateInvalid, "inv"},
		{StateNew | StateEstablished | StateRelated | StateReplyDir |
			StateInvalid | StateTracked | StateSrcNAT | StateDstNAT,
			"new|est|rel|rpl|inv|trk|snat|dnat"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("CTState(%#x).String() = %q, expected %q", uint32(tt.state), got, tt.expected)
		}
	}
}
