// Package harness drives the tracking engine: it builds synthetic traffic,
// orchestrates the multi-threaded benchmark, and replays capture files.
package harness

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"firestige.xyz/ctbench/internal/core"
	"firestige.xyz/ctbench/internal/core/decoder"
)

// packetTemplate is a single Ethernet/IPv4/UDP frame, 10.1.1.1:1 ->
// 10.1.1.2:2. Every synthetic packet starts as a copy of it.
const packetTemplate = "50540000000a50540000000908004500001c000000000011a4cd" +
	"0a0101010a0101020001000200080000"

var (
	templateFrame  []byte
	templateDLType uint16
)

func init() {
	frame, err := hex.DecodeString(packetTemplate)
	if err != nil {
		panic(err)
	}
	flow, err := decoder.Extract(frame)
	if err != nil {
		panic(err)
	}
	templateFrame = frame
	templateDLType = flow.DLType()
}

// Prepare builds a batch of n synthetic packets plus the batch's grouping
// discriminant. Every packet's UDP source port is offset by tid, so traffic
// from different workers is distinguishable without coordination. With
// change set, each packet's destination port is additionally offset by its
// index, making every packet in the batch a distinct flow; without it the
// whole batch is one flow, exercising the engine's same-flow fast path.
//
// n may be zero (an empty, harmless batch); n > core.MaxBurst is rejected.
func Prepare(n int, change bool, tid int) (*core.Batch, uint16, error) {
	if n > core.MaxBurst {
		return nil, 0, fmt.Errorf("batch size %d exceeds burst limit %d: %w",
			n, core.MaxBurst, core.ErrBatchFull)
	}

	batch := core.NewBatch()
	for i := 0; i < n; i++ {
		data := make([]byte, len(templateFrame))
		copy(data, templateFrame)

		flow, err := decoder.Extract(data)
		if err != nil {
			return nil, 0, err
		}

		src := binary.BigEndian.Uint16(flow.L4[0:2])
		binary.BigEndian.PutUint16(flow.L4[0:2], src+uint16(tid))

		if change {
			dst := binary.BigEndian.Uint16(flow.L4[2:4])
			binary.BigEndian.PutUint16(flow.L4[2:4], dst+uint16(i))
		}

		if err := batch.Append(core.NewPacket(data)); err != nil {
			return nil, 0, err
		}
	}

	return batch, templateDLType, nil
}
