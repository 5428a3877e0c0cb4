// Package tracker defines the connection-tracking engine boundary consumed
// by the harness, plus a small built-in in-memory engine.
package tracker

import "firestige.xyz/ctbench/internal/core"

// Engine is the classification engine the harness drives. Implementations
// must be safe for concurrent Execute calls; the harness shares one Engine
// across all benchmark workers.
type Engine interface {
	// Execute classifies every packet in the batch against dlType's protocol
	// family, mutating each packet's CTState. All packets in one batch must
	// share dlType. With commit set, resulting state is retained for future
	// submissions; without it the pass is speculative.
	Execute(batch *core.Batch, dlType uint16, commit bool, zone uint16)

	// Close releases all tracking state. Must not be called while Execute
	// calls are in flight.
	Close()
}
