package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestige.xyz/ctbench/internal/core"
	"firestige.xyz/ctbench/internal/core/decoder"
)

func TestPrepareCountAndDiscriminant(t *testing.T) {
	batch, dlType, err := Prepare(8, false, 0)
	require.NoError(t, err)

	assert.Equal(t, 8, batch.Len())
	assert.Equal(t, uint16(0x0800), dlType)
}

func TestPrepareRejectsOversizedBatch(t *testing.T) {
	_, _, err := Prepare(core.MaxBurst+1, false, 0)
	assert.ErrorIs(t, err, core.ErrBatchFull)
}

func TestPrepareEmptyBatch(t *testing.T) {
	batch, dlType, err := Prepare(0, false, 3)
	require.NoError(t, err)

	assert.Equal(t, 0, batch.Len())
	assert.Equal(t, uint16(0x0800), dlType)
}

func TestPreparePerThreadSourceOffset(t *testing.T) {
	const t1, t2 = 2, 9

	b1, _, err := Prepare(4, false, t1)
	require.NoError(t, err)
	b2, _, err := Prepare(4, false, t2)
	require.NoError(t, err)

	for i := range b1.Packets() {
		f1, err := decoder.Extract(b1.Packets()[i].Data)
		require.NoError(t, err)
		f2, err := decoder.Extract(b2.Packets()[i].Data)
		require.NoError(t, err)

		assert.Equal(t, t2-t1, int(f2.Transport.SrcPort)-int(f1.Transport.SrcPort))
		// Without change, destination ports stay at the template value.
		assert.Equal(t, f1.Transport.DstPort, f2.Transport.DstPort)
	}
}

func TestPrepareSingleFlowWithoutChange(t *testing.T) {
	batch, _, err := Prepare(16, false, 5)
	require.NoError(t, err)

	first, err := decoder.Extract(batch.Packets()[0].Data)
	require.NoError(t, err)

	for _, pkt := range batch.Packets()[1:] {
		flow, err := decoder.Extract(pkt.Data)
		require.NoError(t, err)
		assert.Equal(t, first.Transport.SrcPort, flow.Transport.SrcPort)
		assert.Equal(t, first.Transport.DstPort, flow.Transport.DstPort)
	}
}

func TestPreparePerPacketDestinationVariation(t *testing.T) {
	const n = 16
	batch, _, err := Prepare(n, true, 0)
	require.NoError(t, err)

	seen := make(map[uint16]bool)
	var base uint16
	for i, pkt := range batch.Packets() {
		flow, err := decoder.Extract(pkt.Data)
		require.NoError(t, err)

		dst := flow.Transport.DstPort
		assert.False(t, seen[dst], "destination port %d repeated", dst)
		seen[dst] = true

		if i == 0 {
			base = dst
		} else {
			assert.Equal(t, base+uint16(i), dst)
		}
	}
}
