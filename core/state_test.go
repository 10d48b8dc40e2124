package core_test

import (
	"testing"

	"github.com/NethermindEth/makimono/core"
	"github.com/NethermindEth/makimono/core/coretest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalTxLocation(t *testing.T) {
	loc := core.TxLocation{BlockNumber: 70_000, Index: 300}
	b := coretest.EncodeTxLocation(loc)
	// u32 marker + 4 bytes, u16 marker + 2 bytes
	assert.Equal(t, []byte{252, 0x70, 0x11, 0x01, 0x00, 251, 0x2c, 0x01}, b)

	got, err := core.UnmarshalTxLocation(b)
	require.NoError(t, err)
	assert.Equal(t, loc, got)

	_, err = core.UnmarshalTxLocation(b[:5])
	require.Error(t, err)
}

func TestUnmarshalFelt(t *testing.T) {
	f := coretest.FeltN(0xabcdef)
	got, err := core.UnmarshalFelt(coretest.EncodeFelt(f))
	require.NoError(t, err)
	assert.Equal(t, f, got)

	t.Run("short buffer is left padded", func(t *testing.T) {
		got, err := core.UnmarshalFelt([]byte{2, 0x01, 0x02})
		require.NoError(t, err)
		assert.Equal(t, coretest.FeltN(0x0102), got)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		_, err := core.UnmarshalFelt([]byte{1, 0x01, 0x00})
		require.Error(t, err)
	})
}

func TestUnmarshalNonce(t *testing.T) {
	for _, nonce := range []uint64{0, 250, 251, 1 << 40} {
		got, err := core.UnmarshalNonce(coretest.EncodeNonce(nonce))
		require.NoError(t, err)
		assert.Equal(t, nonce, got)
	}

	_, err := core.UnmarshalNonce(nil)
	require.Error(t, err)
}
