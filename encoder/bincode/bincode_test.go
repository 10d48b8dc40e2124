package bincode_test

import (
	"testing"

	"github.com/NethermindEth/makimono/encoder/bincode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarint(t *testing.T) {
	tests := map[string]struct {
		value   uint64
		encoded []byte
	}{
		"single byte":   {value: 250, encoded: []byte{250}},
		"u16 marker":    {value: 251, encoded: []byte{251, 251, 0}},
		"u16 max":       {value: 0xffff, encoded: []byte{251, 0xff, 0xff}},
		"u32 marker":    {value: 0x10000, encoded: []byte{252, 0, 0, 1, 0}},
		"u64 marker":    {value: 1 << 32, encoded: []byte{253, 0, 0, 0, 0, 1, 0, 0, 0}},
		"zero":          {value: 0, encoded: []byte{0}},
		"little endian": {value: 0x0102, encoded: []byte{251, 0x02, 0x01}},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.encoded, bincode.NewEncoder().U64(test.value).Bytes())

			v, err := bincode.Unmarshal(test.encoded, (*bincode.Decoder).U64)
			require.NoError(t, err)
			assert.Equal(t, test.value, v)
		})
	}
}

func TestVarintRange(t *testing.T) {
	t.Run("u16 rejects u32 marker", func(t *testing.T) {
		_, err := bincode.Unmarshal([]byte{252, 0, 0, 1, 0}, (*bincode.Decoder).U16)
		require.ErrorIs(t, err, bincode.ErrOutOfRange)
	})

	t.Run("u64 rejects u128 marker", func(t *testing.T) {
		in := append([]byte{254}, make([]byte, 16)...)
		_, err := bincode.Unmarshal(in, (*bincode.Decoder).U64)
		require.ErrorIs(t, err, bincode.ErrOutOfRange)
	})

	t.Run("255 marker is invalid", func(t *testing.T) {
		_, err := bincode.Unmarshal([]byte{255}, (*bincode.Decoder).U64)
		require.ErrorIs(t, err, bincode.ErrInvalidVarint)
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, err := bincode.Unmarshal([]byte{253, 1, 2}, (*bincode.Decoder).U64)
		require.ErrorIs(t, err, bincode.ErrUnexpectedEOF)
	})
}

func TestU128(t *testing.T) {
	enc := bincode.NewEncoder().U128(1, 2).Bytes()
	require.Len(t, enc, 17)
	assert.Equal(t, byte(254), enc[0])

	d := bincode.NewDecoder(enc)
	hi, lo := d.U128()
	require.NoError(t, d.Finish())
	assert.Equal(t, uint64(1), hi)
	assert.Equal(t, uint64(2), lo)

	d = bincode.NewDecoder([]byte{7})
	hi, lo = d.U128()
	require.NoError(t, d.Finish())
	assert.Equal(t, uint64(0), hi)
	assert.Equal(t, uint64(7), lo)
}

func TestBytesAndStrings(t *testing.T) {
	enc := bincode.NewEncoder().
		ByteBuf([]byte{0xde, 0xad}).
		Text("reverted").
		ByteBufs([][]byte{{1}, {2, 3}}).
		Fixed([]byte{9, 9, 9, 9}).
		Bytes()

	d := bincode.NewDecoder(enc)
	assert.Equal(t, []byte{0xde, 0xad}, d.Bytes())
	assert.Equal(t, "reverted", d.Text())
	assert.Equal(t, [][]byte{{1}, {2, 3}}, d.BytesSlice())
	assert.Equal(t, []byte{9, 9, 9, 9}, d.Fixed(4))
	require.NoError(t, d.Finish())

	t.Run("length beyond input", func(t *testing.T) {
		d := bincode.NewDecoder([]byte{200, 1, 2})
		assert.Nil(t, d.Bytes())
		require.ErrorIs(t, d.Err(), bincode.ErrLengthTooLarge)
	})

	t.Run("invalid utf-8", func(t *testing.T) {
		d := bincode.NewDecoder([]byte{1, 0xff})
		assert.Empty(t, d.Text())
		require.ErrorIs(t, d.Err(), bincode.ErrInvalidUTF8)
	})
}

func TestOption(t *testing.T) {
	d := bincode.NewDecoder([]byte{0, 1, 42, 2})
	assert.False(t, d.Option())
	assert.True(t, d.Option())
	assert.Equal(t, uint64(42), d.U64())
	assert.False(t, d.Option())
	require.ErrorIs(t, d.Err(), bincode.ErrInvalidOption)
}

func TestFinish(t *testing.T) {
	_, err := bincode.Unmarshal([]byte{1, 2}, (*bincode.Decoder).U64)
	require.ErrorIs(t, err, bincode.ErrTrailingBytes)

	t.Run("sticky error", func(t *testing.T) {
		d := bincode.NewDecoder(nil)
		d.U8()
		offset := d.Offset()
		d.U64()
		assert.Equal(t, offset, d.Offset())
		require.ErrorIs(t, d.Finish(), bincode.ErrUnexpectedEOF)
	})
}

func TestSeq(t *testing.T) {
	enc := bincode.NewEncoder().Len(3).U64(1).U64(300).U64(2).Bytes()
	got, err := bincode.Unmarshal(enc, func(d *bincode.Decoder) []uint64 {
		return bincode.Seq(d, (*bincode.Decoder).U64)
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 300, 2}, got)
}

func TestUnknownVariant(t *testing.T) {
	d := bincode.NewDecoder([]byte{7})
	if idx := d.Variant(); idx > 1 {
		d.UnknownVariant("PriceUnit", idx)
	}
	require.ErrorIs(t, d.Finish(), bincode.ErrUnknownVariant)
}
