package core_test

import (
	"encoding/json"
	"testing"

	"github.com/NethermindEth/makimono/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint128String(t *testing.T) {
	tests := []struct {
		value core.Uint128
		dec   string
	}{
		{core.NewUint128(0, 0), "0"},
		{core.NewUint128(0, 255), "255"},
		{core.NewUint128(1, 0), "18446744073709551616"},
		{core.NewUint128(^uint64(0), ^uint64(0)), "340282366920938463463374607431768211455"},
	}
	for _, test := range tests {
		t.Run(test.dec, func(t *testing.T) {
			assert.Equal(t, test.dec, test.value.String())
		})
	}
}

func TestUint128JSON(t *testing.T) {
	u := core.NewUint128(1, 2)
	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.Equal(t, `"18446744073709551618"`, string(b))

	var got core.Uint128
	require.NoError(t, json.Unmarshal(b, &got))
	assert.True(t, u.Equal(got))

	require.NoError(t, json.Unmarshal([]byte(`"0xff"`), &got))
	assert.Equal(t, core.NewUint128(0, 255), got)

	assert.Error(t, json.Unmarshal([]byte(`"0x100000000000000000000000000000000"`), &got))
	assert.Error(t, json.Unmarshal([]byte(`12`), &got))
}

func TestUint128Bytes(t *testing.T) {
	b := core.NewUint128(1, 2).Bytes()
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 2}, b)
}
