package reader_test

import (
	"encoding/json"
	"testing"

	"github.com/NethermindEth/makimono/core"
	"github.com/NethermindEth/makimono/core/coretest"
	"github.com/NethermindEth/makimono/core/felt"
	"github.com/NethermindEth/makimono/db"
	"github.com/NethermindEth/makimono/reader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classContent() records {
	f := coretest.FeltN
	compiled := f(0xcc)
	sierra := &core.ClassInfo{
		Class: &core.SierraClass{
			Program:         []felt.Felt{f(1), f(2), f(3)},
			ContractVersion: "0.1.0",
			EntryPoints: core.SierraEntryPointsByType{
				External:  []core.SierraEntryPoint{{Selector: f(0x5e1), Index: 0}, {Selector: f(0x5e2), Index: 1}},
				L1Handler: []core.SierraEntryPoint{{Selector: f(0x5e3), Index: 2}},
			},
			Abi: `[{"type":"function","name":"transfer"}]`,
		},
		CompiledClassHash: &compiled,
	}
	legacy := &core.ClassInfo{
		Class: &core.LegacyClass{
			Program: []byte("compressed program"),
			EntryPoints: core.LegacyEntryPointsByType{
				Constructor: []core.LegacyEntryPoint{{Offset: 10, Selector: f(0x5e4)}},
			},
			Abi: []core.LegacyAbiEntry{
				&core.LegacyAbiFunction{
					Type: "function", Name: "get", Inputs: []core.AbiParam{{Name: "key", Type: "felt"}},
					Outputs: []core.AbiOutput{{Type: "felt"}},
				},
			},
		},
	}

	return records{}.
		put(db.ClassInfo, f(0xc1).Marshal(), coretest.EncodeClassInfo(sierra)).
		put(db.ClassInfo, f(0xc2).Marshal(), coretest.EncodeClassInfo(legacy)).
		put(db.ClassInfo, f(0xc3).Marshal(), []byte{7, 0, 0}).
		put(db.ClassInfo, f(0xc4).Marshal(), []byte{}).
		put(db.ClassInfo, f(0xc5).Marshal(), []byte{0, 0xff}).
		put(db.ClassInfo, f(0xc6).Marshal()[1:], []byte{0})
}

func TestClass(t *testing.T) {
	r := newReader(t, classContent())

	tests := map[string]struct {
		hash string
		key  uint64
		want core.ClassType
	}{
		"sierra":               {hash: "0xc1", key: 0xc1, want: core.SierraClassType},
		"legacy":               {hash: "c2", key: 0xc2, want: core.LegacyClassType},
		"unknown discriminant": {hash: "0xc3", key: 0xc3, want: core.UnknownClassType},
		"body is not decoded":  {hash: "0x00c5", key: 0xc5, want: core.SierraClassType},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := r.Class(test.hash)
			require.NoError(t, err)
			assert.Equal(t, &reader.ClassInfo{
				ClassHash: coretest.FeltN(test.key).FullHex(),
				ClassType: test.want,
			}, got)
		})
	}

	t.Run("not found", func(t *testing.T) {
		for _, hash := range []string{"0xc4", "0xc7", "0xzz"} {
			_, err := r.Class(hash)
			require.ErrorIs(t, err, reader.ErrNotFound, hash)
		}
	})
}

func TestClassDetail(t *testing.T) {
	r := newReader(t, classContent())

	t.Run("sierra", func(t *testing.T) {
		got, err := r.ClassDetail("0xc1")
		require.NoError(t, err)

		compiled := coretest.FeltN(0xcc)
		assert.Equal(t, &reader.ClassDetail{
			ClassInfo: reader.ClassInfo{
				ClassHash:         coretest.FeltN(0xc1).FullHex(),
				ClassType:         core.SierraClassType,
				CompiledClassHash: &compiled,
			},
			Sierra: &reader.SierraClassDetail{
				ProgramLength:        3,
				ContractClassVersion: "0.1.0",
				EntryPoints:          reader.EntryPointCounts{External: 2, L1Handler: 1},
				Abi:                  `[{"type":"function","name":"transfer"}]`,
			},
		}, got)
	})

	t.Run("legacy", func(t *testing.T) {
		got, err := r.ClassDetail("0xc2")
		require.NoError(t, err)

		assert.Equal(t, core.LegacyClassType, got.ClassType)
		assert.Nil(t, got.CompiledClassHash)
		assert.Nil(t, got.Sierra)
		require.NotNil(t, got.Legacy)
		assert.Equal(t, len("compressed program"), got.Legacy.ProgramSize)
		assert.Equal(t, []reader.LegacyEntryPoint{{Offset: 10, Selector: coretest.FeltN(0x5e4)}},
			got.Legacy.EntryPoints.Constructor)
		assert.Empty(t, got.Legacy.EntryPoints.External)
		require.Len(t, got.Legacy.Abi, 1)
		assert.Equal(t, "get", got.Legacy.Abi[0].EntryName())

		b, err := json.Marshal(got)
		require.NoError(t, err)
		assert.Contains(t, string(b), `"class_type":"Legacy"`)
		assert.Contains(t, string(b), `"abi":[{"type":"function","name":"get","inputs":[{"name":"key","type":"felt"}],"outputs":[{"type":"felt"}]}]`)
		assert.Contains(t, string(b), `"constructor":[{"offset":10,"selector":"0x05e4"}]`)
	})

	t.Run("not found", func(t *testing.T) {
		for _, hash := range []string{"0xc7", "0xzz"} {
			_, err := r.ClassDetail(hash)
			require.ErrorIs(t, err, reader.ErrNotFound, hash)
		}
	})

	t.Run("decode failure is an error", func(t *testing.T) {
		for _, hash := range []string{"0xc3", "0xc4", "0xc5"} {
			_, err := r.ClassDetail(hash)
			require.Error(t, err, hash)
			assert.NotErrorIs(t, err, reader.ErrNotFound, hash)
		}
	})
}

func TestListClasses(t *testing.T) {
	r := newReader(t, classContent())

	got, err := r.ListClasses(10)
	require.NoError(t, err)
	assert.Equal(t, []reader.ClassInfo{
		{ClassHash: coretest.FeltN(0xc1).FullHex(), ClassType: core.SierraClassType},
		{ClassHash: coretest.FeltN(0xc2).FullHex(), ClassType: core.LegacyClassType},
		{ClassHash: coretest.FeltN(0xc3).FullHex(), ClassType: core.UnknownClassType},
		{ClassHash: coretest.FeltN(0xc4).FullHex(), ClassType: core.UnknownClassType},
		{ClassHash: coretest.FeltN(0xc5).FullHex(), ClassType: core.SierraClassType},
	}, got)

	t.Run("limit", func(t *testing.T) {
		got, err := r.ListClasses(2)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("zero limit", func(t *testing.T) {
		got, err := r.ListClasses(0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
