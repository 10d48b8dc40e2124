package core_test

import (
	"testing"

	"github.com/NethermindEth/makimono/core"
	"github.com/NethermindEth/makimono/core/coretest"
	"github.com/NethermindEth/makimono/core/felt"
	"github.com/NethermindEth/makimono/encoder/bincode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalTransactionWithReceipt(t *testing.T) {
	f := coretest.FeltN
	sig := []felt.Felt{f(0x51), f(0x52)}
	calldata := []felt.Felt{f(0xca11)}
	v3 := core.V3Fields{
		ResourceBounds: core.ResourceBoundsMapping{
			L1Gas:     core.ResourceBounds{MaxAmount: 10, MaxPricePerUnit: core.NewUint128(0, 11)},
			L2Gas:     core.ResourceBounds{MaxAmount: 12, MaxPricePerUnit: core.NewUint128(1, 0)},
			L1DataGas: &core.ResourceBounds{MaxAmount: 14, MaxPricePerUnit: core.NewUint128(0, 15)},
		},
		Tip:                       3,
		PaymasterData:             []felt.Felt{},
		NonceDataAvailabilityMode: core.DAModeL1,
		FeeDataAvailabilityMode:   core.DAModeL2,
	}
	hash := f(0x7777)
	common := coretest.Common(hash)

	tests := map[string]struct {
		tx       core.Transaction
		receipt  core.Receipt
		wantType core.TransactionType
		version  string
	}{
		"invoke v0": {
			tx: &core.InvokeTransactionV0{
				MaxFee: f(1), Signature: sig, ContractAddress: f(0xc0), EntryPointSelector: f(0xe9), CallData: calldata,
			},
			receipt:  &core.InvokeReceipt{ReceiptCommon: common},
			wantType: core.TxInvoke,
			version:  "0",
		},
		"invoke v1": {
			tx: &core.InvokeTransactionV1{
				SenderAddress: f(0x5e), CallData: calldata, MaxFee: f(1), Signature: sig, Nonce: f(9),
			},
			receipt:  &core.InvokeReceipt{ReceiptCommon: common},
			wantType: core.TxInvoke,
			version:  "1",
		},
		"invoke v3": {
			tx: &core.InvokeTransactionV3{
				SenderAddress: f(0x5e), CallData: calldata, Signature: sig, Nonce: f(9),
				AccountDeploymentData: []felt.Felt{f(0xad)}, V3Fields: v3,
			},
			receipt:  &core.InvokeReceipt{ReceiptCommon: common},
			wantType: core.TxInvoke,
			version:  "3",
		},
		"l1 handler": {
			tx: &core.L1HandlerTransaction{
				TxVersion: felt.Zero, Nonce: 1234, ContractAddress: f(0xc0), EntryPointSelector: f(0xe9), CallData: calldata,
			},
			receipt:  &core.L1HandlerReceipt{MessageHash: [32]byte{31: 0x99}, ReceiptCommon: common},
			wantType: core.TxL1Handler,
			version:  "0x00",
		},
		"declare v0": {
			tx:       &core.DeclareTransactionV0{SenderAddress: f(0x5e), MaxFee: f(1), Signature: sig, ClassHash: f(0xc1a5)},
			receipt:  &core.DeclareReceipt{ReceiptCommon: common},
			wantType: core.TxDeclare,
			version:  "0",
		},
		"declare v1": {
			tx: &core.DeclareTransactionV1{
				SenderAddress: f(0x5e), MaxFee: f(1), Signature: sig, Nonce: f(2), ClassHash: f(0xc1a5),
			},
			receipt:  &core.DeclareReceipt{ReceiptCommon: common},
			wantType: core.TxDeclare,
			version:  "1",
		},
		"declare v2": {
			tx: &core.DeclareTransactionV2{
				SenderAddress: f(0x5e), CompiledClassHash: f(0xcc), MaxFee: f(1), Signature: sig, Nonce: f(2), ClassHash: f(0xc1a5),
			},
			receipt:  &core.DeclareReceipt{ReceiptCommon: common},
			wantType: core.TxDeclare,
			version:  "2",
		},
		"declare v3": {
			tx: &core.DeclareTransactionV3{
				SenderAddress: f(0x5e), CompiledClassHash: f(0xcc), Signature: sig, Nonce: f(2), ClassHash: f(0xc1a5),
				AccountDeploymentData: []felt.Felt{}, V3Fields: v3,
			},
			receipt:  &core.DeclareReceipt{ReceiptCommon: common},
			wantType: core.TxDeclare,
			version:  "3",
		},
		"deploy": {
			tx: &core.DeployTransaction{
				TxVersion: f(1), ClassHash: f(0xc1a5), ContractAddressSalt: f(0x5a17), ConstructorCallData: calldata,
			},
			receipt:  &core.DeployReceipt{ReceiptCommon: common, ContractAddress: f(0xdead)},
			wantType: core.TxDeploy,
			version:  "0x01",
		},
		"deploy account v1": {
			tx: &core.DeployAccountTransactionV1{
				MaxFee: f(1), Signature: sig, Nonce: f(0), ContractAddressSalt: f(0x5a17), ConstructorCallData: calldata, ClassHash: f(0xc1a5),
			},
			receipt:  &core.DeployAccountReceipt{ReceiptCommon: common, ContractAddress: f(0xbeef)},
			wantType: core.TxDeployAccount,
			version:  "1",
		},
		"deploy account v3": {
			tx: &core.DeployAccountTransactionV3{
				Signature: sig, Nonce: f(0), ContractAddressSalt: f(0x5a17), ConstructorCallData: calldata, ClassHash: f(0xc1a5),
				V3Fields: v3,
			},
			receipt:  &core.DeployAccountReceipt{ReceiptCommon: common, ContractAddress: f(0xbeef)},
			wantType: core.TxDeployAccount,
			version:  "3",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := core.UnmarshalTransactionWithReceipt(coretest.EncodeTransactionWithReceipt(test.tx, test.receipt))
			require.NoError(t, err)

			assert.Equal(t, test.tx, got.Transaction)
			assert.Equal(t, test.receipt, got.Receipt)
			assert.Equal(t, test.wantType, got.Transaction.Type())
			assert.Equal(t, test.wantType, got.Receipt.Type())
			assert.Equal(t, test.version, got.Transaction.Version())
			assert.Equal(t, hash, got.Receipt.Common().TransactionHash)
		})
	}
}

func TestReceiptExecutionResult(t *testing.T) {
	common := coretest.Common(coretest.FeltN(1))
	common.ExecutionResult = core.ExecutionResult{Status: core.Reverted, RevertReason: "out of gas"}
	tx := &core.InvokeTransactionV1{SenderAddress: coretest.FeltN(2)}

	got, err := core.UnmarshalTransactionWithReceipt(
		coretest.EncodeTransactionWithReceipt(tx, &core.InvokeReceipt{ReceiptCommon: common}))
	require.NoError(t, err)

	result := got.Receipt.Common().ExecutionResult
	assert.Equal(t, core.Reverted, result.Status)
	assert.Equal(t, "REVERTED", result.Status.String())
	assert.Equal(t, "out of gas", result.RevertReason)
	assert.Equal(t, "FRI", got.Receipt.Common().ActualFee.Unit.String())
}

func TestUnmarshalTransactionWithReceiptErrors(t *testing.T) {
	t.Run("unknown transaction kind", func(t *testing.T) {
		_, err := core.UnmarshalTransactionWithReceipt(bincode.NewEncoder().Variant(5).Bytes())
		require.ErrorIs(t, err, bincode.ErrUnknownVariant)
		assert.ErrorContains(t, err, "Transaction variant 5")
	})

	t.Run("unknown invoke version", func(t *testing.T) {
		_, err := core.UnmarshalTransactionWithReceipt(bincode.NewEncoder().Variant(0).Variant(3).Bytes())
		require.ErrorIs(t, err, bincode.ErrUnknownVariant)
	})

	t.Run("missing receipt", func(t *testing.T) {
		b := coretest.EncodeTransactionWithReceipt(
			&core.DeployTransaction{}, &core.DeployReceipt{})
		_, err := core.UnmarshalTransactionWithReceipt(b[:40])
		require.Error(t, err)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := core.UnmarshalTransactionWithReceipt(nil)
		require.ErrorIs(t, err, bincode.ErrUnexpectedEOF)
	})
}
