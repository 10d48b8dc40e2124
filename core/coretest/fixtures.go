package coretest

import (
	"github.com/NethermindEth/makimono/core"
	"github.com/NethermindEth/makimono/core/felt"
)

// FeltN returns a felt holding the big-endian value n.
func FeltN(n uint64) felt.Felt {
	var f felt.Felt
	for i := felt.Bytes - 1; n > 0; i-- {
		f[i] = byte(n)
		n >>= 8
	}
	return f
}

// Block returns a populated block record for height n.
func Block(n uint64, txHashes ...felt.Felt) *core.BlockInfo {
	diffLen := uint64(7)
	diffCommitment := FeltN(0xd1ff)
	return &core.BlockInfo{
		Header: core.Header{
			ParentHash:            FeltN(0xb0000 + n - 1),
			Number:                n,
			GlobalStateRoot:       FeltN(0x5700),
			SequencerAddress:      FeltN(0x5e9),
			Timestamp:             1_700_000_000 + n,
			TransactionCount:      uint64(len(txHashes)),
			TransactionCommitment: FeltN(0xc0),
			EventCount:            2,
			EventCommitment:       FeltN(0xe0),
			StateDiffLength:       &diffLen,
			StateDiffCommitment:   &diffCommitment,
			ProtocolVersion:       core.StarknetVersion{0, 13, 2, 0},
			GasPrices: core.GasPrices{
				ETHL1GasPrice:      core.NewUint128(0, 1000),
				STRKL1GasPrice:     core.NewUint128(0, 2000),
				ETHL1DataGasPrice:  core.NewUint128(0, 10),
				STRKL1DataGasPrice: core.NewUint128(0, 20),
				ETHL2GasPrice:      core.NewUint128(0, 1),
				STRKL2GasPrice:     core.NewUint128(0, 2),
			},
			L1DAMode: core.Blob,
		},
		Hash:           FeltN(0xb0000 + n),
		TotalL2GasUsed: core.NewUint128(0, 12345),
		TxHashes:       txHashes,
	}
}

// InvokeReceipt returns a successful invoke receipt for txHash with one event
// and one message.
func InvokeReceipt(txHash felt.Felt) *core.InvokeReceipt {
	return &core.InvokeReceipt{ReceiptCommon: Common(txHash)}
}

func Common(txHash felt.Felt) core.ReceiptCommon {
	return core.ReceiptCommon{
		TransactionHash: txHash,
		ActualFee:       core.FeePayment{Amount: FeltN(0x2a), Unit: core.FRI},
		MessagesSent: []core.L2ToL1Message{
			{From: FeltN(0xa1), To: FeltN(0xa2), Payload: []felt.Felt{FeltN(1)}},
		},
		Events: []core.Event{
			{From: FeltN(0xe1), Keys: []felt.Felt{FeltN(0xc0de)}, Data: []felt.Felt{FeltN(5), FeltN(6)}},
		},
		ExecutionResources: core.ExecutionResources{
			Steps:       100,
			MemoryHoles: 3,
			BuiltinInstanceCounter: core.BuiltinInstanceCounter{
				RangeCheck: 4,
				Pedersen:   1,
			},
			TotalGasConsumed: core.GasConsumed{L1Gas: core.NewUint128(0, 50), L2Gas: core.NewUint128(0, 70)},
		},
	}
}
