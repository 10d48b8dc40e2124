// Package coretest encodes core records the way the node stores them. It is
// used to seed test stores.
package coretest

import (
	"fmt"

	"github.com/NethermindEth/makimono/core"
	"github.com/NethermindEth/makimono/core/felt"
	"github.com/NethermindEth/makimono/encoder/bincode"
)

func encodeFelt(e *bincode.Encoder, f felt.Felt) {
	e.ByteBuf(f.Marshal())
}

func encodeFelts(e *bincode.Encoder, fs []felt.Felt) {
	e.Len(len(fs))
	for _, f := range fs {
		encodeFelt(e, f)
	}
}

func encodeOptionalFelt(e *bincode.Encoder, f *felt.Felt) {
	e.Option(f != nil)
	if f != nil {
		encodeFelt(e, *f)
	}
}

func encodeUint128(e *bincode.Encoder, u core.Uint128) {
	e.U128(u.Hi(), u.Lo())
}

func EncodeBlockInfo(b *core.BlockInfo) []byte {
	e := bincode.NewEncoder()
	h := &b.Header
	encodeFelt(e, h.ParentHash)
	e.U64(h.Number)
	encodeFelt(e, h.GlobalStateRoot)
	encodeFelt(e, h.SequencerAddress)
	e.U64(h.Timestamp)
	e.U64(h.TransactionCount)
	encodeFelt(e, h.TransactionCommitment)
	e.U64(h.EventCount)
	encodeFelt(e, h.EventCommitment)
	e.Option(h.StateDiffLength != nil)
	if h.StateDiffLength != nil {
		e.U64(*h.StateDiffLength)
	}
	encodeOptionalFelt(e, h.StateDiffCommitment)
	encodeOptionalFelt(e, h.ReceiptCommitment)
	e.Fixed(h.ProtocolVersion[:])
	gp := h.GasPrices
	for _, p := range []core.Uint128{
		gp.ETHL1GasPrice, gp.STRKL1GasPrice, gp.ETHL1DataGasPrice,
		gp.STRKL1DataGasPrice, gp.ETHL2GasPrice, gp.STRKL2GasPrice,
	} {
		encodeUint128(e, p)
	}
	e.Variant(uint32(h.L1DAMode))
	encodeFelt(e, b.Hash)
	encodeUint128(e, b.TotalL2GasUsed)
	encodeFelts(e, b.TxHashes)
	return e.Bytes()
}

func encodeResourceBounds(e *bincode.Encoder, rb core.ResourceBoundsMapping) {
	e.U64(rb.L1Gas.MaxAmount)
	encodeUint128(e, rb.L1Gas.MaxPricePerUnit)
	e.U64(rb.L2Gas.MaxAmount)
	encodeUint128(e, rb.L2Gas.MaxPricePerUnit)
	e.Option(rb.L1DataGas != nil)
	if rb.L1DataGas != nil {
		e.U64(rb.L1DataGas.MaxAmount)
		encodeUint128(e, rb.L1DataGas.MaxPricePerUnit)
	}
}

func encodeDAModes(e *bincode.Encoder, f *core.V3Fields) {
	e.U32(uint32(f.NonceDataAvailabilityMode))
	e.U32(uint32(f.FeeDataAvailabilityMode))
}

func encodeTransaction(e *bincode.Encoder, tx core.Transaction) {
	switch t := tx.(type) {
	case *core.InvokeTransactionV0:
		e.Variant(0).Variant(0)
		encodeFelt(e, t.MaxFee)
		encodeFelts(e, t.Signature)
		encodeFelt(e, t.ContractAddress)
		encodeFelt(e, t.EntryPointSelector)
		encodeFelts(e, t.CallData)
	case *core.InvokeTransactionV1:
		e.Variant(0).Variant(1)
		encodeFelt(e, t.SenderAddress)
		encodeFelts(e, t.CallData)
		encodeFelt(e, t.MaxFee)
		encodeFelts(e, t.Signature)
		encodeFelt(e, t.Nonce)
	case *core.InvokeTransactionV3:
		e.Variant(0).Variant(2)
		encodeFelt(e, t.SenderAddress)
		encodeFelts(e, t.CallData)
		encodeFelts(e, t.Signature)
		encodeFelt(e, t.Nonce)
		encodeResourceBounds(e, t.ResourceBounds)
		e.U64(t.Tip)
		encodeFelts(e, t.PaymasterData)
		encodeFelts(e, t.AccountDeploymentData)
		encodeDAModes(e, &t.V3Fields)
	case *core.L1HandlerTransaction:
		e.Variant(1)
		encodeFelt(e, t.TxVersion)
		e.U64(t.Nonce)
		encodeFelt(e, t.ContractAddress)
		encodeFelt(e, t.EntryPointSelector)
		encodeFelts(e, t.CallData)
	case *core.DeclareTransactionV0:
		e.Variant(2).Variant(0)
		encodeFelt(e, t.SenderAddress)
		encodeFelt(e, t.MaxFee)
		encodeFelts(e, t.Signature)
		encodeFelt(e, t.ClassHash)
	case *core.DeclareTransactionV1:
		e.Variant(2).Variant(1)
		encodeFelt(e, t.SenderAddress)
		encodeFelt(e, t.MaxFee)
		encodeFelts(e, t.Signature)
		encodeFelt(e, t.Nonce)
		encodeFelt(e, t.ClassHash)
	case *core.DeclareTransactionV2:
		e.Variant(2).Variant(2)
		encodeFelt(e, t.SenderAddress)
		encodeFelt(e, t.CompiledClassHash)
		encodeFelt(e, t.MaxFee)
		encodeFelts(e, t.Signature)
		encodeFelt(e, t.Nonce)
		encodeFelt(e, t.ClassHash)
	case *core.DeclareTransactionV3:
		e.Variant(2).Variant(3)
		encodeFelt(e, t.SenderAddress)
		encodeFelt(e, t.CompiledClassHash)
		encodeFelts(e, t.Signature)
		encodeFelt(e, t.Nonce)
		encodeFelt(e, t.ClassHash)
		encodeResourceBounds(e, t.ResourceBounds)
		e.U64(t.Tip)
		encodeFelts(e, t.PaymasterData)
		encodeFelts(e, t.AccountDeploymentData)
		encodeDAModes(e, &t.V3Fields)
	case *core.DeployTransaction:
		e.Variant(3)
		encodeFelt(e, t.TxVersion)
		encodeFelt(e, t.ClassHash)
		encodeFelt(e, t.ContractAddressSalt)
		encodeFelts(e, t.ConstructorCallData)
	case *core.DeployAccountTransactionV1:
		e.Variant(4).Variant(0)
		encodeFelt(e, t.MaxFee)
		encodeFelts(e, t.Signature)
		encodeFelt(e, t.Nonce)
		encodeFelt(e, t.ContractAddressSalt)
		encodeFelts(e, t.ConstructorCallData)
		encodeFelt(e, t.ClassHash)
	case *core.DeployAccountTransactionV3:
		e.Variant(4).Variant(1)
		encodeFelts(e, t.Signature)
		encodeFelt(e, t.Nonce)
		encodeFelt(e, t.ContractAddressSalt)
		encodeFelts(e, t.ConstructorCallData)
		encodeFelt(e, t.ClassHash)
		encodeResourceBounds(e, t.ResourceBounds)
		e.U64(t.Tip)
		encodeFelts(e, t.PaymasterData)
		encodeDAModes(e, &t.V3Fields)
	default:
		panic(fmt.Sprintf("unexpected transaction type %T", tx))
	}
}

func encodeGasConsumed(e *bincode.Encoder, g core.GasConsumed) {
	encodeUint128(e, g.L1Gas)
	encodeUint128(e, g.L1DataGas)
	encodeUint128(e, g.L2Gas)
}

func encodeReceiptCommon(e *bincode.Encoder, c *core.ReceiptCommon) {
	encodeFelt(e, c.TransactionHash)
	encodeFelt(e, c.ActualFee.Amount)
	e.Variant(uint32(c.ActualFee.Unit))
	e.Len(len(c.MessagesSent))
	for _, m := range c.MessagesSent {
		encodeFelt(e, m.From)
		encodeFelt(e, m.To)
		encodeFelts(e, m.Payload)
	}
	e.Len(len(c.Events))
	for _, ev := range c.Events {
		encodeFelt(e, ev.From)
		encodeFelts(e, ev.Keys)
		encodeFelts(e, ev.Data)
	}
	r := c.ExecutionResources
	for _, v := range []uint64{
		r.Steps, r.MemoryHoles, r.RangeCheck, r.Pedersen, r.Poseidon,
		r.EcOp, r.Ecdsa, r.Bitwise, r.Keccak, r.SegmentArena,
	} {
		e.U64(v)
	}
	encodeGasConsumed(e, r.DataAvailability)
	encodeGasConsumed(e, r.TotalGasConsumed)
	e.Variant(uint32(c.ExecutionResult.Status))
	if c.ExecutionResult.Status == core.Reverted {
		e.Text(c.ExecutionResult.RevertReason)
	}
}

func encodeReceipt(e *bincode.Encoder, receipt core.Receipt) {
	switch r := receipt.(type) {
	case *core.InvokeReceipt:
		e.Variant(0)
		encodeReceiptCommon(e, &r.ReceiptCommon)
	case *core.L1HandlerReceipt:
		e.Variant(1)
		e.Fixed(r.MessageHash[:])
		encodeReceiptCommon(e, &r.ReceiptCommon)
	case *core.DeclareReceipt:
		e.Variant(2)
		encodeReceiptCommon(e, &r.ReceiptCommon)
	case *core.DeployReceipt:
		e.Variant(3)
		encodeReceiptCommon(e, &r.ReceiptCommon)
		encodeFelt(e, r.ContractAddress)
	case *core.DeployAccountReceipt:
		e.Variant(4)
		encodeReceiptCommon(e, &r.ReceiptCommon)
		encodeFelt(e, r.ContractAddress)
	default:
		panic(fmt.Sprintf("unexpected receipt type %T", receipt))
	}
}

func EncodeTransactionWithReceipt(tx core.Transaction, receipt core.Receipt) []byte {
	e := bincode.NewEncoder()
	encodeTransaction(e, tx)
	encodeReceipt(e, receipt)
	return e.Bytes()
}

func encodeAbiParams(e *bincode.Encoder, ps []core.AbiParam) {
	e.Len(len(ps))
	for _, p := range ps {
		e.Text(p.Name).Text(p.Type)
	}
}

func encodeLegacyAbiEntry(e *bincode.Encoder, entry core.LegacyAbiEntry) {
	switch a := entry.(type) {
	case *core.LegacyAbiFunction:
		e.Text(a.Type).Text(a.Name)
		encodeAbiParams(e, a.Inputs)
		e.Len(len(a.Outputs))
		for _, o := range a.Outputs {
			e.Text(o.Type)
		}
	case *core.LegacyAbiEvent:
		e.Text(a.Type).Text(a.Name)
		encodeAbiParams(e, a.Data)
		encodeAbiParams(e, a.Keys)
	case *core.LegacyAbiStruct:
		e.Text(a.Type).Text(a.Name).U64(a.Size)
		e.Len(len(a.Members))
		for _, m := range a.Members {
			e.Text(m.Name).Text(m.Type).U64(m.Offset)
		}
	default:
		panic(fmt.Sprintf("unexpected abi entry type %T", entry))
	}
}

func EncodeClassInfo(info *core.ClassInfo) []byte {
	e := bincode.NewEncoder()
	switch c := info.Class.(type) {
	case *core.SierraClass:
		e.Variant(0)
		encodeFelts(e, c.Program)
		e.Text(c.ContractVersion)
		for _, eps := range [][]core.SierraEntryPoint{
			c.EntryPoints.Constructor, c.EntryPoints.External, c.EntryPoints.L1Handler,
		} {
			e.Len(len(eps))
			for _, ep := range eps {
				encodeFelt(e, ep.Selector)
				e.U64(ep.Index)
			}
		}
		e.Text(c.Abi)
	case *core.LegacyClass:
		e.Variant(1)
		e.ByteBuf(c.Program)
		for _, eps := range [][]core.LegacyEntryPoint{
			c.EntryPoints.Constructor, c.EntryPoints.External, c.EntryPoints.L1Handler,
		} {
			e.Len(len(eps))
			for _, ep := range eps {
				e.U64(ep.Offset)
				encodeFelt(e, ep.Selector)
			}
		}
		e.Option(c.Abi != nil)
		if c.Abi != nil {
			e.Len(len(c.Abi))
			for _, entry := range c.Abi {
				encodeLegacyAbiEntry(e, entry)
			}
		}
	default:
		panic(fmt.Sprintf("unexpected class type %T", info.Class))
	}
	encodeOptionalFelt(e, info.CompiledClassHash)
	return e.Bytes()
}

// EncodeFelt encodes a standalone felt value such as a class hash or storage value.
func EncodeFelt(f felt.Felt) []byte {
	e := bincode.NewEncoder()
	encodeFelt(e, f)
	return e.Bytes()
}

func EncodeNonce(nonce uint64) []byte {
	return bincode.NewEncoder().U64(nonce).Bytes()
}

func EncodeTxLocation(loc core.TxLocation) []byte {
	return bincode.NewEncoder().U32(loc.BlockNumber).U16(loc.Index).Bytes()
}
