package core

import (
	"github.com/NethermindEth/makimono/core/felt"
	"github.com/NethermindEth/makimono/encoder/bincode"
)

type FeeUnit uint8

const (
	WEI FeeUnit = iota
	FRI
)

func (u FeeUnit) String() string {
	switch u {
	case WEI:
		return "WEI"
	case FRI:
		return "FRI"
	default:
		return "UNKNOWN"
	}
}

func (u FeeUnit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

type FeePayment struct {
	Amount felt.Felt
	Unit   FeeUnit
}

func decodeFeePayment(d *bincode.Decoder) FeePayment {
	fee := FeePayment{Amount: decodeFelt(d)}
	switch v := d.Variant(); v {
	case 0:
		fee.Unit = WEI
	case 1:
		fee.Unit = FRI
	default:
		d.UnknownVariant("PriceUnit", v)
	}
	return fee
}

type Event struct {
	From felt.Felt
	Keys []felt.Felt
	Data []felt.Felt
}

func decodeEvent(d *bincode.Decoder) Event {
	return Event{
		From: decodeFelt(d),
		Keys: decodeFelts(d),
		Data: decodeFelts(d),
	}
}

type L2ToL1Message struct {
	From    felt.Felt
	To      felt.Felt
	Payload []felt.Felt
}

func decodeL2ToL1Message(d *bincode.Decoder) L2ToL1Message {
	return L2ToL1Message{
		From:    decodeFelt(d),
		To:      decodeFelt(d),
		Payload: decodeFelts(d),
	}
}

type GasConsumed struct {
	L1Gas     Uint128
	L1DataGas Uint128
	L2Gas     Uint128
}

func decodeGasConsumed(d *bincode.Decoder) GasConsumed {
	return GasConsumed{
		L1Gas:     decodeUint128(d),
		L1DataGas: decodeUint128(d),
		L2Gas:     decodeUint128(d),
	}
}

type BuiltinInstanceCounter struct {
	RangeCheck   uint64
	Pedersen     uint64
	Poseidon     uint64
	EcOp         uint64
	Ecdsa        uint64
	Bitwise      uint64
	Keccak       uint64
	SegmentArena uint64
}

type ExecutionResources struct {
	Steps       uint64
	MemoryHoles uint64
	BuiltinInstanceCounter
	DataAvailability GasConsumed
	TotalGasConsumed GasConsumed
}

func decodeExecutionResources(d *bincode.Decoder) ExecutionResources {
	var r ExecutionResources
	r.Steps = d.U64()
	r.MemoryHoles = d.U64()
	r.RangeCheck = d.U64()
	r.Pedersen = d.U64()
	r.Poseidon = d.U64()
	r.EcOp = d.U64()
	r.Ecdsa = d.U64()
	r.Bitwise = d.U64()
	r.Keccak = d.U64()
	r.SegmentArena = d.U64()
	r.DataAvailability = decodeGasConsumed(d)
	r.TotalGasConsumed = decodeGasConsumed(d)
	return r
}

type ExecutionStatus uint8

const (
	Succeeded ExecutionStatus = iota
	Reverted
)

func (s ExecutionStatus) String() string {
	switch s {
	case Succeeded:
		return "SUCCEEDED"
	case Reverted:
		return "REVERTED"
	default:
		return "UNKNOWN"
	}
}

func (s ExecutionStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type ExecutionResult struct {
	Status       ExecutionStatus
	RevertReason string
}

func decodeExecutionResult(d *bincode.Decoder) ExecutionResult {
	switch v := d.Variant(); v {
	case 0:
		return ExecutionResult{Status: Succeeded}
	case 1:
		return ExecutionResult{Status: Reverted, RevertReason: d.Text()}
	default:
		d.UnknownVariant("ExecutionResult", v)
		return ExecutionResult{}
	}
}

// ReceiptCommon holds the fields every receipt kind carries.
type ReceiptCommon struct {
	TransactionHash    felt.Felt
	ActualFee          FeePayment
	MessagesSent       []L2ToL1Message
	Events             []Event
	ExecutionResources ExecutionResources
	ExecutionResult    ExecutionResult
}

func (r *ReceiptCommon) Common() *ReceiptCommon {
	return r
}

func decodeReceiptCommon(d *bincode.Decoder) ReceiptCommon {
	return ReceiptCommon{
		TransactionHash:    decodeFelt(d),
		ActualFee:          decodeFeePayment(d),
		MessagesSent:       bincode.Seq(d, decodeL2ToL1Message),
		Events:             bincode.Seq(d, decodeEvent),
		ExecutionResources: decodeExecutionResources(d),
		ExecutionResult:    decodeExecutionResult(d),
	}
}

// Receipt is one of the concrete receipt types below, matching the kind of
// the transaction it is stored with.
type Receipt interface {
	Type() TransactionType
	Common() *ReceiptCommon
	isReceipt()
}

var (
	_ Receipt = (*InvokeReceipt)(nil)
	_ Receipt = (*L1HandlerReceipt)(nil)
	_ Receipt = (*DeclareReceipt)(nil)
	_ Receipt = (*DeployReceipt)(nil)
	_ Receipt = (*DeployAccountReceipt)(nil)
)

type InvokeReceipt struct {
	ReceiptCommon
}

type L1HandlerReceipt struct {
	MessageHash [32]byte
	ReceiptCommon
}

type DeclareReceipt struct {
	ReceiptCommon
}

type DeployReceipt struct {
	ReceiptCommon
	ContractAddress felt.Felt
}

type DeployAccountReceipt struct {
	ReceiptCommon
	ContractAddress felt.Felt
}

func (*InvokeReceipt) Type() TransactionType        { return TxInvoke }
func (*L1HandlerReceipt) Type() TransactionType     { return TxL1Handler }
func (*DeclareReceipt) Type() TransactionType       { return TxDeclare }
func (*DeployReceipt) Type() TransactionType        { return TxDeploy }
func (*DeployAccountReceipt) Type() TransactionType { return TxDeployAccount }

func (*InvokeReceipt) isReceipt()        {}
func (*L1HandlerReceipt) isReceipt()     {}
func (*DeclareReceipt) isReceipt()       {}
func (*DeployReceipt) isReceipt()        {}
func (*DeployAccountReceipt) isReceipt() {}

func decodeReceipt(d *bincode.Decoder) Receipt {
	switch v := d.Variant(); v {
	case 0:
		return &InvokeReceipt{ReceiptCommon: decodeReceiptCommon(d)}
	case 1:
		r := &L1HandlerReceipt{}
		copy(r.MessageHash[:], d.Fixed(len(r.MessageHash)))
		r.ReceiptCommon = decodeReceiptCommon(d)
		return r
	case 2:
		return &DeclareReceipt{ReceiptCommon: decodeReceiptCommon(d)}
	case 3:
		return &DeployReceipt{
			ReceiptCommon:   decodeReceiptCommon(d),
			ContractAddress: decodeFelt(d),
		}
	case 4:
		return &DeployAccountReceipt{
			ReceiptCommon:   decodeReceiptCommon(d),
			ContractAddress: decodeFelt(d),
		}
	default:
		d.UnknownVariant("TransactionReceipt", v)
		return nil
	}
}
