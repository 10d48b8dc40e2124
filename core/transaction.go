package core

import (
	"github.com/NethermindEth/makimono/core/felt"
	"github.com/NethermindEth/makimono/encoder/bincode"
)

type TransactionType uint8

const (
	TxInvoke TransactionType = iota
	TxL1Handler
	TxDeclare
	TxDeploy
	TxDeployAccount
)

func (t TransactionType) String() string {
	switch t {
	case TxInvoke:
		return "INVOKE"
	case TxL1Handler:
		return "L1_HANDLER"
	case TxDeclare:
		return "DECLARE"
	case TxDeploy:
		return "DEPLOY"
	case TxDeployAccount:
		return "DEPLOY_ACCOUNT"
	default:
		return "UNKNOWN"
	}
}

func (t TransactionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

type DataAvailabilityMode uint32

const (
	DAModeL1 DataAvailabilityMode = iota
	DAModeL2
)

func (m DataAvailabilityMode) String() string {
	switch m {
	case DAModeL1:
		return "L1"
	case DAModeL2:
		return "L2"
	default:
		return "UNKNOWN"
	}
}

type ResourceBounds struct {
	MaxAmount       uint64
	MaxPricePerUnit Uint128
}

func decodeResourceBounds(d *bincode.Decoder) ResourceBounds {
	return ResourceBounds{
		MaxAmount:       d.U64(),
		MaxPricePerUnit: decodeUint128(d),
	}
}

type ResourceBoundsMapping struct {
	L1Gas ResourceBounds
	L2Gas ResourceBounds
	// Only present from 0.13.4 on
	L1DataGas *ResourceBounds
}

func decodeResourceBoundsMapping(d *bincode.Decoder) ResourceBoundsMapping {
	m := ResourceBoundsMapping{
		L1Gas: decodeResourceBounds(d),
		L2Gas: decodeResourceBounds(d),
	}
	if d.Option() {
		b := decodeResourceBounds(d)
		m.L1DataGas = &b
	}
	return m
}

// Transaction is one of the concrete transaction types below. The set is closed.
type Transaction interface {
	Type() TransactionType
	// Version is "0", "1", "2" or "3" for versioned kinds and the stored
	// version felt in hex for L1 handler and deploy transactions.
	Version() string
	isTransaction()
}

var (
	_ Transaction = (*InvokeTransactionV0)(nil)
	_ Transaction = (*InvokeTransactionV1)(nil)
	_ Transaction = (*InvokeTransactionV3)(nil)
	_ Transaction = (*L1HandlerTransaction)(nil)
	_ Transaction = (*DeclareTransactionV0)(nil)
	_ Transaction = (*DeclareTransactionV1)(nil)
	_ Transaction = (*DeclareTransactionV2)(nil)
	_ Transaction = (*DeclareTransactionV3)(nil)
	_ Transaction = (*DeployTransaction)(nil)
	_ Transaction = (*DeployAccountTransactionV1)(nil)
	_ Transaction = (*DeployAccountTransactionV3)(nil)
)

// V3 transactions pay in fri and carry resource bounds instead of a max fee.
type V3Fields struct {
	ResourceBounds            ResourceBoundsMapping
	Tip                       uint64
	PaymasterData             []felt.Felt
	NonceDataAvailabilityMode DataAvailabilityMode
	FeeDataAvailabilityMode   DataAvailabilityMode
}

type InvokeTransactionV0 struct {
	MaxFee             felt.Felt
	Signature          []felt.Felt
	ContractAddress    felt.Felt
	EntryPointSelector felt.Felt
	CallData           []felt.Felt
}

type InvokeTransactionV1 struct {
	SenderAddress felt.Felt
	CallData      []felt.Felt
	MaxFee        felt.Felt
	Signature     []felt.Felt
	Nonce         felt.Felt
}

type InvokeTransactionV3 struct {
	SenderAddress         felt.Felt
	CallData              []felt.Felt
	Signature             []felt.Felt
	Nonce                 felt.Felt
	AccountDeploymentData []felt.Felt
	V3Fields
}

type L1HandlerTransaction struct {
	TxVersion          felt.Felt
	Nonce              uint64
	ContractAddress    felt.Felt
	EntryPointSelector felt.Felt
	CallData           []felt.Felt
}

type DeclareTransactionV0 struct {
	SenderAddress felt.Felt
	MaxFee        felt.Felt
	Signature     []felt.Felt
	ClassHash     felt.Felt
}

type DeclareTransactionV1 struct {
	SenderAddress felt.Felt
	MaxFee        felt.Felt
	Signature     []felt.Felt
	Nonce         felt.Felt
	ClassHash     felt.Felt
}

type DeclareTransactionV2 struct {
	SenderAddress     felt.Felt
	CompiledClassHash felt.Felt
	MaxFee            felt.Felt
	Signature         []felt.Felt
	Nonce             felt.Felt
	ClassHash         felt.Felt
}

type DeclareTransactionV3 struct {
	SenderAddress         felt.Felt
	CompiledClassHash     felt.Felt
	Signature             []felt.Felt
	Nonce                 felt.Felt
	ClassHash             felt.Felt
	AccountDeploymentData []felt.Felt
	V3Fields
}

type DeployTransaction struct {
	TxVersion           felt.Felt
	ClassHash           felt.Felt
	ContractAddressSalt felt.Felt
	ConstructorCallData []felt.Felt
}

type DeployAccountTransactionV1 struct {
	MaxFee              felt.Felt
	Signature           []felt.Felt
	Nonce               felt.Felt
	ContractAddressSalt felt.Felt
	ConstructorCallData []felt.Felt
	ClassHash           felt.Felt
}

type DeployAccountTransactionV3 struct {
	Signature           []felt.Felt
	Nonce               felt.Felt
	ContractAddressSalt felt.Felt
	ConstructorCallData []felt.Felt
	ClassHash           felt.Felt
	V3Fields
}

func (*InvokeTransactionV0) Type() TransactionType        { return TxInvoke }
func (*InvokeTransactionV1) Type() TransactionType        { return TxInvoke }
func (*InvokeTransactionV3) Type() TransactionType        { return TxInvoke }
func (*L1HandlerTransaction) Type() TransactionType       { return TxL1Handler }
func (*DeclareTransactionV0) Type() TransactionType       { return TxDeclare }
func (*DeclareTransactionV1) Type() TransactionType       { return TxDeclare }
func (*DeclareTransactionV2) Type() TransactionType       { return TxDeclare }
func (*DeclareTransactionV3) Type() TransactionType       { return TxDeclare }
func (*DeployTransaction) Type() TransactionType          { return TxDeploy }
func (*DeployAccountTransactionV1) Type() TransactionType { return TxDeployAccount }
func (*DeployAccountTransactionV3) Type() TransactionType { return TxDeployAccount }

func (*InvokeTransactionV0) Version() string        { return "0" }
func (*InvokeTransactionV1) Version() string        { return "1" }
func (*InvokeTransactionV3) Version() string        { return "3" }
func (t *L1HandlerTransaction) Version() string     { return t.TxVersion.Hex() }
func (*DeclareTransactionV0) Version() string       { return "0" }
func (*DeclareTransactionV1) Version() string       { return "1" }
func (*DeclareTransactionV2) Version() string       { return "2" }
func (*DeclareTransactionV3) Version() string       { return "3" }
func (t *DeployTransaction) Version() string        { return t.TxVersion.Hex() }
func (*DeployAccountTransactionV1) Version() string { return "1" }
func (*DeployAccountTransactionV3) Version() string { return "3" }

func (*InvokeTransactionV0) isTransaction()        {}
func (*InvokeTransactionV1) isTransaction()        {}
func (*InvokeTransactionV3) isTransaction()        {}
func (*L1HandlerTransaction) isTransaction()       {}
func (*DeclareTransactionV0) isTransaction()       {}
func (*DeclareTransactionV1) isTransaction()       {}
func (*DeclareTransactionV2) isTransaction()       {}
func (*DeclareTransactionV3) isTransaction()       {}
func (*DeployTransaction) isTransaction()          {}
func (*DeployAccountTransactionV1) isTransaction() {}
func (*DeployAccountTransactionV3) isTransaction() {}

func decodeTransaction(d *bincode.Decoder) Transaction {
	switch v := d.Variant(); v {
	case 0:
		return decodeInvoke(d)
	case 1:
		return &L1HandlerTransaction{
			TxVersion:          decodeFelt(d),
			Nonce:              d.U64(),
			ContractAddress:    decodeFelt(d),
			EntryPointSelector: decodeFelt(d),
			CallData:           decodeFelts(d),
		}
	case 2:
		return decodeDeclare(d)
	case 3:
		return &DeployTransaction{
			TxVersion:           decodeFelt(d),
			ClassHash:           decodeFelt(d),
			ContractAddressSalt: decodeFelt(d),
			ConstructorCallData: decodeFelts(d),
		}
	case 4:
		return decodeDeployAccount(d)
	default:
		d.UnknownVariant("Transaction", v)
		return nil
	}
}

func decodeInvoke(d *bincode.Decoder) Transaction {
	switch v := d.Variant(); v {
	case 0:
		return &InvokeTransactionV0{
			MaxFee:             decodeFelt(d),
			Signature:          decodeFelts(d),
			ContractAddress:    decodeFelt(d),
			EntryPointSelector: decodeFelt(d),
			CallData:           decodeFelts(d),
		}
	case 1:
		return &InvokeTransactionV1{
			SenderAddress: decodeFelt(d),
			CallData:      decodeFelts(d),
			MaxFee:        decodeFelt(d),
			Signature:     decodeFelts(d),
			Nonce:         decodeFelt(d),
		}
	case 2:
		t := &InvokeTransactionV3{
			SenderAddress: decodeFelt(d),
			CallData:      decodeFelts(d),
			Signature:     decodeFelts(d),
			Nonce:         decodeFelt(d),
		}
		t.ResourceBounds = decodeResourceBoundsMapping(d)
		t.Tip = d.U64()
		t.PaymasterData = decodeFelts(d)
		t.AccountDeploymentData = decodeFelts(d)
		decodeDAModes(d, &t.V3Fields)
		return t
	default:
		d.UnknownVariant("InvokeTransaction", v)
		return nil
	}
}

func decodeDeclare(d *bincode.Decoder) Transaction {
	switch v := d.Variant(); v {
	case 0:
		return &DeclareTransactionV0{
			SenderAddress: decodeFelt(d),
			MaxFee:        decodeFelt(d),
			Signature:     decodeFelts(d),
			ClassHash:     decodeFelt(d),
		}
	case 1:
		return &DeclareTransactionV1{
			SenderAddress: decodeFelt(d),
			MaxFee:        decodeFelt(d),
			Signature:     decodeFelts(d),
			Nonce:         decodeFelt(d),
			ClassHash:     decodeFelt(d),
		}
	case 2:
		return &DeclareTransactionV2{
			SenderAddress:     decodeFelt(d),
			CompiledClassHash: decodeFelt(d),
			MaxFee:            decodeFelt(d),
			Signature:         decodeFelts(d),
			Nonce:             decodeFelt(d),
			ClassHash:         decodeFelt(d),
		}
	case 3:
		t := &DeclareTransactionV3{
			SenderAddress:     decodeFelt(d),
			CompiledClassHash: decodeFelt(d),
			Signature:         decodeFelts(d),
			Nonce:             decodeFelt(d),
			ClassHash:         decodeFelt(d),
		}
		t.ResourceBounds = decodeResourceBoundsMapping(d)
		t.Tip = d.U64()
		t.PaymasterData = decodeFelts(d)
		t.AccountDeploymentData = decodeFelts(d)
		decodeDAModes(d, &t.V3Fields)
		return t
	default:
		d.UnknownVariant("DeclareTransaction", v)
		return nil
	}
}

func decodeDeployAccount(d *bincode.Decoder) Transaction {
	switch v := d.Variant(); v {
	case 0:
		return &DeployAccountTransactionV1{
			MaxFee:              decodeFelt(d),
			Signature:           decodeFelts(d),
			Nonce:               decodeFelt(d),
			ContractAddressSalt: decodeFelt(d),
			ConstructorCallData: decodeFelts(d),
			ClassHash:           decodeFelt(d),
		}
	case 1:
		t := &DeployAccountTransactionV3{
			Signature:           decodeFelts(d),
			Nonce:               decodeFelt(d),
			ContractAddressSalt: decodeFelt(d),
			ConstructorCallData: decodeFelts(d),
			ClassHash:           decodeFelt(d),
		}
		t.ResourceBounds = decodeResourceBoundsMapping(d)
		t.Tip = d.U64()
		t.PaymasterData = decodeFelts(d)
		decodeDAModes(d, &t.V3Fields)
		return t
	default:
		d.UnknownVariant("DeployAccountTransaction", v)
		return nil
	}
}

func decodeDAModes(d *bincode.Decoder, f *V3Fields) {
	f.NonceDataAvailabilityMode = DataAvailabilityMode(d.U32())
	f.FeeDataAvailabilityMode = DataAvailabilityMode(d.U32())
}

// TransactionWithReceipt is the record stored under a (block, index) key.
type TransactionWithReceipt struct {
	Transaction Transaction
	Receipt     Receipt
}

func decodeTransactionWithReceipt(d *bincode.Decoder) *TransactionWithReceipt {
	return &TransactionWithReceipt{
		Transaction: decodeTransaction(d),
		Receipt:     decodeReceipt(d),
	}
}

// UnmarshalTransactionWithReceipt decodes a block_transactions value.
func UnmarshalTransactionWithReceipt(b []byte) (*TransactionWithReceipt, error) {
	return bincode.Unmarshal(b, decodeTransactionWithReceipt)
}
