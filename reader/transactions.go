package reader

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/NethermindEth/makimono/core"
	"github.com/NethermindEth/makimono/core/felt"
	"github.com/NethermindEth/makimono/db"
	"github.com/NethermindEth/makimono/utils"
)

// UnknownFeeUnit is reported for transactions whose record could not be read.
const UnknownFeeUnit = "UNKNOWN"

type TransactionSummary struct {
	Hash        felt.Felt            `json:"tx_hash"`
	Type        core.TransactionType `json:"tx_type"`
	Status      core.ExecutionStatus `json:"status"`
	BlockNumber uint64               `json:"block_number"`
	Index       uint64               `json:"tx_index"`
	// Degraded is set when the record could not be decoded and only the hash
	// from the block is known. Every other field then holds a default.
	Degraded bool `json:"degraded,omitempty"`
}

type Event struct {
	FromAddress felt.Felt   `json:"from_address"`
	Keys        []felt.Felt `json:"keys"`
	Data        []felt.Felt `json:"data"`
}

type Message struct {
	FromAddress felt.Felt   `json:"from_address"`
	ToAddress   felt.Felt   `json:"to_address"`
	Payload     []felt.Felt `json:"payload"`
}

type ExecutionResources struct {
	Steps     uint64       `json:"steps"`
	L1Gas     core.Uint128 `json:"l1_gas"`
	L1DataGas core.Uint128 `json:"l1_data_gas"`
	L2Gas     core.Uint128 `json:"l2_gas"`
}

type TransactionDetail struct {
	TransactionSummary
	RevertReason       string              `json:"revert_reason,omitempty"`
	ActualFee          felt.Felt           `json:"actual_fee"`
	FeeUnit            string              `json:"fee_unit"`
	Events             []Event             `json:"events"`
	MessagesSent       []Message           `json:"messages_sent"`
	SenderAddress      *felt.Felt          `json:"sender_address,omitempty"`
	Calldata           []felt.Felt         `json:"calldata"`
	Signature          []felt.Felt         `json:"signature"`
	Nonce              string              `json:"nonce,omitempty"`
	Version            string              `json:"version"`
	ClassHash          *felt.Felt          `json:"class_hash,omitempty"`
	ContractAddress    *felt.Felt          `json:"contract_address,omitempty"`
	ExecutionResources *ExecutionResources `json:"execution_resources,omitempty"`
}

type TxLocation struct {
	BlockNumber uint64 `json:"block_number"`
	Index       uint64 `json:"tx_index"`
}

func placeholderSummary(hash felt.Felt, blockNum, index uint64) TransactionSummary {
	return TransactionSummary{
		Hash:        hash,
		Type:        core.TxInvoke,
		Status:      core.Succeeded,
		BlockNumber: blockNum,
		Index:       index,
		Degraded:    true,
	}
}

func placeholderDetail(hash felt.Felt, blockNum, index uint64) *TransactionDetail {
	return &TransactionDetail{
		TransactionSummary: placeholderSummary(hash, blockNum, index),
		FeeUnit:            UnknownFeeUnit,
		Events:             []Event{},
		MessagesSent:       []Message{},
		Calldata:           []felt.Felt{},
		Signature:          []felt.Felt{},
	}
}

func summarise(txr *core.TransactionWithReceipt, blockNum, index uint64) TransactionSummary {
	common := txr.Receipt.Common()
	return TransactionSummary{
		Hash:        common.TransactionHash,
		Type:        txr.Transaction.Type(),
		Status:      common.ExecutionResult.Status,
		BlockNumber: blockNum,
		Index:       index,
	}
}

func newTransactionDetail(txr *core.TransactionWithReceipt, blockNum, index uint64) (*TransactionDetail, error) {
	common := txr.Receipt.Common()
	detail := &TransactionDetail{
		TransactionSummary: summarise(txr, blockNum, index),
		RevertReason:       common.ExecutionResult.RevertReason,
		ActualFee:          common.ActualFee.Amount,
		FeeUnit:            common.ActualFee.Unit.String(),
		Events: utils.Map(common.Events, func(e core.Event) Event {
			return Event{FromAddress: e.From, Keys: e.Keys, Data: e.Data}
		}),
		MessagesSent: utils.Map(common.MessagesSent, func(m core.L2ToL1Message) Message {
			return Message{FromAddress: m.From, ToAddress: m.To, Payload: m.Payload}
		}),
		Calldata:  []felt.Felt{},
		Signature: []felt.Felt{},
		Version:   txr.Transaction.Version(),
		ExecutionResources: &ExecutionResources{
			Steps:     common.ExecutionResources.Steps,
			L1Gas:     common.ExecutionResources.TotalGasConsumed.L1Gas,
			L1DataGas: common.ExecutionResources.TotalGasConsumed.L1DataGas,
			L2Gas:     common.ExecutionResources.TotalGasConsumed.L2Gas,
		},
	}

	switch tx := txr.Transaction.(type) {
	case *core.InvokeTransactionV0:
		detail.SenderAddress = &tx.ContractAddress
		detail.Calldata = tx.CallData
		detail.Signature = tx.Signature
	case *core.InvokeTransactionV1:
		detail.SenderAddress = &tx.SenderAddress
		detail.Calldata = tx.CallData
		detail.Signature = tx.Signature
		detail.Nonce = tx.Nonce.Hex()
	case *core.InvokeTransactionV3:
		detail.SenderAddress = &tx.SenderAddress
		detail.Calldata = tx.CallData
		detail.Signature = tx.Signature
		detail.Nonce = tx.Nonce.Hex()
	case *core.L1HandlerTransaction:
		detail.SenderAddress = &tx.ContractAddress
		detail.Calldata = tx.CallData
		detail.Nonce = strconv.FormatUint(tx.Nonce, 10)
	case *core.DeclareTransactionV0:
		detail.SenderAddress = &tx.SenderAddress
		detail.Signature = tx.Signature
		detail.ClassHash = &tx.ClassHash
	case *core.DeclareTransactionV1:
		detail.SenderAddress = &tx.SenderAddress
		detail.Signature = tx.Signature
		detail.Nonce = tx.Nonce.Hex()
		detail.ClassHash = &tx.ClassHash
	case *core.DeclareTransactionV2:
		detail.SenderAddress = &tx.SenderAddress
		detail.Signature = tx.Signature
		detail.Nonce = tx.Nonce.Hex()
		detail.ClassHash = &tx.ClassHash
	case *core.DeclareTransactionV3:
		detail.SenderAddress = &tx.SenderAddress
		detail.Signature = tx.Signature
		detail.Nonce = tx.Nonce.Hex()
		detail.ClassHash = &tx.ClassHash
	case *core.DeployTransaction:
		detail.Calldata = tx.ConstructorCallData
		detail.ClassHash = &tx.ClassHash
	case *core.DeployAccountTransactionV1:
		detail.Calldata = tx.ConstructorCallData
		detail.Signature = tx.Signature
		detail.Nonce = tx.Nonce.Hex()
		detail.ClassHash = &tx.ClassHash
	case *core.DeployAccountTransactionV3:
		detail.Calldata = tx.ConstructorCallData
		detail.Signature = tx.Signature
		detail.Nonce = tx.Nonce.Hex()
		detail.ClassHash = &tx.ClassHash
	default:
		return nil, fmt.Errorf("unexpected transaction type %T", tx)
	}

	switch receipt := txr.Receipt.(type) {
	case *core.DeployReceipt:
		detail.ContractAddress = &receipt.ContractAddress
	case *core.DeployAccountReceipt:
		detail.ContractAddress = &receipt.ContractAddress
	}
	return detail, nil
}

// transactionRecord decodes the record at (blockNum, index). ErrNotFound covers
// both a missing and an undecodable record.
func (r *Reader) transactionRecord(blockNum, index uint64) (*core.TransactionWithReceipt, error) {
	if blockNum > math.MaxUint32 || index > math.MaxUint16 {
		return nil, ErrNotFound
	}
	key := db.BlockTransactionKey(uint32(blockNum), uint16(index))
	return record(r, db.BlockTransactions, key, core.UnmarshalTransactionWithReceipt)
}

// Transaction returns transaction index of block blockNum. When its record is
// missing or does not decode, but the block lists a hash at that index, a
// degraded placeholder is returned instead.
func (r *Reader) Transaction(blockNum, index uint64) (*TransactionDetail, error) {
	txr, err := r.transactionRecord(blockNum, index)
	if err == nil {
		return newTransactionDetail(txr, blockNum, index)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	block, err := r.blockInfo(blockNum)
	if err != nil {
		return nil, err
	}
	if index >= uint64(len(block.TxHashes)) {
		return nil, ErrNotFound
	}
	return placeholderDetail(block.TxHashes[index], blockNum, index), nil
}

// BlockTransactions summarises every transaction the block lists.
func (r *Reader) BlockTransactions(blockNum uint64) ([]TransactionSummary, error) {
	block, err := r.blockInfo(blockNum)
	if err != nil {
		return nil, err
	}

	summaries := make([]TransactionSummary, 0, len(block.TxHashes))
	for i, hash := range block.TxHashes {
		index := uint64(i)
		txr, err := r.transactionRecord(blockNum, index)
		switch {
		case err == nil:
			summaries = append(summaries, summarise(txr, blockNum, index))
		case errors.Is(err, ErrNotFound):
			summaries = append(summaries, placeholderSummary(hash, blockNum, index))
		default:
			return nil, err
		}
	}
	return summaries, nil
}

// FindTransactionByHash looks the hash up in the hash index. The hash may omit
// the 0x prefix and leading zeros.
func (r *Reader) FindTransactionByHash(hash string) (*TxLocation, error) {
	key, err := felt.Parse(hash)
	if err != nil {
		return nil, ErrNotFound
	}
	loc, err := record(r, db.TxHashToIndex, key.Marshal(), core.UnmarshalTxLocation)
	if err != nil {
		return nil, err
	}
	return &TxLocation{BlockNumber: uint64(loc.BlockNumber), Index: uint64(loc.Index)}, nil
}

func (r *Reader) TransactionByHash(hash string) (*TransactionDetail, error) {
	loc, err := r.FindTransactionByHash(hash)
	if err != nil {
		return nil, err
	}
	return r.Transaction(loc.BlockNumber, loc.Index)
}
