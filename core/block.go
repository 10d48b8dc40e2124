package core

import (
	"github.com/NethermindEth/makimono/core/felt"
	"github.com/NethermindEth/makimono/encoder/bincode"
)

type L1DAMode uint8

const (
	Calldata L1DAMode = iota
	Blob
)

func (m L1DAMode) String() string {
	switch m {
	case Calldata:
		return "CALLDATA"
	case Blob:
		return "BLOB"
	default:
		return "UNKNOWN"
	}
}

func (m L1DAMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func decodeL1DAMode(d *bincode.Decoder) L1DAMode {
	switch v := d.Variant(); v {
	case 0:
		return Calldata
	case 1:
		return Blob
	default:
		d.UnknownVariant("L1DataAvailabilityMode", v)
		return Calldata
	}
}

type GasPrices struct {
	ETHL1GasPrice      Uint128 `json:"eth_l1_gas_price"`
	STRKL1GasPrice     Uint128 `json:"strk_l1_gas_price"`
	ETHL1DataGasPrice  Uint128 `json:"eth_l1_data_gas_price"`
	STRKL1DataGasPrice Uint128 `json:"strk_l1_data_gas_price"`
	ETHL2GasPrice      Uint128 `json:"eth_l2_gas_price"`
	STRKL2GasPrice     Uint128 `json:"strk_l2_gas_price"`
}

func decodeGasPrices(d *bincode.Decoder) GasPrices {
	return GasPrices{
		ETHL1GasPrice:      decodeUint128(d),
		STRKL1GasPrice:     decodeUint128(d),
		ETHL1DataGasPrice:  decodeUint128(d),
		STRKL1DataGasPrice: decodeUint128(d),
		ETHL2GasPrice:      decodeUint128(d),
		STRKL2GasPrice:     decodeUint128(d),
	}
}

type Header struct {
	// The hash of this block's parent
	ParentHash felt.Felt
	// The number (height) of this block
	Number uint64
	// The state commitment after this block
	GlobalStateRoot felt.Felt
	// The Starknet address of the sequencer who created this block
	SequencerAddress felt.Felt
	// The time the sequencer created this block before executing transactions
	Timestamp uint64
	// The number of transactions in a block
	TransactionCount      uint64
	TransactionCommitment felt.Felt
	// The number of events in a block
	EventCount      uint64
	EventCommitment felt.Felt
	// Absent on blocks produced before the commitments were introduced
	StateDiffLength     *uint64
	StateDiffCommitment *felt.Felt
	ReceiptCommitment   *felt.Felt
	ProtocolVersion     StarknetVersion
	GasPrices           GasPrices
	L1DAMode            L1DAMode
}

func decodeHeader(d *bincode.Decoder) Header {
	var h Header
	h.ParentHash = decodeFelt(d)
	h.Number = d.U64()
	h.GlobalStateRoot = decodeFelt(d)
	h.SequencerAddress = decodeFelt(d)
	h.Timestamp = d.U64()
	h.TransactionCount = d.U64()
	h.TransactionCommitment = decodeFelt(d)
	h.EventCount = d.U64()
	h.EventCommitment = decodeFelt(d)
	h.StateDiffLength = decodeOptionalU64(d)
	h.StateDiffCommitment = decodeOptionalFelt(d)
	h.ReceiptCommitment = decodeOptionalFelt(d)
	copy(h.ProtocolVersion[:], d.Fixed(len(h.ProtocolVersion)))
	h.GasPrices = decodeGasPrices(d)
	h.L1DAMode = decodeL1DAMode(d)
	return h
}

// BlockInfo is the record the node keeps per block in the block_info column.
type BlockInfo struct {
	Header         Header
	Hash           felt.Felt
	TotalL2GasUsed Uint128
	TxHashes       []felt.Felt
}

func decodeBlockInfo(d *bincode.Decoder) *BlockInfo {
	return &BlockInfo{
		Header:         decodeHeader(d),
		Hash:           decodeFelt(d),
		TotalL2GasUsed: decodeUint128(d),
		TxHashes:       decodeFelts(d),
	}
}

// UnmarshalBlockInfo decodes a block_info value.
func UnmarshalBlockInfo(b []byte) (*BlockInfo, error) {
	return bincode.Unmarshal(b, decodeBlockInfo)
}
