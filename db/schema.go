package db

import (
	"encoding/binary"

	"github.com/NethermindEth/makimono/core/felt"
)

// Column is the name of a column family written by the node.
type Column string

const (
	// block number (u32 BE) -> block info
	BlockInfo Column = "block_info"
	// block number (u32 BE) ‖ tx index (u16 BE) -> transaction with receipt
	BlockTransactions Column = "block_transactions"
	// tx hash -> (block number u32, tx index u16)
	TxHashToIndex Column = "tx_hash_to_index"
	// contract address -> class hash
	ContractClassHashes Column = "contract_class_hashes"
	// contract address -> nonce
	ContractNonces Column = "contract_nonces"
	// contract address ‖ storage key -> value
	ContractStorage Column = "contract_storage"
	// class hash -> class info
	ClassInfo Column = "class_info"
)

// Columns lists every column this package knows how to read.
var Columns = []Column{
	BlockInfo,
	BlockTransactions,
	TxHashToIndex,
	ContractClassHashes,
	ContractNonces,
	ContractStorage,
	ClassInfo,
}

func (c Column) String() string {
	return string(c)
}

const (
	BlockNumberKeySize      = 4
	BlockTransactionKeySize = 6
	ContractStorageKeySize  = 2 * felt.Bytes
)

func BlockInfoKey(blockNum uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, blockNum)
}

func BlockTransactionKey(blockNum uint32, txIndex uint16) []byte {
	key := make([]byte, 0, BlockTransactionKeySize)
	key = binary.BigEndian.AppendUint32(key, blockNum)
	return binary.BigEndian.AppendUint16(key, txIndex)
}

func ContractStorageKey(addr, key *felt.Felt) []byte {
	return append(addr.Marshal(), key.Marshal()...)
}

// BlockNumberFromKey parses a block_info key. ok is false for keys of any other size.
func BlockNumberFromKey(key []byte) (uint32, bool) {
	if len(key) != BlockNumberKeySize {
		return 0, false
	}
	return binary.BigEndian.Uint32(key), true
}
