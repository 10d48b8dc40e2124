package core

import (
	"github.com/NethermindEth/makimono/core/felt"
	"github.com/NethermindEth/makimono/encoder/bincode"
)

// TxLocation is the value of the tx_hash_to_index column.
type TxLocation struct {
	BlockNumber uint32
	Index       uint16
}

func decodeTxLocation(d *bincode.Decoder) TxLocation {
	return TxLocation{
		BlockNumber: d.U32(),
		Index:       d.U16(),
	}
}

func UnmarshalTxLocation(b []byte) (TxLocation, error) {
	return bincode.Unmarshal(b, decodeTxLocation)
}

// UnmarshalFelt decodes a standalone felt value: a contract's class hash or a
// storage slot.
func UnmarshalFelt(b []byte) (felt.Felt, error) {
	return bincode.Unmarshal(b, decodeFelt)
}

// UnmarshalNonce decodes a contract_nonces value.
func UnmarshalNonce(b []byte) (uint64, error) {
	return bincode.Unmarshal(b, (*bincode.Decoder).U64)
}
