package core

import (
	"github.com/NethermindEth/makimono/core/felt"
	"github.com/NethermindEth/makimono/encoder/bincode"
)

// Field elements are stored as length-prefixed byte buffers.

func decodeFelt(d *bincode.Decoder) felt.Felt {
	return felt.FromBytes(d.Bytes())
}

func decodeFelts(d *bincode.Decoder) []felt.Felt {
	return bincode.Seq(d, decodeFelt)
}

func decodeOptionalFelt(d *bincode.Decoder) *felt.Felt {
	if !d.Option() {
		return nil
	}
	f := decodeFelt(d)
	return &f
}

func decodeOptionalU64(d *bincode.Decoder) *uint64 {
	if !d.Option() {
		return nil
	}
	v := d.U64()
	return &v
}
