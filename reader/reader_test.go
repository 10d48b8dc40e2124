package reader_test

import (
	"testing"

	"github.com/NethermindEth/makimono/core"
	"github.com/NethermindEth/makimono/core/coretest"
	"github.com/NethermindEth/makimono/core/felt"
	"github.com/NethermindEth/makimono/db"
	"github.com/NethermindEth/makimono/db/pebble"
	"github.com/NethermindEth/makimono/reader"
	"github.com/NethermindEth/makimono/utils"
)

// records collects store content for a test, in node layout.
type records map[db.Column]map[string][]byte

func (r records) put(col db.Column, key, value []byte) records {
	if r[col] == nil {
		r[col] = make(map[string][]byte)
	}
	r[col][string(key)] = value
	return r
}

func (r records) block(b *core.BlockInfo) records {
	return r.put(db.BlockInfo, db.BlockInfoKey(uint32(b.Header.Number)), coretest.EncodeBlockInfo(b))
}

func (r records) tx(blockNum uint32, index uint16, tx core.Transaction, receipt core.Receipt) records {
	return r.put(db.BlockTransactions, db.BlockTransactionKey(blockNum, index),
		coretest.EncodeTransactionWithReceipt(tx, receipt))
}

func newStore(t *testing.T, content records) db.Store {
	t.Helper()
	return pebble.NewMemTest(t, func(w *pebble.Writer) error {
		for col, kvs := range content {
			for k, v := range kvs {
				if err := w.Put(col, []byte(k), v); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func newReader(t *testing.T, content records) *reader.Reader {
	t.Helper()
	return reader.New(newStore(t, content), utils.NewNopLogger())
}

// chain returns blocks 0..n-1 without transactions.
func chain(n uint64) records {
	content := records{}
	for i := range n {
		content.block(coretest.Block(i))
	}
	return content
}

func hashes(n int) []felt.Felt {
	out := make([]felt.Felt, n)
	for i := range out {
		out[i] = coretest.FeltN(0x7000 + uint64(i))
	}
	return out
}
