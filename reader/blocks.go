package reader

import (
	"errors"
	"fmt"
	"math"

	"github.com/Masterminds/semver/v3"
	"github.com/NethermindEth/makimono/core"
	"github.com/NethermindEth/makimono/core/felt"
	"github.com/NethermindEth/makimono/db"
	"github.com/NethermindEth/makimono/utils"
	"github.com/jinzhu/copier"
)

var (
	// blocks before these versions carry zeroes in the matching price slots
	l1DataGasVersion = semver.MustParse("0.13.1")
	l2GasVersion     = semver.MustParse("0.13.4")
)

// BlockSummary is the list view of a block.
type BlockSummary struct {
	Number           uint64    `json:"block_number"`
	Hash             felt.Felt `json:"block_hash"`
	ParentHash       felt.Felt `json:"parent_hash"`
	Timestamp        uint64    `json:"timestamp"`
	TransactionCount uint64    `json:"transaction_count"`
}

// BlockDetail carries every header field of a block. Field names follow
// core.Header so that the header can be copied over wholesale.
type BlockDetail struct {
	Number                uint64               `json:"block_number"`
	Hash                  felt.Felt            `json:"block_hash"`
	ParentHash            felt.Felt            `json:"parent_hash"`
	GlobalStateRoot       felt.Felt            `json:"state_root"`
	SequencerAddress      felt.Felt            `json:"sequencer_address"`
	Timestamp             uint64               `json:"timestamp"`
	TransactionCount      uint64               `json:"transaction_count"`
	EventCount            uint64               `json:"event_count"`
	TransactionCommitment felt.Felt            `json:"transaction_commitment"`
	EventCommitment       felt.Felt            `json:"event_commitment"`
	StateDiffLength       *uint64              `json:"state_diff_length,omitempty"`
	StateDiffCommitment   *felt.Felt           `json:"state_diff_commitment,omitempty"`
	ReceiptCommitment     *felt.Felt           `json:"receipt_commitment,omitempty"`
	ProtocolVersion       core.StarknetVersion `json:"protocol_version"`
	GasPrices             GasPrices            `json:"gas_prices" copier:"-"`
	L1DAMode              core.L1DAMode        `json:"l1_da_mode"`
	L2GasUsed             core.Uint128         `json:"l2_gas_used"`
	TxHashes              []felt.Felt          `json:"tx_hashes"`
}

// GasPrices holds the prices a block was built with. Prices of resources the
// block's protocol version did not price yet are left out.
type GasPrices struct {
	ETHL1GasPrice      core.Uint128  `json:"eth_l1_gas_price"`
	STRKL1GasPrice     core.Uint128  `json:"strk_l1_gas_price"`
	ETHL1DataGasPrice  *core.Uint128 `json:"eth_l1_data_gas_price,omitempty"`
	STRKL1DataGasPrice *core.Uint128 `json:"strk_l1_data_gas_price,omitempty"`
	ETHL2GasPrice      *core.Uint128 `json:"eth_l2_gas_price,omitempty"`
	STRKL2GasPrice     *core.Uint128 `json:"strk_l2_gas_price,omitempty"`
}

func newGasPrices(h *core.Header) GasPrices {
	p := h.GasPrices
	prices := GasPrices{
		ETHL1GasPrice:  p.ETHL1GasPrice,
		STRKL1GasPrice: p.STRKL1GasPrice,
	}
	if h.ProtocolVersion.AtLeast(l1DataGasVersion) {
		prices.ETHL1DataGasPrice = utils.HeapPtr(p.ETHL1DataGasPrice)
		prices.STRKL1DataGasPrice = utils.HeapPtr(p.STRKL1DataGasPrice)
	}
	if h.ProtocolVersion.AtLeast(l2GasVersion) {
		prices.ETHL2GasPrice = utils.HeapPtr(p.ETHL2GasPrice)
		prices.STRKL2GasPrice = utils.HeapPtr(p.STRKL2GasPrice)
	}
	return prices
}

func newBlockDetail(info *core.BlockInfo) (*BlockDetail, error) {
	detail := new(BlockDetail)
	if err := copier.Copy(detail, &info.Header); err != nil {
		return nil, fmt.Errorf("copy header of block %d: %w", info.Header.Number, err)
	}
	detail.Hash = info.Hash
	detail.GasPrices = newGasPrices(&info.Header)
	detail.L2GasUsed = info.TotalL2GasUsed
	detail.TxHashes = info.TxHashes
	return detail, nil
}

// blockInfo returns the decoded record of block n, from the cache when possible.
func (r *Reader) blockInfo(n uint64) (*core.BlockInfo, error) {
	if n > math.MaxUint32 {
		return nil, ErrNotFound
	}
	num := uint32(n)
	if r.blockCache != nil {
		if info, ok := r.blockCache.Get(num); ok {
			return info, nil
		}
	}

	info, err := record(r, db.BlockInfo, db.BlockInfoKey(num), core.UnmarshalBlockInfo)
	if err != nil {
		return nil, err
	}
	if r.blockCache != nil {
		r.blockCache.Add(num, info)
	}
	return info, nil
}

// Block returns the full header of block n.
func (r *Reader) Block(n uint64) (*BlockDetail, error) {
	info, err := r.blockInfo(n)
	if err != nil {
		return nil, err
	}
	return newBlockDetail(info)
}

func (r *Reader) BlockSummary(n uint64) (*BlockSummary, error) {
	detail, err := r.Block(n)
	if err != nil {
		return nil, err
	}
	summary := new(BlockSummary)
	if err = copier.Copy(summary, detail); err != nil {
		return nil, fmt.Errorf("summarise block %d: %w", n, err)
	}
	return summary, nil
}

// Blocks lists the blocks in [latest-offset-limit+1, latest-offset], newest
// first. Heights that are missing or do not decode are left out, so the result
// can be shorter than limit.
func (r *Reader) Blocks(offset, limit uint64) ([]BlockSummary, error) {
	latest, err := r.LatestBlockNumber()
	if errors.Is(err, ErrNotFound) {
		return []BlockSummary{}, nil
	} else if err != nil {
		return nil, err
	}
	if offset > latest {
		return []BlockSummary{}, nil
	}

	blocks := make([]BlockSummary, 0, min(limit, latest-offset+1))
	for i, n := uint64(0), latest-offset; i < limit; i, n = i+1, n-1 {
		summary, err := r.BlockSummary(n)
		if err == nil {
			blocks = append(blocks, *summary)
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return blocks, nil
}

// LatestBlockNumber returns the highest block number present in the store.
// Keys of unexpected size are skipped.
func (r *Reader) LatestBlockNumber() (uint64, error) {
	it, err := r.store.NewIterator(db.BlockInfo, nil, true)
	if err != nil {
		return 0, fmt.Errorf("iterate %s: %w", db.BlockInfo, err)
	}
	defer it.Close()

	for it.Next() {
		if n, ok := db.BlockNumberFromKey(it.Key()); ok {
			return uint64(n), nil
		}
	}
	return 0, ErrNotFound
}
