package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/NethermindEth/makimono/reader"
	"github.com/gin-gonic/gin"
)

type BlockList struct {
	Blocks []reader.BlockSummary `json:"blocks"`
	// Number of blocks up to the latest one, zero for an empty store
	Total  uint64 `json:"total"`
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

type TransactionList struct {
	Transactions []reader.TransactionSummary `json:"transactions"`
	BlockNumber  uint64                      `json:"block_number"`
	Total        int                         `json:"total"`
}

func (h *Handler) blocks(c *gin.Context) {
	query := PageQuery{Limit: DefaultLimit}
	if !bindQuery(c, &query) {
		return
	}

	blocks, err := h.reader.Blocks(query.Offset, query.Limit)
	if err != nil {
		h.fail(c, err, "no blocks")
		return
	}
	var total uint64
	latest, err := h.reader.LatestBlockNumber()
	if err == nil {
		total = latest + 1
	} else if !errors.Is(err, reader.ErrNotFound) {
		h.fail(c, err, "")
		return
	}

	c.JSON(http.StatusOK, BlockList{
		Blocks: blocks,
		Total:  total,
		Offset: query.Offset,
		Limit:  query.Limit,
	})
}

func (h *Handler) block(c *gin.Context) {
	n, ok := uintParam(c, "number")
	if !ok {
		return
	}
	block, err := h.reader.Block(n)
	if err != nil {
		h.fail(c, err, fmt.Sprintf("Block %d not found", n))
		return
	}
	c.JSON(http.StatusOK, block)
}

func (h *Handler) blockTransactions(c *gin.Context) {
	n, ok := uintParam(c, "number")
	if !ok {
		return
	}
	txs, err := h.reader.BlockTransactions(n)
	if err != nil {
		h.fail(c, err, fmt.Sprintf("Block %d not found", n))
		return
	}
	c.JSON(http.StatusOK, TransactionList{
		Transactions: txs,
		BlockNumber:  n,
		Total:        len(txs),
	})
}
