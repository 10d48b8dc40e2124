package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) transactionByIndex(c *gin.Context) {
	n, ok := uintParam(c, "number")
	if !ok {
		return
	}
	index, ok := uintParam(c, "index")
	if !ok {
		return
	}

	tx, err := h.reader.Transaction(n, index)
	if err != nil {
		h.fail(c, err, fmt.Sprintf("Transaction at block %d index %d not found", n, index))
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *Handler) transactionByHash(c *gin.Context) {
	hash := c.Param("hash")
	tx, err := h.reader.TransactionByHash(hash)
	if err != nil {
		h.fail(c, err, fmt.Sprintf("Transaction %s not found", hash))
		return
	}
	c.JSON(http.StatusOK, tx)
}
