package api

import (
	"fmt"
	"net/http"

	"github.com/NethermindEth/makimono/reader"
	"github.com/gin-gonic/gin"
)

type ContractList struct {
	Contracts []reader.ContractInfo `json:"contracts"`
	Total     int                   `json:"total"`
}

type StorageList struct {
	// As requested, not normalised
	Address string                `json:"address"`
	Entries []reader.StorageEntry `json:"entries"`
	Total   int                   `json:"total"`
}

func (h *Handler) contracts(c *gin.Context) {
	query := LimitQuery{Limit: DefaultLimit}
	if !bindQuery(c, &query) {
		return
	}

	contracts, err := h.reader.ListContracts(int(query.Limit))
	if err != nil {
		h.fail(c, err, "no contracts")
		return
	}
	c.JSON(http.StatusOK, ContractList{Contracts: contracts, Total: len(contracts)})
}

func (h *Handler) contract(c *gin.Context) {
	address := c.Param("address")
	contract, err := h.reader.Contract(address)
	if err != nil {
		h.fail(c, err, fmt.Sprintf("Contract %s not found", address))
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) contractStorage(c *gin.Context) {
	query := LimitQuery{Limit: DefaultLimit}
	if !bindQuery(c, &query) {
		return
	}

	address := c.Param("address")
	entries, err := h.reader.ContractStorage(address, int(query.Limit))
	if err != nil {
		h.fail(c, err, fmt.Sprintf("Contract %s not found", address))
		return
	}
	c.JSON(http.StatusOK, StorageList{Address: address, Entries: entries, Total: len(entries)})
}
