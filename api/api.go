// Package api serves the reader as JSON over HTTP. Every route is read-only.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/NethermindEth/makimono/reader"
	"github.com/NethermindEth/makimono/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// Reader is the query surface the routes are served from
type Reader interface {
	Stats() (*reader.Stats, error)
	LatestBlockNumber() (uint64, error)
	Blocks(offset, limit uint64) ([]reader.BlockSummary, error)
	Block(n uint64) (*reader.BlockDetail, error)
	BlockTransactions(blockNum uint64) ([]reader.TransactionSummary, error)
	Transaction(blockNum, index uint64) (*reader.TransactionDetail, error)
	TransactionByHash(hash string) (*reader.TransactionDetail, error)
	Contract(address string) (*reader.ContractInfo, error)
	ContractStorage(address string, limit int) ([]reader.StorageEntry, error)
	ListContracts(limit int) ([]reader.ContractInfo, error)
	Class(hash string) (*reader.ClassInfo, error)
	ClassDetail(hash string) (*reader.ClassDetail, error)
	ListClasses(limit int) ([]reader.ClassInfo, error)
}

var _ Reader = (*reader.Reader)(nil)

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Handler struct {
	reader   Reader
	log      utils.SimpleLogger
	listener EventListener
	engine   *gin.Engine
}

func New(r Reader, log utils.SimpleLogger) *Handler {
	gin.SetMode(gin.ReleaseMode)

	h := &Handler{
		reader:   r,
		log:      log,
		listener: &SelectiveListener{},
		engine:   gin.New(),
	}
	h.engine.Use(h.observe, gin.Recovery())
	h.engine.NoRoute(func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "no route for "+c.Request.URL.Path)
	})

	api := h.engine.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/stats", h.stats)

		api.GET("/blocks", h.blocks)
		api.GET("/blocks/:number", h.block)
		api.GET("/blocks/:number/transactions", h.blockTransactions)
		api.GET("/blocks/:number/transactions/:index", h.transactionByIndex)
		api.GET("/transactions/:hash", h.transactionByHash)

		api.GET("/contracts", h.contracts)
		api.GET("/contracts/:address", h.contract)
		api.GET("/contracts/:address/storage", h.contractStorage)

		api.GET("/classes", h.classes)
		api.GET("/classes/:hash", h.class)
	}
	return h
}

// WithListener registers an EventListener
func (h *Handler) WithListener(listener EventListener) *Handler {
	h.listener = listener
	return h
}

// HTTPHandler returns the routes behind CORS. An empty origin list allows any
// origin.
func (h *Handler) HTTPHandler(corsOrigins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	}).Handler(h.engine)
}

// observe logs every request and reports it to the listener
func (h *Handler) observe(c *gin.Context) {
	start := time.Now()
	c.Next()
	took := time.Since(start)

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	status := c.Writer.Status()
	h.listener.OnRequest(route, status, took)
	h.log.Debugw("Handled request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", status,
		"took", took)
}

func writeError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Error{Code: code, Message: message})
}

// fail answers with 404 and notFound for reader.ErrNotFound, and with 500 for
// anything else.
func (h *Handler) fail(c *gin.Context, err error, notFound string) {
	if errors.Is(err, reader.ErrNotFound) {
		writeError(c, http.StatusNotFound, notFound)
		return
	}
	h.log.Errorw("Request failed", "path", c.Request.URL.Path, "err", err)
	writeError(c, http.StatusInternalServerError, "An unexpected error occurred.")
}

type Health struct {
	Status string `json:"status"`
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, Health{Status: "ok"})
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.reader.Stats()
	if err != nil {
		h.fail(c, err, "no stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
