package api

import (
	"net/http"
	"strconv"

	"github.com/NethermindEth/makimono/validator"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/schema"
)

const (
	DefaultLimit = 20
	MaxLimit     = 1000
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

type PageQuery struct {
	Offset uint64 `schema:"offset"`
	Limit  uint64 `schema:"limit" validate:"max=1000"`
}

type LimitQuery struct {
	Limit uint64 `schema:"limit" validate:"max=1000"`
}

type ClassQuery struct {
	Full bool `schema:"full"`
}

// bindQuery decodes the query string over the defaults already held by dst and
// validates the result. It answers with 400 and returns false on failure.
func bindQuery(c *gin.Context, dst any) bool {
	if err := decoder.Decode(dst, c.Request.URL.Query()); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return false
	}
	if err := validator.Validator().Struct(dst); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// uintParam parses the path parameter name. It answers with 400 and returns
// false when the parameter is not a number.
func uintParam(c *gin.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid "+name+": "+c.Param(name))
		return 0, false
	}
	return n, true
}
