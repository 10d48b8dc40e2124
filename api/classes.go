package api

import (
	"fmt"
	"net/http"

	"github.com/NethermindEth/makimono/reader"
	"github.com/gin-gonic/gin"
)

type ClassList struct {
	Classes []reader.ClassInfo `json:"classes"`
	Total   int                `json:"total"`
}

func (h *Handler) classes(c *gin.Context) {
	query := LimitQuery{Limit: DefaultLimit}
	if !bindQuery(c, &query) {
		return
	}

	classes, err := h.reader.ListClasses(int(query.Limit))
	if err != nil {
		h.fail(c, err, "no classes")
		return
	}
	c.JSON(http.StatusOK, ClassList{Classes: classes, Total: len(classes)})
}

// class answers with the discriminant-only ClassInfo unless full=true asks for
// the decoded body.
func (h *Handler) class(c *gin.Context) {
	var query ClassQuery
	if !bindQuery(c, &query) {
		return
	}

	hash := c.Param("hash")
	notFound := fmt.Sprintf("Class %s not found", hash)
	if query.Full {
		detail, err := h.reader.ClassDetail(hash)
		if err != nil {
			h.fail(c, err, notFound)
			return
		}
		c.JSON(http.StatusOK, detail)
		return
	}

	class, err := h.reader.Class(hash)
	if err != nil {
		h.fail(c, err, notFound)
		return
	}
	c.JSON(http.StatusOK, class)
}
