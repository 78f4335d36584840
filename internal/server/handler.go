// Package server exposes a supply.Source over HTTP using the history API
// wire contract.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/javiermolinar/abastecimentos/internal/supply"
)

// historyQuery binds the query string of the history endpoint.
type historyQuery struct {
	StartDate string `form:"data_inicial" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"data_final" binding:"omitempty,datetime=2006-01-02"`
	ProductID string `form:"produto_id"`
	UserID    string `form:"usuario_id"`
	Page      int    `form:"pagina,default=1" binding:"min=1"`
	PageSize  int    `form:"limite,default=20" binding:"min=1,max=100"`
	Sort      string `form:"ordenacao,default=created_at_desc" binding:"oneof=created_at_desc created_at_asc"`
}

func (q historyQuery) params() supply.Params {
	f := supply.Filter{
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		ProductID: supply.ID(q.ProductID),
		UserID:    q.UserID,
		Sort:      supply.Sort(q.Sort),
		Page:      q.Page,
		PageSize:  q.PageSize,
	}
	return f.Params()
}

// HistoryHandler serves history pages and product lookups.
type HistoryHandler struct {
	src    supply.Source
	logger *zap.Logger
}

// NewHistoryHandler constructs the HTTP handler adapter.
func NewHistoryHandler(src supply.Source, logger *zap.Logger) *HistoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryHandler{src: src, logger: logger}
}

// History returns one page of supply records.
func (h *HistoryHandler) History(c *gin.Context) {
	var q historyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logger.Warn("invalid history query", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query: " + err.Error()})
		return
	}

	params := q.params()
	if err := params.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.src.ListHistory(c.Request.Context(), params)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed listing history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// Products returns products matching the q query parameter.
func (h *HistoryHandler) Products(c *gin.Context) {
	products, err := h.src.SearchProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.Error("failed searching products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search products"})
		return
	}
	if products == nil {
		products = []supply.Product{}
	}

	c.JSON(http.StatusOK, products)
}

func isValidationError(err error) bool {
	return errors.Is(err, supply.ErrInvalidDate) ||
		errors.Is(err, supply.ErrInvalidPage) ||
		errors.Is(err, supply.ErrInvalidPageSize) ||
		errors.Is(err, supply.ErrInvalidSort)
}
