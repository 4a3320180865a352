package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/markethub/backend/internal/application/catalog"
)

// CatalogHandler serves the public category and shop lists.
type CatalogHandler struct {
	BaseHandler
	query *catalogapp.QueryService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(query *catalogapp.QueryService) *CatalogHandler {
	return &CatalogHandler{query: query}
}

// ListCategories handles GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.query.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// ListShops handles GET /shops
func (h *CatalogHandler) ListShops(c *gin.Context) {
	shops, err := h.query.ListShops(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shops)
}
