package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/markethub/backend/internal/application/catalog"
	partnerapp "github.com/markethub/backend/internal/application/partner"
)

// ProductHandler serves the buyer-facing catalog and the partner's feed
// import endpoint.
type ProductHandler struct {
	BaseHandler
	query   *catalogapp.QueryService
	partner *partnerapp.Service
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(query *catalogapp.QueryService, partner *partnerapp.Service) *ProductHandler {
	return &ProductHandler{query: query, partner: partner}
}

// List handles GET /product. Optional shop_id and category_id query
// parameters narrow the result; only active shops are searched.
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.SearchFilter

	if raw := c.Query("shop_id"); raw != "" {
		shopID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid shop_id")
			return
		}
		filter.ShopID = shopID
	}
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := strconv.Atoi(raw)
		if err != nil || categoryID <= 0 {
			h.BadRequest(c, "Invalid category_id")
			return
		}
		filter.CategoryID = categoryID
	}

	listings, err := h.query.SearchListings(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, listings)
}

// Get handles GET /product/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing id")
		return
	}

	listing, err := h.query.GetListing(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, listing)
}

// Update handles POST /product/update: downloads and imports the partner's
// price list, replacing the shop's previous listings.
func (h *ProductHandler) Update(c *gin.Context) {
	ownerID, err := accountID(c)
	if err != nil {
		h.Unauthorized(c)
		return
	}

	// The body is optional: without a URL the shop's stored feed URL is
	// re-fetched.
	var req partnerapp.IngestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	result, err := h.partner.Ingest(c.Request.Context(), ownerID, req.URL)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
