package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderingapp "github.com/markethub/backend/internal/application/ordering"
)

// BasketHandler serves the account's basket. Every mutation responds with
// the refreshed basket so clients always see current prices and totals.
type BasketHandler struct {
	BaseHandler
	baskets *orderingapp.BasketService
}

// NewBasketHandler creates a new BasketHandler
func NewBasketHandler(baskets *orderingapp.BasketService) *BasketHandler {
	return &BasketHandler{baskets: baskets}
}

type addItemsRequest struct {
	Items []orderingapp.ItemRequest `json:"items" binding:"required,min=1,dive"`
}

type updateItemsRequest struct {
	Items []orderingapp.ItemUpdateRequest `json:"items" binding:"required,min=1,dive"`
}

type deleteItemsRequest struct {
	// Comma-separated item ids, matching the historical wire format
	Items string `json:"items" binding:"required"`
}

// Get handles GET /basket
func (h *BasketHandler) Get(c *gin.Context) {
	account, err := accountID(c)
	if err != nil {
		h.Unauthorized(c)
		return
	}

	basket, err := h.baskets.GetBasket(c.Request.Context(), account)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, basket)
}

// Add handles POST /basket
func (h *BasketHandler) Add(c *gin.Context) {
	account, err := accountID(c)
	if err != nil {
		h.Unauthorized(c)
		return
	}

	var req addItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	basket, err := h.baskets.AddItems(c.Request.Context(), account, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, basket)
}

// Update handles PUT /basket
func (h *BasketHandler) Update(c *gin.Context) {
	account, err := accountID(c)
	if err != nil {
		h.Unauthorized(c)
		return
	}

	var req updateItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	basket, err := h.baskets.UpdateItems(c.Request.Context(), account, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, basket)
}

// Delete handles DELETE /basket
func (h *BasketHandler) Delete(c *gin.Context) {
	account, err := accountID(c)
	if err != nil {
		h.Unauthorized(c)
		return
	}

	var req deleteItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	// Malformed tokens are dropped, not rejected; only the parseable
	// remainder is removed.
	itemIDs := make([]uuid.UUID, 0)
	for _, raw := range strings.Split(req.Items, ",") {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		itemIDs = append(itemIDs, id)
	}

	basket, err := h.baskets.RemoveItems(c.Request.Context(), account, itemIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, basket)
}
