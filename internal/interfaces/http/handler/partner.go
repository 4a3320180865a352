package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	partnerapp "github.com/markethub/backend/internal/application/partner"
)

// PartnerHandler serves the shop owner's workflow: shop state and incoming
// orders. All routes require the shop role.
type PartnerHandler struct {
	BaseHandler
	partner *partnerapp.Service
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(partner *partnerapp.Service) *PartnerHandler {
	return &PartnerHandler{partner: partner}
}

// GetState handles GET /partner/state
func (h *PartnerHandler) GetState(c *gin.Context) {
	ownerID, err := accountID(c)
	if err != nil {
		h.Unauthorized(c)
		return
	}

	shop, err := h.partner.GetShop(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shop)
}

// SetState handles POST /partner/state
func (h *PartnerHandler) SetState(c *gin.Context) {
	ownerID, err := accountID(c)
	if err != nil {
		h.Unauthorized(c)
		return
	}

	var req partnerapp.UpdateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	shop, err := h.partner.SetShopState(c.Request.Context(), ownerID, *req.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shop)
}

// ListOrders handles GET /partner/orders
func (h *PartnerHandler) ListOrders(c *gin.Context) {
	ownerID, err := accountID(c)
	if err != nil {
		h.Unauthorized(c)
		return
	}

	orders, err := h.partner.ListIncomingOrders(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// AdvanceOrder handles POST /partner/orders/:id/status
func (h *PartnerHandler) AdvanceOrder(c *gin.Context) {
	ownerID, err := accountID(c)
	if err != nil {
		h.Unauthorized(c)
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	var req partnerapp.AdvanceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.partner.AdvanceOrder(c.Request.Context(), ownerID, orderID, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
