package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderingapp "github.com/markethub/backend/internal/application/ordering"
)

// OrderHandler serves order placement and the buyer's order history.
type OrderHandler struct {
	BaseHandler
	orders *orderingapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *orderingapp.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type placeOrderRequest struct {
	ID      uuid.UUID `json:"id" binding:"required"`
	Contact uuid.UUID `json:"contact" binding:"required"`
}

// Place handles POST /order
func (h *OrderHandler) Place(c *gin.Context) {
	account, err := accountID(c)
	if err != nil {
		h.Unauthorized(c)
		return
	}

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orders.Place(c.Request.Context(), account, req.ID, req.Contact)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List handles GET /order
func (h *OrderHandler) List(c *gin.Context) {
	account, err := accountID(c)
	if err != nil {
		h.Unauthorized(c)
		return
	}

	orders, err := h.orders.List(c.Request.Context(), account)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Get handles GET /order/:id
func (h *OrderHandler) Get(c *gin.Context) {
	account, err := accountID(c)
	if err != nil {
		h.Unauthorized(c)
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.orders.Get(c.Request.Context(), account, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel handles DELETE /order/:id
func (h *OrderHandler) Cancel(c *gin.Context) {
	account, err := accountID(c)
	if err != nil {
		h.Unauthorized(c)
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.orders.Cancel(c.Request.Context(), account, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
