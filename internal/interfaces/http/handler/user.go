package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/markethub/backend/internal/application/identity"
	orderingapp "github.com/markethub/backend/internal/application/ordering"
)

// UserHandler serves registration, login, profile and delivery contacts.
type UserHandler struct {
	BaseHandler
	accounts *identityapp.AccountService
	orders   *orderingapp.OrderService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(accounts *identityapp.AccountService, orders *orderingapp.OrderService) *UserHandler {
	return &UserHandler{accounts: accounts, orders: orders}
}

// Register handles POST /user/register
func (h *UserHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// Verify handles POST /user/register/verification
func (h *UserHandler) Verify(c *gin.Context) {
	var req identityapp.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.accounts.Verify(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}

// Login handles POST /user/login
func (h *UserHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetDetails handles GET /user/details
func (h *UserHandler) GetDetails(c *gin.Context) {
	account, err := accountID(c)
	if err != nil {
		h.Unauthorized(c)
		return
	}

	details, err := h.accounts.Get(c.Request.Context(), account)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, details)
}

// UpdateDetails handles POST /user/details
func (h *UserHandler) UpdateDetails(c *gin.Context) {
	account, err := accountID(c)
	if err != nil {
		h.Unauthorized(c)
		return
	}

	var req identityapp.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	details, err := h.accounts.Update(c.Request.Context(), account, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, details)
}

// ListContacts handles GET /user/contact
func (h *UserHandler) ListContacts(c *gin.Context) {
	account, err := accountID(c)
	if err != nil {
		h.Unauthorized(c)
		return
	}

	contacts, err := h.orders.ListContacts(c.Request.Context(), account)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contacts)
}

// CreateContact handles POST /user/contact
func (h *UserHandler) CreateContact(c *gin.Context) {
	account, err := accountID(c)
	if err != nil {
		h.Unauthorized(c)
		return
	}

	var req orderingapp.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	contact, err := h.orders.CreateContact(c.Request.Context(), account, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// UpdateContact handles PUT /user/contact/:id
func (h *UserHandler) UpdateContact(c *gin.Context) {
	account, err := accountID(c)
	if err != nil {
		h.Unauthorized(c)
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contact id")
		return
	}

	var req orderingapp.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	contact, err := h.orders.UpdateContact(c.Request.Context(), account, contactID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// DeleteContact handles DELETE /user/contact/:id
func (h *UserHandler) DeleteContact(c *gin.Context) {
	account, err := accountID(c)
	if err != nil {
		h.Unauthorized(c)
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contact id")
		return
	}

	if err := h.orders.DeleteContact(c.Request.Context(), account, contactID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c)
}
