package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/interfaces/http/dto"
	"github.com/markethub/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides the shared response helpers. Business failures use
// the 200 {Status:false, Error} envelope; 401/403/404 are reserved for
// authentication, authorization and missing resources.
type BaseHandler struct{}

// accountID returns the authenticated account id from the JWT claims
func accountID(c *gin.Context) (uuid.UUID, error) {
	id := middleware.GetAccountID(c)
	if id == uuid.Nil {
		return uuid.Nil, shared.ErrUnauthorized
	}
	return id, nil
}

// Success sends a 200 envelope with data
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// OK sends a bare 200 {Status:true} envelope
func (h *BaseHandler) OK(c *gin.Context) {
	c.JSON(http.StatusOK, dto.Response{Status: true})
}

// Fail sends a business failure in the 200 envelope
func (h *BaseHandler) Fail(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.NewErrorResponse(message))
}

// BadRequest rejects a request that could not be parsed
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(message))
}

// BindError rejects a request whose body failed binding or validation
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	h.BadRequest(c, middleware.FormatBindingError(err))
}

// Unauthorized sends a 401 response
func (h *BaseHandler) Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
}

// HandleError maps service errors onto the wire format
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shared.ErrUnauthorized):
		h.Unauthorized(c)
	case errors.Is(err, shared.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse("Access denied"))
	case errors.Is(err, shared.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("Not found"))
	default:
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			h.Fail(c, domainErr.Message)
			return
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("An unexpected error occurred"))
	}
}
