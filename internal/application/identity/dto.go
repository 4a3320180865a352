package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/identity"
)

// RegisterRequest creates a new account
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Company   string `json:"company"`
	Position  string `json:"position"`
	Role      string `json:"role"`
}

// VerifyRequest confirms an account's email address
type VerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

// LoginRequest authenticates an account
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateAccountRequest changes account profile fields. Nil fields are left
// untouched.
type UpdateAccountRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Company   *string `json:"company"`
	Position  *string `json:"position"`
	Password  *string `json:"password"`
}

// AccountResponse is the account profile
type AccountResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Company   string    `json:"company,omitempty"`
	Position  string    `json:"position,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   AccountResponse `json:"account"`
}

// ToAccountResponse converts an account to its API shape
func ToAccountResponse(account *identity.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Company:   account.Company,
		Position:  account.Position,
		Role:      string(account.Role),
		Active:    account.Active,
	}
}
