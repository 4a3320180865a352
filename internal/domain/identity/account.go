package identity

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/shared"
)

// Role separates buying accounts from shop-owning ones. Partner endpoints
// require RoleShop.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleShop     Role = "shop"
)

// IsValid checks if the role is a known one.
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleShop
}

// Account is a registered user. Accounts start inactive and become active
// once the emailed confirmation token is redeemed; inactive accounts cannot
// log in.
type Account struct {
	shared.BaseEntity
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Company      string
	Position     string
	Role         Role
	Active       bool
}

// NewAccount creates an inactive account pending email confirmation.
func NewAccount(email, passwordHash, firstName, lastName string, role Role) (*Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Account email cannot be empty")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Account password hash cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown account role: "+string(role))
	}
	return &Account{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		Active:       false,
	}, nil
}

// Activate marks the account as email-confirmed.
func (a *Account) Activate() {
	a.Active = true
	a.UpdatedAt = time.Now()
}

// ConfirmToken is a one-shot email confirmation token for an account.
type ConfirmToken struct {
	shared.BaseEntity
	AccountID uuid.UUID
	Token     string
}

// GenerateToken returns a random 32-byte hex token.
func GenerateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
