package identity

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository persists accounts. Email uniqueness is enforced at the
// database level; Create translates the constraint violation into
// shared.ErrAlreadyExists.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	Save(ctx context.Context, account *Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
}

// TokenRepository persists email confirmation tokens.
type TokenRepository interface {
	Create(ctx context.Context, token *ConfirmToken) error
	// Find returns the token matching both the email's account and the
	// token value, or shared.ErrNotFound.
	Find(ctx context.Context, email, token string) (*ConfirmToken, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
