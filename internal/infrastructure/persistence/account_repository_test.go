package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/persistence/models"
)

func setupAccountTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.AccountModel{}, &models.ConfirmTokenModel{})
	require.NoError(t, err)

	return db
}

func newTestAccount(t *testing.T, email string) *identity.Account {
	t.Helper()
	account, err := identity.NewAccount(email, "hashed-password", "Jan", "Nowak", identity.RoleCustomer)
	require.NoError(t, err)
	return account
}

func TestAccountRepository_CreateAndFind(t *testing.T) {
	repo := NewGormAccountRepository(setupAccountTestDB(t))
	ctx := context.Background()

	account := newTestAccount(t, "Buyer@Example.com")
	require.NoError(t, repo.Create(ctx, account))

	byID, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", byID.Email, "emails are stored lowercased")
	assert.False(t, byID.Active, "new accounts await confirmation")

	byEmail, err := repo.FindByEmail(ctx, "  BUYER@example.COM ")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byEmail.ID)
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	repo := NewGormAccountRepository(setupAccountTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestAccount(t, "buyer@example.com")))

	err := repo.Create(ctx, newTestAccount(t, "buyer@example.com"))
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestAccountRepository_Save(t *testing.T) {
	repo := NewGormAccountRepository(setupAccountTestDB(t))
	ctx := context.Background()

	account := newTestAccount(t, "buyer@example.com")
	require.NoError(t, repo.Create(ctx, account))

	account.Activate()
	account.Company = "Acme"
	require.NoError(t, repo.Save(ctx, account))

	found, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, found.Active)
	assert.Equal(t, "Acme", found.Company)

	missing := newTestAccount(t, "ghost@example.com")
	assert.ErrorIs(t, repo.Save(ctx, missing), shared.ErrNotFound)
}

func TestTokenRepository(t *testing.T) {
	db := setupAccountTestDB(t)
	accounts := NewGormAccountRepository(db)
	tokens := NewGormTokenRepository(db)
	ctx := context.Background()

	account := newTestAccount(t, "buyer@example.com")
	require.NoError(t, accounts.Create(ctx, account))

	value, err := identity.GenerateToken()
	require.NoError(t, err)
	token := &identity.ConfirmToken{
		BaseEntity: shared.NewBaseEntity(),
		AccountID:  account.ID,
		Token:      value,
	}
	require.NoError(t, tokens.Create(ctx, token))

	found, err := tokens.Find(ctx, "buyer@example.com", value)
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.AccountID)

	// Wrong email or token value finds nothing
	_, err = tokens.Find(ctx, "other@example.com", value)
	assert.Error(t, err)
	_, err = tokens.Find(ctx, "buyer@example.com", "bogus")
	assert.Error(t, err)

	require.NoError(t, tokens.Delete(ctx, found.ID))
	_, err = tokens.Find(ctx, "buyer@example.com", value)
	assert.Error(t, err)
}
