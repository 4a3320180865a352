package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/auth"
	"github.com/markethub/backend/internal/infrastructure/config"
)

// ============================================================================
// Mocks
// ============================================================================

// MockAccountRepository is a mock implementation of identity.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *identity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *identity.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*identity.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Account), args.Error(1)
}

// MockTokenRepository is a mock implementation of identity.TokenRepository
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Create(ctx context.Context, token *identity.ConfirmToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) Find(ctx context.Context, email, token string) (*identity.ConfirmToken, error) {
	args := m.Called(ctx, email, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.ConfirmToken), args.Error(1)
}

func (m *MockTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// recordingMailer captures sent confirmation tokens
type recordingMailer struct {
	email string
	token string
}

func (m *recordingMailer) SendConfirmToken(ctx context.Context, email, token string) error {
	m.email = email
	m.token = token
	return nil
}

// ============================================================================
// Fixtures
// ============================================================================

func newAccountService(accounts *MockAccountRepository, tokens *MockTokenRepository, mailer Mailer) *AccountService {
	jwt := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-at-least-32-chars!!",
		TokenExpiration: time.Hour,
		Issuer:          "markethub-test",
	})
	return NewAccountService(accounts, tokens, auth.NewPasswordHasher(), jwt, mailer, zap.NewNop())
}

func activeAccount(t *testing.T, password string) *identity.Account {
	t.Helper()
	hash, err := auth.NewPasswordHasher().Hash(password)
	require.NoError(t, err)
	account, err := identity.NewAccount("buyer@example.com", hash, "Jan", "Nowak", identity.RoleCustomer)
	require.NoError(t, err)
	account.Activate()
	return account
}

// ============================================================================
// Tests
// ============================================================================

func TestAccountService_Register(t *testing.T) {
	accounts := new(MockAccountRepository)
	tokens := new(MockTokenRepository)
	mailer := &recordingMailer{}
	svc := newAccountService(accounts, tokens, mailer)

	accounts.On("Create", mock.Anything, mock.AnythingOfType("*identity.Account")).Return(nil)
	tokens.On("Create", mock.Anything, mock.AnythingOfType("*identity.ConfirmToken")).Return(nil)

	result, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "Buyer@Example.com",
		Password:  "correct-horse-9",
		FirstName: "Jan",
		LastName:  "Nowak",
	})
	require.NoError(t, err)

	assert.Equal(t, "buyer@example.com", result.Email)
	assert.Equal(t, "customer", result.Role)
	assert.False(t, result.Active, "accounts await email confirmation")
	assert.Equal(t, "buyer@example.com", mailer.email)
	assert.Len(t, mailer.token, 64)
}

func TestAccountService_Register_WeakPassword(t *testing.T) {
	accounts := new(MockAccountRepository)
	svc := newAccountService(accounts, new(MockTokenRepository), &recordingMailer{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "buyer@example.com",
		Password:  "short",
		FirstName: "Jan",
		LastName:  "Nowak",
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeValidation, domainErr.Code)
	accounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	accounts := new(MockAccountRepository)
	svc := newAccountService(accounts, new(MockTokenRepository), &recordingMailer{})

	accounts.On("Create", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:     "buyer@example.com",
		Password:  "correct-horse-9",
		FirstName: "Jan",
		LastName:  "Nowak",
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
}

func TestAccountService_Verify(t *testing.T) {
	accounts := new(MockAccountRepository)
	tokens := new(MockTokenRepository)
	svc := newAccountService(accounts, tokens, &recordingMailer{})

	account := activeAccount(t, "correct-horse-9")
	account.Active = false
	token := &identity.ConfirmToken{
		BaseEntity: shared.NewBaseEntity(),
		AccountID:  account.ID,
		Token:      "abc123",
	}

	tokens.On("Find", mock.Anything, "buyer@example.com", "abc123").Return(token, nil)
	accounts.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	accounts.On("Save", mock.Anything, account).Return(nil)
	tokens.On("Delete", mock.Anything, token.ID).Return(nil)

	err := svc.Verify(context.Background(), VerifyRequest{Email: "buyer@example.com", Token: "abc123"})
	require.NoError(t, err)
	assert.True(t, account.Active)
	tokens.AssertCalled(t, "Delete", mock.Anything, token.ID)
}

func TestAccountService_Verify_WrongToken(t *testing.T) {
	accounts := new(MockAccountRepository)
	tokens := new(MockTokenRepository)
	svc := newAccountService(accounts, tokens, &recordingMailer{})

	tokens.On("Find", mock.Anything, "buyer@example.com", "bogus").Return(nil, shared.ErrNotFound)

	err := svc.Verify(context.Background(), VerifyRequest{Email: "buyer@example.com", Token: "bogus"})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TOKEN", domainErr.Code)
}

func TestAccountService_Login(t *testing.T) {
	accounts := new(MockAccountRepository)
	svc := newAccountService(accounts, new(MockTokenRepository), &recordingMailer{})

	account := activeAccount(t, "correct-horse-9")
	accounts.On("FindByEmail", mock.Anything, "buyer@example.com").Return(account, nil)

	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "buyer@example.com",
		Password: "correct-horse-9",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.True(t, result.ExpiresAt.After(time.Now()))
	assert.Equal(t, account.ID, result.Account.ID)
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	accounts := new(MockAccountRepository)
	svc := newAccountService(accounts, new(MockTokenRepository), &recordingMailer{})

	account := activeAccount(t, "correct-horse-9")
	accounts.On("FindByEmail", mock.Anything, "buyer@example.com").Return(account, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "buyer@example.com",
		Password: "wrong-password-1",
	})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestAccountService_Login_UnknownEmail(t *testing.T) {
	accounts := new(MockAccountRepository)
	svc := newAccountService(accounts, new(MockTokenRepository), &recordingMailer{})

	accounts.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "correct-horse-9",
	})
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestAccountService_Login_Unconfirmed(t *testing.T) {
	accounts := new(MockAccountRepository)
	svc := newAccountService(accounts, new(MockTokenRepository), &recordingMailer{})

	account := activeAccount(t, "correct-horse-9")
	account.Active = false
	accounts.On("FindByEmail", mock.Anything, "buyer@example.com").Return(account, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "buyer@example.com",
		Password: "correct-horse-9",
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_CONFIRMED", domainErr.Code)
}

func TestAccountService_Update(t *testing.T) {
	accounts := new(MockAccountRepository)
	svc := newAccountService(accounts, new(MockTokenRepository), &recordingMailer{})

	account := activeAccount(t, "correct-horse-9")
	accounts.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	accounts.On("Save", mock.Anything, account).Return(nil)

	company := "Acme"
	result, err := svc.Update(context.Background(), account.ID, UpdateAccountRequest{Company: &company})
	require.NoError(t, err)
	assert.Equal(t, "Acme", result.Company)
	assert.Equal(t, "Jan", result.FirstName, "untouched fields keep their values")
}
