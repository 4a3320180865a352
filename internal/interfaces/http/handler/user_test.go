package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	identityapp "github.com/markethub/backend/internal/application/identity"
	orderingapp "github.com/markethub/backend/internal/application/ordering"
	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/auth"
	"github.com/markethub/backend/internal/infrastructure/config"
)

// MockAccountRepository implements identity.AccountRepository for testing
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

// MockTokenRepository implements identity.TokenRepository for testing
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

type userTestEnv struct {
	accounts *MockAccountRepository
	tokens   *MockTokenRepository
	contacts *MockContactRepository
	engine   *gin.Engine
}

func newUserTestEnv(t *testing.T) *userTestEnv {
	t.Helper()

	accounts := &MockAccountRepository{}
	tokens := &MockTokenRepository{}
	contacts := &MockContactRepository{}

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-at-least-32-chars!!",
		TokenExpiration: time.Hour,
		Issuer:          "markethub-test",
	})
	accountService := identityapp.NewAccountService(
		accounts,
		tokens,
		auth.NewPasswordHasher(),
		jwtService,
		identityapp.NewLogMailer(zap.NewNop()),
		zap.NewNop(),
	)
	orderService := orderingapp.NewOrderService(&MockOrderRepository{}, contacts, zap.NewNop())
	h := NewUserHandler(accountService, orderService)

	engine := gin.New()
	engine.POST("/user/register", h.Register)
	engine.POST("/user/register/verification", h.Verify)
	engine.POST("/user/login", h.Login)

	return &userTestEnv{accounts: accounts, tokens: tokens, contacts: contacts, engine: engine}
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func deleteJSON(t *testing.T, engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func TestUserHandler_Register(t *testing.T) {
	env := newUserTestEnv(t)
	env.accounts.On("Create", mock.Anything, mock.Anything).Return(nil)
	env.tokens.On("Create", mock.Anything, mock.Anything).Return(nil)

	w := postJSON(t, env.engine, "/user/register", gin.H{
		"email":      "Buyer@Example.com",
		"password":   "Sup3r-Secret-Pass",
		"first_name": "Maria",
		"last_name":  "Ivanova",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Status)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "buyer@example.com", data["email"])
	assert.Equal(t, "customer", data["role"])
	assert.Equal(t, false, data["active"])
	env.tokens.AssertNumberOfCalls(t, "Create", 1)
}

func TestUserHandler_Register_DuplicateEmail(t *testing.T) {
	env := newUserTestEnv(t)
	env.accounts.On("Create", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)

	w := postJSON(t, env.engine, "/user/register", gin.H{
		"email":      "buyer@example.com",
		"password":   "Sup3r-Secret-Pass",
		"first_name": "Maria",
		"last_name":  "Ivanova",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Status)
	assert.Equal(t, "An account with this email already exists", resp.Error)
}

func TestUserHandler_Register_MissingFields(t *testing.T) {
	env := newUserTestEnv(t)

	w := postJSON(t, env.engine, "/user/register", gin.H{"email": "buyer@example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.accounts.AssertNotCalled(t, "Create")
}

func TestUserHandler_Verify(t *testing.T) {
	env := newUserTestEnv(t)
	account, err := identity.NewAccount("buyer@example.com", "hash", "Maria", "Ivanova", identity.RoleCustomer)
	require.NoError(t, err)
	token := &identity.ConfirmToken{
		BaseEntity: shared.NewBaseEntity(),
		AccountID:  account.ID,
		Token:      "deadbeef",
	}

	env.tokens.On("Find", mock.Anything, "buyer@example.com", "deadbeef").Return(token, nil)
	env.accounts.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	env.accounts.On("Save", mock.Anything, account).Return(nil)
	env.tokens.On("Delete", mock.Anything, token.ID).Return(nil)

	w := postJSON(t, env.engine, "/user/register/verification", gin.H{
		"email": "buyer@example.com",
		"token": "deadbeef",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Status)
	assert.True(t, account.Active)
}

func TestUserHandler_Verify_WrongToken(t *testing.T) {
	env := newUserTestEnv(t)
	env.tokens.On("Find", mock.Anything, "buyer@example.com", "wrong").Return(nil, shared.ErrNotFound)

	w := postJSON(t, env.engine, "/user/register/verification", gin.H{
		"email": "buyer@example.com",
		"token": "wrong",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Status)
	assert.Equal(t, "Wrong email or confirmation token", resp.Error)
}

func TestUserHandler_Login(t *testing.T) {
	env := newUserTestEnv(t)
	hasher := auth.NewPasswordHasher()
	hash, err := hasher.Hash("Sup3r-Secret-Pass")
	require.NoError(t, err)
	account, err := identity.NewAccount("buyer@example.com", hash, "Maria", "Ivanova", identity.RoleCustomer)
	require.NoError(t, err)
	account.Activate()

	env.accounts.On("FindByEmail", mock.Anything, "buyer@example.com").Return(account, nil)

	w := postJSON(t, env.engine, "/user/login", gin.H{
		"email":    "buyer@example.com",
		"password": "Sup3r-Secret-Pass",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.True(t, resp.Status)

	data := resp.Data.(map[string]any)
	assert.NotEmpty(t, data["token"])
}

func TestUserHandler_Login_WrongPassword(t *testing.T) {
	env := newUserTestEnv(t)
	hasher := auth.NewPasswordHasher()
	hash, err := hasher.Hash("Sup3r-Secret-Pass")
	require.NoError(t, err)
	account, err := identity.NewAccount("buyer@example.com", hash, "Maria", "Ivanova", identity.RoleCustomer)
	require.NoError(t, err)
	account.Activate()

	env.accounts.On("FindByEmail", mock.Anything, "buyer@example.com").Return(account, nil)

	w := postJSON(t, env.engine, "/user/login", gin.H{
		"email":    "buyer@example.com",
		"password": "not-the-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_Login_Unconfirmed(t *testing.T) {
	env := newUserTestEnv(t)
	hasher := auth.NewPasswordHasher()
	hash, err := hasher.Hash("Sup3r-Secret-Pass")
	require.NoError(t, err)
	account, err := identity.NewAccount("buyer@example.com", hash, "Maria", "Ivanova", identity.RoleCustomer)
	require.NoError(t, err)

	env.accounts.On("FindByEmail", mock.Anything, "buyer@example.com").Return(account, nil)

	w := postJSON(t, env.engine, "/user/login", gin.H{
		"email":    "buyer@example.com",
		"password": "Sup3r-Secret-Pass",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Status)
	assert.Equal(t, "Confirm your email address before logging in", resp.Error)
}
