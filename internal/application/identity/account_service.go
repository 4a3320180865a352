package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/identity"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/auth"
)

// AccountService handles registration, email confirmation, login and
// profile management.
type AccountService struct {
	accounts identity.AccountRepository
	tokens   identity.TokenRepository
	hasher   *auth.PasswordHasher
	jwt      *auth.JWTService
	mailer   Mailer
	logger   *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(
	accounts identity.AccountRepository,
	tokens identity.TokenRepository,
	hasher *auth.PasswordHasher,
	jwt *auth.JWTService,
	mailer Mailer,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		accounts: accounts,
		tokens:   tokens,
		hasher:   hasher,
		jwt:      jwt,
		mailer:   mailer,
		logger:   logger,
	}
}

// Register creates an inactive account and emails a confirmation token.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (*AccountResponse, error) {
	if err := auth.ValidateStrength(req.Password); err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	role := identity.Role(req.Role)
	if req.Role == "" {
		role = identity.RoleCustomer
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	account, err := identity.NewAccount(req.Email, hash, req.FirstName, req.LastName, role)
	if err != nil {
		return nil, err
	}
	account.Company = req.Company
	account.Position = req.Position

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
		}
		return nil, err
	}

	value, err := identity.GenerateToken()
	if err != nil {
		return nil, err
	}
	token := &identity.ConfirmToken{
		BaseEntity: shared.NewBaseEntity(),
		AccountID:  account.ID,
		Token:      value,
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return nil, err
	}
	if err := s.mailer.SendConfirmToken(ctx, account.Email, value); err != nil {
		// The account is usable once the token is re-sent; registration
		// itself succeeded.
		s.logger.Error("Failed to send confirmation token",
			zap.String("email", account.Email),
			zap.Error(err),
		)
	}

	s.logger.Info("Account registered",
		zap.String("account_id", account.ID.String()),
		zap.String("role", string(account.Role)),
	)
	response := ToAccountResponse(account)
	return &response, nil
}

// Verify redeems a confirmation token and activates the account.
func (s *AccountService) Verify(ctx context.Context, req VerifyRequest) error {
	token, err := s.tokens.Find(ctx, req.Email, req.Token)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_TOKEN", "Wrong email or confirmation token")
		}
		return err
	}

	account, err := s.accounts.FindByID(ctx, token.AccountID)
	if err != nil {
		return err
	}

	account.Activate()
	if err := s.accounts.Save(ctx, account); err != nil {
		return err
	}
	if err := s.tokens.Delete(ctx, token.ID); err != nil {
		return err
	}

	s.logger.Info("Account confirmed", zap.String("account_id", account.ID.String()))
	return nil
}

// Login checks the credentials and issues an access token. Unconfirmed
// accounts cannot log in.
func (s *AccountService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	account, err := s.accounts.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}

	if !s.hasher.Compare(account.PasswordHash, req.Password) {
		return nil, shared.ErrUnauthorized
	}
	if !account.Active {
		return nil, shared.NewDomainError("NOT_CONFIRMED", "Confirm your email address before logging in")
	}

	token, err := s.jwt.Generate(account.ID, account.Email, string(account.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		Account:   ToAccountResponse(account),
	}, nil
}

// Get returns the account profile
func (s *AccountService) Get(ctx context.Context, accountID uuid.UUID) (*AccountResponse, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	response := ToAccountResponse(account)
	return &response, nil
}

// Update changes profile fields and, optionally, the password.
func (s *AccountService) Update(ctx context.Context, accountID uuid.UUID, req UpdateAccountRequest) (*AccountResponse, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		account.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		account.LastName = *req.LastName
	}
	if req.Company != nil {
		account.Company = *req.Company
	}
	if req.Position != nil {
		account.Position = *req.Position
	}
	if req.Password != nil {
		if err := auth.ValidateStrength(*req.Password); err != nil {
			return nil, shared.NewValidationError(err.Error())
		}
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = hash
	}

	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, err
	}
	response := ToAccountResponse(account)
	return &response, nil
}
