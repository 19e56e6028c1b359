package accountsrv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redlaboral/portal/marketplace/account"
	"github.com/redlaboral/portal/pkg/iam/auth"
	"github.com/redlaboral/portal/pkg/kernel"
	"github.com/redlaboral/portal/pkg/mailx"
)

const minPasswordLength = 8

// AccountService handles registration, login and account lifecycle
type AccountService struct {
	repo      account.Repository
	passwords auth.PasswordService
	tokens    auth.TokenService
	mail      *mailx.Dispatcher
}

// NewAccountService creates a new account service instance
func NewAccountService(
	repo account.Repository,
	passwords auth.PasswordService,
	tokens auth.TokenService,
	mail *mailx.Dispatcher,
) *AccountService {
	return &AccountService{
		repo:      repo,
		passwords: passwords,
		tokens:    tokens,
		mail:      mail,
	}
}

// Register creates an account and returns a ready-to-use access token.
// The welcome email goes out in the background and never blocks or
// fails registration.
func (s *AccountService) Register(ctx context.Context, req account.RegisterRequest) (*account.AuthResponse, error) {
	if !req.Email.IsValid() {
		return nil, account.ErrInvalidEmail().WithDetail("email", req.Email.String())
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, account.ErrMissingName()
	}
	if len(req.Password) < minPasswordLength {
		return nil, account.ErrWeakPassword()
	}
	if req.Role != auth.RoleCandidate && req.Role != auth.RoleCompany {
		return nil, account.ErrInvalidRole().WithDetail("role", string(req.Role))
	}

	email := req.Email.Normalized()
	taken, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, account.ErrEmailTaken().WithDetail("email", email.String())
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &account.User{
		ID:           kernel.NewUserID(uuid.NewString()),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		Role:         req.Role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.mail.Enqueue(mailx.Message{
		To:      user.Email,
		Subject: "¡Bienvenido a la comunidad!",
		Body:    fmt.Sprintf("Hola %s,\n\nBienvenido a RedLaboral. Tu cuenta ha sido creada exitosamente.", user.Name),
	})

	return s.authResponse(user)
}

// Login verifies credentials and issues an access token
func (s *AccountService) Login(ctx context.Context, req account.LoginRequest) (*account.AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email.Normalized())
	if err != nil {
		// Hide whether the account exists
		return nil, auth.ErrInvalidCredentials()
	}

	if err := s.passwords.Verify(user.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	return s.authResponse(user)
}

// GetUser retrieves an account by ID
func (s *AccountService) GetUser(ctx context.Context, id kernel.UserID) (*account.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := user.ToResponse()
	return &response, nil
}

// DeleteAccount removes the user and everything owned by it
func (s *AccountService) DeleteAccount(ctx context.Context, id kernel.UserID) error {
	return s.repo.Delete(ctx, id)
}

// CountUsers returns the total number of registered accounts
func (s *AccountService) CountUsers(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *AccountService) authResponse(user *account.User) (*account.AuthResponse, error) {
	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role, auth.ScopesForRole(user.Role))
	if err != nil {
		return nil, err
	}

	return &account.AuthResponse{
		User:        user.ToResponse(),
		AccessToken: token,
	}, nil
}
