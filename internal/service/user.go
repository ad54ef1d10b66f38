// internal/service/user.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dangerclosesec/tabbedjournal/internal/auth"
	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/repository"
	"github.com/google/uuid"
)

// IdentityService owns user accounts and their password factor.
type IdentityService struct {
	repo           repository.UserRepositoryIface
	factorRepo     repository.UserFactorRepositoryIface
	orgRepo        repository.OrganizationRepositoryIface
	membershipRepo repository.MembershipRepositoryIface
	tx             repository.TransactorIface
	passwordHasher *auth.PasswordHasher
	tokenManager   *auth.TokenManager
}

func NewIdentityService(
	repo repository.UserRepositoryIface,
	factorRepo repository.UserFactorRepositoryIface,
	orgRepo repository.OrganizationRepositoryIface,
	membershipRepo repository.MembershipRepositoryIface,
	tx repository.TransactorIface,
	passwordHasher *auth.PasswordHasher,
	tokenManager *auth.TokenManager,
) *IdentityService {
	return &IdentityService{
		repo:           repo,
		factorRepo:     factorRepo,
		orgRepo:        orgRepo,
		membershipRepo: membershipRepo,
		tx:             tx,
		passwordHasher: passwordHasher,
		tokenManager:   tokenManager,
	}
}

type RegisterInput struct {
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,e164"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Password  string `json:"password" validate:"required,min=8"`
}

// Register creates an active account with a password factor. It joins the
// caller's transaction when ctx carries one.
func (s *IdentityService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = normalizeEmail(input.Email)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	exists, err := s.repo.UsernameExists(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fieldError("username", "Username already exists.")
	}

	user := &model.User{
		Username:  input.Username,
		Email:     input.Email,
		Phone:     strings.TrimSpace(input.Phone),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Status:    model.StatusActive,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, fieldError("username", "Username already exists.")
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	if err := s.SetPassword(ctx, user.ID, input.Password); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *IdentityService) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

// FindByUsername matches case-insensitively.
func (s *IdentityService) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.repo.FindByUsername(ctx, strings.TrimSpace(username))
}

// FindByEmail matches case-insensitively and returns the oldest account.
func (s *IdentityService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.repo.FindByEmail(ctx, email)
}

// IssueToken signs a session token for user.
func (s *IdentityService) IssueToken(user *model.User) (string, error) {
	token, err := s.tokenManager.Generate(user.ID.String(), user.Username)
	if err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
