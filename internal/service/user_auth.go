package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/repository"
)

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthOutput struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (s *IdentityService) Login(ctx context.Context, input LoginInput) (*AuthOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Find the user
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Status != model.StatusActive {
		return nil, domain.ErrInvalidCredentials
	}

	verified, err := s.VerifyPassword(ctx, user.ID, input.Password)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{
		User:  user,
		Token: token,
	}, nil
}

type SignupInput struct {
	Username         string `json:"username" validate:"required,max=150"`
	Email            string `json:"email" validate:"omitempty,email"`
	FirstName        string `json:"first_name" validate:"max=150"`
	LastName         string `json:"last_name" validate:"max=150"`
	Password         string `json:"password" validate:"required,min=8"`
	ConfirmPassword  string `json:"confirm_password" validate:"required,eqfield=Password"`
	OrganizationName string `json:"organization_name" validate:"max=200"`
}

// Signup registers an account and, when an organization name is given,
// creates that organization with the new user as its owner.
func (s *IdentityService) Signup(ctx context.Context, input SignupInput) (*AuthOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var user *model.User
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.Register(ctx, RegisterInput{
			Username:  input.Username,
			Email:     input.Email,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Password:  input.Password,
		})
		if err != nil {
			return err
		}

		orgName := strings.TrimSpace(input.OrganizationName)
		if orgName == "" {
			return nil
		}

		org := &model.Organization{
			Name:             orgName,
			OwnerID:          user.ID,
			RequiresTwoStage: true,
		}
		if err := s.orgRepo.Create(ctx, org); err != nil {
			if errors.Is(err, repository.ErrOrganizationNameTaken) {
				return fieldError("organization_name", "Organization name already exists.")
			}
			return fmt.Errorf("creating organization: %w", err)
		}

		if _, err := s.membershipRepo.Create(ctx, &model.Membership{
			UserID:         user.ID,
			OrganizationID: org.ID,
			Role:           model.RoleOwner,
		}); err != nil {
			return fmt.Errorf("creating owner membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{
		User:  user,
		Token: token,
	}, nil
}
