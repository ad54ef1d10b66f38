// internal/service/user_factor.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/google/uuid"
)

// SetPassword stores password as the user's hashpass factor, replacing any
// previous one.
func (s *IdentityService) SetPassword(ctx context.Context, userID uuid.UUID, password string) error {
	hashedPassword, err := s.passwordHasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	factor, err := s.factorRepo.FindByUserAndType(ctx, userID, model.FactorHashpass)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("finding password factor: %w", err)
	}

	if factor == nil {
		factor = &model.UserFactor{
			UserID:     userID,
			FactorType: model.FactorHashpass,
			Material:   hashedPassword,
			IsActive:   true,
		}
		if err := s.factorRepo.Create(ctx, factor); err != nil {
			return fmt.Errorf("creating password factor: %w", err)
		}
		return nil
	}

	factor.Material = hashedPassword
	factor.IsActive = true
	if err := s.factorRepo.Update(ctx, factor); err != nil {
		return fmt.Errorf("updating password factor: %w", err)
	}
	return nil
}

// VerifyPassword checks if the provided password matches the stored hash for the user
func (s *IdentityService) VerifyPassword(ctx context.Context, userID uuid.UUID, password string) (bool, error) {
	factor, err := s.factorRepo.FindByUserAndType(ctx, userID, model.FactorHashpass)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("finding password factor: %w", err)
	}

	if !factor.IsActive {
		return false, nil
	}

	verified, err := s.passwordHasher.Verify(password, factor.Material)
	if err != nil {
		return false, fmt.Errorf("verifying password: %w", err)
	}

	if verified {
		now := time.Now()
		factor.LastUsedAt = &now
		if err := s.factorRepo.Update(ctx, factor); err != nil {
			slog.WarnContext(ctx, "Failed to update password factor last use", "userID", userID, "error", err)
		}
	}

	return verified, nil
}
