package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserFactorRepositoryIface defines the interface for the user factor repository.
type UserFactorRepositoryIface interface {
	Create(ctx context.Context, factor *model.UserFactor) error
	FindByUserAndType(ctx context.Context, userID uuid.UUID, factorType model.FactorType) (*model.UserFactor, error)
	Update(ctx context.Context, factor *model.UserFactor) error
}

// UserFactorRepository implements UserFactorRepositoryIface.
type UserFactorRepository struct {
	db *gorm.DB
}

// NewUserFactorRepository initializes a new repository instance.
func NewUserFactorRepository(db *gorm.DB) *UserFactorRepository {
	return &UserFactorRepository{db: db}
}

// Create inserts a new user factor.
func (r *UserFactorRepository) Create(ctx context.Context, factor *model.UserFactor) error {
	if err := conn(ctx, r.db).Create(factor).Error; err != nil {
		return fmt.Errorf("creating user factor: %w", err)
	}
	return nil
}

// FindByUserAndType retrieves a specific user factor by type.
func (r *UserFactorRepository) FindByUserAndType(ctx context.Context, userID uuid.UUID, factorType model.FactorType) (*model.UserFactor, error) {
	var factor model.UserFactor
	if err := conn(ctx, r.db).First(&factor, "user_id = ? AND factor_type = ?", userID, factorType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("finding user factor: %w", err)
	}
	return &factor, nil
}

// Update modifies an existing user factor.
func (r *UserFactorRepository) Update(ctx context.Context, factor *model.UserFactor) error {
	if err := conn(ctx, r.db).Save(factor).Error; err != nil {
		return fmt.Errorf("updating user factor: %w", err)
	}
	return nil
}
