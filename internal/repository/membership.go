package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MembershipRepositoryIface interface {
	Create(ctx context.Context, membership *model.Membership) (bool, error)
	FindByID(ctx context.Context, id int64) (*model.Membership, error)
	FindByUserAndOrg(ctx context.Context, userID, orgID uuid.UUID) (*model.Membership, error)
	FindFirstByUser(ctx context.Context, userID uuid.UUID) (*model.Membership, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Membership, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID) ([]model.Membership, error)
	UpdateRole(ctx context.Context, id int64, role model.Role) error
	SetManagerIfNull(ctx context.Context, id int64, managerID uuid.UUID) (bool, error)
	ExistsManagedBy(ctx context.Context, subjectID, managerID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create inserts the membership unless the (user, organization) pair already
// has one. It reports whether a row was inserted.
func (r *MembershipRepository) Create(ctx context.Context, membership *model.Membership) (bool, error) {
	result := conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "organization_id"}},
			DoNothing: true,
		}).
		Create(membership)
	if result.Error != nil {
		return false, fmt.Errorf("creating membership: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *MembershipRepository) FindByID(ctx context.Context, id int64) (*model.Membership, error) {
	var m model.Membership
	if err := conn(ctx, r.db).Preload("User").First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("finding membership: %w", err)
	}
	return &m, nil
}

func (r *MembershipRepository) FindByUserAndOrg(ctx context.Context, userID, orgID uuid.UUID) (*model.Membership, error) {
	var m model.Membership
	if err := conn(ctx, r.db).
		Where("user_id = ? AND organization_id = ?", userID, orgID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("finding membership: %w", err)
	}
	return &m, nil
}

// FindFirstByUser returns the user's membership with the lowest id, with its
// organization loaded.
func (r *MembershipRepository) FindFirstByUser(ctx context.Context, userID uuid.UUID) (*model.Membership, error) {
	var m model.Membership
	if err := conn(ctx, r.db).
		Preload("Organization").
		Where("user_id = ?", userID).
		Order("id ASC").
		Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, fmt.Errorf("finding first membership: %w", err)
	}
	return &m, nil
}

func (r *MembershipRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Membership, error) {
	var rows []model.Membership
	if err := conn(ctx, r.db).Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing user memberships: %w", err)
	}
	return rows, nil
}

func (r *MembershipRepository) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]model.Membership, error) {
	var rows []model.Membership
	if err := conn(ctx, r.db).
		Preload("User").
		Preload("ManagedBy").
		Where("organization_id = ?", orgID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing organization memberships: %w", err)
	}
	return rows, nil
}

func (r *MembershipRepository) UpdateRole(ctx context.Context, id int64, role model.Role) error {
	result := conn(ctx, r.db).Model(&model.Membership{}).Where("id = ?", id).Update("role", role)
	if result.Error != nil {
		return fmt.Errorf("updating membership role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrMembershipNotFound
	}
	return nil
}

// SetManagerIfNull fills managed_by only while it is unset. It reports
// whether the row changed.
func (r *MembershipRepository) SetManagerIfNull(ctx context.Context, id int64, managerID uuid.UUID) (bool, error) {
	result := conn(ctx, r.db).Model(&model.Membership{}).
		Where("id = ? AND managed_by_id IS NULL", id).
		Update("managed_by_id", managerID)
	if result.Error != nil {
		return false, fmt.Errorf("setting membership manager: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ExistsManagedBy reports whether any membership of subject is managed by
// manager.
func (r *MembershipRepository) ExistsManagedBy(ctx context.Context, subjectID, managerID uuid.UUID) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&model.Membership{}).
		Where("user_id = ? AND managed_by_id = ?", subjectID, managerID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking membership manager: %w", err)
	}
	return count > 0, nil
}

func (r *MembershipRepository) Delete(ctx context.Context, id int64) error {
	result := conn(ctx, r.db).Delete(&model.Membership{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("deleting membership: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrMembershipNotFound
	}
	return nil
}
