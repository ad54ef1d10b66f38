// internal/repository/organization.go
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

// ErrOrganizationNameTaken is returned when an organization name is reused.
var ErrOrganizationNameTaken = fmt.Errorf("%w: organization name already exists", domain.ErrInvalidInput)

type OrganizationRepositoryIface interface {
	Create(ctx context.Context, org *model.Organization) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	FindByName(ctx context.Context, name string) (*model.Organization, error)
	FindAllPaginated(ctx context.Context, offset, limit int) ([]*model.Organization, int64, error)
	FindRoleAlias(ctx context.Context, orgID uuid.UUID) (*model.RoleAlias, error)
	SaveRoleAlias(ctx context.Context, alias *model.RoleAlias) error
}

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// FindAllPaginated returns a paginated list of organizations
func (r *OrganizationRepository) FindAllPaginated(ctx context.Context, offset, limit int) ([]*model.Organization, int64, error) {
	var orgs []*model.Organization
	var count int64

	// Get total count
	if err := conn(ctx, r.db).Model(&model.Organization{}).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count organizations: %w", err)
	}

	// Get paginated organizations
	result := conn(ctx, r.db).Order("name ASC").Offset(offset).Limit(limit).Find(&orgs)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to find paginated organizations: %w", result.Error)
	}

	return orgs, count, nil
}

func (r *OrganizationRepository) Create(ctx context.Context, org *model.Organization) error {
	if err := conn(ctx, r.db).Create(org).Error; err != nil {
		if isUniqueViolation(err, "") {
			return ErrOrganizationNameTaken
		}
		return fmt.Errorf("creating organization: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	if err := conn(ctx, r.db).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("finding organization: %w", err)
	}
	return &org, nil
}

func (r *OrganizationRepository) FindByName(ctx context.Context, name string) (*model.Organization, error) {
	var org model.Organization
	if err := conn(ctx, r.db).First(&org, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("finding organization: %w", err)
	}
	return &org, nil
}

func (r *OrganizationRepository) FindRoleAlias(ctx context.Context, orgID uuid.UUID) (*model.RoleAlias, error) {
	var alias model.RoleAlias
	if err := conn(ctx, r.db).First(&alias, "organization_id = ?", orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("finding role alias: %w", err)
	}
	return &alias, nil
}

// SaveRoleAlias inserts or replaces the labels for the alias' organization.
func (r *OrganizationRepository) SaveRoleAlias(ctx context.Context, alias *model.RoleAlias) error {
	err := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "organization_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"moderator_label", "author_label", "subuser_label", "updated_at"}),
	}).Create(alias).Error
	if err != nil {
		return fmt.Errorf("saving role alias: %w", err)
	}
	return nil
}
