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

// ErrSlugConflict means a concurrent writer claimed the slug between the
// existence check and the insert. Callers retry with the next candidate.
var ErrSlugConflict = errors.New("tab slug already exists")

const (
	tabNameConstraint = "uniq_tab_name_per_org"
	tabSlugConstraint = "uniq_tab_slug_per_org"
)

type TabRepositoryIface interface {
	Create(ctx context.Context, tab *model.Tab) error
	Update(ctx context.Context, tab *model.Tab) error
	SlugExists(ctx context.Context, orgID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error)
	FindInOrg(ctx context.Context, id, orgID uuid.UUID) (*model.Tab, error)
	FindByName(ctx context.Context, orgID uuid.UUID, name string) (*model.Tab, error)
	FindEnabledByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]model.Tab, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID) ([]model.Tab, error)
	Toggle(ctx context.Context, id, orgID uuid.UUID) (*model.Tab, error)
}

type TabRepository struct {
	db *gorm.DB
}

func NewTabRepository(db *gorm.DB) *TabRepository {
	return &TabRepository{db: db}
}

func translateTabError(err error) error {
	switch {
	case isUniqueViolation(err, tabNameConstraint):
		return domain.ErrTabNameTaken
	case isUniqueViolation(err, tabSlugConstraint):
		return ErrSlugConflict
	}
	return err
}

func (r *TabRepository) Create(ctx context.Context, tab *model.Tab) error {
	if err := conn(ctx, r.db).Create(tab).Error; err != nil {
		if terr := translateTabError(err); terr != err {
			return terr
		}
		return fmt.Errorf("creating tab: %w", err)
	}
	return nil
}

// Update writes name, slug, enabled and visibility.
func (r *TabRepository) Update(ctx context.Context, tab *model.Tab) error {
	err := conn(ctx, r.db).Model(tab).
		Select("name", "slug", "enabled", "visibility", "updated_at").
		Updates(tab).Error
	if err != nil {
		if terr := translateTabError(err); terr != err {
			return terr
		}
		return fmt.Errorf("updating tab: %w", err)
	}
	return nil
}

// SlugExists reports whether another tab in orgID already uses slug.
func (r *TabRepository) SlugExists(ctx context.Context, orgID uuid.UUID, slug string, excludeID uuid.UUID) (bool, error) {
	query := conn(ctx, r.db).Model(&model.Tab{}).Where("organization_id = ? AND slug = ?", orgID, slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking tab slug: %w", err)
	}
	return count > 0, nil
}

func (r *TabRepository) FindInOrg(ctx context.Context, id, orgID uuid.UUID) (*model.Tab, error) {
	var tab model.Tab
	if err := conn(ctx, r.db).Where("id = ? AND organization_id = ?", id, orgID).First(&tab).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTabNotFound
		}
		return nil, fmt.Errorf("finding tab: %w", err)
	}
	return &tab, nil
}

func (r *TabRepository) FindByName(ctx context.Context, orgID uuid.UUID, name string) (*model.Tab, error) {
	var tab model.Tab
	if err := conn(ctx, r.db).Where("organization_id = ? AND name = ?", orgID, name).First(&tab).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTabNotFound
		}
		return nil, fmt.Errorf("finding tab: %w", err)
	}
	return &tab, nil
}

// FindEnabledByIDs returns the subset of ids that are enabled tabs of orgID.
func (r *TabRepository) FindEnabledByIDs(ctx context.Context, orgID uuid.UUID, ids []uuid.UUID) ([]model.Tab, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tabs []model.Tab
	if err := conn(ctx, r.db).
		Where("organization_id = ? AND enabled = ? AND id IN ?", orgID, true, ids).
		Order("name ASC").
		Find(&tabs).Error; err != nil {
		return nil, fmt.Errorf("finding tabs: %w", err)
	}
	return tabs, nil
}

// ListByOrg orders enabled tabs first, then by name.
func (r *TabRepository) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]model.Tab, error) {
	var tabs []model.Tab
	if err := conn(ctx, r.db).
		Where("organization_id = ?", orgID).
		Order("enabled DESC, name ASC").
		Find(&tabs).Error; err != nil {
		return nil, fmt.Errorf("listing tabs: %w", err)
	}
	return tabs, nil
}

// Toggle flips enabled in one statement and returns the updated tab.
func (r *TabRepository) Toggle(ctx context.Context, id, orgID uuid.UUID) (*model.Tab, error) {
	result := conn(ctx, r.db).Model(&model.Tab{}).
		Where("id = ? AND organization_id = ?", id, orgID).
		Updates(map[string]interface{}{
			"enabled":    gorm.Expr("NOT enabled"),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("toggling tab: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrTabNotFound
	}
	return r.FindInOrg(ctx, id, orgID)
}
