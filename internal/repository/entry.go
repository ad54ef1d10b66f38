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

type EntryRepositoryIface interface {
	Create(ctx context.Context, entry *model.Entry) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Entry, error)
	FindForAuthor(ctx context.Context, id, authorID uuid.UUID) (*model.Entry, error)
	FindInOrg(ctx context.Context, id, orgID uuid.UUID) (*model.Entry, error)
	UpdateDraft(ctx context.Context, entry *model.Entry, tabs []model.Tab) (bool, error)
	Transition(ctx context.Context, id uuid.UUID, from, to model.EntryStatus, fields map[string]interface{}) (bool, error)
	Delete(ctx context.Context, id, authorID uuid.UUID) (bool, error)
	AddImage(ctx context.Context, image *model.EntryImage) error
	List(ctx context.Context, filter EntryFilter) ([]model.Entry, int64, error)
}

// EntryFilter narrows List. Zero values are ignored except Status, which is
// always applied.
type EntryFilter struct {
	OrgID    uuid.UUID
	AuthorID uuid.UUID
	Status   model.EntryStatus
	TabSlug  string
	Offset   int
	Limit    int
}

type EntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) Create(ctx context.Context, entry *model.Entry) error {
	if err := conn(ctx, r.db).Omit("Tabs.*").Create(entry).Error; err != nil {
		return fmt.Errorf("creating entry: %w", err)
	}
	return nil
}

func (r *EntryRepository) withAssociations(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).
		Preload("Author").
		Preload("Tabs", func(db *gorm.DB) *gorm.DB { return db.Order("tabs.name ASC") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("uploaded_at ASC") })
}

func (r *EntryRepository) find(db *gorm.DB) (*model.Entry, error) {
	var entry model.Entry
	if err := db.First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("finding entry: %w", err)
	}
	return &entry, nil
}

func (r *EntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Entry, error) {
	return r.find(r.withAssociations(ctx).Where("entries.id = ?", id))
}

// FindForAuthor only matches entries written by authorID.
func (r *EntryRepository) FindForAuthor(ctx context.Context, id, authorID uuid.UUID) (*model.Entry, error) {
	return r.find(r.withAssociations(ctx).Where("entries.id = ? AND entries.author_id = ?", id, authorID))
}

// FindInOrg only matches entries that belong to orgID.
func (r *EntryRepository) FindInOrg(ctx context.Context, id, orgID uuid.UUID) (*model.Entry, error) {
	return r.find(r.withAssociations(ctx).Where("entries.id = ? AND entries.organization_id = ?", id, orgID))
}

// UpdateDraft writes title and body while the entry is still a draft owned by
// its author, then replaces its tabs. It reports false when the entry left
// the draft state.
func (r *EntryRepository) UpdateDraft(ctx context.Context, entry *model.Entry, tabs []model.Tab) (bool, error) {
	db := conn(ctx, r.db)
	result := db.Model(&model.Entry{}).
		Where("id = ? AND author_id = ? AND status = ?", entry.ID, entry.AuthorID, model.EntryDraft).
		Updates(map[string]interface{}{
			"title":      entry.Title,
			"body":       entry.Body,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return false, fmt.Errorf("updating entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	if err := db.Model(&model.Entry{ID: entry.ID}).Omit("Tabs.*").Association("Tabs").Replace(tabs); err != nil {
		return false, fmt.Errorf("replacing entry tabs: %w", err)
	}
	entry.Tabs = tabs
	return true, nil
}

// Transition moves the entry from one status to another and applies fields
// in the same statement. It reports false when the entry was not in from.
func (r *EntryRepository) Transition(ctx context.Context, id uuid.UUID, from, to model.EntryStatus, fields map[string]interface{}) (bool, error) {
	updates := make(map[string]interface{}, len(fields)+2)
	for k, v := range fields {
		updates[k] = v
	}
	updates["status"] = to
	updates["updated_at"] = gorm.Expr("NOW()")

	result := conn(ctx, r.db).Model(&model.Entry{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, fmt.Errorf("transitioning entry %s -> %s: %w", from, to, result.Error)
	}
	return result.RowsAffected == 1, nil
}

// Delete removes a draft owned by authorID. Image rows go with it.
func (r *EntryRepository) Delete(ctx context.Context, id, authorID uuid.UUID) (bool, error) {
	result := conn(ctx, r.db).
		Where("id = ? AND author_id = ? AND status = ?", id, authorID, model.EntryDraft).
		Delete(&model.Entry{})
	if result.Error != nil {
		return false, fmt.Errorf("deleting entry: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *EntryRepository) AddImage(ctx context.Context, image *model.EntryImage) error {
	if err := conn(ctx, r.db).Create(image).Error; err != nil {
		return fmt.Errorf("adding entry image: %w", err)
	}
	return nil
}

// List returns entries matching filter, newest first, with the total count.
func (r *EntryRepository) List(ctx context.Context, filter EntryFilter) ([]model.Entry, int64, error) {
	query := conn(ctx, r.db).Model(&model.Entry{}).Where("entries.status = ?", filter.Status)
	if filter.OrgID != uuid.Nil {
		query = query.Where("entries.organization_id = ?", filter.OrgID)
	}
	if filter.AuthorID != uuid.Nil {
		query = query.Where("entries.author_id = ?", filter.AuthorID)
	}
	if filter.TabSlug != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM entry_tabs et JOIN tabs t ON t.id = et.tab_id WHERE et.entry_id = entries.id AND t.slug = ? AND t.enabled)",
			filter.TabSlug,
		)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("counting entries: %w", err)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var entries []model.Entry
	if err := query.
		Preload("Author").
		Preload("Tabs", func(db *gorm.DB) *gorm.DB { return db.Order("tabs.name ASC") }).
		Preload("Images").
		Order("entries.created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("listing entries: %w", err)
	}
	return entries, count, nil
}
