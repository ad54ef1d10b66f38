package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InviteRepositoryIface interface {
	Create(ctx context.Context, invite *model.Invite) error
	FindByToken(ctx context.Context, token string) (*model.Invite, error)
	MarkUsed(ctx context.Context, id, userID uuid.UUID, now time.Time) (bool, error)
	ListByOrg(ctx context.Context, orgID uuid.UUID) ([]model.Invite, error)
}

type InviteRepository struct {
	db *gorm.DB
}

func NewInviteRepository(db *gorm.DB) *InviteRepository {
	return &InviteRepository{db: db}
}

func (r *InviteRepository) Create(ctx context.Context, invite *model.Invite) error {
	if err := conn(ctx, r.db).Create(invite).Error; err != nil {
		return fmt.Errorf("creating invite: %w", err)
	}
	return nil
}

// FindByToken returns the invite with its organization, regardless of whether
// it is still redeemable.
func (r *InviteRepository) FindByToken(ctx context.Context, token string) (*model.Invite, error) {
	var invite model.Invite
	if err := conn(ctx, r.db).Preload("Organization").Where("token = ?", token).First(&invite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("finding invite: %w", err)
	}
	return &invite, nil
}

// MarkUsed consumes the invite for userID if it is still unused and
// unexpired at now. It reports false when another request got there first or
// the invite lapsed.
func (r *InviteRepository) MarkUsed(ctx context.Context, id, userID uuid.UUID, now time.Time) (bool, error) {
	result := conn(ctx, r.db).Model(&model.Invite{}).
		Where("id = ? AND used_at IS NULL AND expires_at > ?", id, now).
		Updates(map[string]interface{}{
			"used_at":        now,
			"accepted_by_id": gorm.Expr("COALESCE(accepted_by_id, ?)", userID),
		})
	if result.Error != nil {
		return false, fmt.Errorf("marking invite used: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *InviteRepository) ListByOrg(ctx context.Context, orgID uuid.UUID) ([]model.Invite, error) {
	var invites []model.Invite
	if err := conn(ctx, r.db).
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&invites).Error; err != nil {
		return nil, fmt.Errorf("listing invites: %w", err)
	}
	return invites, nil
}
