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

type ProfileRepositoryIface interface {
	FindOrCreate(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error)
	Update(ctx context.Context, profile *model.UserProfile) error
	UpdateOnboarding(ctx context.Context, profileID uuid.UUID, enabled bool, step int) error
	SetParentIfNull(ctx context.Context, userID, parentID uuid.UUID) (bool, error)

	CreateSocialLink(ctx context.Context, link *model.SocialLink) error
	FindSocialLink(ctx context.Context, profileID, id uuid.UUID) (*model.SocialLink, error)
	UpdateSocialLink(ctx context.Context, link *model.SocialLink) error
	DeleteSocialLink(ctx context.Context, profileID, id uuid.UUID) error

	CreateImage(ctx context.Context, image *model.ProfileImage) error
	FindImage(ctx context.Context, profileID, id uuid.UUID) (*model.ProfileImage, error)
	UpdateImage(ctx context.Context, image *model.ProfileImage) error
	DeleteImage(ctx context.Context, profileID, id uuid.UUID) error
	ClearPrimary(ctx context.Context, profileID, exceptID uuid.UUID) error

	CreateCustomField(ctx context.Context, field *model.CustomField) error
	FindCustomField(ctx context.Context, profileID, id uuid.UUID) (*model.CustomField, error)
	UpdateCustomField(ctx context.Context, field *model.CustomField) error
	DeleteCustomField(ctx context.Context, profileID, id uuid.UUID) error
}

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, created_at ASC")
}

// FindOrCreate loads the user's profile with its links, images and custom
// fields, creating an empty one on first access.
func (r *ProfileRepository) FindOrCreate(ctx context.Context, userID uuid.UUID) (*model.UserProfile, error) {
	db := conn(ctx, r.db)
	seed := model.UserProfile{
		UserID:            userID,
		Nicknames:         model.StringList{},
		OnboardingEnabled: true,
		OnboardingStep:    model.OnboardingFirstStep,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&seed).Error
	if err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}

	var profile model.UserProfile
	if err := db.
		Preload("SocialLinks", byPosition).
		Preload("Images", byPosition).
		Preload("CustomFields", byPosition).
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return &profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *model.UserProfile) error {
	err := conn(ctx, r.db).Model(profile).
		Select("display_name", "full_name", "pet_name", "about", "nicknames", "image_key", "image_url", "updated_at").
		Updates(profile).Error
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) UpdateOnboarding(ctx context.Context, profileID uuid.UUID, enabled bool, step int) error {
	err := conn(ctx, r.db).Model(&model.UserProfile{}).
		Where("id = ?", profileID).
		Updates(map[string]interface{}{
			"onboarding_enabled": enabled,
			"onboarding_step":    model.ClampStep(step),
			"updated_at":         gorm.Expr("NOW()"),
		}).Error
	if err != nil {
		return fmt.Errorf("updating onboarding: %w", err)
	}
	return nil
}

// SetParentIfNull sets the profile parent of userID only while it is unset.
func (r *ProfileRepository) SetParentIfNull(ctx context.Context, userID, parentID uuid.UUID) (bool, error) {
	result := conn(ctx, r.db).Model(&model.UserProfile{}).
		Where("user_id = ? AND parent_id IS NULL", userID).
		Update("parent_id", parentID)
	if result.Error != nil {
		return false, fmt.Errorf("setting profile parent: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// findItem loads one child row of a profile into dest.
func (r *ProfileRepository) findItem(ctx context.Context, dest interface{}, profileID, id uuid.UUID) error {
	if err := conn(ctx, r.db).Where("id = ? AND profile_id = ?", id, profileID).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrProfileItemNotFound
		}
		return fmt.Errorf("finding profile item: %w", err)
	}
	return nil
}

func (r *ProfileRepository) deleteItem(ctx context.Context, value interface{}, profileID, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ? AND profile_id = ?", id, profileID).Delete(value)
	if result.Error != nil {
		return fmt.Errorf("deleting profile item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProfileItemNotFound
	}
	return nil
}

func (r *ProfileRepository) CreateSocialLink(ctx context.Context, link *model.SocialLink) error {
	if err := conn(ctx, r.db).Create(link).Error; err != nil {
		return fmt.Errorf("creating social link: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindSocialLink(ctx context.Context, profileID, id uuid.UUID) (*model.SocialLink, error) {
	var link model.SocialLink
	if err := r.findItem(ctx, &link, profileID, id); err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *ProfileRepository) UpdateSocialLink(ctx context.Context, link *model.SocialLink) error {
	err := conn(ctx, r.db).Model(link).
		Select("platform", "handle", "url", "icon_key", "visible", "position", "updated_at").
		Updates(link).Error
	if err != nil {
		return fmt.Errorf("updating social link: %w", err)
	}
	return nil
}

func (r *ProfileRepository) DeleteSocialLink(ctx context.Context, profileID, id uuid.UUID) error {
	return r.deleteItem(ctx, &model.SocialLink{}, profileID, id)
}

func (r *ProfileRepository) CreateImage(ctx context.Context, image *model.ProfileImage) error {
	if err := conn(ctx, r.db).Create(image).Error; err != nil {
		return fmt.Errorf("creating profile image: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindImage(ctx context.Context, profileID, id uuid.UUID) (*model.ProfileImage, error) {
	var image model.ProfileImage
	if err := r.findItem(ctx, &image, profileID, id); err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *ProfileRepository) UpdateImage(ctx context.Context, image *model.ProfileImage) error {
	err := conn(ctx, r.db).Model(image).
		Select("caption", "is_primary", "visible", "position").
		Updates(image).Error
	if err != nil {
		return fmt.Errorf("updating profile image: %w", err)
	}
	return nil
}

func (r *ProfileRepository) DeleteImage(ctx context.Context, profileID, id uuid.UUID) error {
	return r.deleteItem(ctx, &model.ProfileImage{}, profileID, id)
}

// ClearPrimary unsets is_primary on every image of the profile but exceptID.
func (r *ProfileRepository) ClearPrimary(ctx context.Context, profileID, exceptID uuid.UUID) error {
	err := conn(ctx, r.db).Model(&model.ProfileImage{}).
		Where("profile_id = ? AND id <> ? AND is_primary", profileID, exceptID).
		Update("is_primary", false).Error
	if err != nil {
		return fmt.Errorf("clearing primary image: %w", err)
	}
	return nil
}

func (r *ProfileRepository) CreateCustomField(ctx context.Context, field *model.CustomField) error {
	if err := conn(ctx, r.db).Create(field).Error; err != nil {
		return fmt.Errorf("creating custom field: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindCustomField(ctx context.Context, profileID, id uuid.UUID) (*model.CustomField, error) {
	var field model.CustomField
	if err := r.findItem(ctx, &field, profileID, id); err != nil {
		return nil, err
	}
	return &field, nil
}

func (r *ProfileRepository) UpdateCustomField(ctx context.Context, field *model.CustomField) error {
	err := conn(ctx, r.db).Model(field).
		Select("label", "value", "kind", "visible", "position", "updated_at").
		Updates(field).Error
	if err != nil {
		return fmt.Errorf("updating custom field: %w", err)
	}
	return nil
}

func (r *ProfileRepository) DeleteCustomField(ctx context.Context, profileID, id uuid.UUID) error {
	return r.deleteItem(ctx, &model.CustomField{}, profileID, id)
}
