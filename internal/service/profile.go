package service

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/repository"
	"github.com/dangerclosesec/tabbedjournal/internal/storage"
	"github.com/google/uuid"
)

// Row kinds served by RowTemplate.
const (
	RowSocial = "social"
	RowImage  = "image"
	RowCustom = "custom"
)

var rowPrefixes = map[string]string{
	RowSocial: "soc",
	RowImage:  "img",
	RowCustom: "cf",
}

// ProfileService edits user profiles. The target of every call is resolved
// through AuthzService.ResolveProfileTarget, so profiles the actor may not
// edit look missing.
type ProfileService struct {
	repo   repository.ProfileRepositoryIface
	authz  *AuthzService
	images storage.ImageStore
	tx     repository.TransactorIface
}

func NewProfileService(
	repo repository.ProfileRepositoryIface,
	authz *AuthzService,
	images storage.ImageStore,
	tx repository.TransactorIface,
) *ProfileService {
	return &ProfileService{repo: repo, authz: authz, images: images, tx: tx}
}

// target loads the profile the actor is allowed to edit.
func (s *ProfileService) target(ctx context.Context, actor *model.User, targetID *uuid.UUID) (*model.UserProfile, error) {
	user, err := s.authz.ResolveProfileTarget(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindOrCreate(ctx, user.ID)
}

// Get returns the full profile for editing.
func (s *ProfileService) Get(ctx context.Context, actor *model.User, targetID *uuid.UUID) (*model.UserProfile, error) {
	return s.target(ctx, actor, targetID)
}

// View returns the profile of subjectID. Viewers who may neither view nor
// edit it get ErrUserNotFound.
func (s *ProfileService) View(ctx context.Context, viewer *model.User, subjectID uuid.UUID) (*model.UserProfile, error) {
	allowed, err := s.authz.CanEditProfile(ctx, viewer, subjectID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrUserNotFound
	}
	return s.repo.FindOrCreate(ctx, subjectID)
}

type ProfileInput struct {
	DisplayName string   `json:"display_name" validate:"max=120"`
	FullName    string   `json:"full_name" validate:"max=120"`
	PetName     string   `json:"pet_name" validate:"max=120"`
	About       string   `json:"about" validate:"max=5000"`
	Nicknames   []string `json:"nicknames" validate:"max=20,dive,max=60"`
}

func (s *ProfileService) Update(ctx context.Context, actor *model.User, targetID *uuid.UUID, input ProfileInput) (*model.UserProfile, error) {
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	input.FullName = strings.TrimSpace(input.FullName)
	input.PetName = strings.TrimSpace(input.PetName)
	input.Nicknames = cleanNicknames(input.Nicknames)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	profile, err := s.target(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}

	profile.DisplayName = input.DisplayName
	profile.FullName = input.FullName
	profile.PetName = input.PetName
	profile.About = input.About
	profile.Nicknames = model.StringList(input.Nicknames)
	profile.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// cleanNicknames trims, drops blanks and keeps the first of each duplicate.
func cleanNicknames(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, n := range in {
		n = strings.TrimSpace(n)
		key := strings.ToLower(n)
		if n == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}

type SocialLinkInput struct {
	Platform string `json:"platform" validate:"max=50"`
	Handle   string `json:"handle" validate:"max=120"`
	URL      string `json:"url" validate:"required,max=500,http_url"`
	Visible  *bool  `json:"visible"`
	Position *int   `json:"position"`
}

func (s *ProfileService) AddSocialLink(ctx context.Context, actor *model.User, targetID *uuid.UUID, input SocialLinkInput) (*model.SocialLink, error) {
	input.URL = strings.TrimSpace(input.URL)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	profile, err := s.target(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}

	link := &model.SocialLink{
		ProfileID: profile.ID,
		Visible:   true,
		Position:  len(profile.SocialLinks),
	}
	applySocialInput(link, input)

	if err := s.repo.CreateSocialLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *ProfileService) UpdateSocialLink(ctx context.Context, actor *model.User, targetID *uuid.UUID, linkID uuid.UUID, input SocialLinkInput) (*model.SocialLink, error) {
	input.URL = strings.TrimSpace(input.URL)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	profile, err := s.target(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}

	link, err := s.repo.FindSocialLink(ctx, profile.ID, linkID)
	if err != nil {
		return nil, err
	}
	applySocialInput(link, input)
	link.UpdatedAt = time.Now()

	if err := s.repo.UpdateSocialLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func applySocialInput(link *model.SocialLink, input SocialLinkInput) {
	link.URL = input.URL
	link.Handle = strings.TrimSpace(input.Handle)
	link.IconKey = model.InferIconKey(input.URL)
	link.Platform = strings.TrimSpace(input.Platform)
	if link.Platform == "" {
		link.Platform = link.IconKey
	}
	if input.Visible != nil {
		link.Visible = *input.Visible
	}
	if input.Position != nil {
		link.Position = *input.Position
	}
}

func (s *ProfileService) DeleteSocialLink(ctx context.Context, actor *model.User, targetID *uuid.UUID, linkID uuid.UUID) error {
	profile, err := s.target(ctx, actor, targetID)
	if err != nil {
		return err
	}
	return s.repo.DeleteSocialLink(ctx, profile.ID, linkID)
}

// ReorderSocialLinks sets each link's position to its index in ids. Links
// not listed keep their position.
func (s *ProfileService) ReorderSocialLinks(ctx context.Context, actor *model.User, targetID *uuid.UUID, ids []uuid.UUID) ([]model.SocialLink, error) {
	profile, err := s.target(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*model.SocialLink, len(profile.SocialLinks))
	for i := range profile.SocialLinks {
		byID[profile.SocialLinks[i].ID] = &profile.SocialLinks[i]
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, domain.ErrProfileItemNotFound
		}
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		for pos, id := range ids {
			link := byID[id]
			link.Position = pos
			link.UpdatedAt = time.Now()
			if err := s.repo.UpdateSocialLink(ctx, link); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile.SocialLinks, nil
}

type ImageInput struct {
	Caption   *string `json:"caption" validate:"omitempty,max=200"`
	IsPrimary *bool   `json:"is_primary"`
	Visible   *bool   `json:"visible"`
	Position  *int    `json:"position"`
}

// AddImage stores an uploaded image on the profile. A primary image becomes
// the profile picture and clears the flag on the others.
func (s *ProfileService) AddImage(ctx context.Context, actor *model.User, targetID *uuid.UUID, upload ImageUpload, input ImageInput) (*model.ProfileImage, error) {
	if upload.Caption != "" && input.Caption == nil {
		input.Caption = &upload.Caption
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := checkUploads(s.images, "image", []ImageUpload{upload}); err != nil {
		return nil, err
	}

	profile, err := s.target(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}

	key := profileImageKey(profile.ID, uploadName(upload))
	imageURL, err := s.images.Put(ctx, key, upload.ContentType, upload.Body)
	if err != nil {
		return nil, err
	}

	image := &model.ProfileImage{
		ProfileID:  profile.ID,
		StorageKey: key,
		URL:        imageURL,
		Visible:    true,
		Position:   len(profile.Images),
	}
	applyImageInput(image, input)

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateImage(ctx, image); err != nil {
			return err
		}
		if image.IsPrimary {
			return s.promote(ctx, profile, image)
		}
		return nil
	})
	if err != nil {
		removeObjects(ctx, s.images, []string{key})
		return nil, err
	}
	return image, nil
}

func (s *ProfileService) UpdateImage(ctx context.Context, actor *model.User, targetID *uuid.UUID, imageID uuid.UUID, input ImageInput) (*model.ProfileImage, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	profile, err := s.target(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}

	image, err := s.repo.FindImage(ctx, profile.ID, imageID)
	if err != nil {
		return nil, err
	}
	wasPrimary := image.IsPrimary
	applyImageInput(image, input)

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateImage(ctx, image); err != nil {
			return err
		}
		switch {
		case image.IsPrimary && !wasPrimary:
			return s.promote(ctx, profile, image)
		case !image.IsPrimary && wasPrimary && profile.ImageKey == image.StorageKey:
			return s.setProfilePicture(ctx, profile, "", "")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return image, nil
}

func applyImageInput(image *model.ProfileImage, input ImageInput) {
	if input.Caption != nil {
		image.Caption = strings.TrimSpace(*input.Caption)
	}
	if input.IsPrimary != nil {
		image.IsPrimary = *input.IsPrimary
	}
	if input.Visible != nil {
		image.Visible = *input.Visible
	}
	if input.Position != nil {
		image.Position = *input.Position
	}
}

// promote makes image the only primary image and the profile picture.
func (s *ProfileService) promote(ctx context.Context, profile *model.UserProfile, image *model.ProfileImage) error {
	if err := s.repo.ClearPrimary(ctx, profile.ID, image.ID); err != nil {
		return err
	}
	return s.setProfilePicture(ctx, profile, image.StorageKey, image.URL)
}

func (s *ProfileService) setProfilePicture(ctx context.Context, profile *model.UserProfile, key, imageURL string) error {
	profile.ImageKey = key
	profile.ImageURL = imageURL
	profile.UpdatedAt = time.Now()
	return s.repo.Update(ctx, profile)
}

// DeleteImage removes the image row, then the stored object on a best-effort
// basis.
func (s *ProfileService) DeleteImage(ctx context.Context, actor *model.User, targetID *uuid.UUID, imageID uuid.UUID) error {
	profile, err := s.target(ctx, actor, targetID)
	if err != nil {
		return err
	}

	image, err := s.repo.FindImage(ctx, profile.ID, imageID)
	if err != nil {
		return err
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.repo.DeleteImage(ctx, profile.ID, image.ID); err != nil {
			return err
		}
		if profile.ImageKey == image.StorageKey {
			return s.setProfilePicture(ctx, profile, "", "")
		}
		return nil
	})
	if err != nil {
		return err
	}

	removeObjects(ctx, s.images, []string{image.StorageKey})
	return nil
}

func profileImageKey(profileID uuid.UUID, name string) string {
	return "profile_images/" + profileID.String() + "/" + name
}

type CustomFieldInput struct {
	Label    string `json:"label" validate:"required,max=120"`
	Value    string `json:"value" validate:"max=2000"`
	Kind     string `json:"kind" validate:"omitempty,oneof=text url date number"`
	Visible  *bool  `json:"visible"`
	Position *int   `json:"position"`
}

func (s *ProfileService) AddCustomField(ctx context.Context, actor *model.User, targetID *uuid.UUID, input CustomFieldInput) (*model.CustomField, error) {
	if err := cleanCustomField(&input); err != nil {
		return nil, err
	}

	profile, err := s.target(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}

	field := &model.CustomField{
		ProfileID: profile.ID,
		Visible:   true,
		Position:  len(profile.CustomFields),
	}
	applyCustomFieldInput(field, input)

	if err := s.repo.CreateCustomField(ctx, field); err != nil {
		return nil, err
	}
	return field, nil
}

func (s *ProfileService) UpdateCustomField(ctx context.Context, actor *model.User, targetID *uuid.UUID, fieldID uuid.UUID, input CustomFieldInput) (*model.CustomField, error) {
	if err := cleanCustomField(&input); err != nil {
		return nil, err
	}

	profile, err := s.target(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}

	field, err := s.repo.FindCustomField(ctx, profile.ID, fieldID)
	if err != nil {
		return nil, err
	}
	applyCustomFieldInput(field, input)
	field.UpdatedAt = time.Now()

	if err := s.repo.UpdateCustomField(ctx, field); err != nil {
		return nil, err
	}
	return field, nil
}

func (s *ProfileService) DeleteCustomField(ctx context.Context, actor *model.User, targetID *uuid.UUID, fieldID uuid.UUID) error {
	profile, err := s.target(ctx, actor, targetID)
	if err != nil {
		return err
	}
	return s.repo.DeleteCustomField(ctx, profile.ID, fieldID)
}

func applyCustomFieldInput(field *model.CustomField, input CustomFieldInput) {
	field.Label = input.Label
	field.Value = input.Value
	field.Kind = model.FieldKind(input.Kind)
	if input.Visible != nil {
		field.Visible = *input.Visible
	}
	if input.Position != nil {
		field.Position = *input.Position
	}
}

// cleanCustomField trims the input and checks the value against its kind.
func cleanCustomField(input *CustomFieldInput) error {
	input.Label = strings.TrimSpace(input.Label)
	input.Value = strings.TrimSpace(input.Value)
	input.Kind = strings.ToLower(strings.TrimSpace(input.Kind))
	if input.Kind == "" {
		input.Kind = string(model.FieldText)
	}
	if err := validateInput(*input); err != nil {
		return err
	}
	if input.Value == "" {
		return nil
	}

	switch model.FieldKind(input.Kind) {
	case model.FieldURL:
		u, err := url.ParseRequestURI(input.Value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fieldError("value", "Enter a valid URL.")
		}
	case model.FieldDate:
		if _, err := time.Parse("2006-01-02", input.Value); err != nil {
			return fieldError("value", "Enter a valid date (YYYY-MM-DD).")
		}
	case model.FieldNumber:
		if _, err := strconv.ParseFloat(input.Value, 64); err != nil {
			return fieldError("value", "Enter a number.")
		}
	}
	return nil
}

// RowTemplate is an empty form row for one of the profile collections.
type RowTemplate struct {
	Kind   string      `json:"kind"`
	Index  int         `json:"index"`
	Prefix string      `json:"prefix"`
	Row    interface{} `json:"row"`
}

// RowTemplate returns a blank row of kind for the profile the actor edits.
// A nil index continues after the existing rows.
func (s *ProfileService) RowTemplate(ctx context.Context, actor *model.User, targetID *uuid.UUID, kind string, index *int) (*RowTemplate, error) {
	prefix, ok := rowPrefixes[kind]
	if !ok {
		return nil, domain.ErrNotFound
	}

	profile, err := s.target(ctx, actor, targetID)
	if err != nil {
		return nil, err
	}

	tmpl := &RowTemplate{Kind: kind}
	switch kind {
	case RowSocial:
		tmpl.Index = len(profile.SocialLinks)
		tmpl.Row = model.SocialLink{ProfileID: profile.ID, IconKey: "other", Visible: true, Position: tmpl.Index}
	case RowImage:
		tmpl.Index = len(profile.Images)
		tmpl.Row = model.ProfileImage{ProfileID: profile.ID, Visible: true, Position: tmpl.Index}
	case RowCustom:
		tmpl.Index = len(profile.CustomFields)
		tmpl.Row = model.CustomField{ProfileID: profile.ID, Kind: model.FieldText, Visible: true, Position: tmpl.Index}
	}
	if index != nil && *index >= 0 {
		tmpl.Index = *index
	}
	tmpl.Prefix = prefix + "-" + strconv.Itoa(tmpl.Index)
	return tmpl, nil
}
