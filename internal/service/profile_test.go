package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func profileOf(user *model.User) *model.UserProfile {
	return &model.UserProfile{
		ID:                uuid.New(),
		UserID:            user.ID,
		Nicknames:         model.StringList{},
		OnboardingEnabled: true,
		OnboardingStep:    1,
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	me := newUser("me")
	profile := profileOf(me)
	f.profiles.EXPECT().FindOrCreate(gomock.Any(), me.ID).Return(profile, nil)
	f.profiles.EXPECT().Update(gomock.Any(), profile).Return(nil)

	got, err := f.profile.Update(ctx, me, nil, service.ProfileInput{
		DisplayName: " Mo ",
		About:       "hi",
		Nicknames:   []string{" Momo", "", "momo", "Ma"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Mo", got.DisplayName)
	assert.Equal(t, model.StringList{"Momo", "Ma"}, got.Nicknames)
}

func TestManagerEditsChildProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	parent := newUser("parent")
	kid := newUser("kid")
	profile := profileOf(kid)

	f.users.EXPECT().FindByID(gomock.Any(), kid.ID).Return(kid, nil)
	f.memberships.EXPECT().ExistsManagedBy(gomock.Any(), kid.ID, parent.ID).Return(true, nil)
	f.profiles.EXPECT().FindOrCreate(gomock.Any(), kid.ID).Return(profile, nil)
	f.profiles.EXPECT().CreateSocialLink(gomock.Any(), gomock.Any()).Return(nil)

	link, err := f.profile.AddSocialLink(ctx, parent, &kid.ID, service.SocialLinkInput{
		URL: "https://www.instagram.com/kid",
	})
	require.NoError(t, err)
	assert.Equal(t, profile.ID, link.ProfileID)
	assert.Equal(t, "instagram", link.IconKey)
	assert.Equal(t, "instagram", link.Platform)
	assert.True(t, link.Visible)
}

func TestCustomFieldKinds(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		kind  string
		value string
		ok    bool
	}{
		{"text accepts anything", "text", "likes dinosaurs", true},
		{"empty kind is text", "", "anything", true},
		{"url", "url", "https://example.com/a", true},
		{"url without scheme", "url", "example.com", false},
		{"url with other scheme", "url", "ftp://example.com", false},
		{"date", "date", "2015-06-01", true},
		{"bad date", "date", "06/01/2015", false},
		{"number", "number", "3.5", true},
		{"not a number", "number", "three", false},
		{"empty value of any kind", "number", "", true},
		{"unknown kind", "color", "red", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			me := newUser("me")
			if tt.ok {
				f.profiles.EXPECT().FindOrCreate(gomock.Any(), me.ID).Return(profileOf(me), nil)
				f.profiles.EXPECT().CreateCustomField(gomock.Any(), gomock.Any()).Return(nil)
			}

			field, err := f.profile.AddCustomField(ctx, me, nil, service.CustomFieldInput{
				Label: "Favorite",
				Value: tt.value,
				Kind:  tt.kind,
			})
			if !tt.ok {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.True(t, field.Kind.Valid())
		})
	}
}

func TestProfileImages(t *testing.T) {
	ctx := context.Background()

	t.Run("primary image becomes the profile picture", func(t *testing.T) {
		f := newFixture(t)
		me := newUser("me")
		profile := profileOf(me)
		f.profiles.EXPECT().FindOrCreate(gomock.Any(), me.ID).Return(profile, nil)
		f.store.EXPECT().Enabled().Return(true)
		f.store.EXPECT().Put(gomock.Any(), gomock.Any(), "image/jpeg", gomock.Any()).Return("https://cdn.example.com/p.jpg", nil)
		f.profiles.EXPECT().CreateImage(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, img *model.ProfileImage) error {
				img.ID = uuid.New()
				return nil
			})
		f.profiles.EXPECT().ClearPrimary(gomock.Any(), profile.ID, gomock.Any()).Return(nil)
		f.profiles.EXPECT().Update(gomock.Any(), profile).Return(nil)

		img, err := f.profile.AddImage(ctx, me, nil, service.ImageUpload{
			Filename:    "me.jpg",
			ContentType: "image/jpeg",
			Body:        strings.NewReader("jpg"),
		}, service.ImageInput{IsPrimary: ptr(true)})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(img.StorageKey, "profile_images/"+profile.ID.String()+"/"))
		assert.Equal(t, img.StorageKey, profile.ImageKey)
		assert.Equal(t, "https://cdn.example.com/p.jpg", profile.ImageURL)
	})

	t.Run("deleting the primary image clears the picture", func(t *testing.T) {
		f := newFixture(t)
		me := newUser("me")
		profile := profileOf(me)
		image := &model.ProfileImage{ID: uuid.New(), ProfileID: profile.ID, StorageKey: "profile_images/x.jpg", IsPrimary: true}
		profile.ImageKey = image.StorageKey

		f.profiles.EXPECT().FindOrCreate(gomock.Any(), me.ID).Return(profile, nil)
		f.profiles.EXPECT().FindImage(gomock.Any(), profile.ID, image.ID).Return(image, nil)
		f.profiles.EXPECT().DeleteImage(gomock.Any(), profile.ID, image.ID).Return(nil)
		f.profiles.EXPECT().Update(gomock.Any(), profile).Return(nil)
		f.store.EXPECT().Delete(gomock.Any(), "profile_images/x.jpg").Return(nil)

		require.NoError(t, f.profile.DeleteImage(ctx, me, nil, image.ID))
		assert.Empty(t, profile.ImageKey)
	})
}

func TestViewProfile(t *testing.T) {
	ctx := context.Background()

	private := func(user *model.User) *model.UserProfile {
		p := profileOf(user)
		p.FullName = "Secret Name"
		p.About = "private bio"
		return p
	}

	t.Run("self", func(t *testing.T) {
		f := newFixture(t)
		me := newUser("me")
		f.profiles.EXPECT().FindOrCreate(gomock.Any(), me.ID).Return(private(me), nil)

		p, err := f.profile.View(ctx, me, me.ID)
		require.NoError(t, err)
		assert.Equal(t, "Secret Name", p.FullName)
	})

	t.Run("manager of the subject", func(t *testing.T) {
		f := newFixture(t)
		parent := newUser("parent")
		kid := newUser("kid")
		f.memberships.EXPECT().ExistsManagedBy(gomock.Any(), kid.ID, parent.ID).Return(true, nil)
		f.profiles.EXPECT().FindOrCreate(gomock.Any(), kid.ID).Return(private(kid), nil)

		p, err := f.profile.View(ctx, parent, kid.ID)
		require.NoError(t, err)
		assert.Equal(t, "private bio", p.About)
	})

	t.Run("owner by rank", func(t *testing.T) {
		f := newFixture(t)
		owner := newUser("owner")
		author := newUser("author")
		org := newOrg("Acme", owner)
		f.join(owner, org, model.RoleOwner)
		f.join(author, org, model.RoleAuthor)
		f.notManaged()
		f.profiles.EXPECT().FindOrCreate(gomock.Any(), author.ID).Return(private(author), nil)

		_, err := f.profile.View(ctx, owner, author.ID)
		require.NoError(t, err)
	})

	tests := []struct {
		name       string
		viewerRole model.Role
		sameOrg    bool
	}{
		{"peer moderator", model.RoleModerator, true},
		{"subauthor", model.RoleSubauthor, true},
		{"member of another organization", model.RoleOwner, false},
	}

	for _, tt := range tests {
		t.Run(tt.name+" gets not found", func(t *testing.T) {
			f := newFixture(t)
			viewer := newUser("viewer")
			subject := newUser("subject")
			org := newOrg("Acme", newUser("founder"))
			f.join(subject, org, model.RoleModerator)
			if tt.sameOrg {
				f.join(viewer, org, tt.viewerRole)
			} else {
				other := newOrg("Joneses", viewer)
				f.join(viewer, other, tt.viewerRole)
				f.notMember(subject, other)
			}
			f.notManaged()

			_, err := f.profile.View(ctx, viewer, subject.ID)
			assert.ErrorIs(t, err, domain.ErrUserNotFound)
		})
	}
}

func TestRowTemplate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	me := newUser("me")
	profile := profileOf(me)
	profile.SocialLinks = []model.SocialLink{{}, {}}
	f.profiles.EXPECT().FindOrCreate(gomock.Any(), me.ID).Return(profile, nil).Times(2)

	row, err := f.profile.RowTemplate(ctx, me, nil, service.RowSocial, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, row.Index)
	assert.Equal(t, "soc-2", row.Prefix)

	row, err = f.profile.RowTemplate(ctx, me, nil, service.RowCustom, ptr(5))
	require.NoError(t, err)
	assert.Equal(t, "cf-5", row.Prefix)

	_, err = f.profile.RowTemplate(ctx, me, nil, "video", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
