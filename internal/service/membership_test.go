package service_test

import (
	"context"
	"testing"

	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/service"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPrimaryOrg(t *testing.T) {
	ctx := context.Background()

	t.Run("first membership wins and is cached", func(t *testing.T) {
		f := newFixture(t)
		user := newUser("alice")
		first := newOrg("Smiths", user)

		f.memberships.EXPECT().FindFirstByUser(gomock.Any(), user.ID).
			Return(&model.Membership{ID: 1, UserID: user.ID, OrganizationID: first.ID, Organization: *first}, nil).
			Times(1)

		for i := 0; i < 3; i++ {
			org, err := f.graph.PrimaryOrg(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, first.ID, org.ID)
		}
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheLookups.WithLabelValues("miss")))
		assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.CacheLookups.WithLabelValues("hit")))
	})

	t.Run("cached copy cannot be mutated by callers", func(t *testing.T) {
		f := newFixture(t)
		user := newUser("alice")
		org := newOrg("Smiths", user)
		f.join(user, org, model.RoleOwner)

		got, err := f.graph.PrimaryOrg(ctx, user.ID)
		require.NoError(t, err)
		got.Name = "changed"

		again, err := f.graph.PrimaryOrg(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Smiths", again.Name)
	})

	t.Run("misses are not cached", func(t *testing.T) {
		f := newFixture(t)
		user := newUser("drifter")
		f.memberships.EXPECT().FindFirstByUser(gomock.Any(), user.ID).
			Return(nil, domain.ErrMembershipNotFound).
			Times(2)

		_, err := f.graph.PrimaryOrg(ctx, user.ID)
		assert.ErrorIs(t, err, domain.ErrNoOrganization)
		_, err = f.graph.PrimaryOrg(ctx, user.ID)
		assert.ErrorIs(t, err, domain.ErrNoOrganization)
	})

	t.Run("role of a non-member is none", func(t *testing.T) {
		f := newFixture(t)
		user := newUser("drifter")
		org := newOrg("Smiths", user)
		f.notMember(user, org)

		role, err := f.graph.RoleOf(ctx, user.ID, org.ID)
		require.NoError(t, err)
		assert.Equal(t, model.RoleNone, role)
	})
}

func TestSetRole(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*fixture, *model.User, *model.Membership) {
		f := newFixture(t)
		admin := newUser("admin")
		author := newUser("author")
		org := newOrg("Smiths", admin)
		f.join(admin, org, model.RoleAdmin)
		target := f.join(author, org, model.RoleAuthor)
		return f, admin, target
	}

	t.Run("promotes below the actor's rank", func(t *testing.T) {
		f, admin, target := setup(t)
		f.memberships.EXPECT().UpdateRole(gomock.Any(), target.ID, model.RoleModerator).Return(nil)

		m, err := f.members.SetRole(ctx, admin, target.ID, "moderator")
		require.NoError(t, err)
		assert.Equal(t, model.RoleModerator, m.Role)
	})

	t.Run("cannot grant an equal role", func(t *testing.T) {
		f := newFixture(t)
		mod := newUser("mod")
		author := newUser("author")
		org := newOrg("Smiths", newUser("mom"))
		f.join(mod, org, model.RoleModerator)
		target := f.join(author, org, model.RoleAuthor)

		_, err := f.members.SetRole(ctx, mod, target.ID, "MODERATOR")
		assert.ErrorIs(t, err, domain.ErrAuthorizationDenied)
	})

	t.Run("admin and owner are not assignable", func(t *testing.T) {
		f := newFixture(t)
		owner := newUser("owner")
		author := newUser("author")
		org := newOrg("Smiths", owner)
		f.join(owner, org, model.RoleOwner)
		target := f.join(author, org, model.RoleAuthor)
		root := newUser("root")
		root.IsSuperuser = true
		f.join(root, org, model.RoleAuthor)

		for _, tc := range []struct {
			actor *model.User
			role  string
		}{
			{owner, "ADMIN"},
			{owner, "OWNER"},
			{root, "OWNER"},
		} {
			_, err := f.members.SetRole(ctx, tc.actor, target.ID, tc.role)
			var fe domain.FieldErrors
			require.ErrorAs(t, err, &fe, "%s granting %s", tc.actor.Username, tc.role)
			assert.Contains(t, fe, "role")
		}
	})

	t.Run("unknown role is a field error", func(t *testing.T) {
		f, admin, target := setup(t)

		_, err := f.members.SetRole(ctx, admin, target.ID, "overlord")
		var fe domain.FieldErrors
		require.ErrorAs(t, err, &fe)
		assert.Contains(t, fe, "role")
	})

	t.Run("membership of another organization looks missing", func(t *testing.T) {
		f, admin, _ := setup(t)
		f.memberships.EXPECT().FindByID(gomock.Any(), int64(99)).
			Return(&model.Membership{ID: 99, OrganizationID: uuid.New()}, nil)

		_, err := f.members.SetRole(ctx, admin, 99, "AUTHOR")
		assert.ErrorIs(t, err, domain.ErrMembershipNotFound)
	})
}

func TestDelegate(t *testing.T) {
	ctx := context.Background()

	t.Run("sets manager and profile parent once", func(t *testing.T) {
		f := newFixture(t)
		parent := newUser("parent")
		kid := newUser("kid")
		org := newOrg("Smiths", parent)
		f.join(parent, org, model.RoleOwner)
		m := f.join(kid, org, model.RoleSubauthor)

		f.memberships.EXPECT().SetManagerIfNull(gomock.Any(), m.ID, parent.ID).Return(true, nil)
		f.profiles.EXPECT().SetParentIfNull(gomock.Any(), kid.ID, parent.ID).Return(true, nil)

		got, err := f.members.Delegate(ctx, parent.ID, kid.ID, org.ID)
		require.NoError(t, err)
		require.NotNil(t, got.ManagedByID)
		assert.Equal(t, parent.ID, *got.ManagedByID)
	})

	t.Run("existing manager is never replaced", func(t *testing.T) {
		f := newFixture(t)
		first := newUser("first")
		second := newUser("second")
		kid := newUser("kid")
		org := newOrg("Smiths", first)
		f.memberships.EXPECT().FindByUserAndOrg(gomock.Any(), kid.ID, org.ID).
			Return(&model.Membership{ID: 7, UserID: kid.ID, OrganizationID: org.ID, ManagedByID: &first.ID}, nil)

		got, err := f.members.Delegate(ctx, second.ID, kid.ID, org.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, *got.ManagedByID)
	})

	t.Run("lost race returns the winner's row", func(t *testing.T) {
		f := newFixture(t)
		winner := uuid.New()
		loser := newUser("loser")
		kid := newUser("kid")
		orgID := uuid.New()

		gomock.InOrder(
			f.memberships.EXPECT().FindByUserAndOrg(gomock.Any(), kid.ID, orgID).
				Return(&model.Membership{ID: 7, UserID: kid.ID, OrganizationID: orgID}, nil),
			f.memberships.EXPECT().SetManagerIfNull(gomock.Any(), int64(7), loser.ID).Return(false, nil),
			f.memberships.EXPECT().FindByUserAndOrg(gomock.Any(), kid.ID, orgID).
				Return(&model.Membership{ID: 7, UserID: kid.ID, OrganizationID: orgID, ManagedByID: &winner}, nil),
		)

		got, err := f.members.Delegate(ctx, loser.ID, kid.ID, orgID)
		require.NoError(t, err)
		assert.Equal(t, winner, *got.ManagedByID)
	})

	t.Run("named manager must outrank the member", func(t *testing.T) {
		f := newFixture(t)
		owner := newUser("owner")
		mod := newUser("mod")
		kid := newUser("kid")
		org := newOrg("Smiths", owner)
		f.join(owner, org, model.RoleOwner)
		modMembership := f.join(mod, org, model.RoleModerator)
		kidMembership := f.join(kid, org, model.RoleSubauthor)

		_, err := f.members.DelegateMember(ctx, owner, modMembership.ID, &kid.ID)
		var fe domain.FieldErrors
		require.ErrorAs(t, err, &fe)
		assert.Contains(t, fe, "manager_id")

		f.memberships.EXPECT().SetManagerIfNull(gomock.Any(), kidMembership.ID, mod.ID).Return(true, nil)
		f.profiles.EXPECT().SetParentIfNull(gomock.Any(), kid.ID, mod.ID).Return(true, nil)

		got, err := f.members.DelegateMember(ctx, owner, kidMembership.ID, &mod.ID)
		require.NoError(t, err)
		assert.Equal(t, mod.ID, *got.ManagedByID)
	})

	t.Run("self delegation is rejected", func(t *testing.T) {
		f := newFixture(t)
		user := newUser("me")

		_, err := f.members.Delegate(ctx, user.ID, user.ID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestAddMember(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a managed account with a generated password", func(t *testing.T) {
		f := newFixture(t)
		mod := newUser("mod")
		org := newOrg("Smiths", mod)
		f.join(mod, org, model.RoleModerator)
		f.acceptUsers()

		var created *model.Membership
		f.memberships.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m *model.Membership) (bool, error) {
				m.ID = 42
				created = m
				return true, nil
			})
		f.memberships.EXPECT().FindByUserAndOrg(gomock.Any(), gomock.Any(), org.ID).
			DoAndReturn(func(context.Context, uuid.UUID, uuid.UUID) (*model.Membership, error) {
				cp := *created
				return &cp, nil
			})
		f.profiles.EXPECT().FindOrCreate(gomock.Any(), gomock.Any()).Return(&model.UserProfile{}, nil)
		f.profiles.EXPECT().SetParentIfNull(gomock.Any(), gomock.Any(), mod.ID).Return(true, nil)

		out, err := f.members.AddMember(ctx, mod, service.AddMemberInput{
			Username:  "kiddo",
			Role:      "subauthor",
			ManagedBy: true,
		})
		require.NoError(t, err)
		assert.Len(t, out.GeneratedPassword, 12)
		assert.Equal(t, model.RoleSubauthor, out.Membership.Role)
		assert.Equal(t, "kiddo", out.Membership.User.Username)
		require.NotNil(t, out.Membership.ManagedByID)
		assert.Equal(t, mod.ID, *out.Membership.ManagedByID)
	})

	t.Run("owner role cannot be assigned", func(t *testing.T) {
		f := newFixture(t)
		mod := newUser("mod")
		f.join(mod, newOrg("Smiths", mod), model.RoleModerator)

		_, err := f.members.AddMember(ctx, mod, service.AddMemberInput{Username: "x", Role: "owner"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("authors cannot add members", func(t *testing.T) {
		f := newFixture(t)
		author := newUser("author")
		f.join(author, newOrg("Smiths", author), model.RoleAuthor)

		_, err := f.members.AddMember(ctx, author, service.AddMemberInput{Username: "x", Role: "author"})
		assert.ErrorIs(t, err, domain.ErrAuthorizationDenied)
	})
}

func TestRemoveMember(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cannot be removed", func(t *testing.T) {
		f := newFixture(t)
		owner := newUser("owner")
		org := newOrg("Smiths", owner)
		m := f.join(owner, org, model.RoleOwner)

		err := f.members.RemoveMember(ctx, owner, m.ID)
		assert.ErrorIs(t, err, domain.ErrAuthorizationDenied)
	})

	t.Run("lower member is removed and cache dropped", func(t *testing.T) {
		f := newFixture(t)
		owner := newUser("owner")
		author := newUser("author")
		org := newOrg("Smiths", owner)
		f.join(owner, org, model.RoleOwner)
		m := f.join(author, org, model.RoleAuthor)

		_, err := f.graph.PrimaryOrg(ctx, author.ID)
		require.NoError(t, err)
		require.Equal(t, 1, f.cache.Len())

		f.memberships.EXPECT().Delete(gomock.Any(), m.ID).Return(nil)
		require.NoError(t, f.members.RemoveMember(ctx, owner, m.ID))

		_, cached := f.cache.Get(author.ID)
		assert.False(t, cached)
	})
}

func TestRoleAliases(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	owner := newUser("owner")
	org := newOrg("Smiths", owner)
	f.join(owner, org, model.RoleOwner)

	f.orgs.EXPECT().FindRoleAlias(gomock.Any(), org.ID).Return(nil, domain.ErrNotFound)
	alias, err := f.members.RoleAliases(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "Moderator", alias.ModeratorLabel)

	f.orgs.EXPECT().SaveRoleAlias(gomock.Any(), gomock.Any()).Return(nil)
	alias, err = f.members.SaveRoleAliases(ctx, owner, service.RoleAliasInput{
		ModeratorLabel: " Parent ",
		AuthorLabel:    "Teen",
		SubuserLabel:   "Kid",
	})
	require.NoError(t, err)
	assert.Equal(t, "Parent", alias.ModeratorLabel)
	assert.Equal(t, "Kid", alias.LabelFor(model.RoleSubauthor))
}
