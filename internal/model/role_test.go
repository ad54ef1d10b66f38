package model_test

import (
	"testing"

	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allRoles = []model.Role{
	model.RoleOwner,
	model.RoleAdmin,
	model.RoleModerator,
	model.RoleAuthor,
	model.RoleSubauthor,
}

func TestRoleRank(t *testing.T) {
	assert.Equal(t, 4, model.RoleOwner.Rank())
	assert.Equal(t, 3, model.RoleAdmin.Rank())
	assert.Equal(t, 2, model.RoleModerator.Rank())
	assert.Equal(t, 1, model.RoleAuthor.Rank())
	assert.Equal(t, 0, model.RoleSubauthor.Rank())
	assert.Equal(t, model.RankNone, model.RoleNone.Rank())
	assert.Equal(t, model.RankNone, model.Role("superhero").Rank())
}

func TestRoleOutranks(t *testing.T) {
	for i, r1 := range allRoles {
		for j, r2 := range allRoles {
			// allRoles is ordered highest first
			assert.Equal(t, i < j, r1.Outranks(r2), "%s outranks %s", r1, r2)
		}
		assert.True(t, r1.Outranks(model.RoleNone))
		assert.False(t, model.RoleNone.Outranks(r1))
	}
}

func TestRoleIsModerator(t *testing.T) {
	assert.True(t, model.RoleOwner.IsModerator())
	assert.True(t, model.RoleAdmin.IsModerator())
	assert.True(t, model.RoleModerator.IsModerator())
	assert.True(t, model.Role("moderator").IsModerator())
	assert.False(t, model.RoleAuthor.IsModerator())
	assert.False(t, model.RoleSubauthor.IsModerator())
	assert.False(t, model.RoleNone.IsModerator())
}

func TestParseRole(t *testing.T) {
	r, err := model.ParseRole(" author ")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAuthor, r)

	_, err = model.ParseRole("captain")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRoleAssignable(t *testing.T) {
	assert.False(t, model.RoleOwner.Assignable())
	assert.False(t, model.RoleAdmin.Assignable())
	assert.True(t, model.RoleModerator.Assignable())
	assert.True(t, model.RoleAuthor.Assignable())
	assert.True(t, model.RoleSubauthor.Assignable())
}

func TestRoleAliasLabelFor(t *testing.T) {
	alias := &model.RoleAlias{ModeratorLabel: "Parent", AuthorLabel: "Kid", SubuserLabel: "Toddler"}
	assert.Equal(t, "Parent", alias.LabelFor(model.RoleModerator))
	assert.Equal(t, "Kid", alias.LabelFor(model.RoleAuthor))
	assert.Equal(t, "Toddler", alias.LabelFor(model.RoleSubauthor))
	assert.Equal(t, "Owner", alias.LabelFor(model.RoleOwner))
}
