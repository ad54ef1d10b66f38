// internal/model/organization.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name             string    `gorm:"type:text;not null;uniqueIndex" json:"name"`
	OwnerID          uuid.UUID `gorm:"type:uuid;not null" json:"owner_id"`
	RequiresTwoStage bool      `gorm:"not null" json:"requires_two_stage"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Owner       User         `gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT" json:"-"`
	Memberships []Membership `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-"`
}

// Membership links one user to one organization with exactly one role.
// The id is a bigserial so that "lowest id" means "joined first".
type Membership struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uniq_membership_user_org" json:"user_id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uniq_membership_user_org;index" json:"organization_id"`
	Role           Role       `gorm:"type:varchar(16);not null;index" json:"role"`
	ManagedByID    *uuid.UUID `gorm:"type:uuid;index" json:"managed_by_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"organization,omitempty"`
	User         User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	ManagedBy    *User        `gorm:"foreignKey:ManagedByID;constraint:OnDelete:SET NULL" json:"managed_by,omitempty"`
}

// RoleAlias holds per-organization display labels for the assignable roles.
type RoleAlias struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"organization_id"`
	ModeratorLabel string    `gorm:"type:varchar(40);not null;default:'Moderator'" json:"moderator_label"`
	AuthorLabel    string    `gorm:"type:varchar(40);not null;default:'Author'" json:"author_label"`
	SubuserLabel   string    `gorm:"type:varchar(40);not null;default:'Subuser'" json:"subuser_label"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-"`
}

// DefaultRoleAlias returns the labels used when an organization has none.
func DefaultRoleAlias(orgID uuid.UUID) *RoleAlias {
	return &RoleAlias{
		OrganizationID: orgID,
		ModeratorLabel: "Moderator",
		AuthorLabel:    "Author",
		SubuserLabel:   "Subuser",
	}
}

// LabelFor returns the organization's label for a role.
func (a *RoleAlias) LabelFor(r Role) string {
	switch r {
	case RoleModerator:
		return a.ModeratorLabel
	case RoleAuthor:
		return a.AuthorLabel
	case RoleSubauthor:
		return a.SubuserLabel
	}
	return r.Label()
}
