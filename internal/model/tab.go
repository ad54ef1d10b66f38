package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTabName is the tab entries land in when the author picks none.
const DefaultTabName = "General"

type Tab struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uniq_tab_slug_per_org;uniqueIndex:uniq_tab_name_per_org;index:idx_tabs_org_enabled_name,priority:1" json:"organization_id"`
	Name           string     `gorm:"type:varchar(64);not null;uniqueIndex:uniq_tab_name_per_org;index:idx_tabs_org_enabled_name,priority:3" json:"name"`
	Slug           string     `gorm:"type:varchar(120);not null;uniqueIndex:uniq_tab_slug_per_org" json:"slug"`
	Enabled        bool       `gorm:"not null;index:idx_tabs_org_enabled_name,priority:2" json:"enabled"`
	Visibility     int        `gorm:"not null;default:20" json:"visibility"`
	CreatedByID    *uuid.UUID `gorm:"type:uuid" json:"created_by_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedBy    *User        `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
}

// NormalizeTabName collapses internal whitespace and trims the name.
func NormalizeTabName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
