package model

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryChannel string

const (
	DeliveryEmail DeliveryChannel = "email"
	DeliverySMS   DeliveryChannel = "sms"
)

// DefaultInviteTTL is how long an invite stays redeemable.
const DefaultInviteTTL = 72 * time.Hour

// Invite grants membership in an organization at a fixed role. Invites are
// consumed once and never deleted.
type Invite struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"organization_id"`
	Role           Role            `gorm:"type:varchar(16);not null" json:"role"`
	Delivery       DeliveryChannel `gorm:"type:varchar(10);not null;default:'email'" json:"delivery"`
	Email          string          `gorm:"type:text" json:"email,omitempty"`
	Phone          string          `gorm:"type:varchar(32)" json:"phone,omitempty"`
	Token          string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"-"`
	CreatedByID    uuid.UUID       `gorm:"type:uuid;not null" json:"created_by_id"`
	CreatedAt      time.Time       `json:"created_at"`
	ExpiresAt      time.Time       `gorm:"not null" json:"expires_at"`
	UsedAt         *time.Time      `json:"used_at,omitempty"`
	AcceptedByID   *uuid.UUID      `gorm:"type:uuid" json:"accepted_by_id,omitempty"`

	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"organization,omitempty"`
	CreatedBy    User         `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"-"`
	AcceptedBy   *User        `gorm:"foreignKey:AcceptedByID;constraint:OnDelete:SET NULL" json:"-"`
}

// IsValid reports whether the invite is unused and not yet expired at now.
func (i *Invite) IsValid(now time.Time) bool {
	return i.UsedAt == nil && now.Before(i.ExpiresAt)
}

// Contact returns the address the invite is delivered to.
func (i *Invite) Contact() string {
	if i.Delivery == DeliverySMS {
		return i.Phone
	}
	return i.Email
}
