// internal/model/user_factor.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FactorType string

const (
	FactorHashpass FactorType = "hashpass"
)

// UserFactor stores credential material for a user. Accounts created through
// invites or the member form get exactly one hashpass factor.
type UserFactor struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;column:user_id;uniqueIndex:uniq_user_factor_type"`
	FactorType FactorType `gorm:"type:varchar(32);not null;uniqueIndex:uniq_user_factor_type"`
	Material   string     `gorm:"type:text"`
	IsActive   bool       `gorm:"not null"`
	LastUsedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate hook for UserFactor
func (uf *UserFactor) BeforeCreate(tx *gorm.DB) error {
	if uf.ID == uuid.Nil {
		uf.ID = uuid.New()
	}

	if uf.FactorType != FactorHashpass {
		return fmt.Errorf("invalid factor type: %s", uf.FactorType)
	}

	return nil
}
