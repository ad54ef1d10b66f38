package model

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Onboarding runs through a fixed number of steps.
const (
	OnboardingFirstStep = 1
	OnboardingLastStep  = 5
)

type UserProfile struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	DisplayName       string     `gorm:"type:varchar(120)" json:"display_name"`
	FullName          string     `gorm:"type:varchar(120)" json:"full_name"`
	PetName           string     `gorm:"type:varchar(120)" json:"pet_name"`
	About             string     `gorm:"type:text" json:"about"`
	Nicknames         StringList `gorm:"type:text[];not null;default:'{}'" json:"nicknames"`
	ImageKey          string     `gorm:"type:text" json:"-"`
	ImageURL          string     `gorm:"type:text" json:"image_url,omitempty"`
	OnboardingEnabled bool       `gorm:"not null" json:"onboarding_enabled"`
	OnboardingStep    int        `gorm:"type:smallint;not null;default:1" json:"onboarding_step"`
	ParentID          *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	User         User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Parent       *User          `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"-"`
	SocialLinks  []SocialLink   `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"social_links"`
	Images       []ProfileImage `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"images"`
	CustomFields []CustomField  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"custom_fields"`
}

// ClampStep keeps an onboarding step inside 1..5.
func ClampStep(step int) int {
	if step < OnboardingFirstStep {
		return OnboardingFirstStep
	}
	if step > OnboardingLastStep {
		return OnboardingLastStep
	}
	return step
}

type SocialLink struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index" json:"profile_id"`
	Platform  string    `gorm:"type:varchar(50);not null" json:"platform"`
	Handle    string    `gorm:"type:varchar(120)" json:"handle"`
	URL       string    `gorm:"type:varchar(500);not null" json:"url"`
	IconKey   string    `gorm:"type:varchar(20);not null;default:'other'" json:"icon_key"`
	Visible   bool      `gorm:"not null" json:"visible"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var socialIcons = map[string]string{
	"twitter.com":   "x",
	"x.com":         "x",
	"instagram.com": "instagram",
	"facebook.com":  "facebook",
	"tiktok.com":    "tiktok",
	"youtube.com":   "youtube",
	"youtu.be":      "youtube",
	"linkedin.com":  "linkedin",
	"github.com":    "github",
}

// InferIconKey picks an icon for a social link from the URL host.
func InferIconKey(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "other"
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if icon, ok := socialIcons[host]; ok {
		return icon
	}
	return "other"
}

type ProfileImage struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProfileID  uuid.UUID `gorm:"type:uuid;not null;index" json:"profile_id"`
	StorageKey string    `gorm:"type:text;not null" json:"-"`
	URL        string    `gorm:"type:text" json:"url"`
	Caption    string    `gorm:"type:varchar(200)" json:"caption"`
	IsPrimary  bool      `gorm:"not null;default:false" json:"is_primary"`
	Visible    bool      `gorm:"not null" json:"visible"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}

type FieldKind string

const (
	FieldText   FieldKind = "text"
	FieldURL    FieldKind = "url"
	FieldDate   FieldKind = "date"
	FieldNumber FieldKind = "number"
)

func (k FieldKind) Valid() bool {
	switch k {
	case FieldText, FieldURL, FieldDate, FieldNumber:
		return true
	}
	return false
}

type CustomField struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index" json:"profile_id"`
	Label     string    `gorm:"type:varchar(120);not null" json:"label"`
	Value     string    `gorm:"type:text" json:"value"`
	Kind      FieldKind `gorm:"type:varchar(20);not null;default:'text'" json:"kind"`
	Visible   bool      `gorm:"not null" json:"visible"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
