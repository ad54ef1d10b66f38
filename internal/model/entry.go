package model

import (
	"time"

	"github.com/google/uuid"
)

type EntryStatus int

const (
	EntryDraft EntryStatus = iota
	EntryPending
	EntryApproved
	EntryRejected
)

func (s EntryStatus) String() string {
	switch s {
	case EntryDraft:
		return "draft"
	case EntryPending:
		return "pending"
	case EntryApproved:
		return "approved"
	case EntryRejected:
		return "rejected"
	}
	return "unknown"
}

func (s EntryStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type Entry struct {
	ID             uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID   `gorm:"type:uuid;not null;index:idx_entries_org_status_created,priority:1" json:"organization_id"`
	AuthorID       uuid.UUID   `gorm:"type:uuid;not null;index:idx_entries_author_status_created,priority:1" json:"author_id"`
	ReviewerID     *uuid.UUID  `gorm:"type:uuid" json:"reviewer_id,omitempty"`
	Title          string      `gorm:"type:varchar(200);not null" json:"title"`
	Body           string      `gorm:"type:text" json:"body"`
	Status         EntryStatus `gorm:"type:smallint;not null;default:0;index:idx_entries_org_status_created,priority:2;index:idx_entries_author_status_created,priority:2" json:"status"`
	CreatedAt      time.Time   `gorm:"index:idx_entries_org_status_created,priority:3,sort:desc;index:idx_entries_author_status_created,priority:3,sort:desc" json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
	SubmittedAt    *time.Time  `gorm:"index" json:"submitted_at,omitempty"`
	ApprovedAt     *time.Time  `gorm:"index" json:"approved_at,omitempty"`
	PublishedAt    *time.Time  `json:"published_at,omitempty"`

	Organization Organization `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-"`
	Author       User         `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Reviewer     *User        `gorm:"foreignKey:ReviewerID;constraint:OnDelete:SET NULL" json:"-"`
	Tabs         []Tab        `gorm:"many2many:entry_tabs;constraint:OnDelete:CASCADE" json:"tabs"`
	Images       []EntryImage `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE" json:"images"`
}

// EntryImage is an image attached to an entry. The bytes live in the image
// store under StorageKey.
type EntryImage struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EntryID    uuid.UUID `gorm:"type:uuid;not null;index" json:"entry_id"`
	StorageKey string    `gorm:"type:text;not null" json:"-"`
	URL        string    `gorm:"type:text" json:"url"`
	Caption    string    `gorm:"type:varchar(200)" json:"caption"`
	UploadedAt time.Time `gorm:"autoCreateTime;index" json:"uploaded_at"`
}

// EntryImageKey is the storage key for an image attached to an entry.
func EntryImageKey(entryID uuid.UUID, filename string) string {
	return "entry_images/" + entryID.String() + "/" + filename
}
