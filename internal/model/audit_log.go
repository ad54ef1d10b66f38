package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// AuditLog records authorization decisions and state changes.
type AuditLog struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Timestamp   time.Time  `json:"timestamp" gorm:"index;default:CURRENT_TIMESTAMP"`
	ActionType  string     `json:"action_type" gorm:"type:varchar(32);index"`
	ActorID     *uuid.UUID `json:"actor_id,omitempty" gorm:"type:uuid;index"`
	OrgID       *uuid.UUID `json:"organization_id,omitempty" gorm:"type:uuid;index"`
	SubjectType string     `json:"subject_type"`
	SubjectID   string     `json:"subject_id"`
	Action      string     `json:"action"`
	Result      *bool      `json:"result,omitempty"`
	FromState   string     `json:"from_state,omitempty"`
	ToState     string     `json:"to_state,omitempty"`
	Context     JSONMap    `json:"context" gorm:"type:jsonb"`
	RequestID   string     `json:"request_id"`
	ClientIP    string     `json:"client_ip"`
	UserAgent   string     `json:"user_agent"`
	CreatedAt   time.Time  `json:"created_at"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Subject identifies the object an audited action applies to.
type Subject struct {
	Type string
	ID   string
}

// Subject types used in audit records.
const (
	SubjectUser       = "user"
	SubjectMembership = "membership"
	SubjectEntry      = "entry"
	SubjectInvite     = "invite"
	SubjectTab        = "tab"
)

// Constants for AuditLog action types
const (
	ActionAuthzDecision    = "authz_decision"
	ActionStateTransition  = "state_transition"
	ActionMembershipChange = "membership_change"
	ActionInviteIssued     = "invite_issued"
	ActionInviteRedeemed   = "invite_redeemed"
)

// JSONMap represents a generic map stored as JSONB in the database
type JSONMap map[string]interface{}

// Value implements the driver.Valuer interface for JSONMap
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface for JSONMap
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = make(JSONMap)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("type assertion failed: failed to decode JSONB")
	}

	return json.Unmarshal(bytes, m)
}
