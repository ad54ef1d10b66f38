// internal/model/user.go
package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type UserStatus string

const (
	StatusPending   UserStatus = "pending"
	StatusActive    UserStatus = "active"
	StatusLocked    UserStatus = "locked"
	StatusSuspended UserStatus = "suspended"
)

type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Username    string     `gorm:"type:citext;uniqueIndex;not null" json:"username"`
	Email       string     `gorm:"type:citext;index" json:"email"`
	Phone       string     `gorm:"type:varchar(32)" json:"phone,omitempty"`
	FirstName   string     `gorm:"type:text" json:"first_name"`
	LastName    string     `gorm:"type:text" json:"last_name"`
	IsSuperuser bool       `gorm:"not null;default:false" json:"is_superuser"`
	Status      UserStatus `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// StringList maps a Go string slice onto a postgres text[] column.
type StringList []string

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("unsupported Scan, storing driver.Value type %T into type %T", value, l)
	}

	str = strings.Trim(str, "{}")
	if str == "" {
		*l = StringList{}
		return nil
	}

	parts := strings.Split(str, ",")
	for i, p := range parts {
		parts[i] = strings.Trim(p, `"`)
	}
	*l = parts
	return nil
}

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "{}", nil
	}

	quoted := make([]string, len(l))
	for i, s := range l {
		quoted[i] = `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
	}
	return "{" + strings.Join(quoted, ",") + "}", nil
}
