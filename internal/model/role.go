package model

import (
	"fmt"
	"strings"

	"github.com/dangerclosesec/tabbedjournal/internal/domain"
)

// Role is a membership role within a single organization.
type Role string

const (
	RoleOwner     Role = "OWNER"
	RoleAdmin     Role = "ADMIN"
	RoleModerator Role = "MODERATOR"
	RoleAuthor    Role = "AUTHOR"
	RoleSubauthor Role = "SUBAUTHOR"

	// RoleNone is the role of a user without a membership.
	RoleNone Role = ""
)

// RankNone ranks below every known role.
const RankNone = -1

var roleRanks = map[Role]int{
	RoleSubauthor: 0,
	RoleAuthor:    1,
	RoleModerator: 2,
	RoleAdmin:     3,
	RoleOwner:     4,
}

// AssignableRoles are the roles that can be handed out through the member and
// invite forms. Owner and admin are only set by seeding or the CLI.
var AssignableRoles = []Role{RoleModerator, RoleAuthor, RoleSubauthor}

// Rank returns the position of the role in the ordering
// OWNER > ADMIN > MODERATOR > AUTHOR > SUBAUTHOR.
func (r Role) Rank() int {
	if rank, ok := roleRanks[r]; ok {
		return rank
	}
	return RankNone
}

func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Outranks reports whether r is strictly above other. Peers do not outrank
// each other.
func (r Role) Outranks(other Role) bool {
	return r.Rank() > other.Rank()
}

// IsModerator reports whether the role grants access to the organization
// administration pages (tabs, members, review queue).
func (r Role) IsModerator() bool {
	switch Role(strings.ToUpper(string(r))) {
	case RoleModerator, RoleAdmin, RoleOwner:
		return true
	}
	return false
}

// Assignable reports whether the role is one of AssignableRoles.
func (r Role) Assignable() bool {
	for _, a := range AssignableRoles {
		if a == r {
			return true
		}
	}
	return false
}

func (r Role) Label() string {
	switch r {
	case RoleSubauthor:
		return "Sub-author"
	case RoleNone:
		return ""
	}
	s := strings.ToLower(string(r))
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return RoleNone, fmt.Errorf("%w: %q", domain.ErrInvalidRole, s)
	}
	return r, nil
}

// VisibilityAuthor is the visibility stored on new tabs. Listing does not
// filter on it.
const VisibilityAuthor = 20
