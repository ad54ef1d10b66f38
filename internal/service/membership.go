package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dangerclosesec/tabbedjournal/internal/audit"
	"github.com/dangerclosesec/tabbedjournal/internal/auth"
	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/repository"
	"github.com/google/uuid"
)

// generatedPasswordLength is used when a member is added without a password.
const generatedPasswordLength = 12

// MembershipGraph answers read questions about who belongs where. The
// primary organization of a user is the organization of their oldest
// membership (lowest id).
type MembershipGraph struct {
	repo  repository.MembershipRepositoryIface
	cache *OrgCache
}

func NewMembershipGraph(repo repository.MembershipRepositoryIface, cache *OrgCache) *MembershipGraph {
	return &MembershipGraph{repo: repo, cache: cache}
}

// MembershipOf returns the single membership of user in org.
func (g *MembershipGraph) MembershipOf(ctx context.Context, userID, orgID uuid.UUID) (*model.Membership, error) {
	return g.repo.FindByUserAndOrg(ctx, userID, orgID)
}

// PrimaryOrg returns the organization of the user's lowest-id membership.
func (g *MembershipGraph) PrimaryOrg(ctx context.Context, userID uuid.UUID) (*model.Organization, error) {
	if org, ok := g.cache.Get(userID); ok {
		return org, nil
	}

	m, err := g.repo.FindFirstByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoOrganization
		}
		return nil, err
	}

	org := m.Organization
	if org.ID == uuid.Nil {
		org.ID = m.OrganizationID
	}
	g.cache.Set(userID, &org)
	return &org, nil
}

// RoleOf returns the user's role in org, or RoleNone without a membership.
func (g *MembershipGraph) RoleOf(ctx context.Context, userID, orgID uuid.UUID) (model.Role, error) {
	m, err := g.repo.FindByUserAndOrg(ctx, userID, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return model.RoleNone, nil
		}
		return model.RoleNone, err
	}
	return m.Role, nil
}

// Join inserts membership unless the user already belongs to the
// organization, then returns the stored row. An existing row keeps its role.
func (g *MembershipGraph) Join(ctx context.Context, membership *model.Membership) (*model.Membership, bool, error) {
	created, err := g.repo.Create(ctx, membership)
	if err != nil {
		return nil, false, err
	}
	g.cache.Invalidate(membership.UserID)

	stored, err := g.repo.FindByUserAndOrg(ctx, membership.UserID, membership.OrganizationID)
	if err != nil {
		return nil, false, fmt.Errorf("reading membership after join: %w", err)
	}
	return stored, created, nil
}

// MembershipService manages members of an organization. Every mutation is
// gated by AuthzService.
type MembershipService struct {
	*MembershipGraph
	orgRepo     repository.OrganizationRepositoryIface
	profileRepo repository.ProfileRepositoryIface
	identity    *IdentityService
	authz       *AuthzService
	tx          repository.TransactorIface
	audit       audit.Logger
}

func NewMembershipService(
	graph *MembershipGraph,
	orgRepo repository.OrganizationRepositoryIface,
	profileRepo repository.ProfileRepositoryIface,
	identity *IdentityService,
	authz *AuthzService,
	tx repository.TransactorIface,
	auditLogger audit.Logger,
) *MembershipService {
	return &MembershipService{
		MembershipGraph: graph,
		orgRepo:         orgRepo,
		profileRepo:     profileRepo,
		identity:        identity,
		authz:           authz,
		tx:              tx,
		audit:           auditLogger,
	}
}

// memberInActorOrg loads a membership and hides rows outside the actor's
// primary organization.
func (s *MembershipService) memberInActorOrg(ctx context.Context, actor *model.User, membershipID int64) (*model.Membership, *model.Organization, error) {
	org, err := s.PrimaryOrg(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNoOrganization) {
			return nil, nil, domain.ErrMembershipNotFound
		}
		return nil, nil, err
	}

	m, err := s.repo.FindByID(ctx, membershipID)
	if err != nil {
		return nil, nil, err
	}
	if m.OrganizationID != org.ID {
		return nil, nil, domain.ErrMembershipNotFound
	}
	return m, org, nil
}

// SetRole changes the role of a membership in the actor's organization. The
// actor must manage the target and may only grant assignable roles below
// their own.
func (s *MembershipService) SetRole(ctx context.Context, actor *model.User, membershipID int64, role string) (*model.Membership, error) {
	newRole, err := model.ParseRole(role)
	if err != nil || !newRole.Assignable() {
		return nil, fieldError("role", "Select a valid choice.")
	}

	m, org, err := s.memberInActorOrg(ctx, actor, membershipID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.authz.CanManage(ctx, actor, m.UserID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrAuthorizationDenied
	}

	if !actor.IsSuperuser {
		actorRole, err := s.RoleOf(ctx, actor.ID, org.ID)
		if err != nil {
			return nil, err
		}
		if !actorRole.Outranks(newRole) {
			return nil, domain.ErrAuthorizationDenied
		}
	}

	previous := m.Role
	if err := s.repo.UpdateRole(ctx, m.ID, newRole); err != nil {
		return nil, err
	}
	m.Role = newRole
	s.cache.Invalidate(m.UserID)

	s.logEvent(ctx, actor.ID, org.ID, m, "set_role", map[string]interface{}{
		"from": string(previous),
		"to":   string(newRole),
	})
	return m, nil
}

// Delegate records managerID as the manager of subordinateID in orgID. An
// existing manager is never replaced; the row is returned unchanged.
func (s *MembershipService) Delegate(ctx context.Context, managerID, subordinateID, orgID uuid.UUID) (*model.Membership, error) {
	if managerID == subordinateID {
		return nil, fmt.Errorf("%w: a member cannot manage themselves", domain.ErrInvalidInput)
	}

	m, err := s.repo.FindByUserAndOrg(ctx, subordinateID, orgID)
	if err != nil {
		return nil, err
	}
	if m.ManagedByID != nil {
		return m, nil
	}

	changed, err := s.repo.SetManagerIfNull(ctx, m.ID, managerID)
	if err != nil {
		return nil, err
	}
	if !changed {
		// Another writer set the manager first
		return s.repo.FindByUserAndOrg(ctx, subordinateID, orgID)
	}
	m.ManagedByID = &managerID

	if _, err := s.profileRepo.SetParentIfNull(ctx, subordinateID, managerID); err != nil {
		slog.WarnContext(ctx, "Failed to set profile parent", "userID", subordinateID, "error", err)
	}

	s.logEvent(ctx, managerID, orgID, m, "delegate", map[string]interface{}{
		"manager_id": managerID.String(),
	})
	return m, nil
}

// DelegateMember assigns a manager to a membership in the actor's
// organization. A nil managerID makes the actor the manager; a named manager
// must outrank the member.
func (s *MembershipService) DelegateMember(ctx context.Context, actor *model.User, membershipID int64, managerID *uuid.UUID) (*model.Membership, error) {
	m, org, err := s.memberInActorOrg(ctx, actor, membershipID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.authz.CanManage(ctx, actor, m.UserID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrAuthorizationDenied
	}

	manager := actor.ID
	if managerID != nil {
		manager = *managerID
	}
	if manager != actor.ID {
		mm, err := s.MembershipOf(ctx, manager, org.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fieldError("manager_id", "Manager must belong to the organization.")
			}
			return nil, err
		}
		if !mm.Role.Outranks(m.Role) {
			return nil, fieldError("manager_id", "Manager must hold a higher role than the member.")
		}
	}

	return s.Delegate(ctx, manager, m.UserID, org.ID)
}

// ListMembers returns the members of the actor's organization, oldest first.
func (s *MembershipService) ListMembers(ctx context.Context, actor *model.User) ([]model.Membership, error) {
	org, err := s.authz.RequireModerator(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByOrg(ctx, org.ID)
}

type AddMemberInput struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role" validate:"required"`
	Password string `json:"password"`
	// ManagedBy makes the actor the new member's manager.
	ManagedBy bool `json:"managed_by"`
}

type AddMemberOutput struct {
	Membership *model.Membership `json:"membership"`
	// GeneratedPassword is set only when the input had no password.
	GeneratedPassword string `json:"generated_password,omitempty"`
}

// AddMember creates an account and adds it to the actor's organization.
func (s *MembershipService) AddMember(ctx context.Context, actor *model.User, input AddMemberInput) (*AddMemberOutput, error) {
	org, err := s.authz.RequireModerator(ctx, actor)
	if err != nil {
		return nil, err
	}

	if err := validateInput(input); err != nil {
		return nil, err
	}
	role, err := model.ParseRole(input.Role)
	if err != nil || !role.Assignable() {
		return nil, fieldError("role", "Select a valid choice.")
	}

	out := &AddMemberOutput{}
	password := input.Password
	if strings.TrimSpace(password) == "" {
		password, err = auth.RandomPassword(generatedPasswordLength)
		if err != nil {
			return nil, err
		}
		out.GeneratedPassword = password
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		user, err := s.identity.Register(ctx, RegisterInput{
			Username: input.Username,
			Email:    input.Email,
			Password: password,
		})
		if err != nil {
			return err
		}

		membership := &model.Membership{
			UserID:         user.ID,
			OrganizationID: org.ID,
			Role:           role,
		}
		if input.ManagedBy {
			membership.ManagedByID = &actor.ID
		}

		stored, _, err := s.Join(ctx, membership)
		if err != nil {
			return err
		}
		stored.User = *user

		if input.ManagedBy {
			if _, err := s.profileRepo.FindOrCreate(ctx, user.ID); err != nil {
				return err
			}
			if _, err := s.profileRepo.SetParentIfNull(ctx, user.ID, actor.ID); err != nil {
				return err
			}
		}

		out.Membership = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logEvent(ctx, actor.ID, org.ID, out.Membership, "add_member", map[string]interface{}{
		"role":       string(role),
		"managed_by": input.ManagedBy,
	})
	return out, nil
}

// RemoveMember deletes a membership the actor manages. The organization
// owner cannot be removed.
func (s *MembershipService) RemoveMember(ctx context.Context, actor *model.User, membershipID int64) error {
	m, org, err := s.memberInActorOrg(ctx, actor, membershipID)
	if err != nil {
		return err
	}

	if m.UserID == org.OwnerID {
		return domain.ErrAuthorizationDenied
	}

	allowed, err := s.authz.CanManage(ctx, actor, m.UserID)
	if err != nil {
		return err
	}
	if !allowed {
		return domain.ErrAuthorizationDenied
	}

	if err := s.repo.Delete(ctx, m.ID); err != nil {
		return err
	}
	s.cache.Invalidate(m.UserID)

	s.logEvent(ctx, actor.ID, org.ID, m, "remove_member", map[string]interface{}{
		"role": string(m.Role),
	})
	return nil
}

// RoleAliases returns the display labels of the actor's organization.
func (s *MembershipService) RoleAliases(ctx context.Context, actor *model.User) (*model.RoleAlias, error) {
	org, err := s.PrimaryOrg(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNoOrganization) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, err
	}

	alias, err := s.orgRepo.FindRoleAlias(ctx, org.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return model.DefaultRoleAlias(org.ID), nil
		}
		return nil, err
	}
	return alias, nil
}

type RoleAliasInput struct {
	ModeratorLabel string `json:"moderator_label" validate:"required,max=40"`
	AuthorLabel    string `json:"author_label" validate:"required,max=40"`
	SubuserLabel   string `json:"subuser_label" validate:"required,max=40"`
}

// SaveRoleAliases replaces the labels of the actor's organization.
func (s *MembershipService) SaveRoleAliases(ctx context.Context, actor *model.User, input RoleAliasInput) (*model.RoleAlias, error) {
	org, err := s.authz.RequireModerator(ctx, actor)
	if err != nil {
		return nil, err
	}

	input.ModeratorLabel = strings.TrimSpace(input.ModeratorLabel)
	input.AuthorLabel = strings.TrimSpace(input.AuthorLabel)
	input.SubuserLabel = strings.TrimSpace(input.SubuserLabel)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	alias := &model.RoleAlias{
		OrganizationID: org.ID,
		ModeratorLabel: input.ModeratorLabel,
		AuthorLabel:    input.AuthorLabel,
		SubuserLabel:   input.SubuserLabel,
	}
	if err := s.orgRepo.SaveRoleAlias(ctx, alias); err != nil {
		return nil, err
	}
	return alias, nil
}

func (s *MembershipService) logEvent(ctx context.Context, actorID, orgID uuid.UUID, m *model.Membership, action string, data map[string]interface{}) {
	data["user_id"] = m.UserID.String()
	subject := model.Subject{Type: model.SubjectMembership, ID: fmt.Sprint(m.ID)}
	if err := s.audit.LogEvent(ctx, model.ActionMembershipChange, actorID, orgID, subject, action, data); err != nil {
		slog.WarnContext(ctx, "Failed to record membership change", "action", action, "error", err)
	}
}
