package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dangerclosesec/tabbedjournal/internal/audit"
	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/metrics"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/repository"
	"github.com/google/uuid"
)

// Check names used for metrics and audit records.
const (
	CheckCanManage      = "can_manage"
	CheckCanViewProfile = "can_view_profile"
	CheckCanEditProfile = "can_edit_profile"
	CheckIsModerator    = "is_moderator"
)

// AuthzService decides what a user may do. Rank comparisons only happen
// inside the actor's primary organization.
type AuthzService struct {
	graph    *MembershipGraph
	userRepo repository.UserRepositoryIface
	audit    audit.Logger
	metrics  *metrics.Metrics
}

func NewAuthzService(
	graph *MembershipGraph,
	userRepo repository.UserRepositoryIface,
	auditLogger audit.Logger,
	m *metrics.Metrics,
) *AuthzService {
	return &AuthzService{
		graph:    graph,
		userRepo: userRepo,
		audit:    auditLogger,
		metrics:  m,
	}
}

// CanManage reports whether actor may administer targetID: themselves, or a
// member of the actor's primary organization with a strictly lower role.
// Superusers manage everyone.
func (s *AuthzService) CanManage(ctx context.Context, actor *model.User, targetID uuid.UUID) (bool, error) {
	allowed, reason, err := s.canManage(ctx, actor, targetID)
	if err != nil {
		return false, err
	}
	s.record(ctx, actor.ID, CheckCanManage, userSubject(targetID), allowed, reason)
	return allowed, nil
}

func (s *AuthzService) canManage(ctx context.Context, actor *model.User, targetID uuid.UUID) (bool, string, error) {
	if actor.ID == targetID {
		return true, "self", nil
	}
	if actor.IsSuperuser {
		return true, "superuser", nil
	}

	org, err := s.graph.PrimaryOrg(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNoOrganization) {
			return false, "no_organization", nil
		}
		return false, "", err
	}

	target, err := s.graph.MembershipOf(ctx, targetID, org.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, "not_in_organization", nil
		}
		return false, "", err
	}

	actorRole, err := s.graph.RoleOf(ctx, actor.ID, org.ID)
	if err != nil {
		return false, "", err
	}

	if actorRole.Outranks(target.Role) {
		return true, "rank", nil
	}
	return false, "rank", nil
}

// CanViewProfile reports whether viewer is the subject or manages the
// subject through a membership.
func (s *AuthzService) CanViewProfile(ctx context.Context, viewer *model.User, subjectID uuid.UUID) (bool, error) {
	allowed, reason, err := s.canViewProfile(ctx, viewer, subjectID)
	if err != nil {
		return false, err
	}
	s.record(ctx, viewer.ID, CheckCanViewProfile, userSubject(subjectID), allowed, reason)
	return allowed, nil
}

func (s *AuthzService) canViewProfile(ctx context.Context, viewer *model.User, subjectID uuid.UUID) (bool, string, error) {
	if viewer.ID == subjectID {
		return true, "self", nil
	}
	managed, err := s.graph.repo.ExistsManagedBy(ctx, subjectID, viewer.ID)
	if err != nil {
		return false, "", err
	}
	return managed, "managed_by", nil
}

// CanEditProfile allows the subject, their manager, or anyone who can
// manage them by rank.
func (s *AuthzService) CanEditProfile(ctx context.Context, viewer *model.User, subjectID uuid.UUID) (bool, error) {
	allowed, reason, err := s.canViewProfile(ctx, viewer, subjectID)
	if err != nil {
		return false, err
	}
	if !allowed {
		allowed, reason, err = s.canManage(ctx, viewer, subjectID)
		if err != nil {
			return false, err
		}
	}
	s.record(ctx, viewer.ID, CheckCanEditProfile, userSubject(subjectID), allowed, reason)
	return allowed, nil
}

// IsModerator reports whether any of the user's memberships carries a
// moderator, admin or owner role.
func (s *AuthzService) IsModerator(ctx context.Context, userID uuid.UUID) (bool, error) {
	memberships, err := s.graph.repo.ListByUser(ctx, userID)
	if err != nil {
		return false, err
	}

	allowed := false
	for _, m := range memberships {
		if m.Role.IsModerator() {
			allowed = true
			break
		}
	}
	s.record(ctx, userID, CheckIsModerator, userSubject(userID), allowed, "")
	return allowed, nil
}

// RequireModerator returns the actor's primary organization when the actor
// is a moderator, and ErrAuthorizationDenied otherwise.
func (s *AuthzService) RequireModerator(ctx context.Context, actor *model.User) (*model.Organization, error) {
	ok, err := s.IsModerator(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAuthorizationDenied
	}

	org, err := s.graph.PrimaryOrg(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNoOrganization) {
			return nil, domain.ErrAuthorizationDenied
		}
		return nil, err
	}
	return org, nil
}

// ResolveProfileTarget returns the user whose profile the actor addresses. A
// nil targetID means the actor. Targets the actor may not edit are reported
// as not found.
func (s *AuthzService) ResolveProfileTarget(ctx context.Context, actor *model.User, targetID *uuid.UUID) (*model.User, error) {
	if targetID == nil || *targetID == actor.ID {
		return actor, nil
	}

	target, err := s.userRepo.FindByID(ctx, *targetID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.CanEditProfile(ctx, actor, target.ID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domain.ErrUserNotFound
	}
	return target, nil
}

func (s *AuthzService) record(ctx context.Context, actorID uuid.UUID, check string, subject model.Subject, allowed bool, reason string) {
	if s.metrics != nil {
		s.metrics.AuthzDecisions.WithLabelValues(check, metrics.Result(allowed)).Inc()
	}

	var data map[string]interface{}
	if reason != "" {
		data = map[string]interface{}{"reason": reason}
	}
	if err := s.audit.LogDecision(ctx, actorID, check, subject, allowed, data); err != nil {
		slog.WarnContext(ctx, "Failed to record authorization decision", "check", check, "error", err)
	}
}

func userSubject(id uuid.UUID) model.Subject {
	return model.Subject{Type: model.SubjectUser, ID: id.String()}
}
