package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/dangerclosesec/tabbedjournal/internal/audit"
	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/metrics"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/notify"
	"github.com/dangerclosesec/tabbedjournal/internal/repository"
)

const (
	inviteTokenBytes    = 32
	inviteEmailTemplate = "invite"
)

// TextRenderer renders a named plaintext template. email.Service satisfies it.
type TextRenderer interface {
	RenderText(name string, data interface{}) (string, error)
}

// InviteConfig carries the settings the invite flow needs from config.
type InviteConfig struct {
	BaseURL  string
	SiteName string
	TTL      time.Duration
}

// InviteService issues invites and redeems them exactly once.
type InviteService struct {
	repo     repository.InviteRepositoryIface
	graph    *MembershipGraph
	authz    *AuthzService
	identity *IdentityService
	tx       repository.TransactorIface
	notifier notify.Notifier
	renderer TextRenderer
	audit    audit.Logger
	metrics  *metrics.Metrics
	config   InviteConfig
	now      func() time.Time
}

func NewInviteService(
	repo repository.InviteRepositoryIface,
	graph *MembershipGraph,
	authz *AuthzService,
	identity *IdentityService,
	tx repository.TransactorIface,
	notifier notify.Notifier,
	renderer TextRenderer,
	auditLogger audit.Logger,
	m *metrics.Metrics,
	config InviteConfig,
) *InviteService {
	if config.TTL <= 0 {
		config.TTL = model.DefaultInviteTTL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &InviteService{
		repo:     repo,
		graph:    graph,
		authz:    authz,
		identity: identity,
		tx:       tx,
		notifier: notifier,
		renderer: renderer,
		audit:    auditLogger,
		metrics:  m,
		config:   config,
		now:      time.Now,
	}
}

type IssueInviteInput struct {
	Role     string `json:"role" validate:"required"`
	Delivery string `json:"delivery" validate:"required,oneof=email sms"`
	Email    string `json:"email" validate:"required_if=Delivery email,omitempty,email"`
	Phone    string `json:"phone" validate:"required_if=Delivery sms,omitempty,e164"`
}

type IssueInviteOutput struct {
	Invite    *model.Invite `json:"invite"`
	AcceptURL string        `json:"accept_url"`
}

// Issue creates an invite into the actor's organization and sends it. The
// notification goes out after the invite is stored and its failure does not
// fail the call.
func (s *InviteService) Issue(ctx context.Context, actor *model.User, input IssueInviteInput) (*IssueInviteOutput, error) {
	org, err := s.authz.RequireModerator(ctx, actor)
	if err != nil {
		return nil, err
	}

	input.Delivery = strings.ToLower(strings.TrimSpace(input.Delivery))
	if input.Delivery == "" {
		input.Delivery = string(model.DeliveryEmail)
	}
	input.Email = normalizeEmail(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	role, err := model.ParseRole(input.Role)
	if err != nil || !role.Assignable() {
		return nil, fieldError("role", "Select a valid choice.")
	}

	token, err := newInviteToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	invite := &model.Invite{
		OrganizationID: org.ID,
		Role:           role,
		Delivery:       model.DeliveryChannel(input.Delivery),
		Token:          token,
		CreatedByID:    actor.ID,
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.config.TTL),
	}
	if invite.Delivery == model.DeliveryEmail {
		invite.Email = input.Email
	} else {
		invite.Phone = input.Phone
	}

	if err := s.repo.Create(ctx, invite); err != nil {
		return nil, err
	}
	invite.Organization = *org

	if s.metrics != nil {
		s.metrics.InvitesIssued.WithLabelValues(input.Delivery).Inc()
	}
	s.logEvent(ctx, model.ActionInviteIssued, actor, invite, "issue")

	acceptURL := s.AcceptURL(token)
	s.deliver(ctx, invite, org, acceptURL)

	return &IssueInviteOutput{
		Invite:    invite,
		AcceptURL: acceptURL,
	}, nil
}

func (s *InviteService) deliver(ctx context.Context, invite *model.Invite, org *model.Organization, acceptURL string) {
	if invite.Delivery == model.DeliverySMS {
		_ = s.notifier.SendSMS(ctx, invite.Phone, fmt.Sprintf("Join %s: %s", org.Name, acceptURL))
		return
	}

	body, err := s.renderer.RenderText(inviteEmailTemplate, map[string]interface{}{
		"OrgName":   org.Name,
		"SiteName":  s.config.SiteName,
		"AcceptURL": acceptURL,
		"ExpiresAt": invite.ExpiresAt.UTC().Format("Jan 2, 2006 15:04 MST"),
	})
	if err != nil {
		slog.WarnContext(ctx, "Failed to render invite email, sending plain link", "error", err)
		body = fmt.Sprintf("You have been invited to join %s.\n\n%s\n", org.Name, acceptURL)
	}
	_ = s.notifier.SendEmail(ctx, invite.Email, fmt.Sprintf("You're invited to %s", org.Name), body)
}

// AcceptURL is the absolute link a recipient follows.
func (s *InviteService) AcceptURL(token string) string {
	return s.config.BaseURL + "/invite/accept/" + url.PathEscape(token)
}

// LoginURL sends an existing account holder back to the invite after login.
func (s *InviteService) LoginURL(token string) string {
	return "/login?next=" + url.QueryEscape("/invite/accept/"+token)
}

// Validity reports whether invite can still be redeemed at now.
func (s *InviteService) Validity(invite *model.Invite, now time.Time) bool {
	return invite.IsValid(now)
}

// Lookup returns a redeemable invite with its organization. Unknown, used
// and expired tokens all yield ErrExpiredOrUsedInvite.
func (s *InviteService) Lookup(ctx context.Context, token string) (*model.Invite, error) {
	if token == "" {
		return nil, domain.ErrExpiredOrUsedInvite
	}

	invite, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrExpiredOrUsedInvite
		}
		return nil, err
	}

	if !s.Validity(invite, s.now()) {
		return nil, domain.ErrExpiredOrUsedInvite
	}
	return invite, nil
}

type AcceptInviteInput struct {
	Username        string `json:"username" validate:"required,max=150"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type AcceptInviteOutput struct {
	Membership *model.Membership `json:"membership"`
	User       *model.User       `json:"user"`
	// Token is set when the invite created a new account.
	Token string `json:"token,omitempty"`
}

// Accept redeems the invite behind token. A signed-in actor joins directly.
// Without an actor, an invite addressed to an existing account asks for a
// login, and otherwise a new account is created from input.
func (s *InviteService) Accept(ctx context.Context, token string, actor *model.User, input AcceptInviteInput) (*AcceptInviteOutput, error) {
	invite, err := s.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}

	if actor != nil {
		m, err := s.Redeem(ctx, invite, actor)
		if err != nil {
			return nil, err
		}
		return &AcceptInviteOutput{Membership: m, User: actor}, nil
	}

	if invite.Email != "" {
		_, err := s.identity.FindByEmail(ctx, invite.Email)
		if err == nil {
			return nil, &domain.LoginRequiredError{LoginURL: s.LoginURL(token)}
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	input.Username = strings.TrimSpace(input.Username)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	out := &AcceptInviteOutput{}
	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		user, err := s.identity.Register(ctx, RegisterInput{
			Username: input.Username,
			Email:    invite.Email,
			Phone:    invite.Phone,
			Password: input.Password,
		})
		if err != nil {
			return err
		}

		m, err := s.Redeem(ctx, invite, user)
		if err != nil {
			return err
		}
		out.User = user
		out.Membership = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	out.Token, err = s.identity.IssueToken(out.User)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Redeem consumes the invite for user and adds the membership. Only one
// caller can consume an invite; the rest get ErrExpiredOrUsedInvite. A user
// who already belongs to the organization keeps their role.
func (s *InviteService) Redeem(ctx context.Context, invite *model.Invite, user *model.User) (*model.Membership, error) {
	var membership *model.Membership
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		consumed, err := s.repo.MarkUsed(ctx, invite.ID, user.ID, s.now())
		if err != nil {
			return err
		}
		if !consumed {
			return domain.ErrExpiredOrUsedInvite
		}

		membership, _, err = s.graph.Join(ctx, &model.Membership{
			UserID:         user.ID,
			OrganizationID: invite.OrganizationID,
			Role:           invite.Role,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.InvitesRedeemed.Inc()
	}
	s.logEvent(ctx, model.ActionInviteRedeemed, user, invite, "redeem")
	return membership, nil
}

// ListByOrg returns the invites of the actor's organization, newest first.
func (s *InviteService) ListByOrg(ctx context.Context, actor *model.User) ([]model.Invite, error) {
	org, err := s.authz.RequireModerator(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByOrg(ctx, org.ID)
}

func (s *InviteService) logEvent(ctx context.Context, actionType string, actor *model.User, invite *model.Invite, action string) {
	subject := model.Subject{Type: model.SubjectInvite, ID: invite.ID.String()}
	data := map[string]interface{}{
		"role":     string(invite.Role),
		"delivery": string(invite.Delivery),
	}
	if err := s.audit.LogEvent(ctx, actionType, actor.ID, invite.OrganizationID, subject, action, data); err != nil {
		slog.WarnContext(ctx, "Failed to record invite event", "action", action, "error", err)
	}
}

func newInviteToken() (string, error) {
	buf := make([]byte, inviteTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating invite token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
