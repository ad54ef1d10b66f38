package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dangerclosesec/tabbedjournal/internal/audit"
	"github.com/dangerclosesec/tabbedjournal/internal/auth"
	"github.com/dangerclosesec/tabbedjournal/internal/handler"
	"github.com/dangerclosesec/tabbedjournal/internal/metrics"
	"github.com/dangerclosesec/tabbedjournal/internal/mocks"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// server runs the real router over services backed by mocked repositories.
type server struct {
	t      *testing.T
	router http.Handler
	tokens *auth.TokenManager

	users       *mocks.MockUserRepositoryIface
	factors     *mocks.MockUserFactorRepositoryIface
	orgs        *mocks.MockOrganizationRepositoryIface
	memberships *mocks.MockMembershipRepositoryIface
	profiles    *mocks.MockProfileRepositoryIface
	tabRepo     *mocks.MockTabRepositoryIface
	entryRepo   *mocks.MockEntryRepositoryIface
	inviteRepo  *mocks.MockInviteRepositoryIface
	auditRepo   *mocks.MockAuditLogRepositoryIface
	store       *mocks.MockImageStore
	notifier    *mocks.MockNotifier

	nextMembershipID int64
}

type textRenderer struct{}

func (textRenderer) RenderText(name string, data interface{}) (string, error) {
	return "invite", nil
}

func newServer(t *testing.T) *server {
	t.Helper()
	ctrl := gomock.NewController(t)

	s := &server{
		t:           t,
		tokens:      auth.NewTokenManager("test-secret", time.Hour),
		users:       mocks.NewMockUserRepositoryIface(ctrl),
		factors:     mocks.NewMockUserFactorRepositoryIface(ctrl),
		orgs:        mocks.NewMockOrganizationRepositoryIface(ctrl),
		memberships: mocks.NewMockMembershipRepositoryIface(ctrl),
		profiles:    mocks.NewMockProfileRepositoryIface(ctrl),
		tabRepo:     mocks.NewMockTabRepositoryIface(ctrl),
		entryRepo:   mocks.NewMockEntryRepositoryIface(ctrl),
		inviteRepo:  mocks.NewMockInviteRepositoryIface(ctrl),
		auditRepo:   mocks.NewMockAuditLogRepositoryIface(ctrl),
		store:       mocks.NewMockImageStore(ctrl),
		notifier:    mocks.NewMockNotifier(ctrl),
	}

	tx := mocks.NewMockTransactorIface(ctrl)
	tx.EXPECT().
		Transaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()

	m := metrics.New(prometheus.NewRegistry())
	auditLogger := &audit.NoOpLogger{}

	cache := service.NewOrgCache(service.CacheConfig{TTL: time.Minute, Size: 16}, m)
	graph := service.NewMembershipGraph(s.memberships, cache)
	authz := service.NewAuthzService(graph, s.users, auditLogger, m)
	identity := service.NewIdentityService(s.users, s.factors, s.orgs, s.memberships, tx, auth.NewPasswordHasher(), s.tokens)
	members := service.NewMembershipService(graph, s.orgs, s.profiles, identity, authz, tx, auditLogger)
	tabs := service.NewTabService(s.tabRepo, graph, authz)
	entries := service.NewEntryService(s.entryRepo, s.tabRepo, tabs, graph, authz, s.store, tx, auditLogger, m)
	invites := service.NewInviteService(s.inviteRepo, graph, authz, identity, tx, s.notifier, textRenderer{}, auditLogger, m, service.InviteConfig{
		BaseURL:  "https://journal.example.com",
		SiteName: "Family Journal",
	})
	profiles := service.NewProfileService(s.profiles, authz, s.store, tx)

	r := chi.NewRouter()
	handler.Mount(r, handler.Services{
		Identity:   identity,
		Authz:      authz,
		Members:    members,
		Tabs:       tabs,
		Entries:    entries,
		Invites:    invites,
		Profiles:   profiles,
		Onboarding: service.NewOnboardingService(s.profiles, graph, tabs, entries, invites),
		AuditLogs:  service.NewAuditLogService(s.auditRepo),
		Tokens:     s.tokens,
		Metrics:    m,
	})
	s.router = r
	return s
}

// signIn makes user a valid bearer of a token.
func (s *server) signIn(user *model.User) string {
	s.users.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil).AnyTimes()
	token, err := s.tokens.Generate(user.ID.String(), user.Username)
	require.NoError(s.t, err)
	return token
}

func (s *server) join(user *model.User, org *model.Organization, role model.Role) {
	s.nextMembershipID++
	m := &model.Membership{
		ID:             s.nextMembershipID,
		UserID:         user.ID,
		OrganizationID: org.ID,
		Role:           role,
		Organization:   *org,
	}
	s.memberships.EXPECT().FindByUserAndOrg(gomock.Any(), user.ID, org.ID).Return(m, nil).AnyTimes()
	s.memberships.EXPECT().FindFirstByUser(gomock.Any(), user.ID).Return(m, nil).AnyTimes()
	s.memberships.EXPECT().ListByUser(gomock.Any(), user.ID).Return([]model.Membership{*m}, nil).AnyTimes()
}

type response struct {
	Code int
	Body map[string]interface{}
	Raw  []byte
}

func (s *server) do(method, path, token string, body interface{}) response {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(req, token)
}

func (s *server) send(req *http.Request, token string) response {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	out := response{Code: rec.Code, Raw: rec.Body.Bytes()}
	_ = json.Unmarshal(out.Raw, &out.Body)
	return out
}

func newUser(username string) *model.User {
	return &model.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Status:   model.StatusActive,
	}
}

func newOrg(name string, owner *model.User) *model.Organization {
	return &model.Organization{ID: uuid.New(), Name: name, OwnerID: owner.ID}
}
