package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/dangerclosesec/tabbedjournal/internal/audit"
	"github.com/dangerclosesec/tabbedjournal/internal/auth"
	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/metrics"
	"github.com/dangerclosesec/tabbedjournal/internal/mocks"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/service"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/mock/gomock"
)

// fixture wires every service over mocked repositories.
type fixture struct {
	ctrl *gomock.Controller

	users       *mocks.MockUserRepositoryIface
	factors     *mocks.MockUserFactorRepositoryIface
	orgs        *mocks.MockOrganizationRepositoryIface
	memberships *mocks.MockMembershipRepositoryIface
	profiles    *mocks.MockProfileRepositoryIface
	tabRepo     *mocks.MockTabRepositoryIface
	entryRepo   *mocks.MockEntryRepositoryIface
	inviteRepo  *mocks.MockInviteRepositoryIface
	tx          *mocks.MockTransactorIface
	store       *mocks.MockImageStore
	notifier    *mocks.MockNotifier

	metrics  *metrics.Metrics
	cache    *service.OrgCache
	renderer *stubRenderer

	graph      *service.MembershipGraph
	authz      *service.AuthzService
	identity   *service.IdentityService
	members    *service.MembershipService
	tabs       *service.TabService
	entries    *service.EntryService
	invites    *service.InviteService
	profile    *service.ProfileService
	onboarding *service.OnboardingService

	nextMembershipID int64
}

type stubRenderer struct {
	data map[string]interface{}
}

func (r *stubRenderer) RenderText(name string, data interface{}) (string, error) {
	r.data, _ = data.(map[string]interface{})
	return "Join us: " + r.data["AcceptURL"].(string), nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		ctrl:        ctrl,
		users:       mocks.NewMockUserRepositoryIface(ctrl),
		factors:     mocks.NewMockUserFactorRepositoryIface(ctrl),
		orgs:        mocks.NewMockOrganizationRepositoryIface(ctrl),
		memberships: mocks.NewMockMembershipRepositoryIface(ctrl),
		profiles:    mocks.NewMockProfileRepositoryIface(ctrl),
		tabRepo:     mocks.NewMockTabRepositoryIface(ctrl),
		entryRepo:   mocks.NewMockEntryRepositoryIface(ctrl),
		inviteRepo:  mocks.NewMockInviteRepositoryIface(ctrl),
		tx:          mocks.NewMockTransactorIface(ctrl),
		store:       mocks.NewMockImageStore(ctrl),
		notifier:    mocks.NewMockNotifier(ctrl),
		metrics:     metrics.New(prometheus.NewRegistry()),
		renderer:    &stubRenderer{},
	}

	f.tx.EXPECT().
		Transaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()

	auditLogger := &audit.NoOpLogger{}
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	f.cache = service.NewOrgCache(service.CacheConfig{TTL: time.Minute, Size: 64}, f.metrics)
	f.graph = service.NewMembershipGraph(f.memberships, f.cache)
	f.authz = service.NewAuthzService(f.graph, f.users, auditLogger, f.metrics)
	f.identity = service.NewIdentityService(f.users, f.factors, f.orgs, f.memberships, f.tx, auth.NewPasswordHasher(), tokens)
	f.members = service.NewMembershipService(f.graph, f.orgs, f.profiles, f.identity, f.authz, f.tx, auditLogger)
	f.tabs = service.NewTabService(f.tabRepo, f.graph, f.authz)
	f.entries = service.NewEntryService(f.entryRepo, f.tabRepo, f.tabs, f.graph, f.authz, f.store, f.tx, auditLogger, f.metrics)
	f.invites = service.NewInviteService(f.inviteRepo, f.graph, f.authz, f.identity, f.tx, f.notifier, f.renderer, auditLogger, f.metrics, service.InviteConfig{
		BaseURL:  "https://journal.example.com/",
		SiteName: "Family Journal",
	})
	f.profile = service.NewProfileService(f.profiles, f.authz, f.store, f.tx)
	f.onboarding = service.NewOnboardingService(f.profiles, f.graph, f.tabs, f.entries, f.invites)
	return f
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

// join registers user as a member of org with role. The user's first joined
// organization is their primary one.
func (f *fixture) join(user *model.User, org *model.Organization, role model.Role) *model.Membership {
	f.nextMembershipID++
	m := &model.Membership{
		ID:             f.nextMembershipID,
		UserID:         user.ID,
		OrganizationID: org.ID,
		Role:           role,
		Organization:   *org,
		User:           *user,
	}

	f.memberships.EXPECT().FindByUserAndOrg(gomock.Any(), user.ID, org.ID).
		DoAndReturn(func(context.Context, uuid.UUID, uuid.UUID) (*model.Membership, error) {
			cp := *m
			return &cp, nil
		}).AnyTimes()
	f.memberships.EXPECT().FindByID(gomock.Any(), m.ID).
		DoAndReturn(func(context.Context, int64) (*model.Membership, error) {
			cp := *m
			return &cp, nil
		}).AnyTimes()
	f.memberships.EXPECT().FindFirstByUser(gomock.Any(), user.ID).Return(m, nil).AnyTimes()
	f.memberships.EXPECT().ListByUser(gomock.Any(), user.ID).Return([]model.Membership{*m}, nil).AnyTimes()
	return m
}

// outsider registers user as belonging to no organization.
func (f *fixture) outsider(user *model.User) {
	f.memberships.EXPECT().FindFirstByUser(gomock.Any(), user.ID).Return(nil, domain.ErrMembershipNotFound).AnyTimes()
	f.memberships.EXPECT().ListByUser(gomock.Any(), user.ID).Return([]model.Membership{}, nil).AnyTimes()
}

// notMember makes lookups of user in org miss.
func (f *fixture) notMember(user *model.User, org *model.Organization) {
	f.memberships.EXPECT().FindByUserAndOrg(gomock.Any(), user.ID, org.ID).Return(nil, domain.ErrMembershipNotFound).AnyTimes()
}

// notManaged answers "no" to every managed-by lookup not set up before.
func (f *fixture) notManaged() {
	f.memberships.EXPECT().ExistsManagedBy(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()
}

// acceptUsers makes the user repository accept new accounts.
func (f *fixture) acceptUsers() {
	f.users.EXPECT().UsernameExists(gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()
	f.users.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *model.User) error {
			u.ID = uuid.New()
			return nil
		}).AnyTimes()
	f.factors.EXPECT().FindByUserAndType(gomock.Any(), gomock.Any(), model.FactorHashpass).
		Return(nil, domain.ErrNotFound).AnyTimes()
	f.factors.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func ptr[T any](v T) *T {
	return &v
}
