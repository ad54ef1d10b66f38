package handler_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthRoutes(t *testing.T) {
	t.Run("signup reports field errors", func(t *testing.T) {
		s := newServer(t)
		res := s.do(http.MethodPost, "/api/auth/signup", "", map[string]string{
			"username":         "mom",
			"password":         "long-enough-pw",
			"confirm_password": "different-pw",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
		details, ok := res.Body["details"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "Passwords do not match.", details["confirm_password"])
	})

	t.Run("login with unknown user", func(t *testing.T) {
		s := newServer(t)
		s.users.EXPECT().FindByUsername(gomock.Any(), "ghost").Return(nil, domain.ErrUserNotFound)

		res := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
			"username": "ghost",
			"password": "whatever",
		})
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("signup rejects other content types", func(t *testing.T) {
		s := newServer(t)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString("username=mom"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		res := s.send(req, "")
		assert.Equal(t, http.StatusUnsupportedMediaType, res.Code)
	})

	t.Run("protected routes need a token", func(t *testing.T) {
		s := newServer(t)
		res := s.do(http.MethodGet, "/api/feed", "", nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})

	t.Run("me returns the signed in user", func(t *testing.T) {
		s := newServer(t)
		me := newUser("me")
		res := s.do(http.MethodGet, "/api/auth/me", s.signIn(me), nil)
		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "me", res.Body["username"])
	})
}

func TestReviewRoutes(t *testing.T) {
	setup := func(t *testing.T) (*server, *model.User, *model.User, *model.Entry) {
		s := newServer(t)
		mod := newUser("mod")
		author := newUser("author")
		org := newOrg("Smiths", mod)
		s.join(mod, org, model.RoleModerator)
		s.join(author, org, model.RoleAuthor)
		entry := &model.Entry{ID: uuid.New(), OrganizationID: org.ID, AuthorID: author.ID, Status: model.EntryPending}
		s.entryRepo.EXPECT().FindInOrg(gomock.Any(), entry.ID, org.ID).Return(entry, nil).AnyTimes()
		return s, mod, author, entry
	}

	t.Run("approve publishes", func(t *testing.T) {
		s, mod, _, entry := setup(t)
		s.entryRepo.EXPECT().Transition(gomock.Any(), entry.ID, model.EntryPending, model.EntryApproved, gomock.Any()).Return(true, nil)

		res := s.do(http.MethodPost, "/api/review/"+entry.ID.String()+"/approve", s.signIn(mod), nil)
		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, model.EntryApproved.String(), res.Body["status"])
	})

	t.Run("second reviewer sees already handled", func(t *testing.T) {
		s, mod, _, entry := setup(t)
		s.entryRepo.EXPECT().Transition(gomock.Any(), entry.ID, model.EntryPending, model.EntryDraft, gomock.Any()).Return(false, nil)

		res := s.do(http.MethodPost, "/api/review/"+entry.ID.String()+"/reject", s.signIn(mod), nil)
		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "already_handled", res.Body["status"])
	})

	t.Run("authors cannot review", func(t *testing.T) {
		s, _, author, entry := setup(t)

		res := s.do(http.MethodPost, "/api/review/"+entry.ID.String()+"/approve", s.signIn(author), nil)
		assert.Equal(t, http.StatusForbidden, res.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		s, mod, _, _ := setup(t)
		res := s.do(http.MethodPost, "/api/review/not-a-uuid/approve", s.signIn(mod), nil)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func TestInviteAcceptRoutes(t *testing.T) {
	pending := func(email string) *model.Invite {
		return &model.Invite{
			ID:             uuid.New(),
			OrganizationID: uuid.New(),
			Role:           model.RoleAuthor,
			Delivery:       model.DeliveryEmail,
			Email:          email,
			ExpiresAt:      time.Now().Add(time.Hour),
			Organization:   model.Organization{Name: "Smiths"},
		}
	}

	t.Run("unknown token is gone", func(t *testing.T) {
		s := newServer(t)
		s.inviteRepo.EXPECT().FindByToken(gomock.Any(), "nope").Return(nil, domain.ErrNotFound)

		res := s.do(http.MethodPost, "/invite/accept/nope", "", map[string]string{})
		assert.Equal(t, http.StatusGone, res.Code)
		assert.Equal(t, "invalid or expired invite", res.Body["error"])
	})

	t.Run("preview shows the organization", func(t *testing.T) {
		s := newServer(t)
		s.inviteRepo.EXPECT().FindByToken(gomock.Any(), "tok").Return(pending("aunt@example.com"), nil)

		res := s.do(http.MethodGet, "/invite/accept/tok", "", nil)
		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "Smiths", res.Body["organization"])
		assert.Equal(t, false, res.Body["signed_in"])
	})

	t.Run("existing account must log in first", func(t *testing.T) {
		s := newServer(t)
		s.inviteRepo.EXPECT().FindByToken(gomock.Any(), "tok").Return(pending("aunt@example.com"), nil)
		s.users.EXPECT().FindByEmail(gomock.Any(), "aunt@example.com").Return(newUser("aunt"), nil)

		res := s.do(http.MethodPost, "/invite/accept/tok", "", map[string]string{})
		assert.Equal(t, http.StatusUnauthorized, res.Code)
		assert.Equal(t, "/login?next=%2Finvite%2Faccept%2Ftok", res.Body["login_url"])
	})

	t.Run("signed in user joins without a body", func(t *testing.T) {
		s := newServer(t)
		me := newUser("aunt")
		invite := pending(me.Email)
		s.inviteRepo.EXPECT().FindByToken(gomock.Any(), "tok").Return(invite, nil)
		s.inviteRepo.EXPECT().MarkUsed(gomock.Any(), invite.ID, me.ID, gomock.Any()).Return(true, nil)
		s.memberships.EXPECT().Create(gomock.Any(), gomock.Any()).Return(true, nil)
		s.memberships.EXPECT().FindByUserAndOrg(gomock.Any(), me.ID, invite.OrganizationID).
			Return(&model.Membership{ID: 9, UserID: me.ID, OrganizationID: invite.OrganizationID, Role: model.RoleAuthor}, nil).AnyTimes()

		req := httptest.NewRequest(http.MethodPost, "/invite/accept/tok", nil)
		res := s.send(req, s.signIn(me))
		assert.Equal(t, http.StatusOK, res.Code)
		assert.Contains(t, res.Body, "membership")
	})
}

func TestEntryUploadRoutes(t *testing.T) {
	multipartEntry := func(t *testing.T, title string) *http.Request {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("title", title))
		require.NoError(t, mw.WriteField("body", "We went to the beach."))

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="images"; filename="beach.jpg"`)
		header.Set("Content-Type", "image/jpeg")
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("jpeg bytes"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/entries", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		return req
	}

	t.Run("uploads without storage are refused", func(t *testing.T) {
		s := newServer(t)
		me := newUser("me")
		s.join(me, newOrg("Smiths", me), model.RoleAuthor)
		s.store.EXPECT().Enabled().Return(false)

		res := s.send(multipartEntry(t, "Beach day"), s.signIn(me))
		assert.Equal(t, http.StatusServiceUnavailable, res.Code)
	})

	t.Run("multipart fields are validated", func(t *testing.T) {
		s := newServer(t)
		me := newUser("me")
		s.join(me, newOrg("Smiths", me), model.RoleAuthor)

		res := s.send(multipartEntry(t, "  "), s.signIn(me))
		assert.Equal(t, http.StatusUnprocessableEntity, res.Code)
		details := res.Body["details"].(map[string]interface{})
		assert.Equal(t, "This field is required.", details["title"])
	})

	t.Run("no organization", func(t *testing.T) {
		s := newServer(t)
		me := newUser("loner")
		s.memberships.EXPECT().FindFirstByUser(gomock.Any(), me.ID).Return(nil, domain.ErrMembershipNotFound).AnyTimes()

		res := s.do(http.MethodPost, "/api/entries", s.signIn(me), map[string]string{"title": "x"})
		assert.Equal(t, http.StatusForbidden, res.Code)
	})
}

func TestModeratorRoutes(t *testing.T) {
	t.Run("plans are inert", func(t *testing.T) {
		s := newServer(t)
		mod := newUser("mod")
		s.join(mod, newOrg("Smiths", mod), model.RoleAdmin)

		res := s.do(http.MethodGet, "/api/plans", s.signIn(mod), nil)
		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, false, res.Body["enabled"])
		assert.Equal(t, "Smiths", res.Body["organization"])
	})

	t.Run("plans are hidden from authors", func(t *testing.T) {
		s := newServer(t)
		author := newUser("author")
		s.join(author, newOrg("Smiths", newUser("mom")), model.RoleAuthor)

		res := s.do(http.MethodGet, "/api/plans", s.signIn(author), nil)
		assert.Equal(t, http.StatusForbidden, res.Code)
	})

	t.Run("audit logs are scoped to the organization", func(t *testing.T) {
		s := newServer(t)
		mod := newUser("mod")
		org := newOrg("Smiths", mod)
		s.join(mod, org, model.RoleOwner)
		s.auditRepo.EXPECT().Query(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q repository.AuditQuery) ([]model.AuditLog, int64, error) {
				require.NotNil(t, q.OrgID)
				assert.Equal(t, org.ID, *q.OrgID)
				assert.Equal(t, model.ActionStateTransition, q.ActionType)
				assert.Equal(t, 5, q.Limit)
				return []model.AuditLog{}, 0, nil
			})

		res := s.do(http.MethodGet, "/api/audit-logs?action_type="+model.ActionStateTransition+"&limit=5", s.signIn(mod), nil)
		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, 0.0, res.Body["total"])
	})

	t.Run("audit log of another organization is not found", func(t *testing.T) {
		s := newServer(t)
		mod := newUser("mod")
		s.join(mod, newOrg("Smiths", mod), model.RoleOwner)
		other := uuid.New()
		logID := uuid.New()
		s.auditRepo.EXPECT().FindByID(gomock.Any(), logID).Return(&model.AuditLog{ID: logID, OrgID: &other}, nil)

		res := s.do(http.MethodGet, "/api/audit-logs/"+logID.String(), s.signIn(mod), nil)
		assert.Equal(t, http.StatusNotFound, res.Code)
	})
}

func TestTabRoutes(t *testing.T) {
	s := newServer(t)
	author := newUser("author")
	org := newOrg("Smiths", newUser("mom"))
	s.join(author, org, model.RoleAuthor)
	s.tabRepo.EXPECT().ListByOrg(gomock.Any(), org.ID).Return([]model.Tab{
		{ID: uuid.New(), Name: "General", Slug: "general", Enabled: true},
		{ID: uuid.New(), Name: "Hidden", Slug: "hidden", Enabled: false},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/tabs", nil)
	res := s.send(req, s.signIn(author))
	require.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, string(res.Raw), `"general"`)
	assert.NotContains(t, string(res.Raw), `"hidden"`)

	res = s.do(http.MethodPost, "/api/tabs", s.signIn(author), map[string]string{"name": "Recipes"})
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestProfileRoutes(t *testing.T) {
	s := newServer(t)
	org := newOrg("Acme", newUser("founder"))
	first := newUser("first")
	second := newUser("second")
	s.join(first, org, model.RoleModerator)
	s.join(second, org, model.RoleModerator)
	s.memberships.EXPECT().ExistsManagedBy(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()

	res := s.do(http.MethodGet, "/api/profile/"+first.ID.String(), s.signIn(second), nil)
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.NotContains(t, string(res.Raw), first.Username)
}
