package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dangerclosesec/tabbedjournal/internal/auth"
	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/middleware"
	"github.com/dangerclosesec/tabbedjournal/internal/mocks"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	user := &model.User{ID: uuid.New(), Username: "alice", Status: model.StatusActive}
	token, err := tokens.Generate(user.ID.String(), user.Username)
	require.NoError(t, err)

	var seen *model.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		header string
		setup  func(users *mocks.MockUserRepositoryIface)
		status int
	}{
		{
			name:   "valid token loads the user",
			header: "Bearer " + token,
			setup: func(users *mocks.MockUserRepositoryIface) {
				users.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)
			},
			status: http.StatusNoContent,
		},
		{name: "missing header", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Token " + token, status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer nope", status: http.StatusUnauthorized},
		{
			name:   "deleted user",
			header: "Bearer " + token,
			setup: func(users *mocks.MockUserRepositoryIface) {
				users.EXPECT().FindByID(gomock.Any(), user.ID).Return(nil, domain.ErrUserNotFound)
			},
			status: http.StatusUnauthorized,
		},
		{
			name:   "suspended user",
			header: "Bearer " + token,
			setup: func(users *mocks.MockUserRepositoryIface) {
				suspended := *user
				suspended.Status = model.StatusSuspended
				users.EXPECT().FindByID(gomock.Any(), user.ID).Return(&suspended, nil)
			},
			status: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := mocks.NewMockUserRepositoryIface(ctrl)
			if tt.setup != nil {
				tt.setup(users)
			}
			seen = nil

			req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			middleware.AuthMiddleware(tokens, users)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusNoContent {
				require.NotNil(t, seen)
				assert.Equal(t, user.ID, seen.ID)
			} else {
				assert.Nil(t, seen)
				assert.Contains(t, rec.Body.String(), "error")
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepositoryIface(ctrl)

	var seen *model.User
	handler := middleware.OptionalAuth(tokens, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.UserFromContext(r.Context())
	}))

	t.Run("anonymous passes through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/invite/accept/x", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, seen)
	})

	t.Run("bad token is treated as anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/invite/accept/x", nil)
		req.Header.Set("Authorization", "Bearer broken")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, seen)
	})

	t.Run("valid token sets the user", func(t *testing.T) {
		user := &model.User{ID: uuid.New(), Username: "bob", Status: model.StatusActive}
		token, err := tokens.Generate(user.ID.String(), user.Username)
		require.NoError(t, err)
		users.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil)

		req := httptest.NewRequest(http.MethodGet, "/invite/accept/x", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		handler.ServeHTTP(httptest.NewRecorder(), req)
		require.NotNil(t, seen)
		assert.Equal(t, "bob", seen.Username)
	})
}
