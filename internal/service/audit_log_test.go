package service_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/dangerclosesec/tabbedjournal/internal/audit"
	"github.com/dangerclosesec/tabbedjournal/internal/mocks"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAuditLogService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	actorID := uuid.New()
	orgID := uuid.New()
	entryID := uuid.New()

	req := httptest.NewRequest("POST", "/api/review/x/approve", nil)
	req.Header.Set("User-Agent", "journal-test")
	ctx := audit.WithRequest(context.Background(), "req-1", req)

	t.Run("transition carries org and request metadata", func(t *testing.T) {
		repo := mocks.NewMockAuditLogRepositoryIface(ctrl)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, log *model.AuditLog) error {
				assert.Equal(t, model.ActionStateTransition, log.ActionType)
				assert.Equal(t, "pending->approved", log.Action)
				assert.Equal(t, "pending", log.FromState)
				assert.Equal(t, "approved", log.ToState)
				assert.Equal(t, orgID, *log.OrgID)
				assert.Equal(t, actorID, *log.ActorID)
				assert.Equal(t, entryID.String(), log.SubjectID)
				assert.Equal(t, "req-1", log.RequestID)
				assert.Equal(t, "journal-test", log.UserAgent)
				return nil
			})

		svc := service.NewAuditLogService(repo)
		err := svc.LogTransition(ctx, actorID, orgID, model.Subject{Type: model.SubjectEntry, ID: entryID.String()}, "pending", "approved")
		assert.NoError(t, err)
	})

	t.Run("decision has a result and no organization", func(t *testing.T) {
		repo := mocks.NewMockAuditLogRepositoryIface(ctrl)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, log *model.AuditLog) error {
				assert.Equal(t, model.ActionAuthzDecision, log.ActionType)
				assert.Equal(t, service.CheckCanManage, log.Action)
				assert.False(t, *log.Result)
				assert.Nil(t, log.OrgID)
				assert.Equal(t, "rank", log.Context["reason"])
				return nil
			})

		svc := service.NewAuditLogService(repo)
		err := svc.LogDecision(context.Background(), actorID, service.CheckCanManage,
			model.Subject{Type: model.SubjectUser, ID: uuid.NewString()}, false,
			map[string]interface{}{"reason": "rank"})
		assert.NoError(t, err)
	})

	t.Run("membership event", func(t *testing.T) {
		repo := mocks.NewMockAuditLogRepositoryIface(ctrl)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, log *model.AuditLog) error {
				assert.Equal(t, model.ActionMembershipChange, log.ActionType)
				assert.Equal(t, "set_role", log.Action)
				assert.Equal(t, orgID, *log.OrgID)
				return nil
			})

		svc := service.NewAuditLogService(repo)
		err := svc.LogEvent(ctx, model.ActionMembershipChange, actorID, orgID,
			model.Subject{Type: model.SubjectMembership, ID: "3"}, "set_role", map[string]interface{}{"to": "ADMIN"})
		assert.NoError(t, err)
	})
}

func TestServicesRecordAuditEvents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	logger := mocks.NewMockLogger(f.ctrl)
	authz := service.NewAuthzService(f.graph, f.users, logger, f.metrics)

	actor := newUser("me")
	logger.EXPECT().
		LogDecision(gomock.Any(), actor.ID, service.CheckCanManage, gomock.Any(), true, map[string]interface{}{"reason": "self"}).
		Return(nil)

	allowed, err := authz.CanManage(ctx, actor, actor.ID)
	assert.NoError(t, err)
	assert.True(t, allowed)
}
