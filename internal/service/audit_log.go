package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dangerclosesec/tabbedjournal/internal/audit"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/repository"
	"github.com/google/uuid"
)

// Ensure AuditLogService implements the audit.Logger interface
var _ audit.Logger = (*AuditLogService)(nil)

// AuditLogService handles operations related to audit logs
type AuditLogService struct {
	repo repository.AuditLogRepositoryIface
	now  func() time.Time
}

// NewAuditLogService creates a new AuditLogService
func NewAuditLogService(repo repository.AuditLogRepositoryIface) *AuditLogService {
	return &AuditLogService{
		repo: repo,
		now:  time.Now,
	}
}

// newRecord fills the request metadata carried on ctx
func (s *AuditLogService) newRecord(ctx context.Context, actionType string, actorID uuid.UUID, subject model.Subject) *model.AuditLog {
	log := &model.AuditLog{
		ActionType:  actionType,
		SubjectType: subject.Type,
		SubjectID:   subject.ID,
		Timestamp:   s.now().UTC(),
	}
	if actorID != uuid.Nil {
		log.ActorID = &actorID
	}

	if info, ok := audit.RequestFromContext(ctx); ok {
		log.RequestID = info.RequestID
		log.ClientIP = info.ClientIP
		log.UserAgent = info.UserAgent
	}
	return log
}

// LogDecision logs the outcome of an authorization check
func (s *AuditLogService) LogDecision(
	ctx context.Context,
	actorID uuid.UUID,
	check string,
	subject model.Subject,
	allowed bool,
	contextData map[string]interface{},
) error {
	log := s.newRecord(ctx, model.ActionAuthzDecision, actorID, subject)
	log.Action = check
	log.Result = &allowed
	log.Context = model.JSONMap(contextData)

	return s.repo.Create(ctx, log)
}

// LogTransition logs an entry status change
func (s *AuditLogService) LogTransition(
	ctx context.Context,
	actorID uuid.UUID,
	orgID uuid.UUID,
	subject model.Subject,
	from string,
	to string,
) error {
	log := s.newRecord(ctx, model.ActionStateTransition, actorID, subject)
	log.Action = from + "->" + to
	log.FromState = from
	log.ToState = to
	if orgID != uuid.Nil {
		log.OrgID = &orgID
	}

	return s.repo.Create(ctx, log)
}

// LogEvent logs membership and invite changes
func (s *AuditLogService) LogEvent(
	ctx context.Context,
	actionType string,
	actorID uuid.UUID,
	orgID uuid.UUID,
	subject model.Subject,
	action string,
	contextData map[string]interface{},
) error {
	log := s.newRecord(ctx, actionType, actorID, subject)
	log.Action = action
	log.Context = model.JSONMap(contextData)
	if orgID != uuid.Nil {
		log.OrgID = &orgID
	}

	return s.repo.Create(ctx, log)
}

// GetAuditLogs retrieves audit logs based on query parameters
func (s *AuditLogService) GetAuditLogs(
	ctx context.Context,
	params repository.AuditQuery,
) ([]model.AuditLog, int64, error) {
	return s.repo.Query(ctx, params)
}

// GetAuditLogByID retrieves an audit log by ID
func (s *AuditLogService) GetAuditLogByID(
	ctx context.Context,
	id uuid.UUID,
) (*model.AuditLog, error) {
	log, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log by ID: %w", err)
	}

	return log, nil
}
