//go:generate mockgen -source=./logger.go -destination=../mocks/mock_audit_logger.go -package=mocks Logger

package audit

import (
	"context"

	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/google/uuid"
)

// Logger defines the interface for auditing operations
type Logger interface {
	// LogDecision logs the outcome of an authorization check
	LogDecision(
		ctx context.Context,
		actorID uuid.UUID,
		check string,
		subject model.Subject,
		allowed bool,
		contextData map[string]interface{},
	) error

	// LogTransition logs an entry status change
	LogTransition(
		ctx context.Context,
		actorID uuid.UUID,
		orgID uuid.UUID,
		subject model.Subject,
		from string,
		to string,
	) error

	// LogEvent logs membership and invite changes
	LogEvent(
		ctx context.Context,
		actionType string,
		actorID uuid.UUID,
		orgID uuid.UUID,
		subject model.Subject,
		action string,
		contextData map[string]interface{},
	) error
}

// NoOpLogger is a logger that does nothing
type NoOpLogger struct{}

// LogDecision implements Logger.LogDecision
func (l *NoOpLogger) LogDecision(
	ctx context.Context,
	actorID uuid.UUID,
	check string,
	subject model.Subject,
	allowed bool,
	contextData map[string]interface{},
) error {
	return nil
}

// LogTransition implements Logger.LogTransition
func (l *NoOpLogger) LogTransition(
	ctx context.Context,
	actorID uuid.UUID,
	orgID uuid.UUID,
	subject model.Subject,
	from string,
	to string,
) error {
	return nil
}

// LogEvent implements Logger.LogEvent
func (l *NoOpLogger) LogEvent(
	ctx context.Context,
	actionType string,
	actorID uuid.UUID,
	orgID uuid.UUID,
	subject model.Subject,
	action string,
	contextData map[string]interface{},
) error {
	return nil
}
