package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/repository"
	"github.com/dangerclosesec/tabbedjournal/internal/service"
	"github.com/google/uuid"
)

// AuditLogHandler lists audit records of the caller's organization.
type AuditLogHandler struct {
	auditLogService *service.AuditLogService
	authz           *service.AuthzService
}

// NewAuditLogHandler creates a new audit log handler
func NewAuditLogHandler(auditLogService *service.AuditLogService, authz *service.AuthzService) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogService: auditLogService,
		authz:           authz,
	}
}

type AuditLogsResponse struct {
	Logs  interface{} `json:"logs"`
	Total int64       `json:"total"`
}

// GetAuditLogs handles requests to retrieve audit logs with filtering. Results
// are always limited to the caller's organization.
func (h *AuditLogHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	org, err := h.authz.RequireModerator(r.Context(), currentUser(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	query := r.URL.Query()
	params := repository.AuditQuery{
		OrgID:       &org.ID,
		ActionType:  query.Get("action_type"),
		SubjectType: query.Get("subject_type"),
		SubjectID:   query.Get("subject_id"),
	}

	if actorStr := query.Get("actor_id"); actorStr != "" {
		actorID, err := uuid.Parse(actorStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid actor_id")
			return
		}
		params.ActorID = &actorID
	}

	if resultStr := query.Get("result"); resultStr != "" {
		result, err := strconv.ParseBool(resultStr)
		if err == nil {
			params.Result = &result
		}
	}

	if startTimeStr := query.Get("start_time"); startTimeStr != "" {
		startTime, err := time.Parse(time.RFC3339, startTimeStr)
		if err == nil {
			params.StartTime = startTime
		}
	}

	if endTimeStr := query.Get("end_time"); endTimeStr != "" {
		endTime, err := time.Parse(time.RFC3339, endTimeStr)
		if err == nil {
			params.EndTime = endTime
		}
	}

	page := pageParams(r)
	params.Limit = page.Limit
	params.Offset = page.Offset

	logs, total, err := h.auditLogService.GetAuditLogs(r.Context(), params)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, AuditLogsResponse{Logs: logs, Total: total})
}

// GetAuditLog returns one record; records of other organizations are not found.
func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	org, err := h.authz.RequireModerator(r.Context(), currentUser(r))
	if err != nil {
		handleError(w, r, err)
		return
	}

	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	log, err := h.auditLogService.GetAuditLogByID(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if log.OrgID == nil || *log.OrgID != org.ID {
		handleError(w, r, domain.ErrNotFound)
		return
	}

	respondWithJSON(w, http.StatusOK, log)
}
