package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dangerclosesec/tabbedjournal/internal/domain"
	"github.com/dangerclosesec/tabbedjournal/internal/middleware"
	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/service"
	"github.com/go-chi/chi/v5"
	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	BaseResponse
	Error    string            `json:"error"`
	Details  map[string]string `json:"details,omitempty"`
	LoginURL string            `json:"login_url,omitempty"`
}

type BaseResponse struct {
	Ok bool `json:"ok"`
}

// StatusResponse answers transitions that another request already made.
type StatusResponse struct {
	BaseResponse
	Status string `json:"status"`
}

const statusAlreadyHandled = "already_handled"

// respondWithError sends an error response with a message
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	// Sets content type header
	w.Header().Set("Content-Type", "application/json")

	// Sets the HTTP status code
	w.WriteHeader(code)

	// Encodes the response
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// If encoding fails, logs the error and sends a plain text response
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleError maps service errors onto status codes. Anything it does not
// recognise is logged and reported as a 500.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErrs domain.FieldErrors
	var loginErr *domain.LoginRequiredError

	switch {
	case errors.As(err, &fieldErrs):
		respondWithJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "Invalid input",
			Details: fieldErrs,
		})
	case errors.As(err, &loginErr):
		respondWithJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error:    "Login required",
			LoginURL: loginErr.LoginURL,
		})
	case errors.Is(err, domain.ErrExpiredOrUsedInvite):
		respondWithError(w, http.StatusGone, "invalid or expired invite")
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, domain.ErrUnauthorized):
		respondWithError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrAuthorizationDenied):
		respondWithError(w, http.StatusForbidden, "Permission denied")
	case errors.Is(err, domain.ErrNoOrganization):
		respondWithError(w, http.StatusForbidden, "You do not belong to an organization")
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrInvalidInput):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrStorageDisabled):
		respondWithError(w, http.StatusServiceUnavailable, "Image uploads are not configured")
	default:
		slog.ErrorContext(r.Context(), "Request failed", "error", err, "path", r.URL.Path, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// respondWithTransition reports an entry status change.
func respondWithTransition(w http.ResponseWriter, result *service.TransitionResult) {
	if result.AlreadyHandled {
		respondWithJSON(w, http.StatusOK, StatusResponse{
			BaseResponse: BaseResponse{Ok: true},
			Status:       statusAlreadyHandled,
		})
		return
	}
	respondWithJSON(w, http.StatusOK, result.Entry)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

func currentUser(r *http.Request) *model.User {
	return middleware.UserFromContext(r.Context())
}

func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func int64Param(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// pageParams reads limit and offset; the service clamps them.
func pageParams(r *http.Request) service.Page {
	var page service.Page
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		page.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		page.Offset = offset
	}
	return page
}
