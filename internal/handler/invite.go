package handler

import (
	"net/http"
	"time"

	"github.com/dangerclosesec/tabbedjournal/internal/model"
	"github.com/dangerclosesec/tabbedjournal/internal/service"
	"github.com/go-chi/chi/v5"
)

type InviteHandler struct {
	invites *service.InviteService
}

func NewInviteHandler(invites *service.InviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

// InvitePreview describes a pending invite to the person holding its link.
type InvitePreview struct {
	Organization string     `json:"organization"`
	Role         model.Role `json:"role"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	ExpiresAt    time.Time  `json:"expires_at"`
	SignedIn     bool       `json:"signed_in"`
}

func (h *InviteHandler) List(w http.ResponseWriter, r *http.Request) {
	invites, err := h.invites.ListByOrg(r.Context(), currentUser(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, invites)
}

func (h *InviteHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var input service.IssueInviteInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.invites.Issue(r.Context(), currentUser(r), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, out)
}

// Preview runs behind optional auth.
func (h *InviteHandler) Preview(w http.ResponseWriter, r *http.Request) {
	invite, err := h.invites.Lookup(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, InvitePreview{
		Organization: invite.Organization.Name,
		Role:         invite.Role,
		Email:        invite.Email,
		Phone:        invite.Phone,
		ExpiresAt:    invite.ExpiresAt,
		SignedIn:     currentUser(r) != nil,
	})
}

// Accept runs behind optional auth. Signed-in callers may send an empty body.
func (h *InviteHandler) Accept(w http.ResponseWriter, r *http.Request) {
	actor := currentUser(r)

	var input service.AcceptInviteInput
	if actor == nil || r.ContentLength > 0 {
		if !decodeJSON(w, r, &input) {
			return
		}
	}

	out, err := h.invites.Accept(r.Context(), chi.URLParam(r, "token"), actor, input)
	if err != nil {
		handleError(w, r, err)
		return
	}

	code := http.StatusOK
	if out.Token != "" {
		code = http.StatusCreated
	}
	respondWithJSON(w, code, out)
}
