package handler

import (
	"net/http"

	"github.com/dangerclosesec/tabbedjournal/internal/service"
	"github.com/google/uuid"
)

// MemberHandler manages the people in the caller's organization.
type MemberHandler struct {
	members *service.MembershipService
}

func NewMemberHandler(members *service.MembershipService) *MemberHandler {
	return &MemberHandler{members: members}
}

type SetRoleRequest struct {
	Role string `json:"role"`
}

type DelegateRequest struct {
	// ManagerID defaults to the caller.
	ManagerID *uuid.UUID `json:"manager_id,omitempty"`
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.ListMembers(r.Context(), currentUser(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, members)
}

func (h *MemberHandler) Add(w http.ResponseWriter, r *http.Request) {
	var input service.AddMemberInput
	if !decodeJSON(w, r, &input) {
		return
	}

	out, err := h.members.AddMember(r.Context(), currentUser(r), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, out)
}

func (h *MemberHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	id, ok := int64Param(w, r, "id")
	if !ok {
		return
	}
	var req SetRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.members.SetRole(r.Context(), currentUser(r), id, req.Role)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, m)
}

func (h *MemberHandler) Delegate(w http.ResponseWriter, r *http.Request) {
	id, ok := int64Param(w, r, "id")
	if !ok {
		return
	}
	var req DelegateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.members.DelegateMember(r.Context(), currentUser(r), id, req.ManagerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, m)
}

func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := int64Param(w, r, "id")
	if !ok {
		return
	}
	if err := h.members.RemoveMember(r.Context(), currentUser(r), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MemberHandler) RoleAliases(w http.ResponseWriter, r *http.Request) {
	alias, err := h.members.RoleAliases(r.Context(), currentUser(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, alias)
}

func (h *MemberHandler) SaveRoleAliases(w http.ResponseWriter, r *http.Request) {
	var input service.RoleAliasInput
	if !decodeJSON(w, r, &input) {
		return
	}
	alias, err := h.members.SaveRoleAliases(r.Context(), currentUser(r), input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, alias)
}
