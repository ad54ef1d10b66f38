package handler

import (
	"net/http"

	"github.com/dangerclosesec/tabbedjournal/internal/service"
)

type TabHandler struct {
	tabs *service.TabService
}

func NewTabHandler(tabs *service.TabService) *TabHandler {
	return &TabHandler{tabs: tabs}
}

type TabRequest struct {
	Name string `json:"name"`
	// Enabled defaults to true on create.
	Enabled *bool `json:"enabled,omitempty"`
}

func (h *TabHandler) List(w http.ResponseWriter, r *http.Request) {
	tabs, err := h.tabs.List(r.Context(), currentUser(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tabs)
}

func (h *TabHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TabRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	tab, err := h.tabs.Create(r.Context(), currentUser(r), req.Name, enabled)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, tab)
}

func (h *TabHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req TabRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tab, err := h.tabs.Rename(r.Context(), currentUser(r), id, req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tab)
}

func (h *TabHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	tab, err := h.tabs.Toggle(r.Context(), currentUser(r), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tab)
}
