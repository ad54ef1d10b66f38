package handler

import (
	"net/http"
	"strconv"

	"github.com/dangerclosesec/tabbedjournal/internal/service"
	"github.com/go-chi/chi/v5"
)

type OnboardingHandler struct {
	onboarding *service.OnboardingService
}

func NewOnboardingHandler(onboarding *service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding}
}

func (h *OnboardingHandler) State(w http.ResponseWriter, r *http.Request) {
	state, err := h.onboarding.State(r.Context(), currentUser(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

func (h *OnboardingHandler) Step(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid step")
		return
	}
	var input service.StepInput
	if !decodeJSON(w, r, &input) {
		return
	}

	state, err := h.onboarding.Advance(r.Context(), currentUser(r), step, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

func (h *OnboardingHandler) Enable(w http.ResponseWriter, r *http.Request) {
	state, err := h.onboarding.Enable(r.Context(), currentUser(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}

func (h *OnboardingHandler) Disable(w http.ResponseWriter, r *http.Request) {
	state, err := h.onboarding.Disable(r.Context(), currentUser(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, state)
}
