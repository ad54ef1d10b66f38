package handler

import (
	"net/http"

	"github.com/dangerclosesec/tabbedjournal/internal/service"
)

// PlanHandler reports the billing plan of the caller's organization. Billing
// is not enforced; the endpoint only reflects the ENABLE_BILLING flag.
type PlanHandler struct {
	authz   *service.AuthzService
	enabled bool
}

func NewPlanHandler(authz *service.AuthzService, billingEnabled bool) *PlanHandler {
	return &PlanHandler{authz: authz, enabled: billingEnabled}
}

type PlanResponse struct {
	Enabled      bool   `json:"enabled"`
	Organization string `json:"organization"`
	Plan         string `json:"plan"`
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	org, err := h.authz.RequireModerator(r.Context(), currentUser(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, PlanResponse{
		Enabled:      h.enabled,
		Organization: org.Name,
		Plan:         "free",
	})
}
