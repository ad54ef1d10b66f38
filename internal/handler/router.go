package handler

import (
	"net/http"

	"github.com/dangerclosesec/tabbedjournal/internal/auth"
	"github.com/dangerclosesec/tabbedjournal/internal/metrics"
	"github.com/dangerclosesec/tabbedjournal/internal/middleware"
	"github.com/dangerclosesec/tabbedjournal/internal/service"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Identity   *service.IdentityService
	Authz      *service.AuthzService
	Members    *service.MembershipService
	Tabs       *service.TabService
	Entries    *service.EntryService
	Invites    *service.InviteService
	Profiles   *service.ProfileService
	Onboarding *service.OnboardingService
	AuditLogs  *service.AuditLogService

	Tokens         *auth.TokenManager
	Metrics        *metrics.Metrics
	BillingEnabled bool
}

// Mount registers the journal routes on r. Callers install request id,
// logging and recovery middleware on r first.
func Mount(r chi.Router, s Services) {
	authHandler := NewAuthHandler(s.Identity)
	entryHandler := NewEntryHandler(s.Entries)
	tabHandler := NewTabHandler(s.Tabs)
	memberHandler := NewMemberHandler(s.Members)
	inviteHandler := NewInviteHandler(s.Invites)
	profileHandler := NewProfileHandler(s.Profiles)
	onboardingHandler := NewOnboardingHandler(s.Onboarding)
	planHandler := NewPlanHandler(s.Authz, s.BillingEnabled)
	auditLogHandler := NewAuditLogHandler(s.AuditLogs, s.Authz)

	requireUser := middleware.AuthMiddleware(s.Tokens, s.Identity)
	optionalUser := middleware.OptionalAuth(s.Tokens, s.Identity)

	r.Use(middleware.Metrics(s.Metrics))
	r.Use(middleware.AuditRequest)

	r.Route("/invite/accept/{token}", func(r chi.Router) {
		r.Use(optionalUser)
		r.Get("/", inviteHandler.Preview)
		r.Post("/", inviteHandler.Accept)
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Route("/auth", func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))
			r.Post("/signup", authHandler.SignupHandler)
			r.Post("/login", authHandler.LoginHandler)
			r.With(requireUser).Get("/me", authHandler.MeHandler)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(requireUser)

			r.Get("/feed", entryHandler.Feed)
			r.Route("/entries", func(r chi.Router) {
				r.Get("/drafts", entryHandler.Drafts)
				r.Post("/", entryHandler.Create)
				r.Get("/{id}", entryHandler.Get)
				r.Put("/{id}", entryHandler.Update)
				r.Delete("/{id}", entryHandler.Delete)
				r.Post("/{id}/submit", entryHandler.Submit)
				r.Post("/{id}/reopen", entryHandler.Reopen)
				r.Post("/{id}/images", entryHandler.AddImages)
			})

			r.Route("/review", func(r chi.Router) {
				r.Get("/", entryHandler.ReviewQueue)
				r.Post("/{id}/approve", entryHandler.Approve)
				r.Post("/{id}/reject", entryHandler.Reject)
			})

			r.Route("/tabs", func(r chi.Router) {
				r.Get("/", tabHandler.List)
				r.Post("/", tabHandler.Create)
				r.Put("/{id}", tabHandler.Rename)
				r.Post("/{id}/toggle", tabHandler.Toggle)
			})

			r.Route("/members", func(r chi.Router) {
				r.Get("/", memberHandler.List)
				r.Post("/", memberHandler.Add)
				r.Post("/{id}/role", memberHandler.SetRole)
				r.Post("/{id}/delegate", memberHandler.Delegate)
				r.Delete("/{id}", memberHandler.Remove)
			})
			r.Get("/org/role-aliases", memberHandler.RoleAliases)
			r.Put("/org/role-aliases", memberHandler.SaveRoleAliases)

			r.Get("/invites", inviteHandler.List)
			r.Post("/invites", inviteHandler.Issue)

			r.Route("/profile", func(r chi.Router) {
				profileHandler.Routes(r)
				r.Route("/{userID}", profileHandler.Routes)
			})

			r.Route("/onboarding", func(r chi.Router) {
				r.Get("/", onboardingHandler.State)
				r.Post("/step/{step}", onboardingHandler.Step)
				r.Post("/enable", onboardingHandler.Enable)
				r.Post("/disable", onboardingHandler.Disable)
			})

			r.Get("/plans", planHandler.Get)
			r.Get("/audit-logs", auditLogHandler.GetAuditLogs)
			r.Get("/audit-logs/{id}", auditLogHandler.GetAuditLog)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "Not found")
	})
}
