package middleware

import (
	"net/http"

	"github.com/dangerclosesec/tabbedjournal/internal/audit"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// AuditRequest attaches the request id, client address and user agent to the
// context so audit records written during the request carry them. It must run
// after chi's RequestID and RealIP middleware.
func AuditRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := audit.WithRequest(r.Context(), chimw.GetReqID(r.Context()), r)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
