package audit

import (
	"context"
	"net/http"
)

// RequestInfo is the slice of an HTTP request recorded with audit entries.
type RequestInfo struct {
	RequestID string
	ClientIP  string
	UserAgent string
}

type requestKey struct{}

// WithRequest stores request metadata on ctx for audit records made further
// down the call chain.
func WithRequest(ctx context.Context, requestID string, r *http.Request) context.Context {
	return context.WithValue(ctx, requestKey{}, RequestInfo{
		RequestID: requestID,
		ClientIP:  r.RemoteAddr,
		UserAgent: r.UserAgent(),
	})
}

// RequestFromContext returns the metadata stored by WithRequest, if any.
func RequestFromContext(ctx context.Context) (RequestInfo, bool) {
	info, ok := ctx.Value(requestKey{}).(RequestInfo)
	return info, ok
}
