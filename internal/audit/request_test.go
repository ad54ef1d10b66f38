package audit

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestRoundTrip(t *testing.T) {
	_, ok := RequestFromContext(context.Background())
	assert.False(t, ok)

	req := httptest.NewRequest("POST", "/api/review/1/approve", nil)
	req.Header.Set("User-Agent", "journal-test")
	req.RemoteAddr = "10.0.0.7:5123"

	ctx := WithRequest(context.Background(), "req-42", req)
	info, ok := RequestFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, RequestInfo{RequestID: "req-42", ClientIP: "10.0.0.7:5123", UserAgent: "journal-test"}, info)
}
