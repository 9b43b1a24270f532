package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"jobmate/jobs-service/internal/middleware"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
})

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	rec := httptest.NewRecorder()
	middleware.RequestID(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Header().Get(middleware.RequestIDHeader), 36)
}

func TestRequestID_KeepsCallerValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc")
	rec := httptest.NewRecorder()
	middleware.RequestID(okHandler).ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(middleware.RequestIDHeader))
}

func TestRateLimit_RejectsBeyondBurst(t *testing.T) {
	h := middleware.RateLimit(0.001, 2)(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusTeapot, http.StatusTeapot, http.StatusTooManyRequests}, codes)
}

func TestChain_AccessLogSeesStatus(t *testing.T) {
	h := middleware.Chain(okHandler,
		middleware.RequestID,
		middleware.AccessLog(zaptest.NewLogger(t)),
	)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/jobs", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}
