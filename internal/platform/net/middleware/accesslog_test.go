package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dmphub/internal/platform/net/middleware"
)

func TestAccessLogRecordsStatusAndPassesThrough(t *testing.T) {
	h := middleware.AccessLog(middleware.AccessLogOptions{})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte("short and stout"))
		}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/en-US/dmps", nil))

	if rr.Code != http.StatusTeapot {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Body.String() != "short and stout" {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestAccessLogSlowThresholdDoesNotAlterResponse(t *testing.T) {
	h := middleware.AccessLog(middleware.AccessLogOptions{Slow: time.Nanosecond})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}
