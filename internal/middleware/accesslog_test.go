package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yanizio/atelier/internal/requestinfo"
)

// captureLogs swaps the global logger for an observer for one test.
func captureLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(restore)
	return logs
}

func TestAccessLogRecordsStatusAndFingerprint(t *testing.T) {
	logs := captureLogs(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})
	h := requestinfo.Enrich(AccessLog(inner))

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	req.Header.Set("Accept-Language", "de-DE,de;q=0.8")
	h.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	got := entries[0].ContextMap()
	if got["status"] != int64(http.StatusNotFound) {
		t.Errorf("status = %v, want 404", got["status"])
	}
	if got["path"] != "/missing" {
		t.Errorf("path = %v", got["path"])
	}
	if got["lang"] != "de-de" {
		t.Errorf("lang = %v, want de-de (from the enriched context)", got["lang"])
	}
}

func TestAccessLogImplicitOK(t *testing.T) {
	logs := captureLogs(t)

	// Handler writes a body without an explicit WriteHeader.
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	AccessLog(inner).ServeHTTP(httptest.NewRecorder(),
		httptest.NewRequest(http.MethodGet, "/", nil))

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	got := entries[0].ContextMap()
	if got["status"] != int64(http.StatusOK) {
		t.Errorf("status = %v, want 200", got["status"])
	}
	// Without the enrichment middleware the fingerprint fields are absent.
	if _, ok := got["browser"]; ok {
		t.Error("browser field present without enrichment upstream")
	}
}
