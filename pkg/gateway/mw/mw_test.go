package mw

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/voicelane/voice-agent/pkg/gateway/config"
)

func TestRequestID_Generated(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = RequestIDFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if !strings.HasPrefix(seen, "req_") {
		t.Fatalf("request id=%q", seen)
	}
	if rr.Header().Get("X-Request-ID") != seen {
		t.Fatalf("header=%q ctx=%q", rr.Header().Get("X-Request-ID"), seen)
	}
}

func TestRequestID_CallerProvided(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = RequestIDFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req_caller")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if seen != "req_caller" {
		t.Fatalf("request id=%q", seen)
	}
}

func TestRecover_Catches(t *testing.T) {
	h := Recover(nil, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", rr.Code)
	}
}

func TestCORS_PreflightAllowed(t *testing.T) {
	cfg := config.Config{CORSAllowedOrigins: map[string]struct{}{"https://app.example": {}}}
	h := CORS(cfg, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("preflight reached next handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/tts", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status=%d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "https://app.example" {
		t.Fatalf("allow-origin=%q", rr.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestCORS_PreflightDenied(t *testing.T) {
	cfg := config.Config{CORSAllowedOrigins: map[string]struct{}{"https://app.example": {}}}
	h := CORS(cfg, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodOptions, "/tts", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("status=%d", rr.Code)
	}
}

func TestCORS_SimpleRequestHeaders(t *testing.T) {
	cfg := config.Config{CORSAllowedOrigins: map[string]struct{}{"https://app.example": {}}}
	h := CORS(cfg, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://app.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Header().Get("Access-Control-Allow-Origin") != "https://app.example" {
		t.Fatalf("allow-origin=%q", rr.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestCORS_DisabledByDefault(t *testing.T) {
	h := CORS(config.Config{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://anything.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("unexpected allow-origin header")
	}
}
