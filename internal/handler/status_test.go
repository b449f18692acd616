package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type stubConfigurable bool

func (s stubConfigurable) Configured() bool { return bool(s) }

func TestStatusEndpoint(t *testing.T) {
	engine := gin.New()
	h := &StatusHandler{
		Rainforest: stubConfigurable(true),
		SerpWow:    stubConfigurable(false),
	}
	h.Register(engine)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec.Body.Bytes())
	data, _ := envelope["data"].(map[string]any)
	if data["status"] != "online" {
		t.Fatalf("status = %v, want online", data["status"])
	}
	apis, _ := data["apis"].(map[string]any)
	if apis["rainforest"] != true || apis["serpwow"] != false {
		t.Fatalf("apis = %+v", apis)
	}
	// Nil client reads as unconfigured rather than panicking.
	if apis["openrouter"] != false {
		t.Fatalf("openrouter = %v, want false", apis["openrouter"])
	}
}

func TestHealthEndpoints(t *testing.T) {
	engine := gin.New()
	h := &HealthHandler{}
	h.Register(engine)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz without db status = %d, want 503", rec.Code)
	}
}
