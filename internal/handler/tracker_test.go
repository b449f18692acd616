package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"buybox/internal/client/rainforest"
	"buybox/internal/config"
	"buybox/internal/models"
	"buybox/internal/service"
)

func TestTrackerSweepEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"offers": [{"price": {"value": 24.99}, "is_buybox_winner": true}]}`))
	}))
	defer server.Close()

	repo := &stubRepo{tracked: []models.TrackedProduct{{ID: 1, ASIN: "B000000001"}}}
	h := &TrackerHandler{Service: &service.TrackerService{
		Repo:       repo,
		Rainforest: rainforest.NewClient(server.Client(), server.URL, "key"),
		Config:     config.TrackerConfig{Marketplace: "amazon.com"},
	}}
	engine := gin.New()
	h.Register(engine)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/tracker/sweep", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	envelope := decodeEnvelope(t, rec.Body.Bytes())
	data, _ := envelope["data"].(map[string]any)
	if data["products"] != float64(1) || data["price_points"] != float64(1) {
		t.Fatalf("data = %+v", data)
	}
	if len(repo.pricePoints) != 1 {
		t.Fatalf("price points = %+v", repo.pricePoints)
	}
}

func TestTrackerSweepEndpointWithoutService(t *testing.T) {
	h := &TrackerHandler{}
	engine := gin.New()
	h.Register(engine)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/tracker/sweep", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
