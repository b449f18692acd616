package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"buybox/internal/client/rainforest"
)

func newAmazonHandler(t *testing.T, payloadByType map[string]string, repo *stubRepo) (*AmazonHandler, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqType := r.URL.Query().Get("type")
		payload, ok := payloadByType[reqType]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(payload))
	}))
	h := &AmazonHandler{
		Client:        rainforest.NewClient(server.Client(), server.URL, "key"),
		Advisor:       newTestAdvisor(false),
		Repo:          repo,
		DefaultDomain: "amazon.com",
	}
	return h, server
}

func TestAmazonProductEndpoint(t *testing.T) {
	repo := &stubRepo{}
	h, server := newAmazonHandler(t, map[string]string{
		"product": `{"product": {"asin": "B08N5WRWNW", "title": "Echo Dot", "price": {"value": 49.99}}}`,
	}, repo)
	defer server.Close()
	engine := gin.New()
	h.Register(engine)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/amazon/product?asin=b08n5wrwnw", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(repo.searches) != 1 || repo.searches[0].SearchType != "product" {
		t.Fatalf("searches = %+v", repo.searches)
	}
	// ASIN is uppercased before hitting the upstream and the history row.
	if repo.searches[0].Query != "B08N5WRWNW" {
		t.Fatalf("recorded query = %q, want B08N5WRWNW", repo.searches[0].Query)
	}
}

func TestAmazonEndpointsRejectBadASIN(t *testing.T) {
	h, server := newAmazonHandler(t, nil, nil)
	defer server.Close()
	engine := gin.New()
	h.Register(engine)

	for _, path := range []string{
		"/api/v1/amazon/product",
		"/api/v1/amazon/product?asin=short",
		"/api/v1/amazon/offers?asin=has%20space1",
		"/api/v1/amazon/analyze?asin=toolongasin1",
	} {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", path, rec.Code)
		}
	}
}

func TestAmazonEndpointsRequireAPIKey(t *testing.T) {
	h := &AmazonHandler{Client: rainforest.NewClient(http.DefaultClient, "", "")}
	engine := gin.New()
	h.Register(engine)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/amazon/product?asin=B08N5WRWNW", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestAmazonOffersEndpoint(t *testing.T) {
	h, server := newAmazonHandler(t, map[string]string{
		"offers": `{"offers": [
			{"price": {"value": 24.99}, "is_prime": true, "is_buybox_winner": true},
			{"price": {"value": 26.50}}
		]}`,
	}, &stubRepo{})
	defer server.Close()
	engine := gin.New()
	h.Register(engine)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/amazon/offers?asin=B08N5WRWNW", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	envelope := decodeEnvelope(t, rec.Body.Bytes())
	data, _ := envelope["data"].(map[string]any)
	comp, _ := data["competition"].(map[string]any)
	if comp["competitors"] != float64(2) {
		t.Fatalf("competitors = %v, want 2", comp["competitors"])
	}
	if comp["buybox_price"] != "24.99" {
		t.Fatalf("buybox_price = %v, want 24.99", comp["buybox_price"])
	}
}

func TestAmazonAnalyzeEndpoint(t *testing.T) {
	repo := &stubRepo{}
	h, server := newAmazonHandler(t, map[string]string{
		"product": `{
			"product": {"asin": "B08N5WRWNW", "title": "Echo Dot", "buybox_winner": {"price": {"value": 47.99}}},
			"offers": [
				{"price": {"value": 47.99}, "is_prime": true, "is_buybox_winner": true},
				{"price": {"value": 52.00}}
			]
		}`,
	}, repo)
	defer server.Close()
	engine := gin.New()
	h.Register(engine)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/amazon/analyze?asin=B08N5WRWNW&current_price=50&fulfillment=FBA", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	envelope := decodeEnvelope(t, rec.Body.Bytes())
	data, _ := envelope["data"].(map[string]any)
	strategy, _ := data["strategy"].(map[string]any)
	// 50 > buybox 47.99 and FBA means undercut at 98% of buybox.
	if strategy["action"] != "UNDERCUT" {
		t.Fatalf("action = %v, want UNDERCUT", strategy["action"])
	}
	if strategy["target_price"] != "47.03" {
		t.Fatalf("target_price = %v, want 47.03", strategy["target_price"])
	}
	if len(repo.decisions) != 1 {
		t.Fatalf("decisions = %+v", repo.decisions)
	}
	foundAnalyze := false
	for _, search := range repo.searches {
		if search.SearchType == "analyze" && search.ResponseSummary == "UNDERCUT" {
			foundAnalyze = true
		}
	}
	if !foundAnalyze {
		t.Fatalf("analyze search not recorded: %+v", repo.searches)
	}
}

func TestAmazonAnalyzeFallsBackToOffersCall(t *testing.T) {
	h, server := newAmazonHandler(t, map[string]string{
		"product": `{"product": {"asin": "B08N5WRWNW", "price": {"value": 30.00}}}`,
		"offers":  `{"offers": [{"price": {"value": 28.00}, "is_buybox_winner": true}]}`,
	}, &stubRepo{})
	defer server.Close()
	engine := gin.New()
	h.Register(engine)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/amazon/analyze?asin=B08N5WRWNW", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	envelope := decodeEnvelope(t, rec.Body.Bytes())
	data, _ := envelope["data"].(map[string]any)
	comp, _ := data["competition"].(map[string]any)
	if comp["competitors"] != float64(1) {
		t.Fatalf("competitors = %v, want 1 (from offers fallback)", comp["competitors"])
	}
}
