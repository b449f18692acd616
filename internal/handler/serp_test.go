package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"buybox/internal/client/serpwow"
)

func TestSerpSearchEndpoint(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		if got := r.URL.Query().Get("engine"); got != "google" {
			t.Errorf("engine = %q, want google default", got)
		}
		w.Write([]byte(`{"organic_results": [{"title": "Echo Dot"}]}`))
	}))
	defer server.Close()

	repo := &stubRepo{}
	h := &SerpHandler{
		Client: serpwow.NewClient(server.Client(), server.URL, "key"),
		Repo:   repo,
	}
	engine := gin.New()
	h.Register(engine)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/serp/search?q=echo+dot", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if gotQuery != "echo dot" {
		t.Fatalf("upstream q = %q, want echo dot", gotQuery)
	}
	if len(repo.searches) != 1 || repo.searches[0].SearchType != "serp" {
		t.Fatalf("searches = %+v", repo.searches)
	}
}

func TestSerpSearchRequiresQuery(t *testing.T) {
	h := &SerpHandler{Client: serpwow.NewClient(http.DefaultClient, "", "key")}
	engine := gin.New()
	h.Register(engine)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/serp/search", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSerpSearchRequiresAPIKey(t *testing.T) {
	h := &SerpHandler{Client: serpwow.NewClient(http.DefaultClient, "", "")}
	engine := gin.New()
	h.Register(engine)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/serp/search?q=test", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestSerpHistoryEndpoint(t *testing.T) {
	repo := &stubRepo{}
	h := &SerpHandler{Repo: repo}
	engine := gin.New()
	h.Register(engine)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/serp/history", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
