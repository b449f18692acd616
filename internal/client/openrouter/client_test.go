package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key" {
			t.Errorf("authorization = %q", got)
		}
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "google/gemini-pro" || len(req.Messages) != 1 {
			t.Errorf("request = %+v", req)
		}
		w.Write([]byte(`{"id": "gen-1", "choices": [{"message": {"role": "assistant", "content": "ok"}}]}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "key")
	resp, err := client.ChatCompletion(context.Background(), ChatRequest{
		Model:    "google/gemini-pro",
		Messages: []Message{{Role: "user", Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("ChatCompletion returned error: %v", err)
	}
	if resp.Reply() != "ok" {
		t.Fatalf("reply = %q, want ok", resp.Reply())
	}
}

func TestChatCompletionValidation(t *testing.T) {
	client := NewClient(http.DefaultClient, "", "key")
	if _, err := client.ChatCompletion(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "x"}}}); err == nil {
		t.Fatalf("expected error for missing model")
	}
	if _, err := client.ChatCompletion(context.Background(), ChatRequest{Model: "m"}); err == nil {
		t.Fatalf("expected error for empty messages")
	}
}

func TestChatCompletionAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "key")
	_, err := client.ChatCompletion(context.Background(), ChatRequest{
		Model:    "m",
		Messages: []Message{{Role: "user", Content: "x"}},
	})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", apiErr.Status)
	}
}

func TestReplyOnEmptyResponse(t *testing.T) {
	var nilResp *ChatResponse
	if nilResp.Reply() != "" {
		t.Fatalf("nil response reply should be empty")
	}
	if (&ChatResponse{}).Reply() != "" {
		t.Fatalf("empty choices reply should be empty")
	}
}
