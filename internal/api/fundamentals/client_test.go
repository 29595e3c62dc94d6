package fundamentals

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchFundamentals(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("symbol") != "AAPL" || q.Get("market") != "us" || q.Get("apikey") != "test-key" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"metrics":{"market_cap":2.5e12,"revenue":4.0e11},"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})

	f, err := client.FetchFundamentals(context.Background(), "AAPL", "us")
	if err != nil {
		t.Fatalf("FetchFundamentals: %v", err)
	}
	if f.Metrics["market_cap"] != 2.5e12 {
		t.Errorf("market_cap = %v, want 2.5e12", f.Metrics["market_cap"])
	}
	if f.Metrics["revenue"] != 4.0e11 {
		t.Errorf("revenue = %v, want 4e11", f.Metrics["revenue"])
	}
}

func TestFetchFundamentalsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"error","message":"unknown symbol"}`))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{APIKey: "k", BaseURL: server.URL})

	if _, err := client.FetchFundamentals(context.Background(), "NOPE", "us"); err == nil {
		t.Fatal("expected error for API error status")
	}
}

func TestFetchFundamentalsRetriesThenFails(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{
		APIKey:          "k",
		BaseURL:         server.URL,
		MaxRetryTimeout: 100 * time.Millisecond,
	})

	if _, err := client.FetchFundamentals(context.Background(), "AAPL", "us"); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls < 1 {
		t.Errorf("server never called")
	}
}

func TestFetchFundamentalsContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{APIKey: "k", BaseURL: server.URL})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := client.FetchFundamentals(ctx, "AAPL", "us"); err == nil {
		t.Fatal("expected error on cancelled context")
	}
}
