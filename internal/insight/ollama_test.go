package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	applog "billscan/internal/log"
)

func testLogger() *applog.Logger {
	return applog.New(applog.DefaultConfig())
}

func TestClientComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("expected non-streamed request")
		}
		if req.Model != "receipts" {
			t.Errorf("model = %q, want receipts", req.Model)
		}
		if !strings.Contains(req.Prompt, "final total amount paid") {
			t.Errorf("prompt missing instruction: %q", req.Prompt)
		}
		_ = json.NewEncoder(w).Encode(generateResponse{Model: req.Model, Response: "11.50", Done: true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "receipts", 5*time.Second, testLogger())
	reply, err := c.Complete(context.Background(), "Reply with the final total amount paid ...")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != "11.50" {
		t.Fatalf("reply = %q, want 11.50", reply)
	}
}

func TestClientCompleteBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "receipts", 5*time.Second, testLogger())
	if _, err := c.Complete(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error on HTTP 500")
	}
}

func TestClientCompleteEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(generateResponse{Done: true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "receipts", 5*time.Second, testLogger())
	if _, err := c.Complete(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error on empty response")
	}
}

func TestClientCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "receipts", 20*time.Millisecond, testLogger())
	if _, err := c.Complete(context.Background(), "prompt"); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestNoop(t *testing.T) {
	if _, err := (Noop{}).Complete(context.Background(), "prompt"); err != ErrUnavailable {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}
