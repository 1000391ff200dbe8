package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGenerateReturnsBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Prompt == "" || req.Width == 0 {
			t.Errorf("incomplete request: %+v", req)
		}
		w.Write([]byte("fake-image-bytes"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 1)
	raw, err := c.Generate(context.Background(), Request{
		Prompt: "side view", Width: 256, Height: 256, Steps: 25, GuidanceScale: 7.5,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(raw) != "fake-image-bytes" {
		t.Fatalf("got %q", raw)
	}
}

func TestGenerateTimesOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 30*time.Millisecond, 1)
	if _, err := c.Generate(context.Background(), Request{Prompt: "x"}); err == nil {
		t.Fatal("slow server did not time out")
	}
}

func TestGenerateRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 1)
	if _, err := c.Generate(context.Background(), Request{Prompt: "x"}); err == nil {
		t.Fatal("503 response accepted")
	}
}

func TestGenerateRejectsEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, 1)
	if _, err := c.Generate(context.Background(), Request{Prompt: "x"}); err == nil {
		t.Fatal("empty response accepted")
	}
}

func TestGenerateHonorsCancelledContext(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", time.Second, 1)
	// Occupy the only slot so the call blocks on the semaphore
	c.sem <- struct{}{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Generate(ctx, Request{Prompt: "x"}); err == nil {
		t.Fatal("cancelled context accepted")
	}
}
