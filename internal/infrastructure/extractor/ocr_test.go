package extractor

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecognizeSendsImagePayload(t *testing.T) {
	image := []byte{0x89, 0x50, 0x4e, 0x47}
	var captured recognizeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != recognizePath {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"recognized text"}`))
	}))
	defer server.Close()

	client := NewOCRClient(server.URL, 0)
	got, err := client.Recognize(context.Background(), "scan.png", image)
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if got != "recognized text" {
		t.Fatalf("Recognize() = %q", got)
	}
	if captured.Filename != "scan.png" {
		t.Fatalf("filename = %q", captured.Filename)
	}
	decoded, err := base64.StdEncoding.DecodeString(captured.ImageBase64)
	if err != nil {
		t.Fatalf("decode image payload: %v", err)
	}
	if string(decoded) != string(image) {
		t.Fatalf("image payload = %v, want %v", decoded, image)
	}
}

func TestRecognizeIncludesHTTPBodyInError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "engine not ready", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewOCRClient(server.URL, 0)
	_, err := client.Recognize(context.Background(), "scan.png", []byte("img"))
	if err == nil {
		t.Fatalf("expected error")
	}

	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected HTTPStatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", statusErr.StatusCode)
	}
	if !strings.Contains(err.Error(), "engine not ready") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}
