// Package httpadapter exposes the intake pipeline over HTTP: document
// upload and lifecycle endpoints, ad-hoc classification, and the
// operational surface (health, metrics, contract).
package httpadapter

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kirillkom/document-intake/internal/config"
	"github.com/kirillkom/document-intake/internal/core/ports"
	"github.com/kirillkom/document-intake/internal/observability/metrics"
)

// backpressureWait bounds how long a request may wait for a concurrency
// slot before being shed.
const backpressureWait = 100 * time.Millisecond

type Router struct {
	cfg        config.Config
	ingest     ports.DocumentIngestor
	directory  ports.DocumentDirectory
	classifier ports.TextClassifier
	metrics    *metrics.HTTPServerMetrics
}

// NewRouter wires the HTTP surface. serverMetrics may be nil, which
// disables the /metrics endpoint and request instrumentation; tests use
// that mode.
func NewRouter(
	cfg config.Config,
	ingest ports.DocumentIngestor,
	directory ports.DocumentDirectory,
	classifier ports.TextClassifier,
	serverMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		cfg:        cfg,
		ingest:     ingest,
		directory:  directory,
		classifier: classifier,
		metrics:    serverMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/openapi.json", rt.serveOpenAPI)
	mux.HandleFunc("/v1/documents", rt.documents)
	mux.HandleFunc("/v1/documents/stats", rt.documentStats)
	mux.HandleFunc("/v1/documents/", rt.documentByID)
	mux.HandleFunc("/v1/classify", rt.classifyText)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	// Throttling sits inside the observability wrappers so shed
	// requests still show up in logs and metrics.
	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, rt.cfg.APIMaxConcurrent, backpressureWait)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware("api", handler)
	}
	handler = accessLogMiddleware(handler)
	handler = securityHeadersMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
