package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/kirillkom/document-intake/internal/core/domain"
)

func (rt *Router) documents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.uploadDocument(w, r)
	case http.MethodGet:
		rt.listDocuments(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field \"file\" is required"})
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	doc, err := rt.ingest.Upload(r.Context(), header.Filename, mimeType, file)
	if err != nil {
		writeError(w, err)
		return
	}

	// 202: the upload is durable but classification happens on the
	// worker side.
	writeJSON(w, http.StatusAccepted, doc)
}

func (rt *Router) listDocuments(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	docs, err := rt.directory.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"documents": docs,
		"count":     len(docs),
	})
}

// parseListFilter reads filter values verbatim; validating them against
// the closed category/status sets is the use case's job.
func parseListFilter(r *http.Request) (domain.DocumentFilter, error) {
	query := r.URL.Query()
	filter := domain.DocumentFilter{
		Status:   domain.DocumentStatus(query.Get("status")),
		Category: domain.Category(query.Get("category")),
		Priority: domain.Priority(query.Get("priority")),
	}

	var err error
	if filter.Limit, err = parseIntParam(query.Get("limit")); err != nil {
		return domain.DocumentFilter{}, fmt.Errorf("limit %w", err)
	}
	if filter.Offset, err = parseIntParam(query.Get("offset")); err != nil {
		return domain.DocumentFilter{}, fmt.Errorf("offset %w", err)
	}
	return filter, nil
}

func parseIntParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("must be an integer")
	}
	return value, nil
}

func (rt *Router) documentStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	stats, err := rt.directory.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (rt *Router) documentByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		rt.getDocument(w, r, id)
	case http.MethodPatch:
		rt.correctDocument(w, r, id)
	case http.MethodDelete:
		rt.deleteDocument(w, r, id)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) getDocument(w http.ResponseWriter, r *http.Request, id string) {
	doc, err := rt.directory.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

type correctDocumentRequest struct {
	Category string `json:"category"`
	Priority string `json:"priority"`
}

func (rt *Router) correctDocument(w http.ResponseWriter, r *http.Request, id string) {
	var req correctDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	doc, err := rt.directory.Correct(r.Context(), id, domain.Category(req.Category), domain.Priority(req.Priority))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) deleteDocument(w http.ResponseWriter, r *http.Request, id string) {
	if err := rt.directory.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
