package httpadapter

import (
	"encoding/json"
	"net/http"
	"strings"
)

type classifyRequest struct {
	Text     string `json:"text"`
	Filename string `json:"filename"`
}

// classifyText runs the classification pipeline on caller-supplied text
// without storing anything. The pipeline itself never fails, so the
// only error responses are for malformed requests.
func (rt *Router) classifyText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" && strings.TrimSpace(req.Filename) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text or filename is required"})
		return
	}

	verdict := rt.classifier.Classify(r.Context(), req.Text, req.Filename)
	writeJSON(w, http.StatusOK, verdict)
}
