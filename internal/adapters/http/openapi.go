package httpadapter

import (
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var apiContractYAML []byte

// apiContract parses and validates the embedded contract once, on first
// request, and serves the JSON rendering from then on.
var apiContract struct {
	once    sync.Once
	payload []byte
	err     error
}

func loadAPIContract() ([]byte, error) {
	apiContract.once.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(apiContractYAML)
		if err != nil {
			apiContract.err = fmt.Errorf("load api contract: %w", err)
			return
		}
		if err := doc.Validate(loader.Context); err != nil {
			apiContract.err = fmt.Errorf("validate api contract: %w", err)
			return
		}
		apiContract.payload, apiContract.err = doc.MarshalJSON()
	})
	return apiContract.payload, apiContract.err
}

func (rt *Router) serveOpenAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	payload, err := loadAPIContract()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
