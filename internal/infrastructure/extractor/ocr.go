package extractor

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const recognizePath = "/v1/recognize"

// OCRClient talks to a remote text recognition service for image
// documents. The service is optional; deployments without it simply
// skip image content.
type OCRClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOCRClient(baseURL string, timeout time.Duration) *OCRClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OCRClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type recognizeRequest struct {
	Filename    string `json:"filename"`
	ImageBase64 string `json:"image_base64"`
}

type recognizeResponse struct {
	Text string `json:"text"`
}

func (c *OCRClient) Recognize(ctx context.Context, filename string, image []byte) (string, error) {
	payload := recognizeRequest{
		Filename:    filename,
		ImageBase64: base64.StdEncoding.EncodeToString(image),
	}

	var out recognizeResponse
	if err := c.postJSON(ctx, recognizePath, payload, &out); err != nil {
		return "", err
	}
	return out.Text, nil
}

func (c *OCRClient) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call ocr service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return newHTTPStatusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// HTTPStatusError reports a non-200 answer from the OCR service with a
// snippet of the body for diagnostics.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("ocr service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("ocr service returned status %d: %s", e.StatusCode, e.Body)
}

func newHTTPStatusError(resp *http.Response) *HTTPStatusError {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &HTTPStatusError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(snippet)),
	}
}
