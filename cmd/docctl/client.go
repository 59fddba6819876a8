package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kirillkom/document-intake/internal/core/domain"
)

// apiClient is a thin wrapper over the intake HTTP API.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *apiClient) Upload(ctx context.Context, path string) (*domain.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/documents", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var doc domain.Document
	if err := c.do(req, http.StatusAccepted, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *apiClient) Get(ctx context.Context, id string) (*domain.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/documents/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var doc domain.Document
	if err := c.do(req, http.StatusOK, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

type listResponse struct {
	Documents []domain.Document `json:"documents"`
	Count     int               `json:"count"`
}

func (c *apiClient) List(ctx context.Context, status, category, priority string, limit, offset int) ([]domain.Document, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	if category != "" {
		query.Set("category", category)
	}
	if priority != "" {
		query.Set("priority", priority)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}

	endpoint := c.baseURL + "/v1/documents"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp listResponse
	if err := c.do(req, http.StatusOK, &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

func (c *apiClient) Classify(ctx context.Context, text, filename string) (*domain.Classification, error) {
	payload, err := json.Marshal(map[string]string{"text": text, "filename": filename})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/classify", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var verdict domain.Classification
	if err := c.do(req, http.StatusOK, &verdict); err != nil {
		return nil, err
	}
	return &verdict, nil
}

func (c *apiClient) Correct(ctx context.Context, id, category, priority string) (*domain.Document, error) {
	payload, err := json.Marshal(map[string]string{"category": category, "priority": priority})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/v1/documents/"+url.PathEscape(id), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var doc domain.Document
	if err := c.do(req, http.StatusOK, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *apiClient) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/v1/documents/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return c.do(req, http.StatusNoContent, nil)
}

func (c *apiClient) Stats(ctx context.Context) (*domain.DocumentStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/documents/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats domain.DocumentStats
	if err := c.do(req, http.StatusOK, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *apiClient) do(req *http.Request, wantStatus int, out any) error {
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call intake api: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != wantStatus {
		return fmt.Errorf("intake api: %s", apiErrorMessage(res))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode intake api response: %w", err)
	}
	return nil
}

func apiErrorMessage(res *http.Response) string {
	var payload struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return fmt.Sprintf("%s (%s)", payload.Error, res.Status)
	}
	return res.Status
}
