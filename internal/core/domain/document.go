package domain

import "time"

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusClassified DocumentStatus = "classified"
	StatusFailed     DocumentStatus = "failed"
)

func ParseStatus(raw string) (DocumentStatus, bool) {
	switch status := DocumentStatus(raw); status {
	case StatusUploaded, StatusProcessing, StatusClassified, StatusFailed:
		return status, true
	}
	return "", false
}

type Document struct {
	ID          string         `json:"id"`
	Filename    string         `json:"filename"`
	MimeType    string         `json:"mime_type"`
	StoragePath string         `json:"storage_path"`
	Category    Category       `json:"category,omitempty"`
	Priority    Priority       `json:"priority,omitempty"`
	Analysis    string         `json:"analysis,omitempty"`
	Status      DocumentStatus `json:"status"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// DocumentFilter narrows list queries. Zero values mean "no filter";
// Limit is capped by the repository.
type DocumentFilter struct {
	Status   DocumentStatus
	Category Category
	Priority Priority
	Limit    int
	Offset   int
}

// DocumentStats is the dashboard read model: counts grouped by
// lifecycle status, category and priority.
type DocumentStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	ByCategory map[string]int64 `json:"by_category"`
	ByPriority map[string]int64 `json:"by_priority"`
}
