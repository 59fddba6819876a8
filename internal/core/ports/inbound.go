package ports

import (
	"context"
	"io"

	"github.com/kirillkom/document-intake/internal/core/domain"
)

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentProcessor is the inbound contract for asynchronous document processing.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}

// DocumentDirectory is the inbound read/write surface over stored
// documents: listing, inspection, manual corrections, deletion and the
// dashboard stats read model.
type DocumentDirectory interface {
	Get(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, error)
	Correct(ctx context.Context, id string, category domain.Category, priority domain.Priority) (*domain.Document, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*domain.DocumentStats, error)
}
