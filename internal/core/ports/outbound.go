package ports

import (
	"context"
	"io"

	"github.com/kirillkom/document-intake/internal/core/domain"
)

// DocumentRepository persists and reads document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	List(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveClassification(ctx context.Context, id string, cls domain.Classification) error
	UpdateClassification(ctx context.Context, id string, category domain.Category, priority domain.Priority) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*domain.DocumentStats, error)
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// MessageQueue publishes/consumes ingestion events.
type MessageQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor extracts plain text from a stored document. When the
// file holds no usable text it returns a diagnostic placeholder, not an
// error; errors are reserved for being unable to read the object.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// TextClassifier produces a classification verdict for extracted text.
// Implementations never fail; degraded input yields a degraded verdict.
type TextClassifier interface {
	Classify(ctx context.Context, text, filename string) domain.Classification
}
