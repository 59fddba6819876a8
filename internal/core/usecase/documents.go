package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/kirillkom/document-intake/internal/core/domain"
	"github.com/kirillkom/document-intake/internal/core/ports"
)

// DocumentDirectoryUseCase serves the read and maintenance surface over
// stored documents: listing, inspection, manual reclassification,
// deletion and dashboard stats.
type DocumentDirectoryUseCase struct {
	repo    ports.DocumentRepository
	storage ports.ObjectStorage
}

func NewDocumentDirectoryUseCase(
	repo ports.DocumentRepository,
	storage ports.ObjectStorage,
) *DocumentDirectoryUseCase {
	return &DocumentDirectoryUseCase{repo: repo, storage: storage}
}

func (uc *DocumentDirectoryUseCase) Get(ctx context.Context, id string) (*domain.Document, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	return doc, nil
}

func (uc *DocumentDirectoryUseCase) List(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	docs, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Correct applies a manual classification override. Either field may be
// empty to leave it unchanged, but at least one must be set; non-empty
// values must belong to the closed enumerations.
func (uc *DocumentDirectoryUseCase) Correct(ctx context.Context, id string, category domain.Category, priority domain.Priority) (*domain.Document, error) {
	if category == "" && priority == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "correct classification", errors.New("nothing to update"))
	}
	if category != "" {
		if _, ok := domain.ParseCategory(string(category)); !ok {
			return nil, domain.WrapError(domain.ErrInvalidInput, "correct classification", fmt.Errorf("unknown category %q", category))
		}
	}
	if priority != "" {
		if _, ok := domain.ParsePriority(string(priority)); !ok {
			return nil, domain.WrapError(domain.ErrInvalidInput, "correct classification", fmt.Errorf("unknown priority %q", priority))
		}
	}

	if err := uc.repo.UpdateClassification(ctx, id, category, priority); err != nil {
		return nil, fmt.Errorf("update classification: %w", err)
	}

	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	return doc, nil
}

// Delete removes the metadata row first and the stored object after;
// a dangling object is recoverable garbage, a dangling row is not.
func (uc *DocumentDirectoryUseCase) Delete(ctx context.Context, id string) error {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch document by id: %w", err)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document metadata: %w", err)
	}

	if err := uc.storage.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete stored object: %w", err)
	}
	return nil
}

func (uc *DocumentDirectoryUseCase) Stats(ctx context.Context) (*domain.DocumentStats, error) {
	stats, err := uc.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect document stats: %w", err)
	}
	return stats, nil
}

func validateFilter(filter domain.DocumentFilter) error {
	if filter.Status != "" {
		if _, ok := domain.ParseStatus(string(filter.Status)); !ok {
			return domain.WrapError(domain.ErrInvalidInput, "list documents", fmt.Errorf("unknown status %q", filter.Status))
		}
	}
	if filter.Category != "" {
		if _, ok := domain.ParseCategory(string(filter.Category)); !ok {
			return domain.WrapError(domain.ErrInvalidInput, "list documents", fmt.Errorf("unknown category %q", filter.Category))
		}
	}
	if filter.Priority != "" {
		if _, ok := domain.ParsePriority(string(filter.Priority)); !ok {
			return domain.WrapError(domain.ErrInvalidInput, "list documents", fmt.Errorf("unknown priority %q", filter.Priority))
		}
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return domain.WrapError(domain.ErrInvalidInput, "list documents", errors.New("negative limit or offset"))
	}
	return nil
}
