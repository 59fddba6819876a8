package usecase

import (
	"context"
	"fmt"

	"github.com/kirillkom/document-intake/internal/core/domain"
	"github.com/kirillkom/document-intake/internal/core/ports"
)

type ProcessDocumentUseCase struct {
	repo       ports.DocumentRepository
	extractor  ports.TextExtractor
	classifier ports.TextClassifier
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	extractor ports.TextExtractor,
	classifier ports.TextClassifier,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:       repo,
		extractor:  extractor,
		classifier: classifier,
	}
}

// ProcessByID runs one document through extraction and classification.
// Classification itself cannot fail; only infrastructure errors (load,
// extract, persist) move the document to the failed status.
func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	if err := uc.markStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	doc, classification, err := uc.processPipeline(ctx, documentID)
	if err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.persistClassification(ctx, doc.ID, classification); err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.markStatus(ctx, documentID, domain.StatusClassified, ""); err != nil {
		return fmt.Errorf("set status=classified: %w", err)
	}

	return nil
}

func (uc *ProcessDocumentUseCase) processPipeline(ctx context.Context, documentID string) (*domain.Document, domain.Classification, error) {
	doc, err := uc.loadDocument(ctx, documentID)
	if err != nil {
		return nil, domain.Classification{}, err
	}

	text, err := uc.extractText(ctx, doc)
	if err != nil {
		return nil, domain.Classification{}, err
	}

	classification := uc.classifier.Classify(ctx, text, doc.Filename)
	uc.applyClassification(doc, classification)

	return doc, classification, nil
}

func (uc *ProcessDocumentUseCase) loadDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	return doc, nil
}

// extractText never treats unusable content as an error: the extractor
// reports that through placeholder text which the classifier routes to
// the filename-only path.
func (uc *ProcessDocumentUseCase) extractText(ctx context.Context, doc *domain.Document) (string, error) {
	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	return text, nil
}

func (uc *ProcessDocumentUseCase) persistClassification(ctx context.Context, documentID string, classification domain.Classification) error {
	if err := uc.repo.SaveClassification(ctx, documentID, classification); err != nil {
		return fmt.Errorf("save classification: %w", err)
	}
	return nil
}

func (uc *ProcessDocumentUseCase) markStatus(ctx context.Context, documentID string, status domain.DocumentStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, documentID, status, errMessage)
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, documentID, domain.StatusFailed, processErr.Error())
}

func (uc *ProcessDocumentUseCase) applyClassification(doc *domain.Document, classification domain.Classification) {
	doc.Category = classification.Category
	doc.Priority = classification.Priority
	doc.Analysis = classification.Analysis
}
