package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/kirillkom/document-intake/internal/core/domain"
)

type statusCall struct {
	status domain.DocumentStatus
	errMsg string
}

type processRepoFake struct {
	doc              *domain.Document
	getErr           error
	saveErr          error
	failStatusErr    error
	statusCalls      []statusCall
	classification   domain.Classification
	classificationID string
}

func (f *processRepoFake) Create(context.Context, *domain.Document) error { return nil }

func (f *processRepoFake) GetByID(context.Context, string) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copyDoc := *f.doc
	return &copyDoc, nil
}

func (f *processRepoFake) List(context.Context, domain.DocumentFilter) ([]domain.Document, error) {
	return nil, errors.New("not implemented")
}

func (f *processRepoFake) UpdateStatus(_ context.Context, _ string, status domain.DocumentStatus, errMessage string) error {
	f.statusCalls = append(f.statusCalls, statusCall{status: status, errMsg: errMessage})
	if status == domain.StatusFailed && f.failStatusErr != nil {
		return f.failStatusErr
	}
	return nil
}

func (f *processRepoFake) SaveClassification(_ context.Context, id string, cls domain.Classification) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.classificationID = id
	f.classification = cls
	return nil
}

func (f *processRepoFake) UpdateClassification(context.Context, string, domain.Category, domain.Priority) error {
	return errors.New("not implemented")
}

func (f *processRepoFake) Delete(context.Context, string) error {
	return errors.New("not implemented")
}

func (f *processRepoFake) Stats(context.Context) (*domain.DocumentStats, error) {
	return nil, errors.New("not implemented")
}

type extractorFake struct {
	text string
	err  error
}

func (f *extractorFake) Extract(context.Context, *domain.Document) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type classifierFake struct {
	cls         domain.Classification
	gotText     string
	gotFilename string
}

func (f *classifierFake) Classify(_ context.Context, text, filename string) domain.Classification {
	f.gotText = text
	f.gotFilename = filename
	return f.cls
}

func TestProcessByIDSuccess(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1", Filename: "invoice.pdf"}}
	verdict := domain.Classification{
		Category: domain.CategoryFinance,
		Priority: domain.PriorityHigh,
		Analysis: "An invoice.",
	}
	uc := NewProcessDocumentUseCase(repo, &extractorFake{text: "text"}, &classifierFake{cls: verdict})

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if len(repo.statusCalls) != 2 {
		t.Fatalf("expected 2 status calls, got %d", len(repo.statusCalls))
	}
	if repo.statusCalls[0].status != domain.StatusProcessing || repo.statusCalls[1].status != domain.StatusClassified {
		t.Fatalf("unexpected status sequence: %+v", repo.statusCalls)
	}
	if repo.classificationID != "doc-1" {
		t.Fatalf("expected classification save for doc-1, got %s", repo.classificationID)
	}
	if repo.classification != verdict {
		t.Fatalf("expected saved verdict %+v, got %+v", verdict, repo.classification)
	}
}

func TestProcessByIDPassesFilenameToClassifier(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1", Filename: "scan_urgent.png"}}
	classifier := &classifierFake{cls: domain.Classification{Category: domain.CategoryOther, Priority: domain.PriorityLow}}
	uc := NewProcessDocumentUseCase(repo, &extractorFake{text: "extracted body"}, classifier)

	if err := uc.ProcessByID(context.Background(), "doc-1"); err != nil {
		t.Fatalf("ProcessByID() error = %v", err)
	}
	if classifier.gotFilename != "scan_urgent.png" {
		t.Fatalf("expected original filename, got %q", classifier.gotFilename)
	}
	if classifier.gotText != "extracted body" {
		t.Fatalf("expected extracted text, got %q", classifier.gotText)
	}
}

func TestProcessByIDMarksFailedOnExtractError(t *testing.T) {
	repo := &processRepoFake{doc: &domain.Document{ID: "doc-1"}}
	uc := NewProcessDocumentUseCase(repo, &extractorFake{err: errors.New("storage gone")}, &classifierFake{})

	err := uc.ProcessByID(context.Background(), "doc-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.statusCalls) != 2 {
		t.Fatalf("expected processing + failed status updates, got %d", len(repo.statusCalls))
	}
	if repo.statusCalls[1].status != domain.StatusFailed {
		t.Fatalf("expected failed status, got %+v", repo.statusCalls[1])
	}
	if repo.statusCalls[1].errMsg == "" {
		t.Fatalf("expected error message persisted with failed status")
	}
}

func TestProcessByIDMarksFailedOnSaveError(t *testing.T) {
	repo := &processRepoFake{
		doc:     &domain.Document{ID: "doc-1"},
		saveErr: errors.New("db down"),
	}
	uc := NewProcessDocumentUseCase(repo, &extractorFake{text: "text"}, &classifierFake{})

	err := uc.ProcessByID(context.Background(), "doc-1")
	if err == nil {
		t.Fatalf("expected error")
	}
	if repo.statusCalls[len(repo.statusCalls)-1].status != domain.StatusFailed {
		t.Fatalf("expected final failed status, got %+v", repo.statusCalls)
	}
}
