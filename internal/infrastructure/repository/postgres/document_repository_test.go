package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kirillkom/document-intake/internal/core/domain"
)

var documentRows = []string{
	"id", "filename", "mime_type", "storage_path", "category", "priority",
	"analysis", "status", "error_message", "created_at", "updated_at",
}

func newRepoWithMock(t *testing.T) (*DocumentRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &DocumentRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestGetByIDReturnsDomainNotFound(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id, filename, mime_type, storage_path").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetByIDScansDocument(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, filename, mime_type, storage_path").
		WithArgs("doc-1").
		WillReturnRows(sqlmock.NewRows(documentRows).AddRow(
			"doc-1", "invoice.pdf", "application/pdf", "doc-1_invoice.pdf",
			"Finance", "High", "An invoice document.", "classified", "", now, now,
		))

	doc, err := repo.GetByID(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if doc.Category != domain.CategoryFinance || doc.Priority != domain.PriorityHigh {
		t.Fatalf("unexpected classification: %+v", doc)
	}
	if doc.Status != domain.StatusClassified {
		t.Fatalf("status = %q", doc.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListAppliesFiltersAndCapsLimit(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .+ FROM documents WHERE status = \$1 AND category = \$2 ORDER BY created_at DESC LIMIT \$3 OFFSET \$4`).
		WithArgs("classified", "Finance", maxListLimit, 0).
		WillReturnRows(sqlmock.NewRows(documentRows).AddRow(
			"doc-1", "invoice.pdf", "application/pdf", "doc-1_invoice.pdf",
			"Finance", "High", "An invoice document.", "classified", "", now, now,
		))

	docs, err := repo.List(context.Background(), domain.DocumentFilter{
		Status:   domain.StatusClassified,
		Category: domain.CategoryFinance,
		Limit:    100000,
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "doc-1" {
		t.Fatalf("unexpected result: %+v", docs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdateStatusReturnsDomainNotFoundWhenNoRowsAffected(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE documents").
		WithArgs("missing", string(domain.StatusProcessing), "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", domain.StatusProcessing, "")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSaveClassificationReturnsDomainNotFoundWhenNoRowsAffected(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE documents").
		WithArgs("missing", "Finance", "High", "An invoice document.", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SaveClassification(context.Background(), "missing", domain.Classification{
		Category: domain.CategoryFinance,
		Priority: domain.PriorityHigh,
		Analysis: "An invoice document.",
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdateClassificationPassesEmptyFieldsThrough(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE documents").
		WithArgs("doc-1", "", "High", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateClassification(context.Background(), "doc-1", "", domain.PriorityHigh)
	if err != nil {
		t.Fatalf("UpdateClassification() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDeleteReturnsDomainNotFoundWhenNoRowsAffected(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectExec("DELETE FROM documents").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestStatsAggregatesCounts(t *testing.T) {
	repo, mock, done := newRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery("SELECT status, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("classified", 5).AddRow("failed", 2))
	mock.ExpectQuery("SELECT category, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"category", "count"}).
			AddRow("Finance", 3).AddRow("Other", 2))
	mock.ExpectQuery("SELECT priority, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"priority", "count"}).
			AddRow("High", 1).AddRow("Low", 4))

	stats, err := repo.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != 7 {
		t.Fatalf("total = %d", stats.Total)
	}
	if stats.ByStatus["classified"] != 5 || stats.ByStatus["failed"] != 2 {
		t.Fatalf("by status = %v", stats.ByStatus)
	}
	if stats.ByCategory["Finance"] != 3 {
		t.Fatalf("by category = %v", stats.ByCategory)
	}
	if stats.ByPriority["Low"] != 4 {
		t.Fatalf("by priority = %v", stats.ByPriority)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
