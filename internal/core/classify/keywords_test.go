package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kirillkom/document-intake/internal/core/domain"
)

func writeTablesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write keywords file: %v", err)
	}
	return path
}

func TestLoadTablesOverlay(t *testing.T) {
	path := writeTablesFile(t, `
text_categories:
  Finance: [" Wire Transfer ", remittance]
high_priority: [overdue]
`)

	tables, err := LoadTables(path)
	if err != nil {
		t.Fatalf("LoadTables() error = %v", err)
	}

	finance := tables.TextCategories[domain.CategoryFinance]
	if len(finance) != 2 || finance[0] != "wire transfer" || finance[1] != "remittance" {
		t.Fatalf("expected lowercased overlay list, got %v", finance)
	}
	if len(tables.TextCategories) != 1 {
		t.Fatalf("expected section replaced wholesale, got %d categories", len(tables.TextCategories))
	}
	if len(tables.HighPriority) != 1 || tables.HighPriority[0] != "overdue" {
		t.Fatalf("expected high_priority replaced, got %v", tables.HighPriority)
	}

	defaults := DefaultTables()
	if len(tables.FilenameCategories) != len(defaults.FilenameCategories) {
		t.Fatalf("expected untouched sections to keep defaults")
	}
	if len(tables.MediumPriority) != len(defaults.MediumPriority) {
		t.Fatalf("expected medium_priority default kept, got %v", tables.MediumPriority)
	}
}

func TestLoadTablesRejectsUnknownCategory(t *testing.T) {
	path := writeTablesFile(t, `
text_categories:
  Maintenance: [repair]
`)

	_, err := LoadTables(path)
	if err == nil {
		t.Fatalf("expected error for unknown category")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input kind, got %v", err)
	}
}

func TestLoadTablesRejectsOtherCategory(t *testing.T) {
	path := writeTablesFile(t, `
filename_categories:
  Other: [misc]
`)

	_, err := LoadTables(path)
	if err == nil {
		t.Fatalf("expected error for Other keywords")
	}
}

func TestLoadTablesMissingFile(t *testing.T) {
	_, err := LoadTables(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input kind, got %v", err)
	}
}
