package extractor

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	entry, err := writer.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := entry.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractDOCXJoinsParagraphs(t *testing.T) {
	raw := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Invoice for March</w:t></w:r><w:r><w:tab/></w:r><w:r><w:t>services</w:t></w:r></w:p>
    <w:p><w:r><w:t>Payment due in thirty days.</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	got, err := extractDOCX(raw)
	if err != nil {
		t.Fatalf("extractDOCX() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d: %q", len(lines), got)
	}
	if lines[0] != "Invoice for March services" {
		t.Fatalf("first paragraph = %q", lines[0])
	}
	if lines[1] != "Payment due in thirty days." {
		t.Fatalf("second paragraph = %q", lines[1])
	}
}

func TestExtractDOCXRejectsArchiveWithoutDocument(t *testing.T) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	entry, err := writer.Create("word/styles.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := entry.Write([]byte("<styles/>")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	if _, err := extractDOCX(buf.Bytes()); err == nil {
		t.Fatalf("expected error for archive without document.xml")
	}
}

func TestExtractDOCXRejectsNonArchive(t *testing.T) {
	if _, err := extractDOCX([]byte("plain text, not a zip")); err == nil {
		t.Fatalf("expected error for non-archive input")
	}
}
