// Package extractor turns stored documents into plain text for the
// classification pipeline. Extraction never fails the document: parse
// problems, unsupported formats, and near-empty results all come back
// as diagnostic placeholder text carrying a failure marker, so the
// pipeline can fall back to filename classification. An error is
// returned only when the stored object itself cannot be read.
package extractor

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/kirillkom/document-intake/internal/core/classify"
	"github.com/kirillkom/document-intake/internal/core/domain"
	"github.com/kirillkom/document-intake/internal/core/ports"
)

type documentKind int

const (
	kindUnknown documentKind = iota
	kindPlaintext
	kindPDF
	kindXLSX
	kindHTML
	kindDOCX
	kindImage
)

func (k documentKind) String() string {
	switch k {
	case kindPlaintext:
		return "plaintext"
	case kindPDF:
		return "pdf"
	case kindXLSX:
		return "xlsx"
	case kindHTML:
		return "html"
	case kindDOCX:
		return "docx"
	case kindImage:
		return "image"
	default:
		return "unknown"
	}
}

// outcome is the per-document extraction result reported to the
// recorder.
type outcome string

const (
	outcomeOK             outcome = "ok"
	outcomeParseFailed    outcome = "parse_failed"
	outcomeProcessFailed  outcome = "process_failed"
	outcomeMinimalContent outcome = "minimal_content"
	outcomeUnreadable     outcome = "unreadable"
)

// Recorder counts extraction attempts per document kind and outcome.
// Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveExtraction(kind, outcome string)
}

// Config tunes the gateway. MinTextLength is the smallest extracted
// text considered usable; shorter results are replaced by a
// minimal-content placeholder. Recorder may be nil.
type Config struct {
	MinTextLength int
	Recorder      Recorder
}

func (c Config) normalize() Config {
	out := c
	if out.MinTextLength <= 0 {
		out.MinTextLength = classify.DefaultMinTextLength
	}
	return out
}

type Gateway struct {
	storage ports.ObjectStorage
	ocr     *OCRClient
	cfg     Config
}

// NewGateway builds the extraction gateway. ocr may be nil; image
// documents then degrade to a minimal-content placeholder.
func NewGateway(storage ports.ObjectStorage, ocr *OCRClient, cfg Config) *Gateway {
	return &Gateway{
		storage: storage,
		ocr:     ocr,
		cfg:     cfg.normalize(),
	}
}

func (g *Gateway) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	kind := detectKind(doc.Filename, doc.MimeType)

	reader, err := g.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		g.observe(kind, outcomeUnreadable)
		return "", fmt.Errorf("open source document: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		g.observe(kind, outcomeUnreadable)
		return "", fmt.Errorf("read source document: %w", err)
	}

	text, result := g.extractByKind(ctx, kind, doc, raw)
	if result == outcomeOK {
		trimmed := strings.TrimSpace(text)
		if len(trimmed) < g.cfg.MinTextLength {
			text, result = minimalContentPlaceholder(len(trimmed)), outcomeMinimalContent
		} else {
			text = trimmed
		}
	}
	g.observe(kind, result)
	return text, nil
}

// extractByKind runs the format-specific extractor. Placeholder results
// carry their outcome; outcomeOK text still needs the minimal-content
// check.
func (g *Gateway) extractByKind(ctx context.Context, kind documentKind, doc *domain.Document, raw []byte) (string, outcome) {
	if kind == kindImage {
		return g.recognizeImage(ctx, doc, raw)
	}

	var (
		text     string
		parseErr error
	)
	switch kind {
	case kindPlaintext:
		text, parseErr = extractPlaintext(raw)
	case kindPDF:
		text, parseErr = extractPDF(raw)
	case kindXLSX:
		text, parseErr = extractXLSX(raw)
	case kindHTML:
		text, parseErr = extractHTML(raw)
	case kindDOCX:
		text, parseErr = extractDOCX(raw)
	default:
		return processFailedPlaceholder(fmt.Errorf("unsupported document type %q", path.Ext(doc.Filename))), outcomeProcessFailed
	}

	if parseErr != nil {
		return parseFailedPlaceholder(parseErr), outcomeParseFailed
	}
	return text, outcomeOK
}

func (g *Gateway) recognizeImage(ctx context.Context, doc *domain.Document, raw []byte) (string, outcome) {
	if g.ocr == nil {
		return minimalContentPlaceholder(0), outcomeMinimalContent
	}
	text, err := g.ocr.Recognize(ctx, doc.Filename, raw)
	if err != nil {
		return processFailedPlaceholder(fmt.Errorf("image text recognition: %w", err)), outcomeProcessFailed
	}
	return text, outcomeOK
}

func (g *Gateway) observe(kind documentKind, result outcome) {
	if g.cfg.Recorder != nil {
		g.cfg.Recorder.ObserveExtraction(kind.String(), string(result))
	}
}

func detectKind(filename, mimeType string) documentKind {
	switch strings.ToLower(path.Ext(filename)) {
	case ".txt", ".md", ".csv", ".log":
		return kindPlaintext
	case ".pdf":
		return kindPDF
	case ".xlsx":
		return kindXLSX
	case ".html", ".htm":
		return kindHTML
	case ".docx":
		return kindDOCX
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp", ".webp":
		return kindImage
	}

	mime := strings.ToLower(mimeType)
	switch {
	case strings.Contains(mime, "pdf"):
		return kindPDF
	case strings.Contains(mime, "spreadsheetml"):
		return kindXLSX
	case strings.Contains(mime, "wordprocessingml"):
		return kindDOCX
	case strings.Contains(mime, "html"):
		return kindHTML
	case strings.HasPrefix(mime, "image/"):
		return kindImage
	case strings.HasPrefix(mime, "text/"):
		return kindPlaintext
	}
	return kindUnknown
}

func parseFailedPlaceholder(err error) string {
	return fmt.Sprintf("%s %v", classify.MarkerParseFailed, err)
}

func processFailedPlaceholder(err error) string {
	return fmt.Sprintf("%s %v", classify.MarkerProcessFailed, err)
}

func minimalContentPlaceholder(chars int) string {
	return fmt.Sprintf("%s document yielded %d characters of text", classify.MarkerMinimalContent, chars)
}
