// Package classify implements the document classification pipeline: a
// language-model suggestion validated by deterministic keyword rules,
// with a filename-only path when extraction yields nothing usable.
package classify

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kirillkom/document-intake/internal/core/domain"
)

// Extraction gateways embed these markers in placeholder text when a
// file produced no usable content. Their presence routes classification
// to the filename-only path.
const (
	MarkerParseFailed    = "[extraction-error: parse-failed]"
	MarkerProcessFailed  = "[extraction-error: processing-failed]"
	MarkerMinimalContent = "[extraction-error: minimal-content]"
)

// FailureMarkers lists every marker the degraded-input predicate scans
// for.
func FailureMarkers() []string {
	return []string{MarkerParseFailed, MarkerProcessFailed, MarkerMinimalContent}
}

const (
	DefaultMinTextLength     = 50
	DefaultOverrideThreshold = 2
	DefaultPromptTextLimit   = 2000
)

// Config carries the pipeline thresholds. Zero values fall back to the
// defaults, so an empty Config is usable.
type Config struct {
	// MinTextLength is the extracted-text length in runes below which
	// the filename-only path is taken.
	MinTextLength int
	// OverrideThreshold is the minimum count of distinct keyword hits
	// a category needs before it may displace the model's pick.
	OverrideThreshold int
	// PromptTextLimit caps how much text is handed to the model.
	// Keyword rules always scan the full text.
	PromptTextLimit int
}

func (c Config) normalize() Config {
	if c.MinTextLength <= 0 {
		c.MinTextLength = DefaultMinTextLength
	}
	if c.OverrideThreshold <= 0 {
		c.OverrideThreshold = DefaultOverrideThreshold
	}
	if c.PromptTextLimit <= 0 {
		c.PromptTextLimit = DefaultPromptTextLimit
	}
	return c
}

// Suggester produces a raw classification suggestion from a language
// model. Implementations return an error on transport, timeout or
// parse failure; the engine absorbs every error into the fallback
// result and never retries.
type Suggester interface {
	Suggest(ctx context.Context, text, filename string) (Suggestion, error)
}

// Mode identifies which pipeline path produced a verdict.
type Mode string

const (
	ModeAI         Mode = "ai"
	ModeAIFallback Mode = "ai_fallback"
	ModeFilename   Mode = "filename"
)

// Recorder receives one observation per completed classification.
// Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveClassification(mode Mode, result domain.Classification, elapsed time.Duration)
}

// Engine is the classification entry point. It holds no cross-call
// state beyond immutable configuration, so a single instance serves
// any number of concurrent callers.
type Engine struct {
	cfg       Config
	suggester Suggester
	validator *Validator
	filename  *FilenameAnalyzer
	recorder  Recorder
}

// NewEngine wires the orchestrator. suggester may be nil when no model
// backend is configured (every call then takes the fallback result);
// recorder may be nil.
func NewEngine(cfg Config, suggester Suggester, tables Tables, recorder Recorder) *Engine {
	cfg = cfg.normalize()
	return &Engine{
		cfg:       cfg,
		suggester: suggester,
		validator: NewValidator(tables, cfg.OverrideThreshold),
		filename:  NewFilenameAnalyzer(tables),
		recorder:  recorder,
	}
}

// Classify routes one document through the pipeline. It never returns
// an error: every internal failure degrades to a usable verdict.
func (e *Engine) Classify(ctx context.Context, text, filename string) domain.Classification {
	start := time.Now()

	var (
		mode   Mode
		result domain.Classification
	)
	if e.extractionFailed(text) {
		mode = ModeFilename
		result = e.filename.Analyze(filename)
		slog.Info("classification took filename-only path",
			"filename", filename,
			"text_chars", utf8.RuneCountInString(text),
			"category", result.Category,
			"priority", result.Priority)
	} else {
		var provisional domain.Classification
		provisional, mode = e.suggest(ctx, text, filename)
		result = e.validator.Validate(text, filename, provisional)
		if result.Category != provisional.Category {
			slog.Info("keyword rules overrode model category",
				"model_category", provisional.Category,
				"category", result.Category)
		}
		slog.Debug("classification finished",
			"mode", mode,
			"category", result.Category,
			"priority", result.Priority)
	}

	if e.recorder != nil {
		e.recorder.ObserveClassification(mode, result, time.Since(start))
	}
	return result
}

func (e *Engine) suggest(ctx context.Context, text, filename string) (domain.Classification, Mode) {
	if e.suggester == nil {
		return Fallback(text), ModeAIFallback
	}
	raw, err := e.suggester.Suggest(ctx, clipRunes(text, e.cfg.PromptTextLimit), filename)
	if err != nil {
		slog.Warn("model suggestion failed, using fallback result",
			"filename", filename,
			"error", err)
		return Fallback(text), ModeAIFallback
	}
	return Normalize(raw, text), ModeAI
}

// extractionFailed reports whether text is too short or carries an
// extraction failure marker, meaning the filename is the only signal.
// Length is counted in runes, matching the prompt clipping.
func (e *Engine) extractionFailed(text string) bool {
	if utf8.RuneCountInString(text) < e.cfg.MinTextLength {
		return true
	}
	for _, marker := range FailureMarkers() {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// clipRunes bounds the text embedded in the model prompt without
// splitting a multibyte rune.
func clipRunes(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
