package classify

import (
	"fmt"
	"strings"

	"github.com/kirillkom/document-intake/internal/core/domain"
)

// Suggestion is the raw triple proposed by the language model before
// validation. Fields may be blank or outside the closed enumerations.
type Suggestion struct {
	Category string `json:"category"`
	Priority string `json:"priority"`
	Summary  string `json:"summary"`
}

// Normalize resolves a raw suggestion against the closed enumerations.
// An out-of-enum value counts as absent: category falls back to Other,
// priority to Low, and a blank summary becomes the word-count sentence.
func Normalize(s Suggestion, text string) domain.Classification {
	category := domain.CategoryOther
	if c, ok := domain.ParseCategory(strings.TrimSpace(s.Category)); ok {
		category = c
	}

	priority := domain.PriorityLow
	if p, ok := domain.ParsePriority(strings.TrimSpace(s.Priority)); ok {
		priority = p
	}

	summary := strings.TrimSpace(s.Summary)
	if summary == "" {
		summary = WordCountSummary(text)
	}

	return domain.Classification{Category: category, Priority: priority, Analysis: summary}
}

// Fallback is the fixed result used when the model call fails outright:
// network error, timeout, unparseable output or missing credentials.
func Fallback(text string) domain.Classification {
	return domain.Classification{
		Category: domain.CategoryOther,
		Priority: domain.PriorityLow,
		Analysis: WordCountSummary(text),
	}
}

// WordCountSummary is the generic analysis used when no model summary
// is available.
func WordCountSummary(text string) string {
	return fmt.Sprintf("Document contains %d words. Automatic summary unavailable; manual review recommended.", len(strings.Fields(text)))
}
