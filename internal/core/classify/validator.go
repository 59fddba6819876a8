package classify

import (
	"strings"

	"github.com/kirillkom/document-intake/internal/core/domain"
)

// Validator applies the deterministic keyword rules on top of a model
// verdict. It may override the category and always recomputes the
// priority; the analysis text passes through untouched. Validate is a
// pure function of its inputs.
type Validator struct {
	tables    Tables
	threshold int
}

func NewValidator(tables Tables, overrideThreshold int) *Validator {
	if overrideThreshold <= 0 {
		overrideThreshold = DefaultOverrideThreshold
	}
	return &Validator{tables: tables, threshold: overrideThreshold}
}

func (v *Validator) Validate(text, filename string, ai domain.Classification) domain.Classification {
	haystack := strings.ToLower(text + " " + filename)

	category := ai.Category
	if override, ok := v.categoryOverride(haystack); ok {
		category = override
	}

	return domain.Classification{
		Category: category,
		Priority: v.recomputePriority(haystack, ai.Priority),
		Analysis: ai.Analysis,
	}
}

// categoryOverride picks the category with the strictly highest count
// of distinct keyword hits. The override stands only when that count is
// unique and meets the threshold; a single incidental hit or a tie
// never displaces the model's pick.
func (v *Validator) categoryOverride(haystack string) (domain.Category, bool) {
	var (
		best      domain.Category
		bestCount int
		tied      bool
	)
	for _, category := range domain.Categories() {
		keywords := v.tables.TextCategories[category]
		if len(keywords) == 0 {
			continue
		}
		switch n := matchCount(haystack, keywords); {
		case n > bestCount:
			best, bestCount, tied = category, n, false
		case n == bestCount && n > 0:
			tied = true
		}
	}
	if tied || bestCount < v.threshold {
		return "", false
	}
	return best, true
}

// recomputePriority walks the tiers in precedence order: High triggers,
// then Medium triggers, then the model's priority, then Low.
func (v *Validator) recomputePriority(haystack string, aiPriority domain.Priority) domain.Priority {
	if containsAny(haystack, v.tables.HighPriority) {
		return domain.PriorityHigh
	}
	if containsAny(haystack, v.tables.MediumPriority) {
		return domain.PriorityMedium
	}
	if _, ok := domain.ParsePriority(string(aiPriority)); ok {
		return aiPriority
	}
	return domain.PriorityLow
}
