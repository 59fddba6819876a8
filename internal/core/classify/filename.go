package classify

import (
	"fmt"
	"strings"

	"github.com/kirillkom/document-intake/internal/core/domain"
)

// FilenameAnalyzer is the degraded-mode classifier used when extraction
// produced nothing usable. It reads only the filename and never fails.
type FilenameAnalyzer struct {
	tables Tables
}

func NewFilenameAnalyzer(tables Tables) *FilenameAnalyzer {
	return &FilenameAnalyzer{tables: tables}
}

// Analyze derives a best-effort verdict from filename conventions. Ties
// between categories resolve to the first one in enumeration order.
func (a *FilenameAnalyzer) Analyze(filename string) domain.Classification {
	lower := strings.ToLower(filename)

	category := domain.CategoryOther
	bestCount := 0
	for _, candidate := range domain.Categories() {
		keywords := a.tables.FilenameCategories[candidate]
		if len(keywords) == 0 {
			continue
		}
		if n := matchCount(lower, keywords); n > bestCount {
			category, bestCount = candidate, n
		}
	}

	priority := domain.PriorityLow
	switch {
	case containsAny(lower, a.tables.FilenameHigh):
		priority = domain.PriorityHigh
	case containsAny(lower, a.tables.FilenameMedium) || bestCount > 0:
		priority = domain.PriorityMedium
	}

	return domain.Classification{
		Category: category,
		Priority: priority,
		Analysis: filenameSummary(category, filename, bestCount > 0),
	}
}

func filenameSummary(category domain.Category, filename string, matched bool) string {
	if matched {
		return fmt.Sprintf("%s document identified from filename: %q. Content extraction unsuccessful; manual review recommended.", category, filename)
	}
	return fmt.Sprintf("Document %q uploaded but text extraction was unsuccessful. Manual review required to determine content and category.", filename)
}
