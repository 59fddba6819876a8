package classify

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/document-intake/internal/core/domain"
)

// Tables holds the keyword configuration for both rule paths. The text
// tables drive the validator, the filename tables drive the degraded
// path. The two sets deliberately differ: filename lists carry generic
// naming-convention terms (work, project, order) that would be far too
// noisy inside document text. Edit them separately.
type Tables struct {
	TextCategories     map[domain.Category][]string
	FilenameCategories map[domain.Category][]string
	HighPriority       []string
	MediumPriority     []string
	FilenameHigh       []string
	FilenameMedium     []string
}

// DefaultTables returns the built-in keyword configuration. All
// keywords are lowercase; matching is substring-based against
// lowercased input. CategoryOther has no keywords on purpose: it is
// reachable only as a fallback, never by keyword vote.
func DefaultTables() Tables {
	return Tables{
		TextCategories: map[domain.Category][]string{
			domain.CategoryEngineering: {"maintenance", "repair", "technical", "equipment", "infrastructure", "construction", "mechanical", "electrical", "system"},
			domain.CategoryFinance:     {"budget", "payment", "invoice", "expense", "cost", "revenue", "financial", "accounting"},
			domain.CategoryProcurement: {"purchase", "procurement", "vendor", "supplier", "tender", "quotation", "requisition", "delivery"},
			domain.CategoryHR:          {"employee", "recruitment", "personnel", "payroll", "benefits", "training", "onboarding", "resignation"},
			domain.CategoryLegal:       {"contract", "agreement", "legal", "litigation", "liability", "clause", "counsel", "dispute"},
			domain.CategorySafety:      {"safety", "hazard", "incident", "accident", "injury", "protective", "evacuation", "first aid"},
			domain.CategoryRegulatory:  {"regulation", "compliance", "permit", "license", "audit", "certification", "statutory", "inspection"},
		},
		FilenameCategories: map[domain.Category][]string{
			domain.CategoryEngineering: {"maintenance", "repair", "technical", "equipment", "work", "project", "drawing"},
			domain.CategoryFinance:     {"invoice", "payment", "budget", "receipt", "expense", "bill", "statement"},
			domain.CategoryProcurement: {"purchase", "order", "vendor", "supplier", "quote", "tender"},
			domain.CategoryHR:          {"employee", "staff", "payroll", "resume", "hiring", "leave"},
			domain.CategoryLegal:       {"contract", "agreement", "legal", "nda", "terms"},
			domain.CategorySafety:      {"safety", "incident", "hazard", "accident", "inspection"},
			domain.CategoryRegulatory:  {"regulation", "compliance", "permit", "license", "audit", "certificate"},
		},
		HighPriority:   []string{"urgent", "immediate", "emergency", "critical", "deadline", "asap", "action required", "time sensitive", "priority", "escalate"},
		MediumPriority: []string{"important", "attention", "review required", "follow up", "notice", "update", "reminder", "please note"},
		FilenameHigh:   []string{"urgent", "immediate", "emergency", "critical", "asap"},
		FilenameMedium: []string{"important", "attention", "notice", "reminder"},
	}
}

type tablesFile struct {
	TextCategories     map[string][]string `yaml:"text_categories"`
	FilenameCategories map[string][]string `yaml:"filename_categories"`
	HighPriority       []string            `yaml:"high_priority"`
	MediumPriority     []string            `yaml:"medium_priority"`
	FilenameHigh       []string            `yaml:"filename_high"`
	FilenameMedium     []string            `yaml:"filename_medium"`
}

// LoadTables reads a YAML keyword file and overlays it on the built-in
// defaults. A section present in the file replaces the corresponding
// built-in section wholesale; absent sections keep their defaults.
// Keywords are lowercased on load, blank entries dropped.
func LoadTables(path string) (Tables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, domain.WrapError(domain.ErrInvalidInput, "read keyword tables", err)
	}

	var file tablesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Tables{}, domain.WrapError(domain.ErrInvalidInput, "parse keyword tables", err)
	}

	tables := DefaultTables()
	if len(file.TextCategories) > 0 {
		overlay, err := categoryLists(file.TextCategories)
		if err != nil {
			return Tables{}, domain.WrapError(domain.ErrInvalidInput, "keyword tables: text_categories", err)
		}
		tables.TextCategories = overlay
	}
	if len(file.FilenameCategories) > 0 {
		overlay, err := categoryLists(file.FilenameCategories)
		if err != nil {
			return Tables{}, domain.WrapError(domain.ErrInvalidInput, "keyword tables: filename_categories", err)
		}
		tables.FilenameCategories = overlay
	}
	if file.HighPriority != nil {
		tables.HighPriority = normalizeKeywords(file.HighPriority)
	}
	if file.MediumPriority != nil {
		tables.MediumPriority = normalizeKeywords(file.MediumPriority)
	}
	if file.FilenameHigh != nil {
		tables.FilenameHigh = normalizeKeywords(file.FilenameHigh)
	}
	if file.FilenameMedium != nil {
		tables.FilenameMedium = normalizeKeywords(file.FilenameMedium)
	}
	return tables, nil
}

func categoryLists(raw map[string][]string) (map[domain.Category][]string, error) {
	lists := make(map[domain.Category][]string, len(raw))
	for name, keywords := range raw {
		category, ok := domain.ParseCategory(name)
		if !ok {
			return nil, fmt.Errorf("unknown category %q", name)
		}
		if category == domain.CategoryOther {
			return nil, fmt.Errorf("category %q cannot carry keywords", name)
		}
		lists[category] = normalizeKeywords(keywords)
	}
	return lists, nil
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// matchCount reports how many distinct keywords occur as substrings of
// haystack. Haystack must already be lowercased.
func matchCount(haystack string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			n++
		}
	}
	return n
}

func containsAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
