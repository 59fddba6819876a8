package openai

import (
	"fmt"
	"strings"

	"github.com/kirillkom/document-intake/internal/core/domain"
)

const systemInstruction = "You classify workplace documents. Respond with a single JSON object and nothing else."

const suggestionPromptTemplate = `Classify the document below.

Filename: %s

Document text:
"""
%s
"""

Return only a JSON object with exactly these keys:
- "category": one of %s
- "priority": one of %s
- "summary": two or three factual sentences grounded strictly in the document text, no generic filler

Do not add any other keys, commentary, or markdown.`

func buildSuggestionPrompt(text, filename string) string {
	return fmt.Sprintf(suggestionPromptTemplate, filename, text, enumList(categoryNames()), enumList(priorityNames()))
}

func categoryNames() []string {
	categories := domain.Categories()
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, string(c))
	}
	return names
}

func priorityNames() []string {
	priorities := domain.Priorities()
	names := make([]string, 0, len(priorities))
	for _, p := range priorities {
		names = append(names, string(p))
	}
	return names
}

func enumList(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, n := range names {
		quoted = append(quoted, fmt.Sprintf("%q", n))
	}
	return strings.Join(quoted, ", ")
}
