// Package openai adapts an OpenAI-compatible chat completion API to
// the classification pipeline's suggester port. Any provider that
// speaks the same wire format can be targeted through BaseURL.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kirillkom/document-intake/internal/core/classify"
	"github.com/kirillkom/document-intake/internal/core/domain"
	"github.com/kirillkom/document-intake/internal/infrastructure/resilience"
)

const suggestOperation = "model.suggest"

// Config carries the model backend settings. An empty APIKey yields a
// disabled adapter whose Suggest fails immediately, pushing every
// classification onto the fallback path instead of crashing startup.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type Suggester struct {
	api      *openai.Client
	model    string
	timeout  time.Duration
	executor *resilience.Executor
}

func NewSuggester(cfg Config, executor *resilience.Executor) *Suggester {
	s := &Suggester{
		model:    cfg.Model,
		timeout:  cfg.Timeout,
		executor: executor,
	}
	if s.model == "" {
		s.model = openai.GPT4oMini
	}
	if s.timeout <= 0 {
		s.timeout = 10 * time.Second
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return s
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	s.api = openai.NewClientWithConfig(clientCfg)
	return s
}

var errNoCredentials = errors.New("model credentials not configured")

// Suggest asks the model for a classification triple. The call is
// bounded by the configured timeout and never retried; the circuit
// breaker sheds load when the backend keeps failing.
func (s *Suggester) Suggest(ctx context.Context, text, filename string) (classify.Suggestion, error) {
	if s.api == nil {
		return classify.Suggestion{}, domain.WrapError(domain.ErrTemporary, suggestOperation, errNoCredentials)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.complete(callCtx, buildSuggestionPrompt(text, filename))
	if err != nil {
		return classify.Suggestion{}, wrapTemporaryIfNeeded(suggestOperation, err)
	}

	var suggestion classify.Suggestion
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &suggestion); err != nil {
		return classify.Suggestion{}, fmt.Errorf("parse suggestion json: %w", err)
	}
	return suggestion, nil
}

func (s *Suggester) complete(ctx context.Context, prompt string) (string, error) {
	call := func(callCtx context.Context) (string, error) {
		resp, err := s.api.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model:       s.model,
			Temperature: 0.1,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		})
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("chat completion: no choices returned")
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	}

	if s.executor == nil {
		return call(ctx)
	}

	var raw string
	err := s.executor.Execute(ctx, suggestOperation, func(execCtx context.Context) error {
		var callErr error
		raw, callErr = call(execCtx)
		return callErr
	}, classifyModelError)
	return raw, err
}

// extractJSONObject returns the first balanced JSON object substring of
// raw. Models wrap their JSON in prose often enough that the body is
// never trusted as-is.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	if start < 0 {
		return raw
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1]
			}
		}
	}
	return raw[start:]
}
