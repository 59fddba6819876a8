package openai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kirillkom/document-intake/internal/core/domain"
	"github.com/kirillkom/document-intake/internal/infrastructure/resilience"
)

// classifyModelError maps SDK errors onto the resilience policy.
// Retryable here only feeds the circuit breaker: suggestion calls run
// with a single attempt, so nothing is ever re-sent to the model.
func classifyModelError(err error) resilience.ErrorClassification {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}

	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return resilience.ErrorClassification{
			Retryable:     isRetryableHTTPStatus(apiErr.HTTPStatusCode),
			RecordFailure: true,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode > 0 {
			return resilience.ErrorClassification{
				Retryable:     isRetryableHTTPStatus(reqErr.HTTPStatusCode),
				RecordFailure: true,
			}
		}
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}

func isRetryableHTTPStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// wrapTemporaryIfNeeded tags transient failures with domain.ErrTemporary
// so callers can distinguish them from permanent ones.
func wrapTemporaryIfNeeded(operation string, err error) error {
	if err == nil {
		return nil
	}
	classification := classifyModelError(err)
	if classification.Retryable || resilience.IsCircuitOpen(err) {
		return domain.WrapError(domain.ErrTemporary, operation, err)
	}
	return fmt.Errorf("%s: %w", operation, err)
}
