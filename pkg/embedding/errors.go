package embedding

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// FailureKind splits provider failures into transient (network, timeout,
// rate limit) and permanent (bad credentials, malformed request). Both are
// recovered locally by the fallback chain; permanent ones are surfaced in
// metadata logs so operators can act.
type FailureKind string

const (
	FailureTransient FailureKind = "transient"
	FailurePermanent FailureKind = "permanent"
)

// ProviderFailure records one failed provider attempt.
type ProviderFailure struct {
	Provider string
	Kind     FailureKind
	Err      error
}

func (f ProviderFailure) Error() string {
	return fmt.Sprintf("%s (%s): %v", f.Provider, f.Kind, f.Err)
}

// ProviderError is returned when the ranked provider list is exhausted.
// Callers must have a non-embedding fallback; this error is never fatal to
// an analysis request.
type ProviderError struct {
	AllFailed bool
	Failures  []ProviderFailure
}

func (e *ProviderError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Error())
	}
	return "all embedding providers failed: " + strings.Join(parts, "; ")
}

// statusError carries an HTTP status alongside the provider response body so
// failures can be classified.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.status, e.body)
}

// NewStatusError wraps a non-200 provider response so the chain can classify
// it. Exported for provider subpackages.
func NewStatusError(status int, body string) error {
	return &statusError{status: status, body: body}
}

// classifyFailure maps an error from a provider call to a failure kind.
func classifyFailure(err error) FailureKind {
	var se *statusError
	if errors.As(err, &se) {
		switch se.status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return FailurePermanent
		}
		return FailureTransient
	}

	var ne net.Error
	if errors.As(err, &ne) || errors.Is(err, context.DeadlineExceeded) {
		return FailureTransient
	}

	return FailureTransient
}
