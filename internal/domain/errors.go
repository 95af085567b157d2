package domain

import (
	"fmt"
	"time"
)

// AuthError indicates the credential was rejected, or an operation that
// requires a credential was attempted without one. It is fatal for the run.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return "github authentication failed (check that the token is valid and has repo scope)"
	}
	return fmt.Sprintf("github authentication failed: %s (check that the token is valid and has repo scope)", e.Reason)
}

// RateLimitError indicates the API quota is exhausted. It is fatal for the
// run but, unlike AuthError, the condition clears by itself: the fix is to
// retry later, not to rotate the token.
type RateLimitError struct {
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return "github API rate limit exhausted, try again later"
	}
	return fmt.Sprintf("github API rate limit exhausted, try again after %s", e.ResetAt.UTC().Format(time.RFC3339))
}

// NotFoundError indicates a single remote resource is missing, for example a
// repository deleted between listing and the language fetch. Callers treat it
// as recoverable and skip the resource.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// NoLanguageDataError indicates that zero languages survived exclusion
// filtering, so there is nothing to render.
type NoLanguageDataError struct{}

func (e *NoLanguageDataError) Error() string {
	return "no language data after filtering: every repository may be a fork, " +
		"every detected language may be excluded, or the token may lack access to any repositories"
}

// RenderError indicates the renderer received input that violates its
// contract, such as a negative percentage. Upstream invariants should make
// this unreachable; it exists as a defensive check, not a user-facing state.
type RenderError struct {
	Reason string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("invalid card input: %s", e.Reason)
}
