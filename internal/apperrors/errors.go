package apperrors

import "errors"

// Lifecycle and validation errors surfaced to the web layer. Dependency
// failures inside coaching and scoring are recovered with fallbacks and
// never reach callers as errors.
var (
	ErrNotFound              = errors.New("interview not found")
	ErrUnauthorized          = errors.New("requester does not own this interview")
	ErrAlreadyStarted        = errors.New("interview already started")
	ErrNotStarted            = errors.New("interview not started")
	ErrAlreadyCompleted      = errors.New("interview already completed")
	ErrEmptyInput            = errors.New("no code or transcript provided")
	ErrInvalidQuestionFormat = errors.New("generated question is unparsable or incomplete")
	ErrDependencyFailure     = errors.New("ai dependency call failed")
)
