package services

import (
	"context"
	"errors"

	"github.com/soarespng/cv-scanner/internal/models"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrStorage    = errors.New("storage failure")
	ErrExtraction = errors.New("extraction failed")
	ErrNotFound   = errors.New("file not found")
)

// stageError tags a cause with its error kind. The message is the cause's,
// unchanged, and errors.Is matches both the kind and the cause.
type stageError struct {
	kind  error
	cause error
}

func (e *stageError) Error() string {
	return e.cause.Error()
}

func (e *stageError) Unwrap() []error {
	return []error{e.kind, e.cause}
}

func wrapKind(kind, cause error) error {
	if cause == nil {
		return nil
	}
	if errors.Is(cause, kind) {
		return cause
	}
	return &stageError{kind: kind, cause: cause}
}

func validationError(msg string) error {
	return &stageError{kind: ErrValidation, cause: errors.New(msg)}
}

// ErrorCodeFor classifies a per-file failure by its error kind.
func ErrorCodeFor(err error) models.ErrorCode {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return models.ErrorCodeCanceled
	case errors.Is(err, ErrValidation):
		return models.ErrorCodeValidation
	case errors.Is(err, ErrStorage):
		return models.ErrorCodeStorage
	case errors.Is(err, ErrExtraction):
		return models.ErrorCodeExtraction
	default:
		return models.ErrorCodeInternal
	}
}
