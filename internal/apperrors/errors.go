package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds surfaced to the user. Every failure of a submission belongs to
// exactly one of them; anything else is reported as an internal error.
var (
	ErrMissingInput = errors.New("missing input")
	ErrInvalidInput = errors.New("invalid input")
	ErrExtraction   = errors.New("extraction error")
	ErrGeneration   = errors.New("generation error")

	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("service unavailable")
)

const (
	KindMissingInput = "MissingInput"
	KindInvalidInput = "InvalidInput"
	KindExtraction   = "ExtractionError"
	KindGeneration   = "GenerationError"
	KindNotFound     = "NotFound"
	KindUnavailable  = "Unavailable"
	KindInternal     = "InternalError"
)

func MissingInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrMissingInput, msg)
}

func InvalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

// Extraction wraps a PDF parsing failure. The cause stays reachable through errors.Is/As.
func Extraction(cause error) error {
	return fmt.Errorf("%w: %w", ErrExtraction, cause)
}

// Generation wraps a model API failure.
func Generation(cause error) error {
	return fmt.Errorf("%w: %w", ErrGeneration, cause)
}

func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingInput):
		return KindMissingInput
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrExtraction):
		return KindExtraction
	case errors.Is(err, ErrGeneration):
		return KindGeneration
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnavailable):
		return KindUnavailable
	default:
		return KindInternal
	}
}

func HTTPStatus(err error) int {
	switch Kind(err) {
	case KindMissingInput, KindInvalidInput:
		return http.StatusBadRequest
	case KindExtraction:
		return http.StatusUnprocessableEntity
	case KindGeneration:
		return http.StatusBadGateway
	case KindNotFound:
		return http.StatusNotFound
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
