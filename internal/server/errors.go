package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-recommender/internal/analysis"
	"github.com/jonathan/resume-recommender/internal/ingestion"
	"github.com/jonathan/resume-recommender/internal/llm"
)

// Messages returned to clients for well-known failures.
const (
	msgMissingContext = "Missing resume or job data. Please analyze a resume first."
	msgDailyLimit     = "Daily analysis limit reached. Please try again tomorrow."
	msgNotFound       = "Analysis not found"
	msgNoStore        = "Analysis storage is not configured"
	msgModelFailed    = "The analysis service failed to respond. Please try again."
	msgInternal       = "Internal server error"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrInvalidSession indicates a missing, expired or tampered session token
type ErrInvalidSession struct {
	Reason error
}

func (e *ErrInvalidSession) Error() string {
	return fmt.Sprintf("invalid session token: %v", e.Reason)
}

func (e *ErrInvalidSession) Unwrap() error {
	return e.Reason
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		sessionErr    *ErrInvalidSession
		requestErr    *analysis.RequestError
		formatErr     *ingestion.UnsupportedFormatError
		ingestErr     *analysis.IngestionError
		apiErr        *analysis.APICallError
	)

	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &validationErr), errors.As(err, &requestErr),
		errors.As(err, &formatErr), errors.Is(err, analysis.ErrMissingContext):
		return http.StatusBadRequest
	case errors.As(err, &sessionErr):
		return http.StatusUnauthorized
	case errors.Is(err, analysis.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, llm.ErrDailyLimitReached):
		return http.StatusTooManyRequests
	case errors.As(err, &ingestErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, analysis.ErrNoStore):
		return http.StatusServiceUnavailable
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text sent to clients for err.
func PublicMessage(err error) string {
	switch {
	case err == nil:
		return msgInternal
	case errors.Is(err, analysis.ErrMissingContext):
		return msgMissingContext
	case errors.Is(err, llm.ErrDailyLimitReached):
		return msgDailyLimit
	case errors.Is(err, analysis.ErrNotFound):
		return msgNotFound
	case errors.Is(err, analysis.ErrNoStore):
		return msgNoStore
	}

	switch status := HTTPStatus(err); {
	case status == http.StatusBadGateway:
		return msgModelFailed
	case status >= http.StatusInternalServerError:
		return msgInternal
	default:
		return err.Error()
	}
}
