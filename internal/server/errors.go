package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		fieldErr      *form.FieldError
		imageErr      *form.ImageError
		schemaErr     *schemas.ValidationError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &fieldErr), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &imageErr):
		if errors.Is(err, context.Canceled) {
			return http.StatusRequestTimeout
		}
		return http.StatusBadRequest
	case errors.Is(err, export.ErrNoBuild), errors.Is(err, export.ErrClosed):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
