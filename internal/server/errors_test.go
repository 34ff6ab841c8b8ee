package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "value", Message: "required"}
	assert.Equal(t, "validation error: value - required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "FieldError",
			err:      &form.FieldError{Field: "salary", Kind: "scalar"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "ImageError",
			err:      &form.ImageError{Message: "file is empty"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "Cancelled image read",
			err:      &form.ImageError{Message: "failed to read file", Cause: context.Canceled},
			expected: http.StatusRequestTimeout,
		},
		{
			name:     "Schema validation",
			err:      &schemas.ValidationError{Errors: []schemas.FieldError{{Field: "links", Message: "bad"}}},
			expected: http.StatusBadRequest,
		},
		{
			name:     "Wrapped field error",
			err:      fmt.Errorf("update failed: %w", &form.FieldError{Field: "x", Kind: "list"}),
			expected: http.StatusBadRequest,
		},
		{
			name:     "No build",
			err:      export.ErrNoBuild,
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "Exporter closed",
			err:      export.ErrClosed,
			expected: http.StatusServiceUnavailable,
		},
		{
			name:     "Deadline",
			err:      fmt.Errorf("render: %w", context.DeadlineExceeded),
			expected: http.StatusGatewayTimeout,
		},
		{
			name:     "Engine failure",
			err:      &export.EngineError{Engine: export.EngineNative, Message: "failed to draw document"},
			expected: http.StatusInternalServerError,
		},
		{
			name:     "Unknown error",
			err:      assert.AnError,
			expected: http.StatusInternalServerError,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
