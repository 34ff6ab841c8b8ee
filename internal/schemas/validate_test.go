package schemas

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResume_Default(t *testing.T) {
	assert.NoError(t, ValidateResume(types.DefaultResume()))
}

func TestValidateResume_NilListsAccepted(t *testing.T) {
	assert.NoError(t, ValidateResume(types.Resume{Name: "Jane Doe"}))
}

func TestValidateResume_ImageMustBeDataURI(t *testing.T) {
	r := types.DefaultResume()
	r.Image = "data:image/png;base64,iVBORw0KGgo="
	assert.NoError(t, ValidateResume(r))

	r.Image = "https://example.com/me.png"
	err := ValidateResume(r)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "image", validationErr.Errors[0].Field)
}

func TestValidateResumeJSON_WrongType(t *testing.T) {
	err := ValidateResumeJSON([]byte(`{"name": "Jane", "links": "x"}`))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.NotEmpty(t, validationErr.Errors)
	assert.Equal(t, "links", validationErr.Errors[0].Field)
}

func TestValidateResumeJSON_NestedField(t *testing.T) {
	err := ValidateResumeJSON([]byte(`{"education": [{"degree": 1}]}`))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "education.0.degree", validationErr.Errors[0].Field)
}

func TestValidateResumeJSON_Malformed(t *testing.T) {
	err := ValidateResumeJSON([]byte("{ invalid json }"))
	require.Error(t, err)

	_, isValidation := err.(*ValidationError)
	assert.False(t, isValidation)
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`

	assert.NoError(t, ValidateJSONString(schemaContent, `{"name": "test"}`))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"age": 30}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "(string schema)", loadErr.Path)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "links", Message: "must be an array"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. name: is required")
	assert.Contains(t, errorMsg, "2. links: must be an array")
}
