package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadResume_YAML(t *testing.T) {
	r, err := LoadResume(filepath.Join("testdata", "seed.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", r.Name)
	assert.Equal(t, "+1 555 0100", r.Phone)
	assert.Equal(t, []types.Link{{Name: "GitHub", URL: "github.com/janedoe"}}, r.Links)
	assert.Equal(t, []types.Education{{Degree: "B.Sc. Computer Science", Institution: "TU Berlin", Date: "2019"}}, r.Education)
	assert.Equal(t, []string{"English", "German"}, r.Languages)
}

func TestLoadResume_JSON(t *testing.T) {
	r, err := LoadResume(filepath.Join("testdata", "seed.json"))
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", r.Name)
	assert.Equal(t, []string{"Go"}, r.TechnicalSkills)
	assert.NotNil(t, r.Links)
	assert.Empty(t, r.Links)
}

func TestLoadResume_MissingListsAreNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yml")
	require.NoError(t, os.WriteFile(path, []byte("name: Jane Doe\n"), 0644))

	r, err := LoadResume(path)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", r.Name)
	assert.NotNil(t, r.Projects)
	assert.NotNil(t, r.Languages)
}

func TestLoadResume_EmptyYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	r, err := LoadResume(path)
	require.NoError(t, err)
	assert.Empty(t, r.Name)
}

func TestLoadResume_InvalidLinks(t *testing.T) {
	_, err := LoadResume(filepath.Join("testdata", "invalid_links.yaml"))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "links", validationErr.Errors[0].Field)
}

func TestLoadResume_UnknownField(t *testing.T) {
	_, err := LoadResume(filepath.Join("testdata", "unknown_field.json"))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestLoadResume_Errors(t *testing.T) {
	_, err := LoadResume(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read resume file")

	path := filepath.Join(t.TempDir(), "seed.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = 'x'"), 0644))
	_, err = LoadResume(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported resume file extension")

	path = filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: [unclosed"), 0644))
	_, err = LoadResume(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}
