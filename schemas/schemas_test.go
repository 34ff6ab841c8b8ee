package schemas

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestResumeSchema_ValidJSON(t *testing.T) {
	var v map[string]interface{}
	require.NoError(t, json.Unmarshal(Resume, &v))
	assert.Equal(t, "object", v["type"])
	assert.Contains(t, v, "properties")
}

func TestResumeSchema_ValidJSONSchema(t *testing.T) {
	_, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(Resume))
	assert.NoError(t, err)
}

func TestResumeSchema_EmbeddedMatchesFile(t *testing.T) {
	data, err := os.ReadFile("resume.schema.json")
	require.NoError(t, err)
	assert.Equal(t, data, Resume)
}

func TestResumeSchema_CoversRecordFields(t *testing.T) {
	var v struct {
		Properties map[string]interface{} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(Resume, &v))

	for _, field := range []string{"name", "subtitle", "image", "phone", "email", "address", "links", "careerObjective", "education", "technicalSkills", "projects", "languages"} {
		assert.Contains(t, v.Properties, field)
	}
}
