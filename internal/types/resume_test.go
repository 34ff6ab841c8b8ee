package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_FillsNilLists(t *testing.T) {
	r := Resume{Name: "Jane Doe"}
	r.Normalize()

	assert.NotNil(t, r.Links)
	assert.NotNil(t, r.Education)
	assert.NotNil(t, r.TechnicalSkills)
	assert.NotNil(t, r.Projects)
	assert.NotNil(t, r.Languages)
	assert.Empty(t, r.Links)
}

func TestNormalize_EncodesEmptyListsAsArrays(t *testing.T) {
	r := Resume{Name: "Jane Doe"}
	r.Normalize()

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"links", "education", "technicalSkills", "projects", "languages"} {
		assert.Equal(t, []any{}, decoded[key], key)
	}
	_, hasImage := decoded["image"]
	assert.False(t, hasImage)
}

func TestClone_IsDeep(t *testing.T) {
	original := DefaultResume()
	clone := original.Clone()

	clone.Links[0].Name = "Changed"
	clone.Languages[0] = "Changed"
	clone.Education = append(clone.Education, Education{Degree: "Extra"})

	assert.Equal(t, "Portfolio", original.Links[0].Name)
	assert.Equal(t, "Hindi", original.Languages[0])
	assert.Len(t, original.Education, 3)
}

func TestClone_NormalizesNilLists(t *testing.T) {
	clone := Resume{}.Clone()
	assert.NotNil(t, clone.Links)
	assert.NotNil(t, clone.Languages)
}

func TestDefaultResume(t *testing.T) {
	r := DefaultResume()

	assert.Equal(t, "Mohan Kumar", r.Name)
	assert.False(t, r.HasImage())
	assert.Len(t, r.Links, 3)
	assert.Len(t, r.Education, 3)
	assert.Len(t, r.Projects, 2)
	assert.Len(t, r.TechnicalSkills, 4)
	assert.Equal(t, []string{"Hindi", "English", "French"}, r.Languages)
}
