package rendering

import (
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestVisible_EmptyRecord(t *testing.T) {
	r := types.Resume{}
	r.Normalize()

	assert.True(t, Visible(SectionContact, r))
	for _, s := range []Section{SectionLinks, SectionTechnicalSkills, SectionLanguages, SectionObjective, SectionEducation, SectionProjects} {
		assert.False(t, Visible(s, r), s)
	}
	assert.False(t, Visible(Section("unknown"), r))
}

func TestVisible_DefaultRecord(t *testing.T) {
	r := types.DefaultResume()
	for _, s := range append(append([]Section{}, LeftColumn...), RightColumn...) {
		assert.True(t, Visible(s, r), s)
	}
}

func TestVisible_BlankLineCountsAsContent(t *testing.T) {
	r := types.Resume{Languages: []string{""}}
	assert.True(t, Visible(SectionLanguages, r))
}

func TestVisibleSections_Order(t *testing.T) {
	r := types.DefaultResume()
	r.Links = nil

	assert.Equal(t, []Section{SectionContact, SectionTechnicalSkills, SectionLanguages}, VisibleSections(LeftColumn, r))
	assert.Equal(t, RightColumn, VisibleSections(RightColumn, r))
}

func TestSectionTitles(t *testing.T) {
	assert.Equal(t, "Language", SectionLanguages.Title())
	assert.Equal(t, "Technical Skills", SectionTechnicalSkills.Title())
	assert.Equal(t, "Career Objective", SectionObjective.Title())
}

// clearers empties one backing field at a time
var clearers = map[string]func(*types.Resume){
	"links":           func(r *types.Resume) { r.Links = []types.Link{} },
	"education":       func(r *types.Resume) { r.Education = []types.Education{} },
	"projects":        func(r *types.Resume) { r.Projects = []types.Project{} },
	"technicalSkills": func(r *types.Resume) { r.TechnicalSkills = []string{} },
	"languages":       func(r *types.Resume) { r.Languages = []string{} },
	"careerObjective": func(r *types.Resume) { r.CareerObjective = "" },
	"contact":         func(r *types.Resume) { r.Phone, r.Email, r.Address = "", "", "" },
}

func TestProjectionsAgreeOnVisibleSections(t *testing.T) {
	for name, clear := range clearers {
		t.Run(name, func(t *testing.T) {
			r := types.DefaultResume()
			clear(&r)

			preview := BuildPreview(r)
			doc := BuildDocument(r)
			assert.Equal(t, preview.Titles(), doc.Titles())
		})
	}
}

func TestProjectionsAgree_EmptyLanguagesRemovesSectionFromBoth(t *testing.T) {
	r := types.DefaultResume()
	r.Languages = []string{}

	assert.NotContains(t, BuildPreview(r).Titles(), "Language")
	assert.NotContains(t, BuildDocument(r).Titles(), "Language")
}
