// Package rendering projects a resume record into the HTML preview and the PDF
// document tree. Both projections decide section visibility with the same predicates.
package rendering

import "github.com/jonathan/resume-builder/internal/types"

// Section identifies an independently visible block of the rendered resume
type Section string

// Sections of the resume, grouped by column.
const (
	SectionContact         Section = "contact"
	SectionLinks           Section = "links"
	SectionTechnicalSkills Section = "technicalSkills"
	SectionLanguages       Section = "languages"
	SectionObjective       Section = "careerObjective"
	SectionEducation       Section = "education"
	SectionProjects        Section = "projects"
)

// LeftColumn and RightColumn give the section order of each column
var (
	LeftColumn  = []Section{SectionContact, SectionLinks, SectionTechnicalSkills, SectionLanguages}
	RightColumn = []Section{SectionObjective, SectionEducation, SectionProjects}
)

var sectionTitles = map[Section]string{
	SectionContact:         "Contact",
	SectionLinks:           "Links",
	SectionTechnicalSkills: "Technical Skills",
	SectionLanguages:       "Language",
	SectionObjective:       "Career Objective",
	SectionEducation:       "Education",
	SectionProjects:        "Projects",
}

// Title returns the heading shown for the section
func (s Section) Title() string {
	return sectionTitles[s]
}

// Visible reports whether a section renders for r. A section renders only when its
// backing field is non-empty; Contact is always shown.
func Visible(s Section, r types.Resume) bool {
	switch s {
	case SectionContact:
		return true
	case SectionLinks:
		return len(r.Links) > 0
	case SectionTechnicalSkills:
		return len(r.TechnicalSkills) > 0
	case SectionLanguages:
		return len(r.Languages) > 0
	case SectionObjective:
		return r.CareerObjective != ""
	case SectionEducation:
		return len(r.Education) > 0
	case SectionProjects:
		return len(r.Projects) > 0
	default:
		return false
	}
}

// VisibleSections returns the visible sections of one column in display order
func VisibleSections(column []Section, r types.Resume) []Section {
	out := make([]Section, 0, len(column))
	for _, s := range column {
		if Visible(s, r) {
			out = append(out, s)
		}
	}
	return out
}

// contactLines returns the non-empty contact items in display order
func contactLines(r types.Resume) []string {
	lines := make([]string, 0, 3)
	for _, v := range []string{r.Phone, r.Email, r.Address} {
		if v != "" {
			lines = append(lines, v)
		}
	}
	return lines
}

// linkLine formats a link the same way in both projections
func linkLine(l types.Link) string {
	return l.Name + ": " + l.URL
}
