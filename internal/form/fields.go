package form

import (
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/types"
)

// Field names as they appear in the form and in the JSON encoding of the record.
const (
	FieldName            = "name"
	FieldSubtitle        = "subtitle"
	FieldPhone           = "phone"
	FieldEmail           = "email"
	FieldAddress         = "address"
	FieldCareerObjective = "careerObjective"

	FieldLinks           = "links"
	FieldEducation       = "education"
	FieldProjects        = "projects"
	FieldTechnicalSkills = "technicalSkills"
	FieldLanguages       = "languages"
)

// ScalarFields lists the single-value fields in form order
var ScalarFields = []string{
	FieldName,
	FieldSubtitle,
	FieldPhone,
	FieldEmail,
	FieldAddress,
	FieldCareerObjective,
}

// ListFields lists the textarea-backed list fields in form order
var ListFields = []string{
	FieldLinks,
	FieldEducation,
	FieldProjects,
	FieldTechnicalSkills,
	FieldLanguages,
}

// scalarSetters maps a scalar field name to the assignment it performs
var scalarSetters = map[string]func(*types.Resume, string){
	FieldName:            func(r *types.Resume, v string) { r.Name = v },
	FieldSubtitle:        func(r *types.Resume, v string) { r.Subtitle = v },
	FieldPhone:           func(r *types.Resume, v string) { r.Phone = v },
	FieldEmail:           func(r *types.Resume, v string) { r.Email = v },
	FieldAddress:         func(r *types.Resume, v string) { r.Address = v },
	FieldCareerObjective: func(r *types.Resume, v string) { r.CareerObjective = v },
}

// listSetters maps a list field name to the parser that rebuilds it from raw text
var listSetters = map[string]func(*types.Resume, string){
	FieldLinks:           func(r *types.Resume, raw string) { r.Links = parsing.ParseLinks(raw) },
	FieldEducation:       func(r *types.Resume, raw string) { r.Education = parsing.ParseEducation(raw) },
	FieldProjects:        func(r *types.Resume, raw string) { r.Projects = parsing.ParseProjects(raw) },
	FieldTechnicalSkills: func(r *types.Resume, raw string) { r.TechnicalSkills = parsing.SplitLines(raw) },
	FieldLanguages:       func(r *types.Resume, raw string) { r.Languages = parsing.SplitLines(raw) },
}

// FieldText returns the text a form control shows for the named field.
func FieldText(r types.Resume, field string) (string, error) {
	switch field {
	case FieldName:
		return r.Name, nil
	case FieldSubtitle:
		return r.Subtitle, nil
	case FieldPhone:
		return r.Phone, nil
	case FieldEmail:
		return r.Email, nil
	case FieldAddress:
		return r.Address, nil
	case FieldCareerObjective:
		return r.CareerObjective, nil
	case FieldLinks:
		return parsing.FormatLinks(r.Links), nil
	case FieldEducation:
		return parsing.FormatEducation(r.Education), nil
	case FieldProjects:
		return parsing.FormatProjects(r.Projects), nil
	case FieldTechnicalSkills:
		return parsing.FormatList(r.TechnicalSkills), nil
	case FieldLanguages:
		return parsing.FormatList(r.Languages), nil
	default:
		return "", &FieldError{Field: field, Kind: "text"}
	}
}
