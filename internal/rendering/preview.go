package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Preview is the on-screen projection: a header above a two-column body.
type Preview struct {
	Header PreviewHeader
	Left   []PreviewSection
	Right  []PreviewSection
}

// PreviewHeader holds the name band of the preview
type PreviewHeader struct {
	Name     string
	Subtitle string
	Image    template.URL // empty when no image is set
}

// PreviewSection is one titled block of the preview
type PreviewSection struct {
	Section Section
	Title   string
	Lines   []string       // plain lines (contact items)
	Bullets []string       // bulleted list items
	Text    string         // emphasized paragraph (career objective)
	Entries []PreviewEntry // titled sub-entries (education, projects)
}

// PreviewEntry is a titled sub-entry within a section
type PreviewEntry struct {
	Title   string
	Details []PreviewDetail
}

// PreviewDetail is a line under an entry title with its own emphasis class
type PreviewDetail struct {
	Text  string
	Class string
}

// Titles returns the section titles of the preview in display order
func (p *Preview) Titles() []string {
	titles := make([]string, 0, len(p.Left)+len(p.Right))
	for _, s := range p.Left {
		titles = append(titles, s.Title)
	}
	for _, s := range p.Right {
		titles = append(titles, s.Title)
	}
	return titles
}

// BuildPreview projects r into the preview tree
func BuildPreview(r types.Resume) *Preview {
	p := &Preview{
		Header: PreviewHeader{
			Name:     r.Name,
			Subtitle: r.Subtitle,
			Image:    imageURL(r.Image),
		},
	}
	for _, s := range VisibleSections(LeftColumn, r) {
		p.Left = append(p.Left, previewSection(s, r))
	}
	for _, s := range VisibleSections(RightColumn, r) {
		p.Right = append(p.Right, previewSection(s, r))
	}
	return p
}

func previewSection(s Section, r types.Resume) PreviewSection {
	ps := PreviewSection{Section: s, Title: s.Title()}

	switch s {
	case SectionContact:
		ps.Lines = contactLines(r)
	case SectionLinks:
		for _, l := range r.Links {
			ps.Bullets = append(ps.Bullets, linkLine(l))
		}
	case SectionTechnicalSkills:
		ps.Bullets = append([]string{}, r.TechnicalSkills...)
	case SectionLanguages:
		ps.Bullets = append([]string{}, r.Languages...)
	case SectionObjective:
		ps.Text = r.CareerObjective
	case SectionEducation:
		for _, e := range r.Education {
			ps.Entries = append(ps.Entries, PreviewEntry{
				Title: e.Degree,
				Details: []PreviewDetail{
					{Text: e.Institution, Class: "detail"},
					{Text: e.Date, Class: "date"},
				},
			})
		}
	case SectionProjects:
		for _, proj := range r.Projects {
			ps.Entries = append(ps.Entries, PreviewEntry{
				Title:   proj.Title,
				Details: []PreviewDetail{{Text: proj.Description, Class: "body"}},
			})
		}
	}

	return ps
}

// imageURL marks a data:image URI as safe for an img src. Anything else is dropped.
func imageURL(uri string) template.URL {
	if !strings.HasPrefix(uri, "data:image/") {
		return ""
	}
	return template.URL(uri)
}

var (
	previewOnce sync.Once
	previewTmpl *template.Template
	previewErr  error
)

func previewTemplate() (*template.Template, error) {
	previewOnce.Do(func() {
		previewTmpl, previewErr = template.ParseFS(templatesFS, "templates/preview.tmpl")
	})
	return previewTmpl, previewErr
}

// RenderPreviewHTML writes the preview tree as an HTML fragment
func RenderPreviewHTML(w io.Writer, p *Preview) error {
	tmpl, err := previewTemplate()
	if err != nil {
		return &TemplateError{Template: "preview.tmpl", Cause: err}
	}
	if err := tmpl.ExecuteTemplate(w, "preview", p); err != nil {
		return &TemplateError{Template: "preview.tmpl", Cause: err}
	}
	return nil
}

// PreviewHTML builds and renders the preview for r
func PreviewHTML(r types.Resume) (template.HTML, error) {
	var buf bytes.Buffer
	if err := RenderPreviewHTML(&buf, BuildPreview(r)); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // produced by html/template
}
