package rendering

import (
	"fmt"
	"html/template"

	"github.com/jonathan/resume-builder/internal/types"
)

// Document is the PDF projection: a paginated, styled description of the resume
// that an export engine turns into PDF bytes. All lengths are in points.
type Document struct {
	Title    string `json:"title"`
	Author   string `json:"author,omitempty"`
	PageSize string `json:"pageSize"` // A4
	Font     Font   `json:"font"`     // document default
	Pages    []Page `json:"pages"`
}

// Page is a single page: a header band above side-by-side columns
type Page struct {
	Header  Header   `json:"header"`
	Columns []Column `json:"columns"`
}

// Header is the dark band with the profile image, name and subtitle
type Header struct {
	Fill          Color   `json:"fill"`
	Padding       float64 `json:"padding"`
	PaddingBottom float64 `json:"paddingBottom"`
	CornerRadius  float64 `json:"cornerRadius"` // bottom-right corner only

	Image       string  `json:"image,omitempty"` // data URI
	ImageSize   float64 `json:"imageSize"`
	ImageBorder Color   `json:"imageBorder"`
	BorderWidth float64 `json:"borderWidth"`
	TextIndent  float64 `json:"textIndent"` // gap between image and text

	Name     Element `json:"name"`
	Subtitle Element `json:"subtitle"`
}

// Column is a vertical slice of the page body
type Column struct {
	WidthRatio float64 `json:"widthRatio"` // share of the page width, 0-1
	Fill       *Color  `json:"fill,omitempty"`
	Padding    float64 `json:"padding"`
	PaddingTop float64 `json:"paddingTop"`
	Blocks     []Block `json:"blocks"`
}

// Block renders one section within a column
type Block struct {
	Section    Section   `json:"section"`
	Title      Element   `json:"title"`
	Elements   []Element `json:"elements"`
	SpaceAfter float64   `json:"spaceAfter"`
}

// ElementType determines how an element is drawn
type ElementType string

// Element types.
const (
	ElementText   ElementType = "text"
	ElementBullet ElementType = "bullet"
)

// Element is a run of text drawn with a style
type Element struct {
	Type  ElementType `json:"type"`
	Text  string      `json:"text"`
	Style Style       `json:"style"`
}

// Style describes how an element's text is drawn
type Style struct {
	Font       Font    `json:"font"`
	Color      Color   `json:"color"`
	LineHeight float64 `json:"lineHeight"` // multiple of the font size
	SpaceAfter float64 `json:"spaceAfter"`
	BulletGap  float64 `json:"bulletGap,omitempty"`
}

// Font specifies a core PDF font face
type Font struct {
	Family string  `json:"family"` // Helvetica, Courier, Times
	Style  string  `json:"style"`  // "" (regular), "B", "I", "BI"
	Size   float64 `json:"size"`
}

// Color is an RGB color
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// CSS returns the color as a CSS rgb() value
func (c Color) CSS() template.CSS {
	return template.CSS(fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B))
}

// CSS returns the style as inline CSS declarations
func (s Style) CSS() template.CSS {
	weight := "normal"
	fontStyle := "normal"
	switch s.Font.Style {
	case "B":
		weight = "bold"
	case "I":
		fontStyle = "italic"
	case "BI":
		weight, fontStyle = "bold", "italic"
	}
	return template.CSS(fmt.Sprintf(
		"font-family: %s, Arial, sans-serif; font-size: %.1fpt; font-weight: %s; font-style: %s; color: %s; line-height: %.2f; margin: 0 0 %.1fpt 0",
		s.Font.Family, s.Font.Size, weight, fontStyle, s.Color.CSS(), s.LineHeight, s.SpaceAfter,
	))
}

// Palette of the exported document.
var (
	colorSlate700 = Color{R: 55, G: 65, B: 81}
	colorSlate600 = Color{R: 75, G: 85, B: 99}
	colorSlate500 = Color{R: 107, G: 114, B: 128}
	colorSlate300 = Color{R: 209, G: 213, B: 219}
	colorSlate100 = Color{R: 243, G: 244, B: 246}
	colorWhite    = Color{R: 255, G: 255, B: 255}
	colorBlack    = Color{R: 0, G: 0, B: 0}
)

const documentFont = "Helvetica"

// Text styles of the exported document.
var (
	styleName         = Style{Font: Font{Family: documentFont, Style: "B", Size: 24}, Color: colorWhite, LineHeight: 1.2}
	styleSubtitle     = Style{Font: Font{Family: documentFont, Size: 12}, Color: colorSlate300, LineHeight: 1.2}
	styleSectionTitle = Style{Font: Font{Family: documentFont, Style: "B", Size: 12}, Color: colorSlate700, LineHeight: 1.2, SpaceAfter: 8}
	styleContact      = Style{Font: Font{Family: documentFont, Size: 10}, Color: colorSlate700, LineHeight: 1.2, SpaceAfter: 5}
	styleBullet       = Style{Font: Font{Family: documentFont, Size: 10}, Color: colorBlack, LineHeight: 1.4, SpaceAfter: 3, BulletGap: 5}
	styleObjective    = Style{Font: Font{Family: documentFont, Style: "I", Size: 10}, Color: colorSlate600, LineHeight: 1.4}
	styleEntryTitle   = Style{Font: Font{Family: documentFont, Style: "B", Size: 11}, Color: colorSlate700, LineHeight: 1.2, SpaceAfter: 2}
	styleEntryDetail  = Style{Font: Font{Family: documentFont, Size: 9}, Color: colorSlate500, LineHeight: 1.2, SpaceAfter: 5}
	styleEntryDate    = Style{Font: Font{Family: documentFont, Size: 9}, Color: colorSlate500, LineHeight: 1.2, SpaceAfter: 2}
	styleEntryBody    = Style{Font: Font{Family: documentFont, Size: 10}, Color: colorBlack, LineHeight: 1.4}
)

const (
	sectionSpacing = 15
	entrySpacing   = 10
)

// Titles returns the block titles of the document in display order
func (d *Document) Titles() []string {
	var titles []string
	for _, p := range d.Pages {
		for _, c := range p.Columns {
			for _, b := range c.Blocks {
				titles = append(titles, b.Title.Text)
			}
		}
	}
	return titles
}

// BuildDocument projects r into the PDF document tree
func BuildDocument(r types.Resume) *Document {
	leftFill := colorSlate100
	left := Column{WidthRatio: 0.35, Fill: &leftFill, Padding: 20, PaddingTop: 40}
	for _, s := range VisibleSections(LeftColumn, r) {
		left.Blocks = append(left.Blocks, documentBlock(s, r))
	}

	right := Column{WidthRatio: 0.65, Padding: 20, PaddingTop: 40}
	for _, s := range VisibleSections(RightColumn, r) {
		right.Blocks = append(right.Blocks, documentBlock(s, r))
	}

	header := Header{
		Fill:          colorSlate700,
		Padding:       20,
		PaddingBottom: 40,
		CornerRadius:  50,
		ImageSize:     100,
		ImageBorder:   colorSlate600,
		BorderWidth:   2,
		TextIndent:    20,
		Name:          Element{Type: ElementText, Text: r.Name, Style: styleName},
		Subtitle:      Element{Type: ElementText, Text: r.Subtitle, Style: styleSubtitle},
	}
	if imageURL(r.Image) != "" {
		header.Image = r.Image
	}

	return &Document{
		Title:    documentTitle(r),
		Author:   r.Name,
		PageSize: "A4",
		Font:     Font{Family: documentFont, Size: 10},
		Pages: []Page{{
			Header:  header,
			Columns: []Column{left, right},
		}},
	}
}

func documentTitle(r types.Resume) string {
	if r.Name == "" {
		return "Resume"
	}
	return r.Name + " - Resume"
}

func documentBlock(s Section, r types.Resume) Block {
	b := Block{
		Section:    s,
		Title:      Element{Type: ElementText, Text: s.Title(), Style: styleSectionTitle},
		SpaceAfter: sectionSpacing,
	}

	text := func(t string, st Style) {
		b.Elements = append(b.Elements, Element{Type: ElementText, Text: t, Style: st})
	}
	bullet := func(t string) {
		b.Elements = append(b.Elements, Element{Type: ElementBullet, Text: t, Style: styleBullet})
	}

	switch s {
	case SectionContact:
		for _, line := range contactLines(r) {
			text(line, styleContact)
		}
	case SectionLinks:
		for _, l := range r.Links {
			bullet(linkLine(l))
		}
	case SectionTechnicalSkills:
		for _, skill := range r.TechnicalSkills {
			bullet(skill)
		}
	case SectionLanguages:
		for _, lang := range r.Languages {
			bullet(lang)
		}
	case SectionObjective:
		text(r.CareerObjective, styleObjective)
	case SectionEducation:
		for _, e := range r.Education {
			text(e.Degree, styleEntryTitle)
			text(e.Institution, styleEntryDetail)
			date := styleEntryDate
			date.SpaceAfter += entrySpacing
			text(e.Date, date)
		}
	case SectionProjects:
		for _, p := range r.Projects {
			text(p.Title, styleEntryTitle)
			body := styleEntryBody
			body.SpaceAfter += entrySpacing
			text(p.Description, body)
		}
	}

	return b
}
