// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// pad right-pads s with spaces to n runes
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

// writeList writes up to maxItemsToShow items under a heading
func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("%s (%d):\n", heading, len(items)))
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintResume outputs a human-readable summary of the resume record.
func (p *Printer) PrintResume(r *types.Resume) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", r.Name))
	sb.WriteString(fmt.Sprintf("Subtitle: %s\n", r.Subtitle))
	if r.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", r.Email))
	}
	if r.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:    %s\n", r.Phone))
	}
	if r.HasImage() {
		sb.WriteString(fmt.Sprintf("Image:    %d bytes (encoded)\n", len(r.Image)))
	}
	sb.WriteString("\n")

	links := make([]string, len(r.Links))
	for i, l := range r.Links {
		links[i] = l.Name
	}
	writeList(&sb, "Links", links)

	education := make([]string, len(r.Education))
	for i, e := range r.Education {
		education[i] = e.Degree
	}
	writeList(&sb, "Education", education)

	projects := make([]string, len(r.Projects))
	for i, proj := range r.Projects {
		projects[i] = proj.Title
	}
	writeList(&sb, "Projects", projects)
	writeList(&sb, "Technical Skills", r.TechnicalSkills)
	writeList(&sb, "Languages", r.Languages)

	p.printBox("RESUME", strings.TrimRight(sb.String(), "\n"))
}

// PrintDocument outputs the layout of a document tree: columns and their blocks.
func (p *Printer) PrintDocument(doc *rendering.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title: %s\n", doc.Title))
	sb.WriteString(fmt.Sprintf("Size:  %s\n", doc.PageSize))

	for _, page := range doc.Pages {
		for i, col := range page.Columns {
			sb.WriteString(fmt.Sprintf("\nColumn %d (%.0f%%):\n", i+1, col.WidthRatio*100))
			if len(col.Blocks) == 0 {
				sb.WriteString("  (empty)\n")
			}
			for _, b := range col.Blocks {
				sb.WriteString(fmt.Sprintf("  %-18s %d elements\n", b.Title.Text, len(b.Elements)))
			}
		}
	}

	p.printBox("DOCUMENT LAYOUT", strings.TrimRight(sb.String(), "\n"))
}

// ExportSummary describes a finished PDF export
type ExportSummary struct {
	Path     string
	Engine   string
	Bytes    int
	Pages    int
	Duration time.Duration
}

// PrintExport outputs the result of a PDF export.
func (p *Printer) PrintExport(s ExportSummary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", s.Path))
	sb.WriteString(fmt.Sprintf("Engine:   %s\n", s.Engine))
	sb.WriteString(fmt.Sprintf("Size:     %d bytes\n", s.Bytes))
	if s.Pages > 0 {
		sb.WriteString(fmt.Sprintf("Pages:    %d\n", s.Pages))
	}
	sb.WriteString(fmt.Sprintf("Duration: %v", s.Duration.Round(time.Millisecond)))

	p.printBox("PDF EXPORT", sb.String())
}

// PrintPageText outputs the extracted text of each PDF page.
func (p *Printer) PrintPageText(pages []string) {
	for i, text := range pages {
		var lines []string
		for _, line := range strings.Split(text, "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, strings.TrimSpace(line))
			}
		}
		if len(lines) == 0 {
			lines = []string{"(no text)"}
		}
		p.printBox(fmt.Sprintf("PAGE %d OF %d", i+1, len(pages)), strings.Join(lines, "\n"))
	}
}
