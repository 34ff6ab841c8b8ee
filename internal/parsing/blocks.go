// Package parsing converts the free-text textarea blocks of the resume form into
// structured lists and back.
package parsing

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// fieldSeparator splits a structured line into positional parts
const fieldSeparator = ","

// SplitLines splits raw textarea content on line breaks and trims every line.
// Blank lines in the middle of the block are kept as empty entries. A block that
// contains only whitespace yields an empty list.
func SplitLines(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	lines := strings.Split(raw, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimSpace(line)
	}
	return out
}

// splitFields splits a line on commas into exactly n trimmed positional parts.
// Missing parts are left empty and anything past the n-th separator is dropped.
func splitFields(line string, n int) []string {
	parts := strings.Split(line, fieldSeparator)
	out := make([]string, n)
	for i := 0; i < n && i < len(parts); i++ {
		out[i] = strings.TrimSpace(parts[i])
	}
	return out
}

// ParseLinks parses "Name, URL" lines
func ParseLinks(raw string) []types.Link {
	lines := SplitLines(raw)
	links := make([]types.Link, 0, len(lines))
	for _, line := range lines {
		f := splitFields(line, 2)
		links = append(links, types.Link{Name: f[0], URL: f[1]})
	}
	return links
}

// ParseEducation parses "Degree, Institution, Date" lines
func ParseEducation(raw string) []types.Education {
	lines := SplitLines(raw)
	entries := make([]types.Education, 0, len(lines))
	for _, line := range lines {
		f := splitFields(line, 3)
		entries = append(entries, types.Education{Degree: f[0], Institution: f[1], Date: f[2]})
	}
	return entries
}

// ParseProjects parses "Title, Description" lines
func ParseProjects(raw string) []types.Project {
	lines := SplitLines(raw)
	projects := make([]types.Project, 0, len(lines))
	for _, line := range lines {
		f := splitFields(line, 2)
		projects = append(projects, types.Project{Title: f[0], Description: f[1]})
	}
	return projects
}

// joinFields is the inverse of splitFields. Trailing empty parts are omitted so an
// unset field does not leave a dangling separator in the textarea.
func joinFields(parts ...string) string {
	end := len(parts)
	for end > 1 && parts[end-1] == "" {
		end--
	}
	return strings.Join(parts[:end], fieldSeparator+" ")
}

// FormatList renders a simple list as one item per line
func FormatList(items []string) string {
	return strings.Join(items, "\n")
}

// FormatLinks renders links as "Name, URL" lines
func FormatLinks(links []types.Link) string {
	lines := make([]string, len(links))
	for i, l := range links {
		lines[i] = joinFields(l.Name, l.URL)
	}
	return strings.Join(lines, "\n")
}

// FormatEducation renders education entries as "Degree, Institution, Date" lines
func FormatEducation(entries []types.Education) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = joinFields(e.Degree, e.Institution, e.Date)
	}
	return strings.Join(lines, "\n")
}

// FormatProjects renders projects as "Title, Description" lines
func FormatProjects(projects []types.Project) string {
	lines := make([]string, len(projects))
	for i, p := range projects {
		lines[i] = joinFields(p.Title, p.Description)
	}
	return strings.Join(lines, "\n")
}
