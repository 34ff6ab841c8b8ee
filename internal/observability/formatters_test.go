package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	r := types.DefaultResume()
	p.PrintResume(&r)
	output := buf.String()

	assert.Contains(t, output, "RESUME")
	assert.Contains(t, output, "Mohan Kumar")
	assert.Contains(t, output, "Portfolio")
	assert.Contains(t, output, "Links (")
	assert.Contains(t, output, "Languages (")
}

func TestPrintResume_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResume(nil)

	assert.Empty(t, buf.String())
}

func TestPrintResume_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	r := types.Resume{Name: "A", TechnicalSkills: []string{"a", "b", "c", "d", "e", "f", "g"}}
	p.PrintResume(&r)

	assert.Contains(t, buf.String(), "... and 2 more")
	assert.NotContains(t, buf.String(), "• f")
}

func TestPrintDocument(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintDocument(rendering.BuildDocument(types.DefaultResume()))
	output := buf.String()

	assert.Contains(t, output, "DOCUMENT LAYOUT")
	assert.Contains(t, output, "Column 1 (35%)")
	assert.Contains(t, output, "Column 2 (65%)")
	assert.Contains(t, output, "Technical Skills")
	assert.Contains(t, output, "Career Objective")
}

func TestPrintDocument_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintDocument(nil)
	assert.Empty(t, buf.String())
}

func TestPrintExport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExport(ExportSummary{Path: "resume.pdf", Engine: "native", Bytes: 2048, Pages: 1, Duration: 1500 * time.Microsecond})
	output := buf.String()

	assert.Contains(t, output, "PDF EXPORT")
	assert.Contains(t, output, "resume.pdf")
	assert.Contains(t, output, "2048 bytes")
	assert.Contains(t, output, "Pages:    1")
	assert.Contains(t, output, "2ms")
}

func TestPrintPageText(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPageText([]string{"Mohan Kumar\n\nContact", ""})
	output := buf.String()

	assert.Contains(t, output, "PAGE 1 OF 2")
	assert.Contains(t, output, "PAGE 2 OF 2")
	assert.Contains(t, output, "(no text)")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TEST", strings.Repeat("é", 100))
	output := buf.String()

	assert.Contains(t, output, "...")
	for _, line := range strings.Split(strings.TrimRight(output, "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)))
	}
}
