package rendering

import (
	"html/template"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePreview_KeepsTemplateMarkup(t *testing.T) {
	r := types.DefaultResume()
	r.Image = "data:image/png;base64,iVBORw0KGgo="

	html, err := PreviewHTML(r)
	require.NoError(t, err)

	doc := parseFragment(t, string(SanitizePreview(html)))
	assert.Equal(t, renderedSectionTitles(parseFragment(t, string(html))), renderedSectionTitles(doc))
	assert.Equal(t, 1, doc.Find(`section[data-section="education"]`).Length())

	src, ok := doc.Find("img.profile-image").Attr("src")
	require.True(t, ok)
	assert.Equal(t, r.Image, src)
}

func TestSanitizePreview_StripsScripts(t *testing.T) {
	out := SanitizePreview(template.HTML(`<div class="x"><script>alert(1)</script><p onclick="x()">hi</p></div>`))

	assert.NotContains(t, string(out), "script")
	assert.NotContains(t, string(out), "onclick")
	assert.Contains(t, string(out), "hi")
}
