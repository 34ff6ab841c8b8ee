package rendering

import (
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	fragmentPolicyOnce sync.Once
	fragmentPolicy     *bluemonday.Policy
)

// previewSanitizer allows the markup the preview template produces, including
// data URI profile images, and nothing else.
func previewSanitizer() *bluemonday.Policy {
	fragmentPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("div", "header", "section", "h1", "h3", "p", "ul", "li")
		policy.AllowAttrs("class").Globally()
		policy.AllowDataAttributes()
		policy.AllowImages()
		policy.AllowDataURIImages()
		fragmentPolicy = policy
	})
	return fragmentPolicy
}

// SanitizePreview strips anything from a rendered preview fragment that the preview
// template would not have produced. It is applied to fragments served on their own.
func SanitizePreview(fragment template.HTML) template.HTML {
	return template.HTML(previewSanitizer().Sanitize(string(fragment))) //nolint:gosec // sanitized above
}
