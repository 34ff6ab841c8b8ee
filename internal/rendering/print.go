package rendering

import (
	"fmt"
	"html/template"
	"io"
	"sync"
)

var (
	printOnce sync.Once
	printTmpl *template.Template
	printErr  error
)

func printTemplate() (*template.Template, error) {
	printOnce.Do(func() {
		printTmpl, printErr = template.New("print.tmpl").Funcs(template.FuncMap{
			"safeImage": imageURL,
			"percent": func(ratio float64) template.CSS {
				return template.CSS(fmt.Sprintf("%.2f%%", ratio*100))
			},
		}).ParseFS(templatesFS, "templates/print.tmpl")
	})
	return printTmpl, printErr
}

// RenderDocumentHTML writes the document tree as a standalone print-styled HTML page.
// Browser-based engines print this page instead of drawing the tree themselves.
func RenderDocumentHTML(w io.Writer, doc *Document) error {
	tmpl, err := printTemplate()
	if err != nil {
		return &TemplateError{Template: "print.tmpl", Cause: err}
	}
	if err := tmpl.ExecuteTemplate(w, "print", doc); err != nil {
		return &TemplateError{Template: "print.tmpl", Cause: err}
	}
	return nil
}
