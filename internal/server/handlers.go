package server

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/page.tmpl
var pageFS embed.FS

// maxResumeBodyBytes bounds a PUT /api/resume body. Images are base64 in the record.
const maxResumeBodyBytes = 8 << 20

// fieldLabels are the form labels and input hints of every editable field
var fieldLabels = map[string]struct{ Label, Hint string }{
	form.FieldName:            {"Name", ""},
	form.FieldSubtitle:        {"Subtitle", ""},
	form.FieldPhone:           {"Phone", ""},
	form.FieldEmail:           {"Email", ""},
	form.FieldAddress:         {"Address", ""},
	form.FieldCareerObjective: {"Career Objective", ""},
	form.FieldLinks:           {"Links", "One per line: name, url"},
	form.FieldEducation:       {"Education", "One per line: degree, institution, date"},
	form.FieldProjects:        {"Projects", "One per line: title, description"},
	form.FieldTechnicalSkills: {"Technical Skills", "One per line"},
	form.FieldLanguages:       {"Languages", "One per line"},
}

// ResumeResponse is the JSON view of the record
type ResumeResponse struct {
	Resume   types.Resume `json:"resume"`
	Revision uint64       `json:"revision"`
}

// UpdateResponse reports the revision an update produced
type UpdateResponse struct {
	Field    string `json:"field"`
	Revision uint64 `json:"revision"`
}

type pageField struct {
	Name      string
	Label     string
	Hint      string
	Value     string
	Multiline bool
}

type pageData struct {
	Title    string
	Scalars  []pageField
	Lists    []pageField
	HasImage bool
	Preview  template.HTML
	Status   export.Status
	FileName string
}

var (
	pageOnce sync.Once
	pageTmpl *template.Template
	pageErr  error
)

func pageTemplate() (*template.Template, error) {
	pageOnce.Do(func() {
		pageTmpl, pageErr = template.ParseFS(pageFS, "templates/page.tmpl")
	})
	return pageTmpl, pageErr
}

// handlePage renders the form beside the live preview
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	resume, _ := s.store.Snapshot()

	proj, err := rendering.BuildBoth(r.Context(), resume)
	if err != nil {
		log.Printf("Error rendering page: %v", err)
		s.errorResponse(w, HTTPStatus(err), "Failed to render preview")
		return
	}

	data := pageData{
		Title:    proj.Document.Title,
		HasImage: resume.HasImage(),
		Preview:  proj.PreviewHTML,
		Status:   s.exporter.Status(),
		FileName: export.FileName,
	}
	multiline := map[string]bool{form.FieldCareerObjective: true}
	for _, name := range form.ScalarFields {
		data.Scalars = append(data.Scalars, s.pageField(resume, name, multiline[name]))
	}
	for _, name := range form.ListFields {
		data.Lists = append(data.Lists, s.pageField(resume, name, true))
	}

	tmpl, err := pageTemplate()
	if err != nil {
		log.Printf("Error parsing page template: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "page", data); err != nil {
		log.Printf("Error executing page template: %v", err)
	}
}

func (s *Server) pageField(resume types.Resume, name string, multiline bool) pageField {
	value, _ := form.FieldText(resume, name)
	meta := fieldLabels[name]
	return pageField{Name: name, Label: meta.Label, Hint: meta.Hint, Value: value, Multiline: multiline}
}

// handleSetField replaces one scalar field with the posted value
func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	value, err := formValue(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := s.store.SetScalar(name, value); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.updated(w, r, name)
}

// handleSetList rebuilds one list field from the posted textarea content
func (s *Server) handleSetList(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	value, err := formValue(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if err := s.store.SetList(name, value); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.updated(w, r, name)
}

// formValue returns the posted "value" parameter. An empty value is valid and
// clears the field; a missing one is not.
func formValue(r *http.Request) (string, error) {
	if err := r.ParseForm(); err != nil {
		return "", &ErrValidation{Field: "value", Message: "malformed form body"}
	}
	values, ok := r.PostForm["value"]
	if !ok || len(values) == 0 {
		return "", &ErrValidation{Field: "value", Message: "required"}
	}
	return values[0], nil
}

// handleUploadImage loads the uploaded file into the image field and waits for the result
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxImageBytes+1<<20)
	file, header, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "image too large")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	if err := <-s.store.LoadImage(r.Context(), file, header.Header.Get("Content-Type")); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.updated(w, r, "image")
}

// handleClearImage removes the profile image
func (s *Server) handleClearImage(w http.ResponseWriter, r *http.Request) {
	s.store.ClearImage()
	s.updated(w, r, "image")
}

// updated answers a successful form update: JSON for script clients, a redirect
// back to the page for plain form posts.
func (s *Server) updated(w http.ResponseWriter, r *http.Request, field string) {
	if s.verbose {
		log.Printf("[server] %s updated (revision %d)", field, s.store.Revision())
	}
	if wantsJSON(r) {
		s.jsonResponse(w, http.StatusOK, UpdateResponse{Field: field, Revision: s.store.Revision()})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func wantsJSON(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json"
}

// handlePreview returns the sanitized preview fragment of the current record
func (s *Server) handlePreview(w http.ResponseWriter, _ *http.Request) {
	resume, revision := s.store.Snapshot()

	html, err := rendering.PreviewHTML(resume)
	if err != nil {
		log.Printf("Error rendering preview: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to render preview")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Resume-Revision", strconv.FormatUint(revision, 10))
	_, _ = io.WriteString(w, string(rendering.SanitizePreview(html)))
}

// handleDownload serves the PDF of the record revision current at request time
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	res, err := s.exporter.Latest(r.Context())
	if err != nil {
		log.Printf("Error exporting PDF: %v", err)
		s.errorResponse(w, HTTPStatus(err), "Failed to export PDF: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(res.Len()))
	if _, err := res.WriteTo(w); err != nil {
		log.Printf("Error writing PDF: %v", err)
	}
}

// handleEvents streams export status changes as server-sent events
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	updates, stop := s.exporter.Watch()
	defer stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.shutdown:
			return
		case status, ok := <-updates:
			if !ok {
				sse.WriteError("exporter closed")
				return
			}
			if err := sse.WriteStatus(status); err != nil {
				return
			}
		}
	}
}

// handleGetResume returns the record and its revision
func (s *Server) handleGetResume(w http.ResponseWriter, _ *http.Request) {
	resume, revision := s.store.Snapshot()
	s.jsonResponse(w, http.StatusOK, ResumeResponse{Resume: resume, Revision: revision})
}

// handlePutResume replaces the whole record with a schema-valid JSON document
func (s *Server) handlePutResume(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxResumeBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	if !json.Valid(body) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	resume, err := schemas.DecodeResume(body)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.store.Replace(resume)
	next, revision := s.store.Snapshot()
	s.jsonResponse(w, http.StatusOK, ResumeResponse{Resume: next, Revision: revision})
}

// handleExportStatus returns the export status of the latest revision
func (s *Server) handleExportStatus(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.exporter.Status())
}
