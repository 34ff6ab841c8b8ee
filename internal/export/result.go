package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// Result is a rendered resume PDF. The bytes are shared by every download of the
// same build and never modified.
type Result struct {
	data []byte
}

// NewResult wraps PDF bytes produced by an engine
func NewResult(data []byte) *Result {
	return &Result{data: data}
}

// Bytes returns the PDF content
func (r *Result) Bytes() []byte {
	return r.data
}

// Reader returns a reader over the PDF content
func (r *Result) Reader() *bytes.Reader {
	return bytes.NewReader(r.data)
}

// WriteTo writes the PDF to w, e.g. a download response or resume.pdf on disk.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// Len returns the size of the PDF in bytes
func (r *Result) Len() int {
	return len(r.data)
}

// Pages parses the PDF and returns its page count. A long project list flows onto
// extra pages, so this is reported after exports.
func (r *Result) Pages() (int, error) {
	reader, err := pdf.NewReader(r.Reader(), int64(len(r.data)))
	if err != nil {
		return 0, fmt.Errorf("failed to parse PDF: %w", err)
	}
	return reader.NumPage(), nil
}
