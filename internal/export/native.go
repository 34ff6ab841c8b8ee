package export

import (
	"bytes"
	"context"
	"log"
	"math"
	"strings"

	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jung-kurt/gofpdf"
)

const profileImageName = "profile"

// imageTypes maps the data URI media types gofpdf can embed to its image type names
var imageTypes = map[string]string{
	"image/png":  "PNG",
	"image/jpeg": "JPG",
	"image/jpg":  "JPG",
	"image/gif":  "GIF",
}

// NativeEngine draws the document tree directly with gofpdf. It needs no external
// processes and is the default engine.
type NativeEngine struct{}

// NewNativeEngine returns a gofpdf engine
func NewNativeEngine() *NativeEngine {
	return &NativeEngine{}
}

// Close is a no-op
func (e *NativeEngine) Close() error {
	return nil
}

// Render draws doc and returns the PDF bytes
func (e *NativeEngine) Render(ctx context.Context, doc *rendering.Document) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "pt", pageSize(doc.PageSize), "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetCellMargin(0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(doc.Title, true)
	pdf.SetAuthor(doc.Author, true)
	pdf.SetCreator("resume-builder", true)

	w := &writer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	w.pageW, w.pageH = pdf.GetPageSize()

	for _, p := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		w.drawPage(p)
	}

	if err := pdf.Error(); err != nil {
		return nil, &EngineError{Engine: EngineNative, Message: "failed to draw document", Cause: err}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &EngineError{Engine: EngineNative, Message: "failed to write document", Cause: err}
	}
	return NewResult(buf.Bytes()), nil
}

func pageSize(name string) string {
	if name == "" {
		return "A4"
	}
	return name
}

// writer tracks drawing state for one document
type writer struct {
	pdf   *gofpdf.Fpdf
	tr    func(string) string
	pageW float64
	pageH float64

	firstPage int     // page the current document page starts on
	bodyTop   float64 // y where the columns start on the first page
	columns   []rendering.Column
}

func (w *writer) drawPage(p rendering.Page) {
	w.pdf.AddPage()
	w.firstPage = w.pdf.PageNo()
	w.columns = p.Columns

	w.bodyTop = w.drawHeader(p.Header)
	w.fillColumns(w.bodyTop)

	x := 0.0
	for _, c := range p.Columns {
		width := w.pageW * c.WidthRatio
		w.drawColumn(c, x, width)
		x += width
	}
	w.pdf.SetPage(w.pdf.PageCount())
}

// drawHeader draws the header band and returns its bottom edge
func (w *writer) drawHeader(h rendering.Header) float64 {
	nameH := lineHeight(h.Name.Style)
	subtitleH := lineHeight(h.Subtitle.Style)
	textH := nameH + subtitleH

	contentH := textH
	hasImage := h.Image != ""
	if hasImage {
		contentH = math.Max(contentH, h.ImageSize)
	}
	bandH := h.Padding + contentH + h.PaddingBottom

	setFill(w.pdf, h.Fill)
	w.pdf.RoundedRect(0, 0, w.pageW, bandH, h.CornerRadius, "3", "F")

	textX := h.Padding
	if hasImage && w.drawProfileImage(h, h.Padding, h.Padding) {
		textX = h.Padding + h.ImageSize + h.TextIndent
	}

	textW := w.pageW - textX - h.Padding
	y := h.Padding + (contentH-textH)/2
	w.drawLine(h.Name, textX, y, textW)
	w.drawLine(h.Subtitle, textX, y+nameH, textW)

	return bandH
}

// drawProfileImage draws the image clipped to a bordered circle. Images gofpdf cannot
// decode are skipped.
func (w *writer) drawProfileImage(h rendering.Header, x, y float64) bool {
	mediaType, data, err := form.DecodeDataURI(h.Image)
	if err != nil {
		log.Printf("[export] skipping profile image: %v", err)
		return false
	}
	imageType, ok := imageTypes[strings.ToLower(mediaType)]
	if !ok {
		log.Printf("[export] skipping profile image: unsupported type %s", mediaType)
		return false
	}

	w.pdf.RegisterImageOptionsReader(profileImageName, gofpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	if err := w.pdf.Error(); err != nil {
		log.Printf("[export] skipping profile image: %v", err)
		w.pdf.ClearError()
		return false
	}

	r := h.ImageSize / 2
	cx, cy := x+r, y+r

	w.pdf.ClipCircle(cx, cy, r, false)
	w.pdf.ImageOptions(profileImageName, x, y, h.ImageSize, h.ImageSize, false, gofpdf.ImageOptions{ImageType: imageType}, 0, "")
	w.pdf.ClipEnd()

	if h.BorderWidth > 0 {
		setDraw(w.pdf, h.ImageBorder)
		w.pdf.SetLineWidth(h.BorderWidth)
		w.pdf.Circle(cx, cy, r, "D")
	}
	return true
}

// fillColumns paints column backgrounds on the current page from top down
func (w *writer) fillColumns(top float64) {
	x := 0.0
	for _, c := range w.columns {
		width := w.pageW * c.WidthRatio
		if c.Fill != nil {
			setFill(w.pdf, *c.Fill)
			w.pdf.Rect(x, top, width, w.pageH-top, "F")
		}
		x += width
	}
}

// columnCursor flows one column's content down the page and onto following pages
type columnCursor struct {
	w      *writer
	col    rendering.Column
	page   int
	y      float64
	bottom float64
}

func (w *writer) drawColumn(c rendering.Column, x, width float64) {
	cur := &columnCursor{
		w:      w,
		col:    c,
		page:   w.firstPage,
		y:      w.bodyTop + c.PaddingTop,
		bottom: w.pageH - c.Padding,
	}
	w.pdf.SetPage(cur.page)

	innerX := x + c.Padding
	innerW := width - 2*c.Padding

	for _, b := range c.Blocks {
		cur.text(b.Title, innerX, innerW)
		for _, el := range b.Elements {
			if el.Type == rendering.ElementBullet {
				cur.bullet(el, innerX, innerW)
			} else {
				cur.text(el, innerX, innerW)
			}
		}
		cur.y += b.SpaceAfter
	}
}

// reserve moves to the next page when h does not fit above the bottom margin
func (c *columnCursor) reserve(h float64) {
	if c.y+h <= c.bottom {
		return
	}
	c.page++
	if c.page > c.w.pdf.PageCount() {
		c.w.pdf.AddPage()
		c.w.fillColumns(0)
	} else {
		c.w.pdf.SetPage(c.page)
	}
	c.y = c.col.Padding
}

func (c *columnCursor) text(el rendering.Element, x, width float64) {
	c.lines(el, x, width)
	c.y += el.Style.SpaceAfter
}

func (c *columnCursor) bullet(el rendering.Element, x, width float64) {
	pdf := c.w.pdf
	setFont(pdf, el.Style)
	setText(pdf, el.Style.Color)
	mark := c.w.tr("•")
	markW := pdf.GetStringWidth(mark) + el.Style.BulletGap

	c.reserve(lineHeight(el.Style))
	pdf.SetXY(x, c.y)
	pdf.CellFormat(markW, lineHeight(el.Style), mark, "", 0, "L", false, 0, "")

	if c.lines(el, x+markW, width-markW) == 0 {
		c.y += lineHeight(el.Style)
	}
	c.y += el.Style.SpaceAfter
}

// lines draws el wrapped to width, one cell per line, and returns the line count
func (c *columnCursor) lines(el rendering.Element, x, width float64) int {
	pdf := c.w.pdf
	setFont(pdf, el.Style)
	setText(pdf, el.Style.Color)

	lh := lineHeight(el.Style)
	text := c.w.tr(el.Text)
	if text == "" {
		return 0
	}
	lines := pdf.SplitLines([]byte(text), width)
	for _, line := range lines {
		c.reserve(lh)
		pdf.SetXY(x, c.y)
		pdf.CellFormat(width, lh, string(line), "", 0, "L", false, 0, "")
		c.y += lh
	}
	return len(lines)
}

// drawLine draws a single unwrapped element at a fixed position
func (w *writer) drawLine(el rendering.Element, x, y, width float64) {
	if el.Text == "" {
		return
	}
	setFont(w.pdf, el.Style)
	setText(w.pdf, el.Style.Color)
	w.pdf.SetXY(x, y)
	w.pdf.CellFormat(width, lineHeight(el.Style), w.tr(el.Text), "", 0, "L", false, 0, "")
}

func lineHeight(s rendering.Style) float64 {
	lh := s.LineHeight
	if lh <= 0 {
		lh = 1.2
	}
	return s.Font.Size * lh
}

func setFont(pdf *gofpdf.Fpdf, s rendering.Style) {
	pdf.SetFont(s.Font.Family, s.Font.Style, s.Font.Size)
}

func setText(pdf *gofpdf.Fpdf, c rendering.Color) {
	pdf.SetTextColor(c.R, c.G, c.B)
}

func setFill(pdf *gofpdf.Fpdf, c rendering.Color) {
	pdf.SetFillColor(c.R, c.G, c.B)
}

func setDraw(pdf *gofpdf.Fpdf, c rendering.Color) {
	pdf.SetDrawColor(c.R, c.G, c.B)
}
