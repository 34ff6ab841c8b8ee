package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractText(t *testing.T, data []byte) string {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	plain, err := r.GetPlainText()
	require.NoError(t, err)
	text, err := io.ReadAll(plain)
	require.NoError(t, err)
	return string(text)
}

func pageCount(t *testing.T, data []byte) int {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return r.NumPage()
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func renderNative(t *testing.T, r types.Resume) []byte {
	t.Helper()
	res, err := NewNativeEngine().Render(context.Background(), rendering.BuildDocument(r))
	require.NoError(t, err)
	return res.Bytes()
}

func TestNativeEngine_DefaultRecord(t *testing.T) {
	data := renderNative(t, types.DefaultResume())

	assert.Equal(t, "%PDF-", string(data[:5]))
	assert.Equal(t, 1, pageCount(t, data))

	text := extractText(t, data)
	for _, want := range []string{"Mohan Kumar", "Contact", "Links", "Technical Skills", "Language", "Career Objective", "Education", "Projects"} {
		assert.Contains(t, text, want)
	}
}

func TestNativeEngine_HiddenSections(t *testing.T) {
	r := types.Resume{Name: "Jane Doe"}
	r.Normalize()

	text := extractText(t, renderNative(t, r))
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Contact")
	for _, hidden := range []string{"Education", "Projects", "Technical Skills", "Language", "Links", "Career Objective"} {
		assert.NotContains(t, text, hidden)
	}
}

func TestNativeEngine_WithImage(t *testing.T) {
	r := types.DefaultResume()
	r.Image = pngDataURI(t)

	data := renderNative(t, r)
	assert.Contains(t, string(data), "/Subtype /Image")
	assert.Contains(t, extractText(t, data), "Mohan Kumar")
}

func TestNativeEngine_UndecodableImageIsSkipped(t *testing.T) {
	r := types.DefaultResume()
	r.Image = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not a png"))

	data := renderNative(t, r)
	assert.NotContains(t, string(data), "/Subtype /Image")
	assert.Contains(t, extractText(t, data), "Mohan Kumar")
}

func TestNativeEngine_UnsupportedImageTypeIsSkipped(t *testing.T) {
	r := types.DefaultResume()
	r.Image = "data:image/webp;base64,AAAA"

	data := renderNative(t, r)
	assert.NotContains(t, string(data), "/Subtype /Image")
}

func TestNativeEngine_FlowsOntoNextPage(t *testing.T) {
	r := types.DefaultResume()
	r.Projects = nil
	for i := 0; i < 60; i++ {
		r.Projects = append(r.Projects, types.Project{
			Title:       fmt.Sprintf("Project %d", i),
			Description: "A project description long enough to wrap across more than one line in the right column.",
		})
	}

	data := renderNative(t, r)
	assert.Greater(t, pageCount(t, data), 1)

	text := extractText(t, data)
	assert.Contains(t, text, "Project 0")
	assert.Contains(t, text, "Project 59")
}

func TestNativeEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewNativeEngine().Render(ctx, rendering.BuildDocument(types.DefaultResume()))
	assert.ErrorIs(t, err, context.Canceled)
}
