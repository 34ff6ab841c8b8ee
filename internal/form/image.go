package form

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"strings"
)

// LoadImage reads a selected image file in the background. When the read completes
// successfully the encoded data URI replaces the image field in a single update.
// On failure, empty input, a non-image type or cancellation the previous image is
// kept. The returned channel receives the outcome and is then closed.
//
// Overlapping loads are not ordered: whichever completes last wins.
func (s *Store) LoadImage(ctx context.Context, r io.Reader, mimeType string) <-chan error {
	done := make(chan error, 1)
	limit := s.maxImageBytes

	go func() {
		defer close(done)

		uri, err := EncodeDataURI(ctx, r, mimeType, limit)
		if err != nil {
			log.Printf("[form] image not loaded: %v", err)
			done <- err
			return
		}

		s.SetImage(uri)
		done <- nil
	}()

	return done
}

// EncodeDataURI reads r and returns it as a base64 data URI. The declared MIME type
// is used when it names an image; otherwise the type is sniffed from the content.
// A limit of zero or less disables the size check.
func EncodeDataURI(ctx context.Context, r io.Reader, mimeType string, limit int64) (string, error) {
	if r == nil {
		return "", &ImageError{Message: "no file selected"}
	}

	src := io.Reader(&ctxReader{ctx: ctx, r: r})
	if limit > 0 {
		src = io.LimitReader(src, limit+1)
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return "", &ImageError{Message: "failed to read file", Cause: err}
	}
	if len(data) == 0 {
		return "", &ImageError{Message: "file is empty"}
	}
	if limit > 0 && int64(len(data)) > limit {
		return "", &ImageError{Message: fmt.Sprintf("file exceeds %d bytes", limit)}
	}

	mediaType := imageMediaType(mimeType, data)
	if mediaType == "" {
		return "", &ImageError{Message: fmt.Sprintf("unsupported file type %q", mimeType)}
	}

	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeDataURI splits a base64 data URI into its media type and payload
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, &ImageError{Message: "not a data URI"}
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, &ImageError{Message: "malformed data URI"}
	}
	mediaType, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return "", nil, &ImageError{Message: "data URI is not base64 encoded"}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, &ImageError{Message: "invalid base64 payload", Cause: err}
	}
	return mediaType, data, nil
}

// imageMediaType returns the image/* media type for the upload or "" if it is not an image
func imageMediaType(declared string, data []byte) string {
	if declared != "" {
		mt, _, err := mime.ParseMediaType(declared)
		if err == nil && strings.HasPrefix(mt, "image/") {
			return mt
		}
		// browsers fall back to octet-stream when they cannot tell; anything else is a real type
		if err == nil && mt != "application/octet-stream" {
			return ""
		}
	}

	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	return ""
}

// ctxReader stops reading once ctx is done
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
