package extraction

import (
	"context"
	"strings"
)

// Client is the extraction service boundary: it takes raw image bytes and a
// media type and returns the service's free-form text output, which is
// expected (but not guaranteed) to contain one JSON object in the bill
// schema. Normalize handles the guarantee part.
type Client interface {
	Extract(ctx context.Context, image []byte, mediaType string) (string, error)
}

// MediaTypeFor selects the declared image media type by filename extension.
// Only PNG and JPEG uploads are accepted by the upload handler, and anything
// that is not a .png is declared as JPEG.
func MediaTypeFor(filename string) string {
	if strings.HasSuffix(strings.ToLower(filename), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}
