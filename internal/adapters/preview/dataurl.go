package preview

import (
	"context"
	"encoding/base64"
	"imghook/internal/adapters/file"
	"imghook/internal/core/domain"
	"strings"
)

// DataURL renders images as base64 data URLs that browsers can display inline.
type DataURL struct{}

func NewDataURL() *DataURL {
	return &DataURL{}
}

func (d *DataURL) Preview(ctx context.Context, image domain.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if image.Empty() {
		return "", domain.ErrEmptyImage
	}

	contentType := file.ContentType(image.ContentType, image.Data)

	sb := &strings.Builder{}
	sb.Grow(len("data:;base64,") + len(contentType) + base64.StdEncoding.EncodedLen(len(image.Data)))
	sb.WriteString("data:")
	sb.WriteString(contentType)
	sb.WriteString(";base64,")
	sb.WriteString(base64.StdEncoding.EncodeToString(image.Data))

	return sb.String(), nil
}
