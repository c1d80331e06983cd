package port

import (
	"context"
	"imghook/internal/core/domain"
)

type Previewer interface {
	// Preview renders the image into a displayable data URL.
	Preview(ctx context.Context, image domain.Image) (string, error)
}
