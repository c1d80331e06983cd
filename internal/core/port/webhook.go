package port

import (
	"context"
	"imghook/internal/core/domain"
)

type Webhook interface {
	// Post sends the image and prompt to the webhook at url as a multipart form and returns the image URL
	// from its JSON response. Failures are reported as *domain.TransportError, *domain.StatusError or
	// *domain.ContractError.
	Post(ctx context.Context, url string, image domain.Image, prompt string) (string, error)
}
