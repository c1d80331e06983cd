package domain

import "errors"

var (
	ErrMissingInput         = errors.New("please provide an image, prompt, and webhook URL")
	ErrSubmissionInProgress = errors.New("a submission is already in progress")
	ErrMissingImageURL      = errors.New("response did not contain an image URL")
	ErrEmptyImage           = errors.New("empty image")
)

const (
	// FieldImage and FieldPrompt are the multipart keys the webhook receives.
	FieldImage  = "image"
	FieldPrompt = "prompt"

	LoopbackWarning = "webhook URL points to a loopback address; it is called from the imghook server, " +
		"not from your browser"
	SuccessMessage = "image received"
)
