package service

import (
	"context"
	"imghook/internal/core/domain"
	"imghook/internal/core/port"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Form holds the state of one image submission form. Setters may be called concurrently with a
// running submission; results and previews that belong to an outdated attempt or image are dropped.
type Form struct {
	mu        sync.Mutex
	previewer port.Previewer

	image      *domain.Image
	preview    string
	prompt     string
	webhookURL string
	loopback   bool
	result     domain.Result

	// generation changes with every image change and reset, attempt with every submission and reset.
	generation uint64
	attempt    uint64
}

func NewForm(previewer port.Previewer) *Form {
	return &Form{
		previewer: previewer,
		result:    domain.Idle(),
	}
}

// SetImage replaces the selected image and starts rendering its preview in the background. The returned
// channel is closed once the preview has been stored or discarded.
func (f *Form) SetImage(ctx context.Context, image domain.Image) <-chan struct{} {
	done := make(chan struct{})

	f.mu.Lock()
	f.generation++
	generation := f.generation
	f.preview = ""
	if image.Empty() {
		f.image = nil
		f.mu.Unlock()
		close(done)
		return done
	}
	f.image = &image
	f.mu.Unlock()

	l := log.With().Str("image", image.Name).Int("bytes", len(image.Data)).Logger()

	go func() {
		defer close(done)

		preview, err := f.previewer.Preview(ctx, image)
		if err != nil {
			l.Warn().Err(err).Msg("could not render preview")
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()

		if generation != f.generation {
			l.Debug().Msg("image changed, discarding preview")
			return
		}

		f.preview = preview
		l.Debug().Msg("preview ready")
	}()

	return done
}

func (f *Form) SetPrompt(prompt string) {
	f.mu.Lock()
	f.prompt = prompt
	f.mu.Unlock()
}

// SetWebhookURL stores the target and reports whether it points at a loopback address.
func (f *Form) SetWebhookURL(webhookURL string) bool {
	loopback := domain.IsLoopback(webhookURL)

	f.mu.Lock()
	f.webhookURL = webhookURL
	f.loopback = loopback
	f.mu.Unlock()

	return loopback
}

// Reset clears every field. Submissions and previews still in flight are discarded when they finish.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.generation++
	f.attempt++
	f.image = nil
	f.preview = ""
	f.prompt = ""
	f.webhookURL = ""
	f.loopback = false
	f.result = domain.Idle()
}

func (f *Form) Snapshot() domain.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := domain.Snapshot{
		Preview:    f.preview,
		Prompt:     f.prompt,
		WebhookURL: f.webhookURL,
		Loopback:   f.loopback,
		Result:     f.result,
	}
	if f.image != nil {
		s.ImageName = f.image.Name
		s.ImageSize = len(f.image.Data)
	}

	return s
}

type submission struct {
	attempt    uint64
	image      domain.Image
	prompt     string
	webhookURL string
	loopback   bool
}

// begin checks the preconditions of a submission and moves the form into the loading state.
func (f *Form) begin() (submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.image.Empty() || strings.TrimSpace(f.prompt) == "" || strings.TrimSpace(f.webhookURL) == "" {
		return submission{}, domain.ErrMissingInput
	}

	if f.result.IsLoading() {
		return submission{}, domain.ErrSubmissionInProgress
	}

	f.attempt++
	f.result = domain.Loading(f.attempt)

	return submission{
		attempt:    f.attempt,
		image:      *f.image,
		prompt:     f.prompt,
		webhookURL: strings.TrimSpace(f.webhookURL),
		loopback:   f.loopback,
	}, nil
}

// finish stores the outcome of an attempt. It returns false if the attempt is no longer current.
func (f *Form) finish(result domain.Result) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if result.Attempt != f.attempt {
		return false
	}

	f.result = result
	return true
}
