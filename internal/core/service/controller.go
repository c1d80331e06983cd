package service

import (
	"context"
	"errors"
	"fmt"
	"imghook/internal/core/domain"
	"imghook/internal/core/port"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Controller submits a Form to its webhook target and records the outcome on the form.
type Controller struct {
	form     *Form
	webhook  port.Webhook
	notifier port.Notifier
	timeout  time.Duration
}

// NewController creates a Controller. A zero timeout leaves webhook requests unbounded.
func NewController(form *Form, webhook port.Webhook, notifier port.Notifier, timeout time.Duration) *Controller {
	return &Controller{
		form:     form,
		webhook:  webhook,
		notifier: notifier,
		timeout:  timeout,
	}
}

func (c *Controller) Form() *Form {
	return c.form
}

// Submit posts the form's image and prompt to its webhook target. It blocks until the webhook has answered
// and the result is stored on the form; the form never stays in the loading state once Submit returns.
func (c *Controller) Submit(ctx context.Context) (err error) {
	sub, err := c.form.begin()
	if err != nil {
		log.Debug().Err(err).Msg("submission rejected")
		c.notifier.Error(ctx, err.Error())
		return err
	}

	l := log.With().
		Uint64("attempt", sub.attempt).
		Str("webhookURL", sub.webhookURL).
		Str("image", sub.image.Name).
		Int("bytes", len(sub.image.Data)).
		Logger()

	l.Info().Msg("submitting to webhook")

	if sub.loopback {
		c.notifier.Warn(ctx, domain.LoopbackWarning)
	}

	var imageURL string

	defer func() {
		if r := recover(); r != nil {
			err = &domain.TransportError{Err: fmt.Errorf("webhook call panicked: %v", r)}
		}
		c.complete(ctx, l, sub.attempt, imageURL, err)
	}()

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	imageURL, err = c.webhook.Post(callCtx, sub.webhookURL, sub.image, sub.prompt)
	if err == nil && imageURL == "" {
		err = &domain.ContractError{}
	}

	return err
}

func (c *Controller) complete(ctx context.Context, l zerolog.Logger, attempt uint64, imageURL string, err error) {
	if err != nil {
		if !c.form.finish(domain.Failed(attempt, err)) {
			l.Warn().Err(err).Msg("form was reset, discarding failed attempt")
			return
		}

		kind := domain.KindOf(err)
		l.Error().Err(err).Str("kind", string(kind)).Msg("submission failed")

		if errors.Is(err, context.DeadlineExceeded) {
			l.Warn().Dur("timeout", c.timeout).Msg("webhook did not answer in time")
		}

		c.notifier.Error(ctx, err.Error())
		return
	}

	if !c.form.finish(domain.Succeeded(attempt, imageURL)) {
		l.Warn().Str("imageURL", imageURL).Msg("form was reset, discarding result")
		return
	}

	l.Info().Str("imageURL", imageURL).Msg("submission succeeded")
	c.notifier.Success(ctx, domain.SuccessMessage)
}
