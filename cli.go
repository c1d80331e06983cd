package main

import (
	"context"
	"fmt"
	"imghook/internal/adapters/file"
	"imghook/internal/adapters/notifier"
	"imghook/internal/config"
	"imghook/internal/core/port"
	"imghook/internal/core/service"
	"os"

	"github.com/rs/zerolog/log"
)

// runOnce submits a single image from the command line and prints the returned image URL.
func runOnce(ctx context.Context, cfg *config.Config, client port.Webhook, previewer port.Previewer,
	mirror port.Notifier) error {
	image, err := file.ReadImage(cfg.CLI.Image)
	if err != nil {
		return err
	}

	form := service.NewForm(previewer)
	<-form.SetImage(ctx, image)
	form.SetPrompt(cfg.CLI.Prompt)
	form.SetWebhookURL(cfg.CLI.Webhook)

	controller := service.NewController(form, client, notifier.NewFanout(notifier.NewLog(), mirror), cfg.Webhook.Timeout)

	if err := controller.Submit(context.WithoutCancel(ctx)); err != nil {
		return err
	}

	imageURL := form.Snapshot().Result.ImageURL
	fmt.Fprintln(os.Stdout, imageURL)

	if cfg.CLI.Out == "" {
		return nil
	}

	data, err := file.DownloadFile(ctx, imageURL)
	if err != nil {
		return fmt.Errorf("error downloading result: %w", err)
	}

	path, err := file.SaveFile(cfg.CLI.Out, data)
	if err != nil {
		return fmt.Errorf("error saving result: %w", err)
	}

	log.Info().Str("path", path).Msg("saved result image")

	return nil
}
