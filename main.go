package main

import (
	"context"
	"errors"
	"imghook/internal/adapters/handler"
	"imghook/internal/adapters/notifier"
	"imghook/internal/adapters/preview"
	"imghook/internal/adapters/sender"
	"imghook/internal/adapters/webhook"
	"imghook/internal/config"
	"imghook/internal/core/port"
	"imghook/internal/core/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-telegram/bot"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("invalid arguments")
	}

	log.Info().Msg("reading config...")
	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	setupLogging(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := webhook.NewClient(&http.Client{}, cfg.Webhook.UserAgent, cfg.Webhook.MaxErrorBody)
	previewer := preview.NewDataURL()
	mirror := telegramMirror(cfg.Telegram)

	if cfg.CLI.Image != "" {
		if err := runOnce(ctx, cfg, client, previewer, mirror); err != nil {
			log.Error().Err(err).Msg("submission failed")
			os.Exit(1)
		}
		return
	}

	if err := serve(ctx, cfg, client, previewer, mirror); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func setupLogging(cfg config.LogConfig) {
	var logLevel zerolog.Level

	switch cfg.Level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "info":
		logLevel = zerolog.InfoLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// telegramMirror returns nil when no bot is configured or it cannot be created.
func telegramMirror(cfg config.TelegramConfig) port.Notifier {
	if cfg.BotToken == "" {
		return nil
	}

	b, err := bot.New(cfg.BotToken)
	if err != nil {
		log.Error().Err(err).Msg("failed initializing telegram bot, notifications will not be mirrored")
		return nil
	}

	log.Info().Int64("chatID", cfg.ChatID).Msg("mirroring notifications to telegram")

	return sender.NewTelegramNotifier(b, cfg.ChatID)
}

func serve(ctx context.Context, cfg *config.Config, client port.Webhook, previewer port.Previewer,
	mirror port.Notifier) error {
	gin.SetMode(gin.ReleaseMode)

	sessions := handler.NewSessions(func(id string) *handler.Session {
		toasts := notifier.NewToaster(notifier.DefaultToastLimit)
		form := service.NewForm(previewer)

		return &handler.Session{
			ID:         id,
			Controller: service.NewController(form, client, notifier.NewFanout(toasts, mirror), cfg.Webhook.Timeout),
			Toasts:     toasts,
		}
	}, cfg.Server.SessionTTL)

	sweeper, err := sessions.Schedule(cfg.Server.SweepSchedule)
	if err != nil {
		return err
	}
	defer sweeper.Stop()

	router, err := handler.NewRouter(handler.NewFormHandler(sessions, cfg.Server.MaxUploadMB<<20))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("web form listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
