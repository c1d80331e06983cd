package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Addr          string
	SessionTTL    time.Duration
	SweepSchedule string
	MaxUploadMB   int64
}

type WebhookConfig struct {
	Timeout      time.Duration
	MaxErrorBody int64
	UserAgent    string
}

type LogConfig struct {
	Level  string
	Pretty bool
}

type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

// CLIConfig holds the inputs of a one-shot submission. Image being set selects CLI mode.
type CLIConfig struct {
	Image   string
	Prompt  string
	Webhook string
	Out     string
}

type Config struct {
	Server   ServerConfig
	Webhook  WebhookConfig
	Log      LogConfig
	Telegram TelegramConfig
	CLI      CLIConfig
}

// Flags returns the command line flags understood by Load.
func Flags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("imghook", pflag.ContinueOnError)

	flags.String("config", "", "path to a config file (default ./config.toml)")
	flags.String("addr", "", "listen address of the web form")
	flags.String("log-level", "", "log level: debug, info or warn")
	flags.String("image", "", "submit this image once instead of serving the web form")
	flags.String("prompt", "", "prompt sent along with --image")
	flags.String("webhook", "", "webhook URL for --image")
	flags.String("out", "", "directory to download the returned image into")

	return flags
}

var flagKeys = map[string]string{
	"server.addr": "addr",
	"log.level":   "log-level",
	"cli.image":   "image",
	"cli.prompt":  "prompt",
	"cli.webhook": "webhook",
	"cli.out":     "out",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.session_ttl", "30m")
	v.SetDefault("server.sweep_schedule", "@every 1m")
	v.SetDefault("server.max_upload_mb", 20)
	v.SetDefault("webhook.timeout", "0s")
	v.SetDefault("webhook.max_error_body", 4096)
	v.SetDefault("webhook.user_agent", "imghook/1.0")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", 0)
}

// Load reads configuration from defaults, an optional .env file, config.toml, IMGHOOK_* environment
// variables and flags, in increasing order of precedence. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("imghook")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := ""
	if flags != nil {
		configPath, _ = flags.GetString("config")

		for key, name := range flagKeys {
			if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
				return nil, fmt.Errorf("error binding flag %s: %w", name, err)
			}
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	log.Debug().Str("path", configPath).Msg("reading config file...")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
		log.Debug().Msg("no config file found, using defaults and environment")
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:          v.GetString("server.addr"),
			SessionTTL:    v.GetDuration("server.session_ttl"),
			SweepSchedule: v.GetString("server.sweep_schedule"),
			MaxUploadMB:   v.GetInt64("server.max_upload_mb"),
		},
		Webhook: WebhookConfig{
			Timeout:      v.GetDuration("webhook.timeout"),
			MaxErrorBody: v.GetInt64("webhook.max_error_body"),
			UserAgent:    v.GetString("webhook.user_agent"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Pretty: v.GetBool("log.pretty"),
		},
		Telegram: TelegramConfig{
			BotToken: v.GetString("telegram.bot_token"),
			ChatID:   v.GetInt64("telegram.chat_id"),
		},
		CLI: CLIConfig{
			Image:   v.GetString("cli.image"),
			Prompt:  v.GetString("cli.prompt"),
			Webhook: v.GetString("cli.webhook"),
			Out:     v.GetString("cli.out"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Server.SessionTTL <= 0 {
		return errors.New("server.session_ttl must be positive")
	}
	if c.Server.MaxUploadMB <= 0 {
		return errors.New("server.max_upload_mb must be positive")
	}
	if c.Webhook.Timeout < 0 {
		return errors.New("webhook.timeout must not be negative")
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == 0 {
		return errors.New("telegram.chat_id is required when telegram.bot_token is set")
	}

	return nil
}

// TelegramEnabled reports whether notifications should be mirrored to Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != ""
}
