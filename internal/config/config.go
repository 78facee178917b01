package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Notifier transports understood by the composition root.
const (
	TransportSMTP     = "smtp"
	TransportSendGrid = "sendgrid"
	TransportLog      = "log"
)

const (
	minNotifierTimeout = time.Second
	maxNotifierTimeout = 30 * time.Second
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName            string
	AppEnv             string
	AppPort            string
	DatabaseDriver     string
	DatabaseURL        string
	StoreEnabled       bool
	NotifierTransport  string
	NotifierTo         string
	NotifierFrom       string
	NotifierFromName   string
	NotifierTimezone   string
	NotifierTimeout    time.Duration
	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	SendGridAPIKey     string
	SendGridBaseURL    string
	CORSAllowedOrigins []string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// IsDevelopment reports whether the service runs in the development environment.
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PORTFOLIO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Portfolio API")
	v.SetDefault("app.env", "development")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.url", "portfolio.db")
	v.SetDefault("store.enabled", true)
	v.SetDefault("notifier.transport", TransportSMTP)
	v.SetDefault("notifier.timezone", "America/New_York")
	v.SetDefault("notifier.timeout", "15s")
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("sendgrid.base_url", "https://api.sendgrid.com")

	// PORT is what most hosting platforms inject.
	_ = v.BindEnv("app.port", "PORTFOLIO_APP_PORT", "PORT")
	v.SetDefault("app.port", "8080")

	timeoutString := v.GetString("notifier.timeout")
	timeout, err := time.ParseDuration(timeoutString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid notifier timeout: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            strings.ToLower(v.GetString("app.env")),
		AppPort:           v.GetString("app.port"),
		DatabaseDriver:    strings.ToLower(strings.TrimSpace(v.GetString("database.driver"))),
		DatabaseURL:       strings.TrimSpace(v.GetString("database.url")),
		StoreEnabled:      v.GetBool("store.enabled"),
		NotifierTransport: strings.ToLower(strings.TrimSpace(v.GetString("notifier.transport"))),
		NotifierTo:        strings.TrimSpace(v.GetString("notifier.to")),
		NotifierFrom:      strings.TrimSpace(v.GetString("notifier.from")),
		NotifierFromName:  strings.TrimSpace(v.GetString("notifier.from_name")),
		NotifierTimezone:  strings.TrimSpace(v.GetString("notifier.timezone")),
		NotifierTimeout:   clampTimeout(timeout),
		SMTPHost:          strings.TrimSpace(v.GetString("smtp.host")),
		SMTPPort:          v.GetInt("smtp.port"),
		SMTPUsername:      strings.TrimSpace(v.GetString("smtp.username")),
		SMTPPassword:      strings.ReplaceAll(v.GetString("smtp.password"), " ", ""),
		SendGridAPIKey:    strings.TrimSpace(v.GetString("sendgrid.api_key")),
		SendGridBaseURL:   strings.TrimRight(strings.TrimSpace(v.GetString("sendgrid.base_url")), "/"),
	}

	cfg.CORSAllowedOrigins = splitAndTrim(v.GetString("cors.allowed_origins"))
	if len(cfg.CORSAllowedOrigins) == 0 && cfg.IsDevelopment() {
		cfg.CORSAllowedOrigins = []string{"http://localhost:3000"}
	}

	if cfg.NotifierFrom == "" {
		cfg.NotifierFrom = cfg.SMTPUsername
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}

	if c.StoreEnabled && c.DatabaseURL == "" {
		return fmt.Errorf("database url must be provided when the contact store is enabled")
	}

	switch c.NotifierTransport {
	case TransportLog:
		return nil
	case TransportSMTP:
		if c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("smtp username and password must be provided")
		}
		if c.SMTPHost == "" || c.SMTPPort <= 0 {
			return fmt.Errorf("smtp host and port must be provided")
		}
	case TransportSendGrid:
		if c.SendGridAPIKey == "" {
			return fmt.Errorf("sendgrid api key must be provided")
		}
	default:
		return fmt.Errorf("unsupported notifier transport %q", c.NotifierTransport)
	}

	if c.NotifierTo == "" {
		return fmt.Errorf("notifier destination address must be provided")
	}
	if c.NotifierFrom == "" {
		return fmt.Errorf("notifier sender address must be provided")
	}

	return nil
}

func clampTimeout(d time.Duration) time.Duration {
	if d < minNotifierTimeout {
		return minNotifierTimeout
	}
	if d > maxNotifierTimeout {
		return maxNotifierTimeout
	}
	return d
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
