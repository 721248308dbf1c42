package main

import (
	"errors"
	"fmt"
	"github.com/ardanlabs/conf"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"paypal-virtual-terminal/internal/paypal"
	"strings"
	"time"
)

const namespace = "VT"

type Config struct {
	Port            string        `conf:"default:5000,env:PORT"`
	LogLevel        string        `conf:"default:info,env:LOG_LEVEL"`
	ClientID        string        `conf:"env:PAYPAL_CLIENT_ID"`
	Secret          string        `conf:"env:PAYPAL_SECRET,mask"`
	Environment     string        `conf:"default:sandbox,env:PAYPAL_ENVIRONMENT"`
	BaseURL         string        `conf:"env:PAYPAL_BASE_URL"`
	PayeeEmail      string        `conf:"env:PAYEE_EMAIL"`
	Currency        string        `conf:"default:USD,env:CURRENCY"`
	HTTPTimeout     time.Duration `conf:"default:0s,env:HTTP_TIMEOUT"`
	SendGridAPIKey  string        `conf:"env:SENDGRID_API_KEY,mask"`
	ReceiptEmail    string        `conf:"env:RECEIPT_EMAIL"`
	NewRelicLicense string        `conf:"env:NEWRELIC_LICENSE,mask"`
	NewRelicAppName string        `conf:"default:paypal-virtual-terminal,env:NEWRELIC_APP_NAME"`
}

// ReadConfig loads .env if present, then parses flags from args and VT_* environment variables.
func ReadConfig(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	var cfg Config
	if err := conf.Parse(args, namespace, &cfg); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, uerr := conf.Usage(namespace, &cfg)
			if uerr != nil {
				return nil, fmt.Errorf("generating usage: %w", uerr)
			}
			fmt.Println(usage)
		}
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.Environment != paypal.EnvironmentSandbox && cfg.Environment != paypal.EnvironmentLive {
		return nil, fmt.Errorf("parsing config: environment must be %q or %q, got %q",
			paypal.EnvironmentSandbox, paypal.EnvironmentLive, cfg.Environment)
	}

	return &cfg, nil
}

// PayPalBaseURL is the explicit override when set, otherwise the host for the environment.
func (c *Config) PayPalBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return paypal.BaseURL(c.Environment)
}

func (c *Config) ReceiptsEnabled() bool {
	return c.SendGridAPIKey != "" && c.ReceiptEmail != ""
}
