package main

import (
	"context"
	"errors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sendgrid/sendgrid-go"
	log "github.com/sirupsen/logrus"
	"net/http"
	"os"
	"os/signal"
	"paypal-virtual-terminal/internal/charge"
	"paypal-virtual-terminal/internal/notifications"
	"paypal-virtual-terminal/internal/paypal"
	"strconv"
	"syscall"
	"time"
)

func main() {
	log.Println("starting paypal virtual terminal")

	cfg, err := ReadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("parsing log level: %v", err)
	}
	log.SetLevel(level)

	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		log.Fatalf("converting port to integer: %v", err)
	}

	nr, err := newMonitoring(cfg)
	if err != nil {
		log.Fatalf("creating new relic application: %v", err)
	}

	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: newrelic.NewRoundTripper(http.DefaultTransport),
	}
	client := paypal.NewClient(cfg.PayPalBaseURL(), cfg.ClientID, cfg.Secret, httpClient)

	var notifier charge.Notifier
	if cfg.ReceiptsEnabled() {
		notifier = notifications.NewSender(sendgrid.NewSendClient(cfg.SendGridAPIKey), cfg.ReceiptEmail)
	}

	log.WithFields(log.Fields{
		"environment": cfg.Environment,
		"base_url":    cfg.PayPalBaseURL(),
		"receipts":    cfg.ReceiptsEnabled(),
		"newrelic":    nr != nil,
	}).Info("config loaded")

	server := NewServer(port, cfg, charge.NewService(client, notifier, cfg.PayeeEmail), nr)

	go func() {
		if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("shutting down server: %v", err)
	}
	if nr != nil {
		nr.Shutdown(5 * time.Second)
	}
}

// newMonitoring returns nil when no license key is configured.
func newMonitoring(cfg *Config) (*newrelic.Application, error) {
	if cfg.NewRelicLicense == "" {
		return nil, nil
	}

	return newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.NewRelicAppName),
		newrelic.ConfigLicense(cfg.NewRelicLicense),
	)
}
