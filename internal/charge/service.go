package charge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"paypal-virtual-terminal/internal/model"
	"paypal-virtual-terminal/internal/paypal"
	"strings"
	"time"
)

// Processor is the subset of the PayPal API a charge needs.
type Processor interface {
	AccessToken(ctx context.Context) (string, error)
	CreateOrder(ctx context.Context, token, requestID string, order paypal.Order) (*paypal.Response, error)
	CaptureOrder(ctx context.Context, token, requestID, orderID string) (*paypal.Response, error)
}

type Notifier interface {
	SendChargeReceipt(ctx context.Context, receipt model.Receipt) error
}

// receiptTimeout bounds how long a captured charge waits on its receipt.
const receiptTimeout = 5 * time.Second

type Service struct {
	processor      Processor
	notifier       Notifier
	payeeEmail     string
	receiptTimeout time.Duration
}

// NewService builds a charge service. notifier may be nil, and an empty
// payeeEmail leaves the payee to the API credentials' account.
func NewService(processor Processor, notifier Notifier, payeeEmail string) *Service {
	return &Service{
		processor:      processor,
		notifier:       notifier,
		payeeEmail:     payeeEmail,
		receiptTimeout: receiptTimeout,
	}
}

// NewRequestID returns a fresh idempotency key: unix millis plus eight hex chars of a random UUID.
func NewRequestID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), id[:8])
}

// Charge creates an order for c and captures it. On success the capture
// response is returned exactly as PayPal sent it. Every failure is a *PaymentError.
func (s *Service) Charge(ctx context.Context, c model.Charge) (json.RawMessage, error) {
	logger := log.WithFields(log.Fields{
		"amount":     c.Amount.StringFixed(2),
		"currency":   c.Currency,
		"card_last4": c.Card.LastFour(),
	})

	token, err := s.processor.AccessToken(ctx)
	if err != nil {
		logger.Errorf("fetching access token: %v", err)
		return nil, failed(tokenFailureDetails(err))
	}

	requestID := NewRequestID()
	logger = logger.WithField("request_id", requestID)

	created, err := s.processor.CreateOrder(ctx, token, requestID, buildOrder(c, s.payeeEmail))
	if err != nil {
		logger.Errorf("creating order: %v", err)
		return nil, failed(err.Error())
	}
	if !created.OK() {
		logger.WithField("status", created.StatusCode).Warn("order creation rejected")
		return nil, failed(string(created.Body))
	}

	var order paypal.OrderRef
	if err := json.Unmarshal(created.Body, &order); err != nil || order.ID == "" {
		logger.Error("order response carries no id")
		return nil, failed(string(created.Body))
	}
	logger = logger.WithField("order_id", order.ID)

	captured, err := s.processor.CaptureOrder(ctx, token, requestID, order.ID)
	if err != nil {
		logger.Errorf("capturing order: %v", err)
		return nil, failed(err.Error())
	}
	if !captured.OK() {
		logger.WithField("status", captured.StatusCode).Warn("capture rejected")
		return nil, failed(string(captured.Body))
	}

	logger.Info("payment captured")
	s.sendReceipt(ctx, logger, model.Receipt{OrderID: order.ID, Amount: c.Amount, Currency: c.Currency})

	return captured.Body, nil
}

func (s *Service) sendReceipt(ctx context.Context, logger *log.Entry, receipt model.Receipt) {
	if s.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.receiptTimeout)
	defer cancel()

	if err := s.notifier.SendChargeReceipt(ctx, receipt); err != nil {
		logger.Errorf("sending receipt: %v", err)
	}
}

func tokenFailureDetails(err error) string {
	var tokenErr *paypal.TokenError
	if errors.As(err, &tokenErr) {
		return "Token fetch failed: " + tokenErr.Body
	}
	return "Token fetch failed: " + err.Error()
}

func buildOrder(c model.Charge, payeeEmail string) paypal.Order {
	unit := paypal.PurchaseUnit{
		Amount: paypal.Amount{
			CurrencyCode: c.Currency,
			Value:        c.Amount.StringFixed(2),
		},
	}
	if payeeEmail != "" {
		unit.Payee = &paypal.Payee{EmailAddress: payeeEmail}
	}

	billing := c.Billing.WithDefaults()

	return paypal.Order{
		Intent:        paypal.IntentCapture,
		PurchaseUnits: []paypal.PurchaseUnit{unit},
		PaymentSource: paypal.PaymentSource{
			Card: paypal.Card{
				Number:       c.Card.Number,
				Expiry:       fmt.Sprintf("%04d-%02d", c.Card.ExpYear, c.Card.ExpMonth),
				SecurityCode: c.Card.CVV,
				Name:         c.Card.HolderName(),
				BillingAddress: paypal.Address{
					AddressLine1: billing.Line1,
					AdminArea2:   billing.City,
					AdminArea1:   billing.State,
					PostalCode:   billing.PostalCode,
					CountryCode:  billing.CountryCode,
				},
			},
		},
	}
}
