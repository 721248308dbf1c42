package notifications

import (
	"context"
	"fmt"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	log "github.com/sirupsen/logrus"
	"paypal-virtual-terminal/internal/model"
)

// MailClient is satisfied by *sendgrid.Client.
type MailClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type Sender struct {
	client    MailClient
	recipient string
}

func NewSender(client MailClient, recipient string) *Sender {
	return &Sender{
		client:    client,
		recipient: recipient,
	}
}

// SendChargeReceipt tells the operator a charge was captured.
func (s *Sender) SendChargeReceipt(ctx context.Context, receipt model.Receipt) error {
	amount := receipt.Amount.StringFixed(2) + " " + receipt.Currency

	from := mail.NewEmail("PayPal Virtual Terminal", "no-reply@virtual-terminal.local")
	subject := fmt.Sprintf("Payment captured: %s", amount)
	to := mail.NewEmail("Operator", s.recipient)
	plainTextContent := fmt.Sprintf("Order %s was captured for %s.", receipt.OrderID, amount)
	htmlContent := fmt.Sprintf("<p>Order <strong>%s</strong> was captured for <strong>%s</strong>.</p>", receipt.OrderID, amount)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sending receipt for order %s: %w", receipt.OrderID, err)
	}

	if response.StatusCode != 202 {
		log.Errorf("failure sending receipt email with sendgrid: %v", response.Body)
	}

	return nil
}
