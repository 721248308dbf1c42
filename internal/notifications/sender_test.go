package notifications

import (
	"context"
	"errors"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"paypal-virtual-terminal/internal/model"
	"testing"
)

type fakeMailClient struct {
	sent []*mail.SGMailV3
	resp *rest.Response
	err  error
}

func (f *fakeMailClient) SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, email)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.resp, f.err
}

func TestSendChargeReceipt(t *testing.T) {
	client := &fakeMailClient{resp: &rest.Response{StatusCode: 202}}
	sender := NewSender(client, "ops@example.com")

	err := sender.SendChargeReceipt(context.Background(), model.Receipt{
		OrderID:  "5O190127TN364715T",
		Amount:   decimal.RequireFromString("12.5"),
		Currency: "EUR",
	})
	require.NoError(t, err)
	require.Len(t, client.sent, 1)

	msg := client.sent[0]
	assert.Equal(t, "Payment captured: 12.50 EUR", msg.Subject)
	require.Len(t, msg.Personalizations, 1)
	assert.Equal(t, "ops@example.com", msg.Personalizations[0].To[0].Address)
	require.NotEmpty(t, msg.Content)
	assert.Contains(t, msg.Content[0].Value, "5O190127TN364715T")
}

func TestSendChargeReceipt_ClientError(t *testing.T) {
	client := &fakeMailClient{err: errors.New("connection refused")}

	err := NewSender(client, "ops@example.com").SendChargeReceipt(context.Background(), model.Receipt{OrderID: "X", Currency: "USD"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order X")
}

func TestSendChargeReceipt_NonAcceptedStatusIsLogged(t *testing.T) {
	client := &fakeMailClient{resp: &rest.Response{StatusCode: 401, Body: "unauthorized"}}

	err := NewSender(client, "ops@example.com").SendChargeReceipt(context.Background(), model.Receipt{OrderID: "X", Currency: "USD"})
	assert.NoError(t, err)
}

func TestSendChargeReceipt_CancelledContext(t *testing.T) {
	client := &fakeMailClient{resp: &rest.Response{StatusCode: 202}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewSender(client, "ops@example.com").SendChargeReceipt(ctx, model.Receipt{OrderID: "X", Currency: "USD"})
	assert.ErrorIs(t, err, context.Canceled)
}
