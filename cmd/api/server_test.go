package main

import (
	"bytes"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"paypal-virtual-terminal/internal/charge"
	"paypal-virtual-terminal/internal/paypal"
	"strings"
	"sync"
	"testing"
)

const captureBody = `{"id":"ORDER-1","status":"COMPLETED","payer":{"name":{"given_name":"Test"}}}`

// fakePayPal stands in for the PayPal REST API and records what it was asked.
type fakePayPal struct {
	mu          sync.Mutex
	orderStatus int
	orderBody   string
	captures    int
	orders      []paypal.Order
}

func (f *fakePayPal) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.URL.Path {
	case "/v1/oauth2/token":
		w.Write([]byte(`{"access_token":"tok"}`))
	case "/v2/checkout/orders":
		var order paypal.Order
		_ = json.NewDecoder(r.Body).Decode(&order)
		f.orders = append(f.orders, order)
		w.WriteHeader(f.orderStatus)
		w.Write([]byte(f.orderBody))
	case "/v2/checkout/orders/ORDER-1/capture":
		f.captures++
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(captureBody))
	default:
		http.NotFound(w, r)
	}
}

func setupServer(t *testing.T, pp *fakePayPal) http.Handler {
	upstream := httptest.NewServer(pp)
	t.Cleanup(upstream.Close)

	cfg, err := ReadConfig(nil)
	require.NoError(t, err)
	cfg.BaseURL = upstream.URL

	client := paypal.NewClient(cfg.PayPalBaseURL(), "id", "secret", upstream.Client())
	return NewServer(0, cfg, charge.NewService(client, nil, ""), nil).Handler()
}

func postCharge(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/charge", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

const validCharge = `{"amount":"10.5","card_number":"4111 1111 1111 1111","exp_month":12,"exp_year":2030,"cvv":"123","first_name":"Test","last_name":"User"}`

func TestIndex(t *testing.T) {
	h := setupServer(t, &fakePayPal{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, `<form id="chargeForm">`)
	assert.Contains(t, body, `fetch('/charge'`)
	assert.Contains(t, body, `<option value="USD" selected>USD</option>`)
}

func TestCharge_Success(t *testing.T) {
	pp := &fakePayPal{orderStatus: http.StatusCreated, orderBody: `{"id":"ORDER-1","status":"CREATED"}`}
	h := setupServer(t, pp)

	w := postCharge(t, h, validCharge)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, captureBody, w.Body.String())

	require.Len(t, pp.orders, 1)
	card := pp.orders[0].PaymentSource.Card
	assert.Equal(t, "4111111111111111", card.Number)
	assert.Equal(t, "2030-12", card.Expiry)
	assert.Equal(t, "10.50", pp.orders[0].PurchaseUnits[0].Amount.Value)
	assert.Equal(t, "USD", pp.orders[0].PurchaseUnits[0].Amount.CurrencyCode)
}

func TestCharge_NumericAmountAndCurrency(t *testing.T) {
	pp := &fakePayPal{orderStatus: http.StatusCreated, orderBody: `{"id":"ORDER-1"}`}
	h := setupServer(t, pp)

	w := postCharge(t, h, `{"amount":7,"currency":"eur","card_number":"4111111111111111","exp_month":1,"exp_year":2031,"cvv":"999"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, pp.orders, 1)
	assert.Equal(t, paypal.Amount{CurrencyCode: "EUR", Value: "7.00"}, pp.orders[0].PurchaseUnits[0].Amount)
	assert.Equal(t, "Test User", pp.orders[0].PaymentSource.Card.Name)
}

func TestCharge_OrderFailure(t *testing.T) {
	orderFailure := `{"name":"UNPROCESSABLE_ENTITY","message":"The requested action could not be performed"}`
	pp := &fakePayPal{orderStatus: http.StatusUnprocessableEntity, orderBody: orderFailure}
	h := setupServer(t, pp)

	w := postCharge(t, h, validCharge)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Payment failed", resp.Error)
	assert.Equal(t, orderFailure, resp.Details)
	assert.Zero(t, pp.captures)
}

func TestCharge_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"not json", `amount=10`, "invalid character"},
		{"missing amount", `{"card_number":"4111","exp_month":1,"exp_year":2030,"cvv":"123"}`, `"amount"`},
		{"missing card number", `{"amount":"1.00","exp_month":1,"exp_year":2030,"cvv":"123"}`, `"card_number"`},
		{"missing exp month", `{"amount":"1.00","card_number":"4111","exp_year":2030,"cvv":"123"}`, `"exp_month"`},
		{"null exp year", `{"amount":"1.00","card_number":"4111","exp_month":1,"exp_year":null,"cvv":"123"}`, `"exp_year"`},
		{"missing cvv", `{"amount":"1.00","card_number":"4111","exp_month":1,"exp_year":2030}`, `"cvv"`},
		{"malformed amount", `{"amount":"ten","card_number":"4111","exp_month":1,"exp_year":2030,"cvv":"123"}`, ""},
		{"string exp month", `{"amount":"1.00","card_number":"4111","exp_month":"1","exp_year":2030,"cvv":"123"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pp := &fakePayPal{orderStatus: http.StatusCreated, orderBody: `{"id":"ORDER-1"}`}
			h := setupServer(t, pp)

			w := postCharge(t, h, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, tt.message)
			assert.Empty(t, pp.orders)
		})
	}
}

func TestCharge_MethodNotAllowed(t *testing.T) {
	h := setupServer(t, &fakePayPal{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/charge", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestValidateCredentialsEndpoint(t *testing.T) {
	h := setupServer(t, &fakePayPal{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/validate-credentials", bytes.NewReader(nil)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid":true,"message":"Credentials validated successfully"}`, w.Body.String())
}

func TestHealth(t *testing.T) {
	h := setupServer(t, &fakePayPal{})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.JSONEq(t, `{"status":"ok","environment":"sandbox"}`, string(body))
}

func TestCurrencyOptions(t *testing.T) {
	assert.Equal(t, []string{"USD", "EUR", "GBP"}, currencyOptions("EUR"))
	assert.Equal(t, []string{"CAD", "USD", "EUR", "GBP"}, currencyOptions("CAD"))
}
