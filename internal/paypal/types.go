package paypal

const (
	IntentCapture = "CAPTURE"

	// RequestIDHeader carries the idempotency key PayPal uses to drop duplicate requests.
	RequestIDHeader = "PayPal-Request-Id"
)

type Order struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
	PaymentSource PaymentSource  `json:"payment_source"`
}

type PurchaseUnit struct {
	Amount Amount `json:"amount"`
	Payee  *Payee `json:"payee,omitempty"`
}

type Amount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type Payee struct {
	EmailAddress string `json:"email_address"`
}

type PaymentSource struct {
	Card Card `json:"card"`
}

type Card struct {
	Number         string  `json:"number"`
	Expiry         string  `json:"expiry"`
	SecurityCode   string  `json:"security_code"`
	Name           string  `json:"name"`
	BillingAddress Address `json:"billing_address"`
}

type Address struct {
	AddressLine1 string `json:"address_line_1"`
	AdminArea2   string `json:"admin_area_2"`
	AdminArea1   string `json:"admin_area_1"`
	PostalCode   string `json:"postal_code"`
	CountryCode  string `json:"country_code"`
}

// OrderRef is the part of an order response needed to capture it.
type OrderRef struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
