package main

import (
	"fmt"
	"github.com/shopspring/decimal"
	"paypal-virtual-terminal/internal/model"
	"strings"
)

// ChargeRequest is the body of POST /charge. Pointer fields have no default
// and must be present.
type ChargeRequest struct {
	Amount       *decimal.Decimal `json:"amount"`
	Currency     string           `json:"currency"`
	CardNumber   *string          `json:"card_number"`
	ExpMonth     *int             `json:"exp_month"`
	ExpYear      *int             `json:"exp_year"`
	CVV          *string          `json:"cvv"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	AddressLine1 string           `json:"address_line_1"`
	City         string           `json:"city"`
	State        string           `json:"state"`
	PostalCode   string           `json:"postal_code"`
	CountryCode  string           `json:"country_code"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
}

func (r ChargeRequest) toCharge(defaultCurrency string) (model.Charge, error) {
	switch {
	case r.Amount == nil:
		return model.Charge{}, missingField("amount")
	case r.CardNumber == nil:
		return model.Charge{}, missingField("card_number")
	case r.ExpMonth == nil:
		return model.Charge{}, missingField("exp_month")
	case r.ExpYear == nil:
		return model.Charge{}, missingField("exp_year")
	case r.CVV == nil:
		return model.Charge{}, missingField("cvv")
	}

	currency := strings.ToUpper(strings.TrimSpace(r.Currency))
	if currency == "" {
		currency = defaultCurrency
	}
	if currency == "" {
		currency = model.DefaultCurrency
	}

	return model.Charge{
		Amount:   *r.Amount,
		Currency: currency,
		Card: model.Card{
			Number:    strings.Join(strings.Fields(*r.CardNumber), ""),
			ExpMonth:  *r.ExpMonth,
			ExpYear:   *r.ExpYear,
			CVV:       *r.CVV,
			FirstName: orDefault(r.FirstName, "Test"),
			LastName:  orDefault(r.LastName, "User"),
		},
		Billing: model.Address{
			Line1:       strings.TrimSpace(r.AddressLine1),
			City:        strings.TrimSpace(r.City),
			State:       strings.TrimSpace(r.State),
			PostalCode:  strings.TrimSpace(r.PostalCode),
			CountryCode: strings.ToUpper(strings.TrimSpace(r.CountryCode)),
		}.WithDefaults(),
	}, nil
}

func missingField(name string) error {
	return fmt.Errorf("missing required field %q", name)
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
