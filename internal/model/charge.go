package model

import "github.com/shopspring/decimal"

const DefaultCurrency = "USD"

// Charge is a single card payment attempt. It lives only for the duration of one request.
type Charge struct {
	Amount   decimal.Decimal
	Currency string
	Card     Card
	Billing  Address
}

// Receipt is what an operator is told about a captured charge. It never carries card data.
type Receipt struct {
	OrderID  string
	Amount   decimal.Decimal
	Currency string
}
