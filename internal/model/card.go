package model

import "strings"

type Card struct {
	Number    string
	ExpMonth  int
	ExpYear   int
	CVV       string
	FirstName string
	LastName  string
}

// HolderName is the cardholder name as a single line.
func (c Card) HolderName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// LastFour returns the trailing four digits of the card number, for logs and receipts.
func (c Card) LastFour() string {
	if len(c.Number) <= 4 {
		return c.Number
	}
	return c.Number[len(c.Number)-4:]
}
