package model

type Address struct {
	Line1       string
	City        string
	State       string
	PostalCode  string
	CountryCode string
}

// DefaultAddress is the billing address used for any part the caller leaves blank.
func DefaultAddress() Address {
	return Address{
		Line1:       "123 Main St",
		City:        "San Jose",
		State:       "CA",
		PostalCode:  "95131",
		CountryCode: "US",
	}
}

// WithDefaults fills every empty field from DefaultAddress.
func (a Address) WithDefaults() Address {
	d := DefaultAddress()
	if a.Line1 == "" {
		a.Line1 = d.Line1
	}
	if a.City == "" {
		a.City = d.City
	}
	if a.State == "" {
		a.State = d.State
	}
	if a.PostalCode == "" {
		a.PostalCode = d.PostalCode
	}
	if a.CountryCode == "" {
		a.CountryCode = d.CountryCode
	}
	return a
}
