package charge

import "errors"

// FailureMessage is the text shown to the caller for every failed charge.
const FailureMessage = "Payment failed"

var ErrPaymentFailed = errors.New("payment failed")

// PaymentError is the only failure a charge surfaces. Details holds PayPal's
// raw response text when there is one.
type PaymentError struct {
	Details string
}

func (e *PaymentError) Error() string {
	return FailureMessage + ": " + e.Details
}

func (e *PaymentError) Is(target error) bool {
	return target == ErrPaymentFailed
}

func failed(details string) error {
	return &PaymentError{Details: details}
}
