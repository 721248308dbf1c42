package charge

import (
	"context"
	"errors"
	log "github.com/sirupsen/logrus"
	"paypal-virtual-terminal/internal/paypal"
)

type CredentialCheck struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ValidateCredentials fetches a token with the configured credentials. The token itself is discarded.
func (s *Service) ValidateCredentials(ctx context.Context) CredentialCheck {
	_, err := s.processor.AccessToken(ctx)
	if err == nil {
		return CredentialCheck{Valid: true, Message: "Credentials validated successfully"}
	}

	log.Warnf("validating credentials: %v", err)

	var tokenErr *paypal.TokenError
	if errors.As(err, &tokenErr) && tokenErr.Description != "" {
		return CredentialCheck{Error: tokenErr.Description}
	}
	if tokenErr != nil {
		return CredentialCheck{Error: "Invalid credentials"}
	}
	return CredentialCheck{Error: err.Error()}
}
