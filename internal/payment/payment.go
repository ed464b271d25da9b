package payment

import (
	"context"
	"errors"
	"fmt"
)

// ErrCheckoutNotPaid is returned for a checkout session that exists but
// has not been paid.
var ErrCheckoutNotPaid = errors.New("checkout session is not paid")

// Gate validates a checkout session token before registration is
// allowed. Implementations call a payment provider, or return canned
// results (for tests and local development).
type Gate interface {
	// ValidateCheckout confirms that the checkout session identified by
	// token exists and has been paid.
	ValidateCheckout(ctx context.Context, token string) error
}

// GateError is returned when the provider could not be consulted, so
// the caller can distinguish "checkout rejected" from "provider
// unreachable" and retry the latter.
type GateError struct {
	Reason  string
	Wrapped error
}

func (e *GateError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("payment gate: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("payment gate: %s", e.Reason)
}

func (e *GateError) Unwrap() error {
	return e.Wrapped
}

// Disabled is a Gate that accepts every token. Used when the payment
// requirement is switched off in config.
type Disabled struct{}

var _ Gate = Disabled{}

func (Disabled) ValidateCheckout(context.Context, string) error {
	return nil
}
