package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// CheckoutClient validates checkout sessions against a Stripe-style
// provider API: GET {base}/v1/checkout/sessions/{id} with a bearer key,
// accepting only sessions whose payment_status is "paid".
type CheckoutClient struct {
	baseURL string
	apiKey  string
	client  *http.Client // reused across calls
}

// Compile-time check: *CheckoutClient satisfies the Gate interface.
var _ Gate = (*CheckoutClient)(nil)

// ErrCheckoutNotFound is returned when the provider does not know the
// checkout session token at all.
var ErrCheckoutNotFound = errors.New("checkout session not found")

// NewCheckoutClient creates a client for the given provider endpoint.
func NewCheckoutClient(baseURL, apiKey string) *CheckoutClient {
	return &CheckoutClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type checkoutSession struct {
	ID            string `json:"id"`
	PaymentStatus string `json:"payment_status"`
	Status        string `json:"status"`
}

// ValidateCheckout looks the session up at the provider and checks it
// was paid. Provider outages come back as *GateError so callers can
// retry; rejected or unknown sessions are terminal.
func (c *CheckoutClient) ValidateCheckout(ctx context.Context, token string) error {
	if token == "" {
		return ErrCheckoutNotFound
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v1/checkout/sessions/"+token, nil)
	if err != nil {
		return &GateError{Reason: "building request", Wrapped: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return &GateError{Reason: "provider unreachable", Wrapped: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrCheckoutNotFound
	case resp.StatusCode != http.StatusOK:
		return &GateError{Reason: "provider returned status " + resp.Status}
	}

	var session checkoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return &GateError{Reason: "decoding provider response", Wrapped: err}
	}

	if session.PaymentStatus != "paid" {
		return ErrCheckoutNotPaid
	}
	return nil
}
