package stripe

import "strings"

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "eur"

// Config holds the Stripe settings. WebhookSecret enables the payment
// confirmation webhook and APIKey the hosted checkout for donations.
type Config struct {
	APIKey        string
	WebhookSecret string
	Currency      string
	// SuccessURL and CancelURL are the pages Stripe redirects the donator to
	// after the checkout.
	SuccessURL string
	CancelURL  string
}

// CheckoutEnabled reports whether donations can be paid through Stripe.
func (c *Config) CheckoutEnabled() bool {
	return c != nil && c.APIKey != ""
}

// WebhookEnabled reports whether the payment confirmations are accepted.
func (c *Config) WebhookEnabled() bool {
	return c != nil && c.WebhookSecret != ""
}

func (c *Config) currency() string {
	if c.Currency == "" {
		return DefaultCurrency
	}
	return strings.ToLower(c.Currency)
}
