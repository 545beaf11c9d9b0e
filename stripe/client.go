package stripe

import (
	"math"

	stripeapi "github.com/stripe/stripe-go/v81"
	stripecheckoutsession "github.com/stripe/stripe-go/v81/checkout/session"
	stripewebhook "github.com/stripe/stripe-go/v81/webhook"
)

// DonationCheckout contains the data of a donation to be paid through the
// Stripe hosted checkout.
type DonationCheckout struct {
	Name   string
	Email  string
	Amount float64
	// Reference is stored as the client reference of the session.
	Reference string
}

// Client wraps the Stripe API calls used by the service.
type Client struct {
	config *Config
}

// NewClient creates a new Stripe client with the given configuration
func NewClient(config *Config) *Client {
	if config.APIKey != "" {
		stripeapi.Key = config.APIKey
	}
	return &Client{config: config}
}

// ValidateWebhookEvent checks the signature of the payload and parses the
// event. Events sent with another API version than the library's are
// accepted, only the checkout session fields are read.
func (c *Client) ValidateWebhookEvent(payload []byte, signatureHeader string) (*stripeapi.Event, error) {
	event, err := stripewebhook.ConstructEventWithOptions(payload, signatureHeader, c.config.WebhookSecret,
		stripewebhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, ErrWebhookValidation.wrap("", err)
	}
	return &event, nil
}

// CreateCheckoutSession creates a payment mode checkout session for the
// donation.
func (c *Client) CreateCheckoutSession(donation *DonationCheckout) (*stripeapi.CheckoutSession, error) {
	session, err := stripecheckoutsession.New(c.checkoutParams(donation))
	if err != nil {
		return nil, ErrAPICallFailed.wrap("failed to create checkout session", err)
	}
	return session, nil
}

func (c *Client) checkoutParams(donation *DonationCheckout) *stripeapi.CheckoutSessionParams {
	params := &stripeapi.CheckoutSessionParams{
		Mode: stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripeapi.String(c.config.currency()),
					UnitAmount: stripeapi.Int64(toMinorUnits(donation.Amount)),
					ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripeapi.String("Donation"),
					},
				},
				Quantity: stripeapi.Int64(1),
			},
		},
		CustomerEmail: stripeapi.String(donation.Email),
		Metadata: map[string]string{
			"name": donation.Name,
		},
	}
	if donation.Reference != "" {
		params.ClientReferenceID = stripeapi.String(donation.Reference)
	}
	if c.config.SuccessURL != "" {
		params.SuccessURL = stripeapi.String(c.config.SuccessURL + "?session_id={CHECKOUT_SESSION_ID}")
	}
	if c.config.CancelURL != "" {
		params.CancelURL = stripeapi.String(c.config.CancelURL)
	}
	return params
}

// toMinorUnits converts an amount to cents.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
