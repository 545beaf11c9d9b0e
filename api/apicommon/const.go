// Package apicommon provides common types, constants, and helper functions for the API.
package apicommon

import "time"

const (
	// MaxBodySize bounds the JSON request bodies. Images are sent inline, so
	// it leaves room for a few compressed pictures.
	MaxBodySize = 8 << 20
	// MaxWebhookBodySize bounds the payload of the Stripe webhook events.
	MaxWebhookBodySize = 64 << 10
	// RequestTimeout bounds every request handled by the router.
	RequestTimeout = 45 * time.Second
	// HomeCampaignsLimit is the number of campaigns shown on the home page.
	HomeCampaignsLimit = 3
	// StripeSignatureHeader carries the signature of the webhook payloads.
	StripeSignatureHeader = "Stripe-Signature"
)
