package api

import (
	"time"

	stripewebhook "github.com/stripe/stripe-go/v81/webhook"
)

func stripeSignature(payload []byte, secret string) string {
	return stripewebhook.GenerateTestSignedPayload(&stripewebhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: time.Now(),
	}).Header
}
