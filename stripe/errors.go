package stripe

import "fmt"

// StripeError is a failure of the Stripe integration, identified by Code.
type StripeError struct {
	Code    string
	Message string
	Err     error
}

func (e *StripeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stripe error [%s]: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("stripe error [%s]: %s", e.Code, e.Message)
}

func (e *StripeError) Unwrap() error {
	return e.Err
}

// Is matches any StripeError with the same code.
func (e *StripeError) Is(target error) bool {
	t, ok := target.(*StripeError)
	return ok && t.Code == e.Code
}

// Errors returned by the client and the service. Compare them with
// errors.Is, the copies returned carry the cause.
var (
	ErrInvalidEvent         = &StripeError{Code: "invalid_event", Message: "invalid webhook event"}
	ErrInvalidConfiguration = &StripeError{Code: "invalid_configuration", Message: "invalid stripe configuration"}
	ErrAPICallFailed        = &StripeError{Code: "api_call_failed", Message: "stripe API call failed"}
	ErrWebhookValidation    = &StripeError{Code: "webhook_validation", Message: "webhook signature validation failed"}
	ErrDonationNotVerified  = &StripeError{Code: "donation_not_verified", Message: "donation could not be verified"}
)

// wrap returns a copy of e with the given message and cause. An empty
// message keeps the one of e.
func (e *StripeError) wrap(message string, err error) *StripeError {
	if message == "" {
		message = e.Message
	}
	return &StripeError{Code: e.Code, Message: message, Err: err}
}
