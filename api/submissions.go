package api

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/helpinghands/ngo-backend/api/apicommon"
	"github.com/helpinghands/ngo-backend/content"
	"github.com/helpinghands/ngo-backend/errors"
	"github.com/helpinghands/ngo-backend/stripe"
	"go.vocdoni.io/dvote/log"
)

// createContactHandler godoc
//
//	@Summary		Send a contact message
//	@Tags			visitors
//	@Accept			json
//	@Produce		json
//	@Param			request	body		content.ContactRequest	true	"Contact message"
//	@Success		200		{object}	content.ContactResult
//	@Failure		400		{object}	errors.Error	"Missing or invalid fields"
//	@Router			/api/contacts [post]
func (a *API) createContactHandler(w http.ResponseWriter, r *http.Request) {
	var req content.ContactRequest
	if !decodeBody(w, r, &req) {
		return
	}
	apicommon.HTTPWriteResult(w, a.content.CreateContact(req))
}

// subscribeHandler godoc
//
//	@Summary		Subscribe to the newsletter
//	@Tags			visitors
//	@Accept			json
//	@Produce		json
//	@Param			request	body		content.SubscriptionRequest	true	"Subscriber email"
//	@Success		200		{object}	content.SubscriptionResult
//	@Failure		400		{object}	errors.Error	"Invalid email"
//	@Router			/api/newsletter [post]
func (a *API) subscribeHandler(w http.ResponseWriter, r *http.Request) {
	var req content.SubscriptionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	apicommon.HTTPWriteResult(w, a.content.Subscribe(req))
}

// recordDonationHandler godoc
//
//	@Summary		Record a donation
//	@Description	Record the donation made by a visitor. It is shown once an admin or the payment provider verifies it.
//	@Tags			visitors
//	@Accept			json
//	@Produce		json
//	@Param			request	body		content.DonatorRequest	true	"Donation"
//	@Success		200		{object}	content.DonatorResult
//	@Failure		400		{object}	errors.Error	"Missing or invalid fields"
//	@Router			/api/donators [post]
func (a *API) recordDonationHandler(w http.ResponseWriter, r *http.Request) {
	var req content.DonatorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	apicommon.HTTPWriteResult(w, a.content.RecordDonation(req))
}

// donationCheckoutHandler godoc
//
//	@Summary		Start a donation checkout
//	@Description	Create a Stripe checkout session and record the donation pending of payment
//	@Tags			visitors
//	@Accept			json
//	@Produce		json
//	@Param			request	body		content.DonatorRequest	true	"Donation, the transaction id is set by the checkout"
//	@Success		200		{object}	stripe.CheckoutResult
//	@Failure		400		{object}	errors.Error	"Missing or invalid fields"
//	@Router			/api/donators/checkout [post]
func (a *API) donationCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	var req content.DonatorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	apicommon.HTTPWriteResult(w, a.stripe.StartCheckout(req))
}

// stripeWebhookHandler godoc
//
//	@Summary		Stripe webhook
//	@Description	Verify the donations paid through the Stripe checkout
//	@Tags			visitors
//	@Accept			json
//	@Produce		json
//	@Success		200	{string}	string			"OK"
//	@Failure		400	{object}	errors.Error	"Invalid signature"
//	@Failure		500	{object}	errors.Error	"The event must be delivered again"
//	@Router			/api/donators/webhook [post]
func (a *API) stripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, apicommon.MaxWebhookBodySize))
	if err != nil {
		errors.ErrMalformedBody.WithErr(err).Write(w)
		return
	}
	if err := a.stripe.HandleWebhookEvent(payload, r.Header.Get(apicommon.StripeSignatureHeader)); err != nil {
		if stderrors.Is(err, stripe.ErrWebhookValidation) || stderrors.Is(err, stripe.ErrInvalidEvent) {
			errors.ErrInvalidData.WithErr(err).Write(w)
			return
		}
		log.Errorw(err, "stripe webhook failed")
		errors.ErrStripeWebhookError.WithErr(err).Write(w)
		return
	}
	apicommon.HTTPWriteOK(w)
}
