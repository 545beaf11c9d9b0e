// Package stripe verifies the donations paid through the Stripe checkout.
// The completed checkout sessions received by the webhook mark the donator
// recorded with the session id as verified.
package stripe

import (
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/helpinghands/ngo-backend/content"
	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/errors"
	"github.com/helpinghands/ngo-backend/internal"
	stripeapi "github.com/stripe/stripe-go/v81"
	"go.vocdoni.io/dvote/log"
)

// Donations is the part of the content service used to record and verify
// the donations.
type Donations interface {
	ValidateDonation(req content.DonatorRequest) content.Result
	RecordDonation(req content.DonatorRequest) content.DonatorResult
	VerifyDonation(transactionID string) content.DonatorResult
}

// Service handles the Stripe webhook events and the donation checkouts.
type Service struct {
	client      *Client
	donations   Donations
	events      *MemoryEventStore
	lockManager *LockManager
	config      *Config
}

// NewService creates a new Stripe service
func NewService(config *Config, donations Donations) (*Service, error) {
	if config == nil || (!config.WebhookEnabled() && !config.CheckoutEnabled()) {
		return nil, ErrInvalidConfiguration
	}
	if donations == nil {
		return nil, fmt.Errorf("donations service is required")
	}
	return &Service{
		client:      NewClient(config),
		donations:   donations,
		events:      NewMemoryEventStore(0),
		lockManager: NewLockManager(),
		config:      config,
	}, nil
}

// Close releases the resources of the service.
func (s *Service) Close() {
	s.events.Close()
}

// Config returns the configuration of the service.
func (s *Service) Config() *Config {
	return s.config
}

// HandleWebhookEvent validates and processes a webhook event. An event is
// only processed once; a failed event can be delivered again.
func (s *Service) HandleWebhookEvent(payload []byte, signatureHeader string) error {
	if !s.config.WebhookEnabled() {
		return ErrInvalidConfiguration
	}
	event, err := s.client.ValidateWebhookEvent(payload, signatureHeader)
	if err != nil {
		return err
	}
	if s.events.EventExists(event.ID) {
		log.Debugw("stripe webhook: event already processed", "event", event.ID)
		return nil
	}
	if err := s.HandleEvent(event); err != nil {
		return err
	}
	s.events.MarkProcessed(event.ID)
	return nil
}

// HandleEvent processes an already validated event.
func (s *Service) HandleEvent(event *stripeapi.Event) error {
	switch event.Type {
	case stripeapi.EventTypeCheckoutSessionCompleted,
		stripeapi.EventTypeCheckoutSessionAsyncPaymentSucceeded:
		return s.handleCheckoutSession(event)
	default:
		log.Debugw("stripe webhook: unhandled event", "type", event.Type, "event", event.ID)
		return nil
	}
}

// handleCheckoutSession verifies the donation paid with the session. The
// donator is looked up by the session id and then by the client reference.
// Sessions still waiting for an asynchronous payment are skipped, the
// async_payment_succeeded event verifies them later.
func (s *Service) handleCheckoutSession(event *stripeapi.Event) error {
	session, err := parseCheckoutSession(event)
	if err != nil {
		return err
	}
	if session.PaymentStatus == stripeapi.CheckoutSessionPaymentStatusUnpaid {
		log.Infow("stripe webhook: checkout session not paid yet", "session", session.ID)
		return nil
	}
	unlock := s.lockManager.Lock(session.ID)
	defer unlock()

	for _, txID := range []string{session.ID, session.ClientReferenceID} {
		if txID == "" {
			continue
		}
		res := s.donations.VerifyDonation(txID)
		if res.Success {
			log.Infow("stripe webhook: donation verified", "session", session.ID, "transaction", txID)
			return nil
		}
		if res.Err == nil || !stderrors.Is(*res.Err, errors.ErrNotFound) {
			return ErrDonationNotVerified.wrap("", fmt.Errorf("%s", res.Message))
		}
	}
	// nothing to retry, the donation was never recorded
	log.Warnw("stripe webhook: no donation recorded for checkout session",
		"session", session.ID, "reference", session.ClientReferenceID)
	return nil
}

func parseCheckoutSession(event *stripeapi.Event) (*stripeapi.CheckoutSession, error) {
	if event.Data == nil {
		return nil, ErrInvalidEvent
	}
	var session stripeapi.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, ErrInvalidEvent.wrap("failed to parse checkout session", err)
	}
	if session.ID == "" {
		return nil, ErrInvalidEvent.wrap("checkout session without id", nil)
	}
	return &session, nil
}

// CheckoutResult is returned by StartCheckout. URL is the hosted checkout
// page to redirect the donator to.
type CheckoutResult struct {
	content.Result
	SessionID string      `json:"sessionId,omitempty"`
	URL       string      `json:"url,omitempty"`
	Donator   *db.Donator `json:"donator,omitempty"`
}

// StartCheckout creates a checkout session for the donation and records the
// donation, unverified, with the session id as its transaction id.
func (s *Service) StartCheckout(req content.DonatorRequest) CheckoutResult {
	if !s.config.CheckoutEnabled() {
		e := errors.ErrConfiguration.With("stripe checkout is not enabled")
		return CheckoutResult{Result: content.Result{Message: e.Error(), Err: &e}}
	}
	// the session is only created for a donation that can be recorded
	if res := s.donations.ValidateDonation(req); !res.Success {
		return CheckoutResult{Result: res}
	}
	session, err := s.client.CreateCheckoutSession(&DonationCheckout{
		Name:      req.Name,
		Email:     internal.NormalizeEmail(req.Email),
		Amount:    req.Amount,
		Reference: req.TransactionID,
	})
	if err != nil {
		log.Errorw(err, "cannot create stripe checkout session")
		e := errors.ErrStripeWebhookError.WithErr(err)
		return CheckoutResult{Result: content.Result{Message: e.Error(), Err: &e}}
	}
	paymentMode := "stripe"
	req.TransactionID = session.ID
	req.PaymentMode = &paymentMode
	res := s.donations.RecordDonation(req)
	if !res.Success {
		return CheckoutResult{Result: res.Result}
	}
	return CheckoutResult{
		Result:    res.Result,
		SessionID: session.ID,
		URL:       session.URL,
		Donator:   res.Donator,
	}
}
