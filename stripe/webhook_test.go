package stripe

import (
	"fmt"
	"sync"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/helpinghands/ngo-backend/content"
	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/errors"
	stripewebhook "github.com/stripe/stripe-go/v81/webhook"
)

const testWebhookSecret = "whsec_test_secret"

// donationsStub records the verified transactions. Transactions listed in
// failing return a storage error.
type donationsStub struct {
	mu       sync.Mutex
	known    map[string]bool
	failing  map[string]bool
	verified []string
	recorded []content.DonatorRequest
}

func newDonationsStub(known ...string) *donationsStub {
	s := &donationsStub{known: map[string]bool{}, failing: map[string]bool{}}
	for _, tx := range known {
		s.known[tx] = true
	}
	return s
}

// ValidateDonation applies the rules of the content service, which never
// reach the storage.
func (*donationsStub) ValidateDonation(req content.DonatorRequest) content.Result {
	return content.New(nil, nil).ValidateDonation(req)
}

func (s *donationsStub) RecordDonation(req content.DonatorRequest) content.DonatorResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorded = append(s.recorded, req)
	return content.DonatorResult{
		Result:  content.Result{Success: true, Message: "donation recorded"},
		Donator: &db.Donator{Name: req.Name, TransactionID: req.TransactionID},
	}
}

func (s *donationsStub) VerifyDonation(txID string) content.DonatorResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing[txID] {
		e := errors.ErrInternalStorageError.With("storage down")
		return content.DonatorResult{Result: content.Result{Message: e.Error(), Err: &e}}
	}
	if !s.known[txID] {
		e := errors.ErrNotFound
		return content.DonatorResult{Result: content.Result{Message: e.Error(), Err: &e}}
	}
	s.verified = append(s.verified, txID)
	return content.DonatorResult{Result: content.Result{Success: true, Message: "donation verified"}}
}

func (s *donationsStub) verifiedTransactions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.verified...)
}

func newTestService(c *qt.C, donations Donations) *Service {
	service, err := NewService(&Config{WebhookSecret: testWebhookSecret}, donations)
	c.Assert(err, qt.IsNil)
	c.Cleanup(service.Close)
	return service
}

func checkoutEvent(eventID, eventType, sessionID, reference, paymentStatus string) []byte {
	return []byte(fmt.Sprintf(`{
  "id": %q,
  "object": "event",
  "api_version": "2020-08-27",
  "type": %q,
  "data": {
    "object": {
      "id": %q,
      "object": "checkout.session",
      "client_reference_id": %q,
      "payment_status": %q
    }
  }
}`, eventID, eventType, sessionID, reference, paymentStatus))
}

func sign(payload []byte, secret string) string {
	return stripewebhook.GenerateTestSignedPayload(&stripewebhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: time.Now(),
	}).Header
}

func TestNewService(t *testing.T) {
	c := qt.New(t)

	_, err := NewService(&Config{}, newDonationsStub())
	c.Assert(err, qt.ErrorIs, ErrInvalidConfiguration)

	_, err = NewService(nil, newDonationsStub())
	c.Assert(err, qt.ErrorIs, ErrInvalidConfiguration)

	_, err = NewService(&Config{WebhookSecret: testWebhookSecret}, nil)
	c.Assert(err, qt.IsNotNil)
}

func TestWebhookVerifiesDonation(t *testing.T) {
	c := qt.New(t)
	donations := newDonationsStub("cs_test_1")
	service := newTestService(c, donations)

	payload := checkoutEvent("evt_1", "checkout.session.completed", "cs_test_1", "", "paid")
	c.Assert(service.HandleWebhookEvent(payload, sign(payload, testWebhookSecret)), qt.IsNil)
	c.Assert(donations.verifiedTransactions(), qt.DeepEquals, []string{"cs_test_1"})

	// a redelivered event is acknowledged without verifying again
	c.Assert(service.HandleWebhookEvent(payload, sign(payload, testWebhookSecret)), qt.IsNil)
	c.Assert(donations.verifiedTransactions(), qt.HasLen, 1)
	c.Assert(service.events.Size(), qt.Equals, 1)
}

func TestWebhookFallsBackToClientReference(t *testing.T) {
	c := qt.New(t)
	donations := newDonationsStub("TX-42")
	service := newTestService(c, donations)

	payload := checkoutEvent("evt_2", "checkout.session.completed", "cs_test_2", "TX-42", "paid")
	c.Assert(service.HandleWebhookEvent(payload, sign(payload, testWebhookSecret)), qt.IsNil)
	c.Assert(donations.verifiedTransactions(), qt.DeepEquals, []string{"TX-42"})
}

func TestWebhookUnpaidSessionIsSkipped(t *testing.T) {
	c := qt.New(t)
	donations := newDonationsStub("cs_test_3")
	service := newTestService(c, donations)

	payload := checkoutEvent("evt_3", "checkout.session.completed", "cs_test_3", "", "unpaid")
	c.Assert(service.HandleWebhookEvent(payload, sign(payload, testWebhookSecret)), qt.IsNil)
	c.Assert(donations.verifiedTransactions(), qt.HasLen, 0)

	payload = checkoutEvent("evt_4", "checkout.session.async_payment_succeeded", "cs_test_3", "", "paid")
	c.Assert(service.HandleWebhookEvent(payload, sign(payload, testWebhookSecret)), qt.IsNil)
	c.Assert(donations.verifiedTransactions(), qt.DeepEquals, []string{"cs_test_3"})
}

func TestWebhookUnknownDonationIsAcknowledged(t *testing.T) {
	c := qt.New(t)
	donations := newDonationsStub()
	service := newTestService(c, donations)

	payload := checkoutEvent("evt_5", "checkout.session.completed", "cs_unknown", "", "paid")
	c.Assert(service.HandleWebhookEvent(payload, sign(payload, testWebhookSecret)), qt.IsNil)
	c.Assert(donations.verifiedTransactions(), qt.HasLen, 0)
}

func TestWebhookStorageFailureIsRetried(t *testing.T) {
	c := qt.New(t)
	donations := newDonationsStub("cs_test_6")
	donations.failing["cs_test_6"] = true
	service := newTestService(c, donations)

	payload := checkoutEvent("evt_6", "checkout.session.completed", "cs_test_6", "", "paid")
	err := service.HandleWebhookEvent(payload, sign(payload, testWebhookSecret))
	c.Assert(err, qt.ErrorIs, ErrDonationNotVerified)
	c.Assert(service.events.EventExists("evt_6"), qt.IsFalse)

	donations.mu.Lock()
	delete(donations.failing, "cs_test_6")
	donations.mu.Unlock()
	c.Assert(service.HandleWebhookEvent(payload, sign(payload, testWebhookSecret)), qt.IsNil)
	c.Assert(donations.verifiedTransactions(), qt.DeepEquals, []string{"cs_test_6"})
}

func TestWebhookInvalidSignature(t *testing.T) {
	c := qt.New(t)
	donations := newDonationsStub("cs_test_7")
	service := newTestService(c, donations)

	payload := checkoutEvent("evt_7", "checkout.session.completed", "cs_test_7", "", "paid")
	err := service.HandleWebhookEvent(payload, sign(payload, "whsec_other"))
	c.Assert(err, qt.ErrorIs, ErrWebhookValidation)

	err = service.HandleWebhookEvent(payload, "")
	c.Assert(err, qt.ErrorIs, ErrWebhookValidation)
	c.Assert(donations.verifiedTransactions(), qt.HasLen, 0)
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	c := qt.New(t)
	donations := newDonationsStub()
	service := newTestService(c, donations)

	payload := []byte(`{"id":"evt_8","object":"event","type":"customer.created","data":{"object":{"id":"cus_1"}}}`)
	c.Assert(service.HandleWebhookEvent(payload, sign(payload, testWebhookSecret)), qt.IsNil)
	c.Assert(service.events.EventExists("evt_8"), qt.IsTrue)
}

func TestStartCheckoutDisabled(t *testing.T) {
	c := qt.New(t)
	donations := newDonationsStub()
	service := newTestService(c, donations)

	res := service.StartCheckout(content.DonatorRequest{Name: "Ana", Email: "ana@example.org", Amount: 10})
	c.Assert(res.Success, qt.IsFalse)
	c.Assert(res.Err, qt.IsNotNil)
	c.Assert(res.Err.Code, qt.Equals, errors.ErrConfiguration.Code)
	c.Assert(donations.recorded, qt.HasLen, 0)
}

func TestStartCheckoutValidatesBeforePayment(t *testing.T) {
	c := qt.New(t)
	donations := newDonationsStub()
	service, err := NewService(&Config{APIKey: "sk_test_unreachable", WebhookSecret: testWebhookSecret}, donations)
	c.Assert(err, qt.IsNil)
	c.Cleanup(service.Close)

	badPhone := "#not-a-phone"
	for _, req := range []content.DonatorRequest{
		{Name: "Ana", Email: "ana@example.org", Amount: 10, Phone: &badPhone},
		{Name: "", Email: "ana@example.org", Amount: 10},
		{Name: "Ana", Email: "ana@", Amount: 10},
		{Name: "Ana", Email: "ana@example.org", Amount: 0},
	} {
		res := service.StartCheckout(req)
		c.Assert(res.Success, qt.IsFalse)
		c.Assert(res.Err, qt.IsNotNil)
		// a validation failure, not a failed call to Stripe
		c.Assert(res.Err.Code, qt.Equals, errors.ErrValidation.Code, qt.Commentf("%+v: %s", req, res.Message))
		c.Assert(res.SessionID, qt.Equals, "")
	}
	c.Assert(donations.recorded, qt.HasLen, 0)
}

func TestCheckoutParams(t *testing.T) {
	c := qt.New(t)
	client := NewClient(&Config{
		Currency:   "usd",
		SuccessURL: "https://example.org/donate/thanks",
		CancelURL:  "https://example.org/donate",
	})

	params := client.checkoutParams(&DonationCheckout{
		Name:      "Ana",
		Email:     "ana@example.org",
		Amount:    12.345,
		Reference: "TX-1",
	})
	c.Assert(*params.Mode, qt.Equals, "payment")
	c.Assert(params.LineItems, qt.HasLen, 1)
	c.Assert(*params.LineItems[0].PriceData.UnitAmount, qt.Equals, int64(1235))
	c.Assert(*params.LineItems[0].PriceData.Currency, qt.Equals, "usd")
	c.Assert(*params.ClientReferenceID, qt.Equals, "TX-1")
	c.Assert(*params.CustomerEmail, qt.Equals, "ana@example.org")
	c.Assert(*params.SuccessURL, qt.Equals, "https://example.org/donate/thanks?session_id={CHECKOUT_SESSION_ID}")
	c.Assert(*params.CancelURL, qt.Equals, "https://example.org/donate")

	params = NewClient(&Config{}).checkoutParams(&DonationCheckout{Amount: 5})
	c.Assert(*params.LineItems[0].PriceData.Currency, qt.Equals, DefaultCurrency)
	c.Assert(params.ClientReferenceID, qt.IsNil)
	c.Assert(params.SuccessURL, qt.IsNil)
}

func TestEventStoreExpire(t *testing.T) {
	c := qt.New(t)
	store := NewMemoryEventStore(200 * time.Millisecond)
	defer store.Close()

	store.MarkProcessed("evt_old")
	c.Assert(store.EventExists("evt_old"), qt.IsTrue)
	c.Assert(store.EventExists("evt_new"), qt.IsFalse)
	time.Sleep(300 * time.Millisecond)
	c.Assert(store.EventExists("evt_old"), qt.IsFalse)
	store.MarkProcessed("evt_new")
	c.Assert(store.EventExists("evt_new"), qt.IsTrue)
}

func TestLockManager(t *testing.T) {
	c := qt.New(t)
	lm := NewLockManager()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := lm.Lock("cs_same")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()
	c.Assert(counter, qt.Equals, 50)
	c.Assert(lm.Len(), qt.Equals, 0)

	unlock := lm.Lock("cs_other")
	c.Assert(lm.Len(), qt.Equals, 1)
	unlock()
	c.Assert(lm.Len(), qt.Equals, 0)
}
