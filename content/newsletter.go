package content

import (
	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/internal"
	"github.com/helpinghands/ngo-backend/notifications/mailtemplates"
	"github.com/helpinghands/ngo-backend/pagecache"
)

// SubscriptionRequest is a newsletter sign up.
type SubscriptionRequest struct {
	Email string `json:"email" validate:"required,mail"`
}

type SubscriptionsResult struct {
	Result
	Subscriptions []db.NewsletterSubscription `json:"subscriptions"`
}

type SubscriptionResult struct {
	Result
	Subscription *db.NewsletterSubscription `json:"subscription,omitempty"`
}

func (s *Service) ListSubscriptions() SubscriptionsResult {
	subscriptions, err := s.db.Subscriptions()
	if err != nil {
		return SubscriptionsResult{Result: storageFailure("cannot list subscriptions", err)}
	}
	return SubscriptionsResult{Result: succeed(""), Subscriptions: subscriptions}
}

// Subscribe stores the subscription and sends the welcome email when a
// notifier is configured. Subscribing twice is allowed.
func (s *Service) Subscribe(req SubscriptionRequest) SubscriptionResult {
	req.Email = internal.NormalizeEmail(req.Email)
	if e := s.validate(&req); e != nil {
		return SubscriptionResult{Result: fail(*e)}
	}
	subscription := &db.NewsletterSubscription{Email: req.Email}
	if _, err := s.db.CreateSubscription(subscription); err != nil {
		return SubscriptionResult{Result: storageFailure("cannot create subscription", err)}
	}
	s.invalidate(pagecache.Newsletter)
	s.notify(mailtemplates.NewsletterWelcomeNotification, subscription.Email, "", struct {
		Email, Organization string
	}{
		Email:        subscription.Email,
		Organization: s.organization,
	})
	return SubscriptionResult{Result: succeed("subscribed"), Subscription: subscription}
}

func (s *Service) DeleteSubscription(id string) Result {
	if e := requireID(id); e != nil {
		return fail(*e)
	}
	if err := s.db.DelSubscription(id); err != nil {
		return storageFailure("cannot delete subscription", err)
	}
	s.invalidate(pagecache.Newsletter)
	return succeed("subscription deleted")
}
