// Package content implements the operations on the site content: validation
// of the input, normalization, storage and invalidation of the cached pages
// that render the content. Every operation returns a result envelope, the
// failures carry the typed error so the HTTP layer can pick the status code.
package content

import (
	"context"
	"strings"
	"time"

	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/errors"
	"github.com/helpinghands/ngo-backend/notifications"
	"github.com/helpinghands/ngo-backend/pagecache"
	"github.com/helpinghands/ngo-backend/validator"
	"go.vocdoni.io/dvote/log"
)

// notifyTimeout bounds the delivery of a single email notification.
const notifyTimeout = 30 * time.Second

// Invalidator receives the paths of the pages that are stale after a
// mutation. *pagecache.Cache implements it.
type Invalidator interface {
	Invalidate(paths ...string)
}

// Option configures the optional collaborators of the Service.
type Option func(*Service)

// WithNotifier makes the service send the contact submissions to inbox and a
// welcome email to the new newsletter subscribers. organization is the name
// used in the emails.
func WithNotifier(notifier notifications.NotificationService, inbox, organization string) Option {
	return func(s *Service) {
		s.notifier = notifier
		s.inbox = inbox
		s.organization = organization
	}
}

// WithSyncNotifications makes the notifications be sent before the operation
// returns instead of in background.
func WithSyncNotifications() Option {
	return func(s *Service) {
		s.syncNotify = true
	}
}

// Service runs the content operations against the storage.
type Service struct {
	db           db.Database
	inv          Invalidator
	validator    *validator.Validator
	notifier     notifications.NotificationService
	inbox        string
	organization string
	syncNotify   bool
}

// New creates the content service. inv may be nil if nothing caches the
// rendered pages.
func New(database db.Database, inv Invalidator, opts ...Option) *Service {
	s := &Service{
		db:        database,
		inv:       inv,
		validator: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is the common part of every envelope. Err is set on failures.
type Result struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Err     *errors.Error `json:"-"`
}

// Failure returns the error of a failed operation, nil on success.
func (r Result) Failure() *errors.Error {
	return r.Err
}

func succeed(msg string) Result {
	return Result{Success: true, Message: msg}
}

func fail(err errors.Error) Result {
	return Result{Success: false, Message: err.Error(), Err: &err}
}

// storageFailure logs the storage error and converts it into the failure
// envelope.
func storageFailure(op string, err error) Result {
	e := errors.FromDB(err)
	if e.HTTPstatus >= 500 {
		log.Errorw(err, op)
	} else {
		log.Debugw(op, "error", err)
	}
	return fail(e)
}

// validate runs the struct rules of req. Failures carry the field messages.
func (s *Service) validate(req any) *errors.Error {
	err := s.validator.Validate(req)
	if err == nil {
		return nil
	}
	e := errors.ErrValidation.WithErr(err)
	if fields, ok := err.(validator.ValidationErrors); ok {
		e = e.WithData(fields)
	}
	return &e
}

// requireID fails if the id is empty. A malformed id is left to the storage,
// which reports it as not found.
func requireID(id string) *errors.Error {
	if strings.TrimSpace(id) == "" {
		e := errors.ErrValidation.With("id is required")
		return &e
	}
	return nil
}

func (s *Service) invalidate(entity pagecache.Entity) {
	if s.inv == nil {
		return
	}
	s.inv.Invalidate(pagecache.PathsFor(entity)...)
}

// notify renders the template and sends it. Failures are only logged.
func (s *Service) notify(tmpl templateExec, to, replyTo string, data any) {
	if s.notifier == nil || to == "" {
		return
	}
	n, err := tmpl.ExecTemplate(data)
	if err != nil {
		log.Warnw("cannot render notification", "error", err)
		return
	}
	n.ToAddress = to
	n.ReplyTo = replyTo
	send := func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.SendNotification(ctx, n); err != nil {
			log.Warnw("cannot send notification", "to", to, "error", err)
		}
	}
	if s.syncNotify {
		send()
		return
	}
	go send()
}

type templateExec interface {
	ExecTemplate(data any) (*notifications.Notification, error)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
