package content

import (
	"strings"
	"time"

	"github.com/helpinghands/ngo-backend/db"
	"github.com/helpinghands/ngo-backend/internal"
	"github.com/helpinghands/ngo-backend/notifications/mailtemplates"
	"github.com/helpinghands/ngo-backend/pagecache"
)

// ContactRequest is a message sent through the contact form.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,mail"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type ContactsResult struct {
	Result
	Contacts []db.ContactSubmission `json:"contacts"`
}

type ContactResult struct {
	Result
	Contact *db.ContactSubmission `json:"contact,omitempty"`
}

// ListContacts returns the contact submissions, the most recent first.
func (s *Service) ListContacts() ContactsResult {
	contacts, err := s.db.Contacts()
	if err != nil {
		return ContactsResult{Result: storageFailure("cannot list contacts", err)}
	}
	return ContactsResult{Result: succeed(""), Contacts: contacts}
}

func (s *Service) ContactByID(id string) ContactResult {
	contact, err := s.db.Contact(id)
	if err != nil {
		return ContactResult{Result: storageFailure("cannot get contact", err)}
	}
	return ContactResult{Result: succeed(""), Contact: contact}
}

// CreateContact stores the message and forwards it to the organization
// inbox when a notifier is configured.
func (s *Service) CreateContact(req ContactRequest) ContactResult {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = internal.NormalizeEmail(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if e := s.validate(&req); e != nil {
		return ContactResult{Result: fail(*e)}
	}
	contact := &db.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if _, err := s.db.CreateContact(contact); err != nil {
		return ContactResult{Result: storageFailure("cannot create contact", err)}
	}
	s.invalidate(pagecache.Contact)
	s.notify(mailtemplates.ContactReceivedNotification, s.inbox, contact.Email, struct {
		Name, Email, Subject, Message, Date string
	}{
		Name:    contact.Name,
		Email:   contact.Email,
		Subject: contact.Subject,
		Message: contact.Message,
		Date:    contact.Date.Format(time.RFC1123),
	})
	return ContactResult{Result: succeed("message sent"), Contact: contact}
}

func (s *Service) DeleteContact(id string) Result {
	if e := requireID(id); e != nil {
		return fail(*e)
	}
	if err := s.db.DelContact(id); err != nil {
		return storageFailure("cannot delete contact", err)
	}
	s.invalidate(pagecache.Contact)
	return succeed("contact deleted")
}
