// Package notifications defines the notification sent by the service (a
// contact submission alert, a newsletter welcome) and the interface that the
// email backends implement.
package notifications

import "context"

// Notification is a single email message. Body holds the HTML version and
// PlainBody the text fallback.
type Notification struct {
	ToName    string
	ToAddress string
	ReplyTo   string
	Subject   string
	Body      string
	PlainBody string
}

// NotificationService is implemented by every email backend. Init receives
// the backend specific configuration.
type NotificationService interface {
	Init(conf any) error
	SendNotification(context.Context, *Notification) error
}
