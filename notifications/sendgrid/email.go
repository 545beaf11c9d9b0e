// Package sendgrid sends the email notifications through the SendGrid API.
package sendgrid

import (
	"context"
	"fmt"
	"net/http"

	"github.com/helpinghands/ngo-backend/notifications"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Config contains the sender and the API key of the SendGrid account.
type Config struct {
	FromName    string
	FromAddress string
	APIKey      string
}

// Email is the SendGrid implementation of notifications.NotificationService.
type Email struct {
	config *Config
	client *sendgrid.Client
}

var _ notifications.NotificationService = (*Email)(nil)

// Init sets the configuration and creates the SendGrid client.
func (sg *Email) Init(rawConfig any) error {
	config, ok := rawConfig.(*Config)
	if !ok {
		return fmt.Errorf("invalid SendGrid configuration")
	}
	if config.APIKey == "" {
		return fmt.Errorf("missing SendGrid API key")
	}
	sg.config = config
	sg.client = sendgrid.NewSendClient(config.APIKey)
	return nil
}

// SendNotification sends the notification with the SendGrid API.
func (sg *Email) SendNotification(ctx context.Context, notification *notifications.Notification) error {
	message := sg.message(notification)
	resp, err := sg.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid responded with status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (sg *Email) message(notification *notifications.Notification) *mail.SGMailV3 {
	from := mail.NewEmail(sg.config.FromName, sg.config.FromAddress)
	to := mail.NewEmail(notification.ToName, notification.ToAddress)
	message := mail.NewSingleEmail(from, notification.Subject, to, notification.PlainBody, notification.Body)
	if notification.ReplyTo != "" {
		message.SetReplyTo(mail.NewEmail("", notification.ReplyTo))
	}
	return message
}
