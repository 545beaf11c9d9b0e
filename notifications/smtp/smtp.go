// Package smtp sends the email notifications through an SMTP server.
package smtp

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/smtp"
	"net/textproto"

	"github.com/helpinghands/ngo-backend/notifications"
)

// Config represents the configuration for the SMTP email service. The
// TestAPIPort is the port of the API of a local inbox (for example MailHog)
// used to check the messages in tests.
type Config struct {
	FromName     string
	FromAddress  string
	SMTPUsername string
	SMTPPassword string
	SMTPServer   string
	SMTPPort     int
	TestAPIPort  int
}

// Email is the SMTP implementation of notifications.NotificationService.
type Email struct {
	config *Config
	auth   smtp.Auth
}

var _ notifications.NotificationService = (*Email)(nil)

// Init sets the configuration of the service. The SMTP auth is only used if
// both the username and the password are provided.
func (se *Email) Init(rawConfig any) error {
	config, ok := rawConfig.(*Config)
	if !ok {
		return fmt.Errorf("invalid SMTP configuration")
	}
	if _, err := mail.ParseAddress(config.FromAddress); err != nil {
		return fmt.Errorf("could not parse from email: %w", err)
	}
	if config.SMTPServer == "" || config.SMTPPort == 0 {
		return fmt.Errorf("missing SMTP server or port")
	}
	se.config = config
	if config.SMTPUsername != "" && config.SMTPPassword != "" {
		se.auth = smtp.PlainAuth("", config.SMTPUsername, config.SMTPPassword, config.SMTPServer)
	}
	return nil
}

// SendNotification sends the notification to its recipient. It returns when
// the message is accepted by the server or when the context is done.
func (se *Email) SendNotification(ctx context.Context, notification *notifications.Notification) error {
	body, err := se.composeBody(notification)
	if err != nil {
		return fmt.Errorf("could not compose email body: %w", err)
	}
	server := fmt.Sprintf("%s:%d", se.config.SMTPServer, se.config.SMTPPort)
	errCh := make(chan error, 1)
	go func() {
		errCh <- smtp.SendMail(server, se.auth, se.config.FromAddress, []string{notification.ToAddress}, body)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// composeBody creates a multipart/alternative message with the plain text and
// the HTML versions of the notification.
func (se *Email) composeBody(notification *notifications.Notification) ([]byte, error) {
	to, err := mail.ParseAddress(notification.ToAddress)
	if err != nil {
		return nil, fmt.Errorf("could not parse to email: %w", err)
	}
	if notification.ToName != "" {
		to.Name = notification.ToName
	}
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	var headers bytes.Buffer
	from := mail.Address{Name: se.config.FromName, Address: se.config.FromAddress}
	fmt.Fprintf(&headers, "From: %s\r\n", from.String())
	fmt.Fprintf(&headers, "To: %s\r\n", to.String())
	if notification.ReplyTo != "" {
		replyTo, err := mail.ParseAddress(notification.ReplyTo)
		if err != nil {
			return nil, fmt.Errorf("could not parse reply-to email: %w", err)
		}
		fmt.Fprintf(&headers, "Reply-To: %s\r\n", replyTo.String())
	}
	fmt.Fprintf(&headers, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", notification.Subject))
	headers.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&headers, "Content-Type: multipart/alternative; boundary=%q\r\n", writer.Boundary())
	headers.WriteString("\r\n")

	parts := []struct {
		contentType string
		content     string
	}{
		{`text/plain; charset="UTF-8"`, notification.PlainBody},
		{`text/html; charset="UTF-8"`, notification.Body},
	}
	for _, p := range parts {
		if p.content == "" {
			continue
		}
		part, err := writer.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"8bit"},
		})
		if err != nil {
			return nil, fmt.Errorf("could not create part: %w", err)
		}
		if _, err := part.Write([]byte(p.content)); err != nil {
			return nil, fmt.Errorf("could not write part: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("could not close writer: %w", err)
	}
	return append(headers.Bytes(), body.Bytes()...), nil
}
