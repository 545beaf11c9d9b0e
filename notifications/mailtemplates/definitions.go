// Package mailtemplates provides the email templates sent by the service
// along with the utilities to render them.
package mailtemplates

import "github.com/helpinghands/ngo-backend/notifications"

// ContactReceivedNotification is sent to the organization inbox when a
// visitor submits the contact form.
var ContactReceivedNotification = MailTemplate{
	Key: "contact_received",
	Placeholder: notifications.Notification{
		Subject: "New contact message from {{.Name}}: {{.Subject}}",
		PlainBody: `You have a new contact message:

From: {{.Name}} <{{.Email}}>
Subject: {{.Subject}}

{{.Message}}`,
	},
}

// NewsletterWelcomeNotification is sent to a new newsletter subscriber.
var NewsletterWelcomeNotification = MailTemplate{
	Key: "newsletter_welcome",
	Placeholder: notifications.Notification{
		Subject: "Welcome to the {{.Organization}} newsletter",
		PlainBody: `Hello,

{{.Email}} is now subscribed to the {{.Organization}} newsletter.

Best regards,
The {{.Organization}} team`,
	},
}

// DonationVerifiedNotification is sent to a donator once the payment of the
// donation has been confirmed.
var DonationVerifiedNotification = MailTemplate{
	Key: "donation_verified",
	Placeholder: notifications.Notification{
		Subject: "Thank you for your donation to {{.Organization}}",
		PlainBody: `Dear {{.Name}},

We have received your donation of {{.Amount}} (reference {{.TransactionID}}).

Thank you,
The {{.Organization}} team`,
	},
}
