package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/vowbook/backend/config"
)

// Mailer sends new-submission notification emails to the couple over SMTP.
type Mailer struct {
	dialer        *gomail.Dialer
	fromAddress   string
	fromName      string
	publicBaseURL string
}

// NewMailer creates a mailer from SMTP config. Returns nil when no SMTP host
// is configured; callers treat a nil mailer as notifications disabled.
func NewMailer(email config.EmailConfig, publicBaseURL string) *Mailer {
	if email.SMTPHost == "" {
		return nil
	}
	return &Mailer{
		dialer:        gomail.NewDialer(email.SMTPHost, email.SMTPPort, email.SMTPUser, email.SMTPPass),
		fromAddress:   email.FromAddress,
		fromName:      email.FromName,
		publicBaseURL: publicBaseURL,
	}
}

// Subject builds the notification subject line for a new submission.
func Subject(senderName, submissionType string) string {
	return fmt.Sprintf("New %s message from %s", submissionType, senderName)
}

// SendNewSubmission emails the couple about a fresh guestbook entry.
func (m *Mailer) SendNewSubmission(to, eventTitle, senderName, submissionType string) error {
	dashboardLink := m.publicBaseURL + "/dashboard/submissions"
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromAddress, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", Subject(senderName, submissionType))
	msg.SetBody("text/html", fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px;">
			<h2 style="color: #333;">%s</h2>
			<p>%s just left a %s message in your guestbook.</p>
			<p>It is waiting for your review before it appears publicly.</p>
			<p><a href="%s" style="display: inline-block; padding: 10px 20px; background-color: #b76e79; color: #fff; text-decoration: none; border-radius: 5px;">Review submissions</a></p>
		</div>
	`, eventTitle, senderName, submissionType, dashboardLink))
	return m.dialer.DialAndSend(msg)
}
