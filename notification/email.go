// Package notification delivers emails and device push messages.
package notification

import (
	"fmt"
	"io"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/services"
	"github.com/go-gomail/gomail"
)

// Mailer sends plain-text emails over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, email, password string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, email, password),
		from:   email,
	}
}

// Send sends an email with optional attachments
func (m *Mailer) Send(to, subject, body string, attachments ...services.Attachment) error {
	if m.from == "" {
		return fmt.Errorf("smtp sender not configured")
	}
	if err := m.dialer.DialAndSend(m.message(to, subject, body, attachments)); err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	return nil
}

func (m *Mailer) message(to, subject, body string, attachments []services.Attachment) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	for _, a := range attachments {
		content := a.Content
		msg.Attach(a.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}
	return msg
}
