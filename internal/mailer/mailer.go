package mailer

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/teamtasks/teamtasks-api/internal/config"
)

// Mailer sends outbound notification email. Domain logic never waits on it;
// callers fire it on a goroutine and ignore failures beyond logging.
type Mailer interface {
	SendInvitation(toEmail, teamTitle string) error
	SendInvitationAccepted(toEmail, teamTitle string) error
}

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	host string
	port string
	from string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		from: cfg.SMTPFrom,
	}
}

func (m *SMTPMailer) SendInvitation(toEmail, teamTitle string) error {
	subject := "Invitation to join a team"
	body := fmt.Sprintf("You have been invited to join the team %q. Log in to accept or decline.", teamTitle)
	return m.send(toEmail, subject, body)
}

func (m *SMTPMailer) SendInvitationAccepted(toEmail, teamTitle string) error {
	subject := "Invitation accepted"
	body := fmt.Sprintf("Your invitation to the team %q was accepted.", teamTitle)
	return m.send(toEmail, subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if m.host == "" {
		log.Printf("SMTP not configured, dropping mail to %s: %s", to, subject)
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, nil, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// NopMailer discards all mail (used in tests).
type NopMailer struct{}

func (NopMailer) SendInvitation(string, string) error         { return nil }
func (NopMailer) SendInvitationAccepted(string, string) error { return nil }
