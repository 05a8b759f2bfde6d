package service

import (
	"fmt"

	"dental-lab-backend/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Mailer sends outbound email. Delivery is fire-and-forget from the caller's
// perspective; failures are logged, never surfaced to the request.
type Mailer interface {
	Send(to, subject, body string) error
	SendAsync(to, subject, body string)
}

type smtpMailer struct {
	config config.SMTPConfig
	log    *logrus.Logger
}

func NewMailer(cfg config.SMTPConfig, log *logrus.Logger) Mailer {
	return &smtpMailer{config: cfg, log: log}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.config.Host, m.config.Port, m.config.User, m.config.Password)
	return d.DialAndSend(msg)
}

func (m *smtpMailer) SendAsync(to, subject, body string) {
	go func() {
		if err := m.Send(to, subject, body); err != nil {
			m.log.Warnf("Failed to send email to %s: %+v", to, err)
		}
	}()
}

// PasswordResetBody renders the reset email. The token is a single-use,
// time-boxed credential distinct from access/refresh tokens.
func PasswordResetBody(token string) (subject, body string) {
	subject = "Password Reset Request"
	body = fmt.Sprintf(
		"<p>A password reset was requested for your account.</p>"+
			"<p>Use this token within 15 minutes: <b>%s</b></p>"+
			"<p>If you did not request this, ignore this email.</p>", token)
	return subject, body
}

// CaseStatusBody renders the case status notification sent to the submitting
// dentist.
func CaseStatusBody(caseNumber, status string) (subject, body string) {
	subject = fmt.Sprintf("Case %s status update", caseNumber)
	body = fmt.Sprintf("<p>Your case <b>%s</b> is now <b>%s</b>.</p>", caseNumber, status)
	return subject, body
}

// ApplicationReviewBody renders the decision notification sent to the dentist.
func ApplicationReviewBody(status, notes string) (subject, body string) {
	subject = "Your application has been reviewed"
	body = fmt.Sprintf("<p>Your application status is now <b>%s</b>.</p>", status)
	if notes != "" {
		body += fmt.Sprintf("<p>Reviewer notes: %s</p>", notes)
	}
	return subject, body
}
