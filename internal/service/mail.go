// Package service contains the outbound collaborators used by the
// account workflow
package service

import (
	"errors"
	"fmt"

	"procureapp/accounts-api/config"

	"gopkg.in/gomail.v2"
)

// Mailer dispatches account mails. The workflow only ever needs a
// recipient, a subject and the action link to embed
type Mailer interface {
	Send(to, subject, actionURL string, reset bool) error
}

type SMTPMailer struct {
	cfg config.Mail
}

func NewSMTP(cfg config.Mail) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

const confirmBody = `<p>Hello %s,</p>
<p>Click <a href="%s">here</a> to confirm your account.</p>
<p>This link will expire in 60 minutes.</p>`

const resetBody = `<p>Hello %s,</p>
<p>Click <a href="%s">here</a> to reset your password.</p>
<p>This link will expire in 60 minutes. If you didn't ask for a reset you can ignore this mail.</p>`

func (s *SMTPMailer) Send(to, subject, actionURL string, reset bool) error {
	if to == s.cfg.From {
		return errors.New("invalid recipient address")
	}

	body := confirmBody
	if reset {
		body = resetBody
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("%s %s", s.cfg.SubjectPrefix, subject))
	m.SetBody("text/html", fmt.Sprintf(body, to, actionURL))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	return d.DialAndSend(m)
}
