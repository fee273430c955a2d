package mail

import (
	"gopkg.in/gomail.v2"
)

// メール送信。コアから見ればfire-and-forget（失敗はログだけ）。

type Message struct {
	To      string
	Subject string
	HTML    string
	ReplyTo string
}

type Mailer interface {
	Send(msg Message) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(msg Message) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	if msg.Subject != "" {
		gm.SetHeader("Subject", msg.Subject)
	}
	if msg.ReplyTo != "" {
		gm.SetHeader("Reply-To", msg.ReplyTo)
	}
	gm.SetBody("text/html", msg.HTML)

	return m.dialer.DialAndSend(gm)
}
