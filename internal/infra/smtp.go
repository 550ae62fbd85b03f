package infra

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
)

// SMTPParams are the outbound mail settings. They come from the active
// ConfigEmail row (already decrypted), not from the environment, so the
// shop can be reconfigured without a restart.
type SMTPParams struct {
	Host      string
	Port      int
	User      string
	Password  string
	FromEmail string
	FromName  string
}

func (p SMTPParams) addr() string { return fmt.Sprintf("%s:%d", p.Host, p.Port) }

// Mailer sends transactional email over SMTP. Port 465 uses implicit TLS,
// anything else negotiates STARTTLS when the server offers it.
type Mailer struct {
	timeout time.Duration
}

func NewMailer() *Mailer {
	return &Mailer{timeout: 10 * time.Second}
}

// Enviar sends one HTML message with the given parameters.
func (m *Mailer) Enviar(p SMTPParams, to, subject, htmlBody string) error {
	e := email.NewEmail()
	e.From = fmt.Sprintf("%q <%s>", p.FromName, p.FromEmail)
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(htmlBody)

	auth := smtp.PlainAuth("", p.User, p.Password, p.Host)
	if p.Port == 465 {
		return e.SendWithTLS(p.addr(), auth, &tls.Config{ServerName: p.Host})
	}
	return e.Send(p.addr(), auth)
}

// Verificar performs a live SMTP handshake (connect, EHLO, STARTTLS when
// offered, AUTH) without sending a message. Used to validate credentials
// before a new configuration is persisted.
func (m *Mailer) Verificar(p SMTPParams) error {
	var conn net.Conn
	var err error

	dialer := &net.Dialer{Timeout: m.timeout}
	if p.Port == 465 {
		conn, err = tls.DialWithDialer(dialer, "tcp", p.addr(), &tls.Config{ServerName: p.Host})
	} else {
		conn, err = dialer.Dial("tcp", p.addr())
	}
	if err != nil {
		return fmt.Errorf("smtp: conexion: %w", err)
	}

	_ = conn.SetDeadline(time.Now().Add(m.timeout))
	client, err := smtp.NewClient(conn, p.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp: handshake: %w", err)
	}
	defer client.Close()

	if p.Port != 465 {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: p.Host}); err != nil {
				return fmt.Errorf("smtp: starttls: %w", err)
			}
		}
	}

	auth := smtp.PlainAuth("", p.User, p.Password, p.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp: autenticacion: %w", err)
	}
	return client.Quit()
}
