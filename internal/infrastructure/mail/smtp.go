// Package mail envía correos por SMTP con gomail.
package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config parámetros SMTP.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Mailer implementa ports.Mailer.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer devuelve nil si no hay host configurado (correo deshabilitado).
func NewMailer(cfg Config) *Mailer {
	if cfg.Host == "" {
		return nil
	}
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   from,
	}
}

// Send envía un correo HTML con adjuntos opcionales (rutas en disco).
func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string, attachments ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := m.message(to, subject, htmlBody, attachments...)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mail: enviar a %s: %w", to, err)
	}
	return nil
}

func (m *Mailer) message(to, subject, htmlBody string, attachments ...string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", "<html><body>"+htmlBody+"<p>Este es un correo automático, por favor no responda.</p></body></html>")
	for _, a := range attachments {
		msg.Attach(a)
	}
	return msg
}
