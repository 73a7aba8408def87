// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/danielhkuo/term-mapper/config"
	"github.com/danielhkuo/term-mapper/models"
)

// SendTimeout bounds one SMTP conversation
const SendTimeout = 30 * time.Second

// Sender delivers contact form notifications.
type Sender interface {
	SendContact(ctx context.Context, msg *models.ContactMessage) error
}

// SMTPMailer sends contact notifications through the configured SMTP server.
type SMTPMailer struct {
	email   config.EmailConfig
	to      string
	website string
}

func New(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		email:   cfg.Email,
		to:      cfg.Contact.Email,
		website: cfg.Datenschutz.Website,
	}
}

// SendContact builds the notification for msg and delivers it.
func (m *SMTPMailer) SendContact(ctx context.Context, msg *models.ContactMessage) error {
	out, err := m.buildMessage(msg)
	if err != nil {
		return err
	}

	client, err := m.newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, SendTimeout)
	defer cancel()

	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("failed to send contact email: %w", err)
	}
	return nil
}

func (m *SMTPMailer) buildMessage(msg *models.ContactMessage) (*mail.Msg, error) {
	out := mail.NewMsg()

	if err := out.FromFormat(m.email.FromName, m.email.FromEmail); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := out.To(m.to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	if err := out.ReplyTo(msg.Email); err != nil {
		return nil, fmt.Errorf("invalid reply-to address: %w", err)
	}
	envelope := m.email.EnvelopeFrom
	if envelope == "" {
		envelope = m.email.FromEmail
	}
	if err := out.EnvelopeFrom(envelope); err != nil {
		return nil, fmt.Errorf("invalid envelope sender: %w", err)
	}
	out.Subject("[Kontaktformular] " + msg.Subject)

	text, html, err := renderBodies(bodyView{
		Name:    msg.Name,
		Email:   msg.Email,
		Subject: msg.Subject,
		Message: msg.Message,
		Website: m.website,
	})
	if err != nil {
		return nil, err
	}
	out.SetBodyString(mail.TypeTextPlain, text)
	out.AddAlternativeString(mail.TypeTextHTML, html)

	return out, nil
}

// newClient maps the email config onto go-mail options. Port 465 or
// use_ssl means implicit TLS; otherwise use_tls requires STARTTLS.
func (m *SMTPMailer) newClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(m.email.SMTPPort),
		mail.WithTimeout(SendTimeout),
	}

	switch {
	case m.email.UseSSL || m.email.SMTPPort == 465:
		opts = append(opts, mail.WithSSL())
	case m.email.UseTLS:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if m.email.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.email.Username),
			mail.WithPassword(m.email.Password),
		)
	}

	client, err := mail.NewClient(m.email.SMTPServer, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}
	return client, nil
}

func renderBodies(view bodyView) (string, string, error) {
	var text, html bytes.Buffer
	if err := textBody.Execute(&text, view); err != nil {
		return "", "", fmt.Errorf("failed to render text body: %w", err)
	}
	if err := htmlBody.Execute(&html, view); err != nil {
		return "", "", fmt.Errorf("failed to render html body: %w", err)
	}
	return text.String(), html.String(), nil
}

type bodyView struct {
	Name    string
	Email   string
	Subject string
	Message string
	Website string
}

func (v bodyView) MessageLines() []string {
	return strings.Split(strings.ReplaceAll(v.Message, "\r\n", "\n"), "\n")
}

var textBody = texttemplate.Must(texttemplate.New("text").Parse(`Neue Nachricht über das Kontaktformular

Von: {{.Name}}
E-Mail: {{.Email}}
Betreff: {{.Subject}}

Nachricht:
{{.Message}}

---
Diese E-Mail wurde über das Kontaktformular auf {{.Website}} gesendet.
`))

var htmlBody = htmltemplate.Must(htmltemplate.New("html").Parse(`<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #4f46e5; color: white; padding: 20px; border-radius: 8px 8px 0 0; }
        .content { background: #f8fafc; padding: 20px; border: 1px solid #e2e8f0; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #64748b; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #4f46e5; margin-top: 10px; }
        .footer { text-align: center; color: #64748b; font-size: 12px; margin-top: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h2 style="margin: 0;">Neue Kontaktanfrage</h2>
        </div>
        <div class="content">
            <div class="field"><span class="label">Von:</span> {{.Name}}</div>
            <div class="field"><span class="label">E-Mail:</span> <a href="mailto:{{.Email}}">{{.Email}}</a></div>
            <div class="field"><span class="label">Betreff:</span> {{.Subject}}</div>
            <div class="field">
                <span class="label">Nachricht:</span>
                <div class="message-box">{{range $i, $line := .MessageLines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</div>
            </div>
        </div>
        <div class="footer">
            Diese E-Mail wurde über das Kontaktformular auf {{.Website}} gesendet.
        </div>
    </div>
</body>
</html>
`))
