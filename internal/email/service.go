// internal/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"log/slog"
	"text/template"

	"github.com/dangerclosesec/tabbedjournal"
	"github.com/dangerclosesec/tabbedjournal/internal/config"
)

var templateFS fs.FS = tabbedjournal.EmailFS

// Provider identifies supported email providers
type Provider string

const (
	ProviderSMTP     Provider = "smtp"
	ProviderSendgrid Provider = "sendgrid"
	ProviderSES      Provider = "ses"
	ProviderLog      Provider = "log"

	DefaultTemplatePath = "templates/emails"
)

// Message is one outgoing email. HTML is optional.
type Message struct {
	To       string
	From     string
	FromName string
	Subject  string
	Text     string
	HTML     string
}

// Sender delivers a message through one provider.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Service handles email operations
type Service struct {
	config    *config.Config
	provider  Provider
	sender    Sender
	from      string
	Templates map[string]*Template
}

type Template struct {
	HTML      *htmltemplate.Template
	Plaintext *template.Template
}

// NewEmailService creates a new email service instance delivering through
// sender.
func NewEmailService(cfg *config.Config, provider Provider, sender Sender) (*Service, error) {
	s := &Service{
		config:    cfg,
		provider:  provider,
		sender:    sender,
		from:      defaultFrom(cfg, provider),
		Templates: make(map[string]*Template),
	}

	if err := s.loadTemplates(); err != nil {
		return nil, fmt.Errorf("loading email templates: %w", err)
	}

	return s, nil
}

func defaultFrom(cfg *config.Config, provider Provider) string {
	switch provider {
	case ProviderSendgrid:
		return cfg.Sendgrid.From
	case ProviderSES:
		return cfg.AWS.SESFrom
	case ProviderSMTP:
		return cfg.SMTP.From
	}
	return "no-reply@localhost"
}

// loadTemplates loads all email templates from the embedded filesystem
func (s *Service) loadTemplates() error {
	templateGroups, err := fs.ReadDir(templateFS, DefaultTemplatePath)
	if err != nil {
		return fmt.Errorf("failed to read email templates directory: %w", err)
	}

	if len(templateGroups) == 0 {
		return fmt.Errorf("no email templates found")
	}

	for _, group := range templateGroups {
		if !group.IsDir() {
			continue
		}

		groupPath := DefaultTemplatePath + "/" + group.Name()
		groupEntries, err := fs.ReadDir(templateFS, groupPath)
		if err != nil {
			return fmt.Errorf("failed to read email template group %s: %w", group.Name(), err)
		}

		var tmpl Template
		for _, entry := range groupEntries {
			switch entry.Name() {
			case "plaintext.tmpl":
				tmpl.Plaintext, err = template.ParseFS(templateFS, groupPath+"/plaintext.tmpl")
			case "html.tmpl":
				tmpl.HTML, err = htmltemplate.ParseFS(templateFS, groupPath+"/html.tmpl")
			default:
				err = fmt.Errorf("unexpected file %s", entry.Name())
			}
			if err != nil {
				return fmt.Errorf("invalid email template group %s: %w", group.Name(), err)
			}
		}

		if tmpl.Plaintext == nil {
			return fmt.Errorf("invalid email template group %s: missing plaintext.tmpl", group.Name())
		}

		s.Templates[group.Name()] = &tmpl
	}

	return nil
}

// SendEmail sends a plain text email using the configured provider
func (s *Service) SendEmail(ctx context.Context, to, subject, body string) error {
	return s.send(ctx, Message{To: to, Subject: subject, Text: body})
}

// SendTemplate renders the named template and sends both versions.
func (s *Service) SendTemplate(ctx context.Context, to, subject, name string, data interface{}) error {
	htmlContent, textContent, err := s.Render(name, data)
	if err != nil {
		return fmt.Errorf("rendering template: %w", err)
	}
	return s.send(ctx, Message{To: to, Subject: subject, Text: textContent, HTML: htmlContent})
}

func (s *Service) send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("missing recipient email address")
	}
	if msg.From == "" {
		msg.From = s.from
	}
	if msg.FromName == "" {
		msg.FromName = s.config.SiteName
	}
	if msg.From == "" {
		return fmt.Errorf("missing sender email address (From)")
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("sending email via %s: %w", s.provider, err)
	}

	slog.DebugContext(ctx, "Email sent", "provider", s.provider, "subject", msg.Subject)
	return nil
}

// Render renders a template with the given data. The HTML result is empty
// when the template has no html.tmpl.
func (s *Service) Render(name string, data interface{}) (string, string, error) {
	tmpl, exists := s.Templates[name]
	if !exists {
		return "", "", fmt.Errorf("template %s not found", name)
	}

	var htmlbuf bytes.Buffer
	if tmpl.HTML != nil {
		if err := tmpl.HTML.Execute(&htmlbuf, data); err != nil {
			return "", "", fmt.Errorf("failed to execute template: %w", err)
		}
	}

	var textbuf bytes.Buffer
	if err := tmpl.Plaintext.Execute(&textbuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template: %w", err)
	}

	return htmlbuf.String(), textbuf.String(), nil
}

// RenderText renders only the plaintext version of a template.
func (s *Service) RenderText(name string, data interface{}) (string, error) {
	_, text, err := s.Render(name, data)
	return text, err
}
