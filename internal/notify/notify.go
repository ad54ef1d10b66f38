// Package notify is the outbound notification port used by the invite flow.
package notify

import (
	"context"
	"log/slog"

	"github.com/dangerclosesec/tabbedjournal/internal/metrics"
)

//go:generate mockgen -source=./notify.go -destination=../mocks/mock_notifier.go -package=mocks Notifier

// Notifier sends user-facing notifications.
type Notifier interface {
	SendEmail(ctx context.Context, to, subject, body string) error
	SendSMS(ctx context.Context, to, body string) error
}

// EmailSender is satisfied by email.Service.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SMSSender is satisfied by the sms package senders.
type SMSSender interface {
	Send(ctx context.Context, phoneNumber, message string) error
}

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Dispatcher is a best-effort Notifier: delivery failures are logged and
// counted, never returned.
type Dispatcher struct {
	email   EmailSender
	sms     SMSSender
	metrics *metrics.Metrics
}

func NewDispatcher(email EmailSender, sms SMSSender, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{email: email, sms: sms, metrics: m}
}

func (d *Dispatcher) SendEmail(ctx context.Context, to, subject, body string) error {
	if d.email == nil {
		d.record(ctx, ChannelEmail, to, errNoSender)
		return nil
	}
	d.record(ctx, ChannelEmail, to, d.email.SendEmail(ctx, to, subject, body))
	return nil
}

func (d *Dispatcher) SendSMS(ctx context.Context, to, body string) error {
	if d.sms == nil {
		d.record(ctx, ChannelSMS, to, errNoSender)
		return nil
	}
	d.record(ctx, ChannelSMS, to, d.sms.Send(ctx, to, body))
	return nil
}

func (d *Dispatcher) record(ctx context.Context, channel, to string, err error) {
	result := metrics.ResultSent
	if err != nil {
		result = metrics.ResultFailed
		slog.WarnContext(ctx, "Notification delivery failed", "channel", channel, "to", to, "error", err)
	}
	if d.metrics != nil {
		d.metrics.Notifications.WithLabelValues(channel, result).Inc()
	}
}
