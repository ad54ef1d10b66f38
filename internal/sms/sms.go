// Package sms delivers text messages.
package sms

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// Sender delivers one text message to an E.164 phone number.
type Sender interface {
	Send(ctx context.Context, phoneNumber, message string) error
}

// SNSAPI is the subset of the SNS client used here.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSSender handles sending SMS messages via AWS SNS.
type SNSSender struct {
	client SNSAPI
}

// NewSNSSender creates a new SMS client.
func NewSNSSender(cfg aws.Config) *SNSSender {
	return &SNSSender{client: sns.NewFromConfig(cfg)}
}

func NewSNSSenderWithClient(client SNSAPI) *SNSSender {
	return &SNSSender{client: client}
}

// Send publishes message to phoneNumber as a transactional SMS.
func (s *SNSSender) Send(ctx context.Context, phoneNumber, message string) error {
	messageAttributes := map[string]types.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {
			DataType:    aws.String("String"),
			StringValue: aws.String("Transactional"),
		},
	}

	input := &sns.PublishInput{
		Message:           aws.String(message),
		PhoneNumber:       aws.String(phoneNumber),
		MessageAttributes: messageAttributes,
	}

	result, err := s.client.Publish(ctx, input)
	if err != nil {
		return fmt.Errorf("publishing sms: %w", err)
	}

	slog.DebugContext(ctx, "SMS sent", "message_id", aws.ToString(result.MessageId))
	return nil
}

// LogSender writes messages to the structured log instead of sending them.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, phoneNumber, message string) error {
	slog.InfoContext(ctx, "SMS (log provider)", "to", phoneNumber, "body", message)
	return nil
}

// NewSender picks the sender named by provider ("sns" or "log").
func NewSender(provider string, cfg aws.Config) (Sender, error) {
	switch provider {
	case "sns":
		return NewSNSSender(cfg), nil
	case "log", "":
		return LogSender{}, nil
	}
	return nil, fmt.Errorf("unsupported sms provider: %s", provider)
}
