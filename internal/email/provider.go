package email

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/dangerclosesec/tabbedjournal/internal/config"
)

// NewSender builds the sender for provider. awsCfg is only read for SES.
func NewSender(cfg *config.Config, provider Provider, awsCfg aws.Config) (Sender, error) {
	switch provider {
	case ProviderSendgrid:
		if cfg.Sendgrid.APIKey == "" {
			return nil, fmt.Errorf("sendgrid provider requires SENDGRID_API_KEY")
		}
		return NewSendgridSender(cfg.Sendgrid.APIKey), nil
	case ProviderSES:
		if cfg.AWS.SESFrom == "" {
			return nil, fmt.Errorf("ses provider requires AWS_SES_FROM")
		}
		return NewSESSender(awsCfg), nil
	case ProviderSMTP:
		if cfg.SMTP.Host == "" {
			return nil, fmt.Errorf("smtp provider requires SMTP_HOST")
		}
		return NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password), nil
	case ProviderLog, "":
		return LogSender{}, nil
	}
	return nil, fmt.Errorf("unsupported email provider: %s", provider)
}
