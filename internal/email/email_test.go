package email

import (
	"context"
	"encoding/base64"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/dangerclosesec/tabbedjournal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []Message
	err  error
}

func (r *recordingSender) Send(ctx context.Context, msg Message) error {
	r.sent = append(r.sent, msg)
	return r.err
}

func testConfig() *config.Config {
	cfg := &config.Config{SiteName: "Tabbed Journal"}
	cfg.AWS.SESFrom = "journal@example.com"
	return cfg
}

func TestRenderInviteTemplate(t *testing.T) {
	svc, err := NewEmailService(testConfig(), ProviderLog, LogSender{})
	require.NoError(t, err)

	html, text, err := svc.Render("invite", map[string]string{
		"OrgName":   "The Smiths",
		"SiteName":  "Tabbed Journal",
		"AcceptURL": "https://journal.example.com/invite/accept/abc",
		"ExpiresAt": "Mon, 02 Jan 2026",
	})
	require.NoError(t, err)
	assert.Empty(t, html)
	assert.Contains(t, text, "The Smiths")
	assert.Contains(t, text, "https://journal.example.com/invite/accept/abc")

	_, _, err = svc.Render("missing", nil)
	assert.Error(t, err)
}

func TestSendEmailFillsSender(t *testing.T) {
	rec := &recordingSender{}
	svc, err := NewEmailService(testConfig(), ProviderSES, rec)
	require.NoError(t, err)

	require.NoError(t, svc.SendEmail(context.Background(), "kid@example.com", "You're invited to The Smiths", "hello"))
	require.Len(t, rec.sent, 1)
	assert.Equal(t, "journal@example.com", rec.sent[0].From)
	assert.Equal(t, "Tabbed Journal", rec.sent[0].FromName)
	assert.Equal(t, "hello", rec.sent[0].Text)

	assert.Error(t, svc.SendEmail(context.Background(), "", "subject", "body"))

	rec.err = errors.New("throttled")
	err = svc.SendEmail(context.Background(), "kid@example.com", "subject", "body")
	assert.ErrorContains(t, err, "throttled")
}

func TestSMTPSenderPlainText(t *testing.T) {
	var gotAddr, gotFrom string
	var gotBody []byte
	sender := NewSMTPSender("mail.example.com", 2525, "", "")
	sender.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotBody = addr, from, msg
		assert.Nil(t, a)
		assert.Equal(t, []string{"kid@example.com"}, to)
		return nil
	}

	err := sender.Send(context.Background(), Message{
		To: "kid@example.com", From: "journal@example.com", FromName: "Journal",
		Subject: "Hi", Text: "plain body",
	})
	require.NoError(t, err)
	assert.Equal(t, "mail.example.com:2525", gotAddr)
	assert.Equal(t, "journal@example.com", gotFrom)
	assert.Contains(t, string(gotBody), "Content-Type: text/plain")
	assert.Contains(t, string(gotBody), base64.StdEncoding.EncodeToString([]byte("plain body")))
}

func TestBuildMIMEMultipart(t *testing.T) {
	now := time.Unix(0, 42)
	body := string(buildMIME(Message{To: "a@b.c", From: "d@e.f", Subject: "s", Text: "t", HTML: "<p>h</p>"}, now))
	assert.Contains(t, body, "multipart/alternative; boundary=_MULTIPART_MIXED_BOUNDARY_42")
	assert.True(t, strings.HasSuffix(body, "--_MULTIPART_MIXED_BOUNDARY_42--"))
}

type fakeSES struct {
	input *sesv2.SendEmailInput
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESSender(t *testing.T) {
	client := &fakeSES{}
	err := NewSESSenderWithClient(client).Send(context.Background(), Message{
		To: "kid@example.com", From: "journal@example.com", FromName: "Journal", Subject: "Hi", Text: "body",
	})
	require.NoError(t, err)
	require.NotNil(t, client.input)
	assert.Equal(t, "Journal <journal@example.com>", aws.ToString(client.input.FromEmailAddress))
	assert.Equal(t, []string{"kid@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "body", aws.ToString(client.input.Content.Simple.Body.Text.Data))
	assert.Nil(t, client.input.Content.Simple.Body.Html)
}

func TestNewSender(t *testing.T) {
	cfg := testConfig()

	s, err := NewSender(cfg, ProviderLog, aws.Config{})
	require.NoError(t, err)
	assert.IsType(t, LogSender{}, s)

	_, err = NewSender(cfg, ProviderSendgrid, aws.Config{})
	assert.Error(t, err)

	_, err = NewSender(cfg, ProviderSMTP, aws.Config{})
	assert.Error(t, err)

	_, err = NewSender(cfg, Provider("pigeon"), aws.Config{})
	assert.Error(t, err)
}
