package sms

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("m-1")}, nil
}

func TestSNSSenderPublishesTransactional(t *testing.T) {
	client := &fakeSNS{}
	err := NewSNSSenderWithClient(client).Send(context.Background(), "+15555550100", "Join The Smiths: https://x/invite/accept/t")
	require.NoError(t, err)

	assert.Equal(t, "+15555550100", aws.ToString(client.input.PhoneNumber))
	assert.Equal(t, "Join The Smiths: https://x/invite/accept/t", aws.ToString(client.input.Message))
	attr := client.input.MessageAttributes["AWS.SNS.SMS.SMSType"]
	assert.Equal(t, "Transactional", aws.ToString(attr.StringValue))
}

func TestSNSSenderError(t *testing.T) {
	client := &fakeSNS{err: errors.New("opted out")}
	err := NewSNSSenderWithClient(client).Send(context.Background(), "+15555550100", "hi")
	assert.ErrorContains(t, err, "opted out")
}

func TestNewSender(t *testing.T) {
	s, err := NewSender("log", aws.Config{})
	require.NoError(t, err)
	assert.IsType(t, LogSender{}, s)

	s, err = NewSender("sns", aws.Config{Region: "us-east-1"})
	require.NoError(t, err)
	assert.IsType(t, &SNSSender{}, s)

	_, err = NewSender("carrier-pigeon", aws.Config{})
	assert.Error(t, err)
}
