package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSES struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	return m.SendEmailFunc(ctx, params, optFns...)
}

func TestSESSender_Send(t *testing.T) {
	var got *ses.SendEmailInput
	client := &mockSES{SendEmailFunc: func(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		got = in
		return &ses.SendEmailOutput{MessageId: aws.String("0100-abc")}, nil
	}}
	s := &SESSender{Client: client, From: "bookings@example.com", FromName: "Sparkle Co"}

	id, err := s.Send(context.Background(), Message{To: "sam@example.com", ReplyTo: "ops@example.com", Subject: "Hi", HTML: "<p>Hi</p>", Text: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, "0100-abc", id)

	require.NotNil(t, got)
	assert.Equal(t, `"Sparkle Co" <bookings@example.com>`, aws.ToString(got.Source))
	assert.Equal(t, []string{"sam@example.com"}, got.Destination.ToAddresses)
	assert.Equal(t, []string{"ops@example.com"}, got.ReplyToAddresses)
	assert.Equal(t, "Hi", aws.ToString(got.Message.Subject.Data))
	assert.Equal(t, "<p>Hi</p>", aws.ToString(got.Message.Body.Html.Data))
}

func TestSESSender_SendError(t *testing.T) {
	client := &mockSES{SendEmailFunc: func(context.Context, *ses.SendEmailInput, ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
		return nil, errors.New("throttled")
	}}
	s := &SESSender{Client: client, From: "bookings@example.com"}

	_, err := s.Send(context.Background(), Message{To: "sam@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestSESSender_NotConfigured(t *testing.T) {
	_, err := (&SESSender{}).Send(context.Background(), Message{To: "x@example.com"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
