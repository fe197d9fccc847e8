package notify

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESAPI is the subset of the SES client used here.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SESSender struct {
	Client   SESAPI
	From     string
	FromName string
}

func NewSESSender(ctx context.Context, region, from, fromName string) (*SESSender, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESSender{Client: ses.NewFromConfig(cfg), From: from, FromName: fromName}, nil
}

func (s *SESSender) Send(ctx context.Context, msg Message) (string, error) {
	if s.Client == nil || s.From == "" {
		return "", ErrNotConfigured
	}

	source := s.From
	if s.FromName != "" {
		source = (&mail.Address{Name: s.FromName, Address: s.From}).String()
	}

	in := &ses.SendEmailInput{
		Source:      aws.String(source),
		Destination: &types.Destination{ToAddresses: []string{msg.To}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")},
				Text: &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")},
			},
		},
	}
	if msg.ReplyTo != "" {
		in.ReplyToAddresses = []string{msg.ReplyTo}
	}

	out, err := s.Client.SendEmail(ctx, in)
	if err != nil {
		return "", fmt.Errorf("ses send to %s: %w", msg.To, err)
	}
	return aws.ToString(out.MessageId), nil
}
