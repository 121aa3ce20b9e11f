package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"

	"github.com/taylorconnect/hub/pkg/retry"
)

// SESClient is the subset of *ses.SES used for sending
type SESClient interface {
	SendEmailWithContext(ctx aws.Context, input *ses.SendEmailInput, opts ...request.Option) (*ses.SendEmailOutput, error)
}

// SESMailer sends through Amazon SES
type SESMailer struct {
	config *Config
	client SESClient
}

// NewSESMailer creates a session from the configured region. Static credentials are
// used when both keys are set, otherwise the default AWS credential chain applies.
func NewSESMailer(config *Config) (*SESMailer, error) {
	awsConfig := &aws.Config{
		Region: aws.String(config.SESRegion),
	}
	if config.SESAccessKey != "" && config.SESSecretKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.SESAccessKey, config.SESSecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return NewSESMailerWithClient(config, ses.New(sess)), nil
}

func NewSESMailerWithClient(config *Config, client SESClient) *SESMailer {
	return &SESMailer{
		config: config,
		client: client,
	}
}

func (m *SESMailer) Provider() string {
	return "ses"
}

func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return retry.Permanent(fmt.Errorf("invalid message: %w", err))
	}

	from := msg.From
	if from == "" {
		from = m.config.DefaultFrom()
	}

	body := &ses.Body{}
	if msg.HTML != "" {
		body.Html = &ses.Content{
			Charset: aws.String("UTF-8"),
			Data:    aws.String(msg.HTML),
		}
	}
	if msg.Text != "" {
		body.Text = &ses.Content{
			Charset: aws.String("UTF-8"),
			Data:    aws.String(msg.Text),
		}
	}

	input := &ses.SendEmailInput{
		Destination: &ses.Destination{
			ToAddresses: aws.StringSlice(msg.To),
		},
		Message: &ses.Message{
			Body: body,
			Subject: &ses.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(msg.Subject),
			},
		},
		Source: aws.String(from),
	}

	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []*string{aws.String(msg.ReplyTo)}
	}

	if _, err := m.client.SendEmailWithContext(ctx, input); err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			return fmt.Errorf("SES error: %s", aerr.Error())
		}
		return fmt.Errorf("failed to send email via SES: %w", err)
	}

	return nil
}
