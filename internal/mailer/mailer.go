package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/olenak/lingocards/internal/logger"
)

// Mailer delivers transactional email.
type Mailer interface {
	SendShareInvitation(ctx context.Context, toEmail, collectionName, inviteLink string) error
}

// SESMailer sends email through Amazon SES. When no from address is
// configured the mailer runs disabled and logs instead of sending, which
// keeps local development working without AWS credentials.
type SESMailer struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
	log       *logger.Logger
}

// NewSESMailer creates a new SES-backed mailer.
func NewSESMailer(ctx context.Context, awsRegion, fromEmail, fromName string) (*SESMailer, error) {
	log := logger.Default().WithPrefix("mailer")

	if fromEmail == "" {
		log.Warn("mailer disabled: no from address configured")
		return &SESMailer{enabled: false, log: log}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	log.Info("mailer enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &SESMailer{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		log:       log,
	}, nil
}

// Enabled reports whether the mailer will actually deliver mail.
func (m *SESMailer) Enabled() bool {
	return m.enabled
}

func (m *SESMailer) SendShareInvitation(ctx context.Context, toEmail, collectionName, inviteLink string) error {
	log := logger.FromContext(ctx).WithPrefix("mailer")

	if !m.enabled {
		log.Info("skipping share invitation email (mailer disabled): to=%s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("You've been invited to study %q", collectionName)
	htmlBody := fmt.Sprintf(`<p>Hi,</p>
<p>Someone shared the flashcard collection <strong>%s</strong> with you.</p>
<p><a href="%s">Accept the invitation</a> to start studying.</p>
<p>This invitation expires in 7 days.</p>`, collectionName, inviteLink)
	textBody := fmt.Sprintf(`Hi,

Someone shared the flashcard collection %q with you.

Accept the invitation to start studying:
%s

This invitation expires in 7 days.
`, collectionName, inviteLink)

	return m.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (m *SESMailer) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	log := logger.FromContext(ctx).WithPrefix("mailer")

	fromAddress := m.fromEmail
	if m.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		log.Error("failed to send email to %s: %v", toEmail, err)
		return fmt.Errorf("sending email to %s: %w", toEmail, err)
	}
	log.Info("email sent: to=%s, subject=%s", toEmail, subject)
	return nil
}
