package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService sends transactional mail through Amazon SES
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
}

// NewEmailService creates an SES-backed email service using the default AWS
// credential chain
func NewEmailService(ctx context.Context, region, fromEmail, fromName string) (*EmailService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
	}, nil
}

func (s *EmailService) send(to, subject, htmlBody, textBody string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody)},
					Text: &types.Content{Data: aws.String(textBody)},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(context.Background(), input); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendPasswordResetEmail mails a single-use reset link
func (s *EmailService) SendPasswordResetEmail(to, username, resetURL string) error {
	subject := "Reset your password"
	html := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received a request to reset your password. Click the link below to choose a new one. The link expires in one hour.</p>
		<p><a href="%s">Reset password</a></p>
		<p>If you didn't request this, you can ignore this email.</p>
	`, username, resetURL)
	text := fmt.Sprintf(
		"Hi %s,\n\nWe received a request to reset your password. Open the link below to choose a new one. The link expires in one hour.\n\n%s\n\nIf you didn't request this, you can ignore this email.\n",
		username, resetURL)
	return s.send(to, subject, html, text)
}

// SendWelcomeEmail mails a short greeting after registration
func (s *EmailService) SendWelcomeEmail(to, username string) error {
	subject := "Welcome to BrainsMath"
	html := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your account is ready. Start a test, climb the leaderboard, and keep your streak alive.</p>
	`, username)
	text := fmt.Sprintf(
		"Hi %s,\n\nYour account is ready. Start a test, climb the leaderboard, and keep your streak alive.\n",
		username)
	return s.send(to, subject, html, text)
}
