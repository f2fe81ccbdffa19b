package services

import (
	"context"
	"fmt"

	"cozyconnect_server/apperror"
	"cozyconnect_server/logger"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// EmailSender is the transactional-email surface the linking flow
// depends on.
type EmailSender interface {
	SendVerificationCode(ctx context.Context, to, profileName, code string) error
}

// EmailService sends transactional mail through Resend.
type EmailService struct {
	Client *resend.Client
	From   string
	Log    logger.Logger
}

func NewEmailService(apiKey, from string, log logger.Logger) *EmailService {
	return &EmailService{
		Client: resend.NewClient(apiKey),
		From:   from,
		Log:    log,
	}
}

func (es *EmailService) SendVerificationCode(ctx context.Context, to, profileName, code string) error {
	html := fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
			<h1>Your Verification Code</h1>
			<p>Hello,</p>
			<p>You requested a verification code for linking your profile "%s" on Cozy Connect.</p>
			<p>Your verification code is:</p>
			<div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px; text-align: center; margin: 20px 0;">
				<span style="font-size: 24px; font-weight: bold; letter-spacing: 4px;">%s</span>
			</div>
			<p>This code will expire in 15 minutes.</p>
			<p>Best regards,<br>The Cozy Connect Team</p>
		</div>`, profileName, code)

	params := &resend.SendEmailRequest{
		From:    es.From,
		To:      []string{to},
		Subject: "Your Cozy Connect Verification Code",
		Html:    html,
	}

	sent, err := es.Client.Emails.SendWithContext(ctx, params)
	if err != nil {
		es.Log.Error("verification email failed", err, zap.String("to", to))
		return apperror.NewInternal("failed to send verification email", err)
	}
	es.Log.Info("verification email sent", zap.String("to", to), zap.String("emailId", sent.Id))
	return nil
}
