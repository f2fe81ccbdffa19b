package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"cozyconnect_server/apperror"
	"cozyconnect_server/logger"
	"cozyconnect_server/models"

	"go.uber.org/zap"
)

// LinkService binds pre-seeded ("unclaimed") profiles to an
// authenticated identity through a verification-code exchange: a code
// is generated and mailed to the signed-in address, and presenting it
// back claims the profile.
type LinkService struct {
	Store ProfileStore
	Email EmailSender
	Log   logger.Logger
}

// generateVerificationCode returns a 6-character hex code.
func generateVerificationCode() (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", apperror.NewInternal("failed to generate verification code", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

// RequestCode generates, stores and mails a verification code for the
// named unclaimed profile.
func (ls *LinkService) RequestCode(ctx context.Context, sessionEmail, profileName string) error {
	if profileName == "" {
		return apperror.NewInvalidInput("profile name is required", nil)
	}

	profile, err := ls.Store.GetByName(ctx, profileName)
	if err != nil {
		return err
	}
	if profile.IsLinked() {
		return apperror.NewConflict("profile", "linked email", profile.LinkedEmail)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return err
	}
	if _, err := ls.Store.Update(ctx, profile.ID, map[string]interface{}{"verificationCode": code}); err != nil {
		return err
	}

	if err := ls.Email.SendVerificationCode(ctx, sessionEmail, profileName, code); err != nil {
		return err
	}
	ls.Log.Info("verification code issued", zap.String("profileId", profile.ID))
	return nil
}

// LinkProfile claims the named profile by presenting the mailed code.
// On success the profile is bound to sessionEmail and the code is
// cleared.
func (ls *LinkService) LinkProfile(ctx context.Context, sessionEmail, profileName, code string) (*models.Profile, error) {
	if profileName == "" || code == "" {
		return nil, apperror.NewInvalidInput("profile name and verification code are required", nil)
	}

	profile, err := ls.Store.GetByName(ctx, profileName)
	if err != nil {
		return nil, err
	}

	if profile.VerificationCode == "" {
		return nil, apperror.NewInvalidInput("no verification code found for this profile; request a new one", nil)
	}
	if profile.VerificationCode != code {
		return nil, apperror.NewInvalidInput("the verification code is incorrect", nil)
	}
	if profile.IsLinked() {
		return nil, apperror.NewConflict("profile", "linked email", profile.LinkedEmail)
	}

	updated, err := ls.Store.Update(ctx, profile.ID, map[string]interface{}{
		"linkedEmail":      sessionEmail,
		"verificationCode": "",
	})
	if err != nil {
		return nil, err
	}
	if updated.VerificationCode != "" {
		ls.Log.Warn("verification code was not cleared", zap.String("profileId", profile.ID))
	}

	ls.Log.Info("profile linked", zap.String("profileId", profile.ID))
	return updated, nil
}

// CheckProfile reports whether a claimed profile exists for the given
// linking identity. Used by the post-login gate to decide between the
// deck and the link-or-create flow.
func (ls *LinkService) CheckProfile(ctx context.Context, email string) (*models.Profile, error) {
	if email == "" {
		return nil, apperror.NewInvalidInput("email must not be empty", nil)
	}
	return ls.Store.GetByLinkedEmail(ctx, email)
}
