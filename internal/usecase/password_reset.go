package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/gfermin360/user-verification-api/internal/config"
	"github.com/gfermin360/user-verification-api/internal/model"
	"github.com/gfermin360/user-verification-api/internal/repository"
	"github.com/gfermin360/user-verification-api/internal/security"
)

// PasswordResetUsecase defines the business logic for password recovery.
type PasswordResetUsecase interface {
	// RequestPasswordReset issues a fresh reset code for the account behind
	// the given email and mails a recovery link. Codes already outstanding
	// for the user stay redeemable.
	RequestPasswordReset(ctx context.Context, email, frontBaseURL string) error

	// ResetPassword consumes a reset code and replaces the owning user's
	// password hash. It requires neither a verified account nor a password
	// different from the previous one.
	ResetPassword(ctx context.Context, code, newPassword string) (*model.User, error)
}

type passwordResetUsecase struct {
	userRepo repository.UserRepository
	codeRepo repository.VerificationCodeRepository
	mailer   EmailSender
	cfg      *config.Config
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	codeRepo repository.VerificationCodeRepository,
	mailer EmailSender,
	cfg *config.Config,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo: userRepo,
		codeRepo: codeRepo,
		mailer:   mailer,
		cfg:      cfg,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email, frontBaseURL string) error {
	// An unknown email fails with the same credentials-shaped condition as a
	// bad login, keeping the status code account-agnostic.
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrInvalidCredentials
		}

		return err
	}

	code, err := newVerificationCode()
	if err != nil {
		return err
	}

	if _, err := u.codeRepo.CreateCode(ctx, &model.VerificationCode{
		Code:   code,
		UserID: user.ID,
	}); err != nil {
		return err
	}

	if frontBaseURL == "" {
		frontBaseURL = u.cfg.FrontBaseURL
	}

	link := verificationLink(frontBaseURL, code)
	htmlBody := fmt.Sprintf(`
		<h1>Hello %s %s</h1>
		<p><b>Click the following link to recover your password</b></p>
		<p><a href="%s">%s</a></p>
		<p><b>Code: </b>%s</p>
	`, user.FirstName, user.LastName, link, link, code)

	return u.mailer.SendHTML([]string{user.Email}, "Password recovery!", htmlBody)
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, code, newPassword string) (*model.User, error) {
	verificationCode, err := u.codeRepo.ConsumeCode(ctx, code)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCode
		}

		return nil, err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.UpdateUser(ctx, verificationCode.UserID.Hex(), repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCode
		}

		return nil, err
	}

	return user, nil
}
