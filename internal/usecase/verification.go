package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/gfermin360/user-verification-api/internal/model"
	"github.com/gfermin360/user-verification-api/internal/repository"
)

// VerificationUsecase defines the business logic for email confirmation.
type VerificationUsecase interface {
	// VerifyEmail consumes a verification code and marks its owning user as
	// verified. The flag transition is one-way; there is no path back to
	// unverified.
	VerifyEmail(ctx context.Context, code string) (*model.User, error)
}

// ErrInvalidCode is returned when a verification code does not exist, which
// includes codes that were already consumed.
var ErrInvalidCode = errors.New("invalid code")

type verificationUsecase struct {
	userRepo repository.UserRepository
	codeRepo repository.VerificationCodeRepository
}

// NewVerificationUsecase creates a new instance of VerificationUsecase.
func NewVerificationUsecase(
	userRepo repository.UserRepository,
	codeRepo repository.VerificationCodeRepository,
) VerificationUsecase {
	return &verificationUsecase{
		userRepo: userRepo,
		codeRepo: codeRepo,
	}
}

func (u *verificationUsecase) VerifyEmail(ctx context.Context, code string) (*model.User, error) {
	// Consumption is a single atomic find-and-delete, so two requests racing
	// on the same code cannot both redeem it.
	verificationCode, err := u.codeRepo.ConsumeCode(ctx, code)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCode
		}

		return nil, err
	}

	verified := true
	user, err := u.userRepo.UpdateUser(ctx, verificationCode.UserID.Hex(), repository.UpdateUserParams{
		Verified: &verified,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCode
		}

		return nil, err
	}

	return user, nil
}

// newVerificationCode generates a fresh high-entropy single-use code.
func newVerificationCode() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// verificationLink builds the redemption link embedded in outbound emails.
func verificationLink(baseURL, code string) string {
	return fmt.Sprintf("%s/%s", baseURL, code)
}
