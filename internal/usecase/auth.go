package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/gfermin360/user-verification-api/internal/auth"
	"github.com/gfermin360/user-verification-api/internal/config"
	"github.com/gfermin360/user-verification-api/internal/model"
	"github.com/gfermin360/user-verification-api/internal/repository"
	"github.com/gfermin360/user-verification-api/internal/security"
)

// AuthUsecase defines the interface for registration and login.
type AuthUsecase interface {
	// Register creates an unverified account, issues a verification code and
	// emails it to the new user.
	Register(ctx context.Context, params RegisterParams) (*model.User, error)

	// Login authenticates credentials and returns the user together with a
	// signed session token.
	Login(ctx context.Context, params LoginParams) (*model.User, string, error)
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Country   string
	Image     string

	// FrontBaseURL is the base for the verification link embedded in the
	// welcome email. Falls back to the configured default when empty.
	FrontBaseURL string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// EmailSender is the outbound email capability consumed by usecases.
type EmailSender interface {
	SendHTML(to []string, subject, htmlBody string) error
}

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountNotVerified     = errors.New("account not verified")
)

type authUsecase struct {
	userRepo repository.UserRepository
	codeRepo repository.VerificationCodeRepository
	jwtAuth  auth.JWTAuthenticator
	mailer   EmailSender
	cfg      *config.Config
	logger   *zerolog.Logger
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	codeRepo repository.VerificationCodeRepository,
	jwtAuth auth.JWTAuthenticator,
	mailer EmailSender,
	cfg *config.Config,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		codeRepo: codeRepo,
		jwtAuth:  jwtAuth,
		mailer:   mailer,
		cfg:      cfg,
		logger:   logger,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Email:        params.Email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Country:      params.Country,
		Image:        params.Image,
		PasswordHash: passwordHash,
		Verified:     false,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyRegistered
		}

		return nil, err
	}

	code, err := newVerificationCode()
	if err != nil {
		return nil, err
	}

	if _, err := u.codeRepo.CreateCode(ctx, &model.VerificationCode{
		Code:   code,
		UserID: user.ID,
	}); err != nil {
		return nil, err
	}

	// Email delivery is best effort: the account and its code already exist,
	// so a dispatch failure is logged instead of failing the registration.
	link := verificationLink(u.frontBaseURL(params.FrontBaseURL), code)
	htmlBody := fmt.Sprintf(`
		<h1>Hello %s %s</h1>
		<p><a href="%s">%s</a></p>
		<p><b>Code: </b>%s</p>
		<p><b>Thanks for signing up in Verification App</b></p>
	`, user.FirstName, user.LastName, link, link, code)

	if err := u.mailer.SendHTML([]string{user.Email}, "Welcome to Verification APP!", htmlBody); err != nil {
		u.logger.Error().Err(err).Str("email", user.Email).Msg("failed to send verification email")
	}

	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*model.User, string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", ErrInvalidCredentials
		}

		return nil, "", err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, "", err
	} else if !ok {
		return nil, "", ErrInvalidCredentials
	}

	// Correct credentials against an unverified account fail with a condition
	// distinct from invalid credentials.
	if !user.Verified {
		return nil, "", ErrAccountNotVerified
	}

	token, err := u.jwtAuth.IssueSessionToken(user, u.cfg.Token.Secret, u.cfg.Token.ExpiresIn)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (u *authUsecase) frontBaseURL(requested string) string {
	if requested != "" {
		return requested
	}

	return u.cfg.FrontBaseURL
}
