package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfermin360/user-verification-api/internal/config"
	"github.com/gfermin360/user-verification-api/internal/model"
	"github.com/gfermin360/user-verification-api/internal/security"
)

type resetTestEnv struct {
	userRepo *fakeUserRepository
	codeRepo *fakeVerificationCodeRepository
	mailer   *fakeMailer
	usecase  PasswordResetUsecase
}

func newResetTestEnv(t *testing.T) *resetTestEnv {
	t.Helper()

	userRepo := newFakeUserRepository()
	codeRepo := newFakeVerificationCodeRepository()
	mailer := &fakeMailer{}

	cfg := &config.Config{
		FrontBaseURL: "http://localhost:3000/reset",
		Token: config.TokenConfig{
			Secret:    "test-secret",
			Issuer:    "user-verification-api",
			Audience:  "user-verification-api",
			ExpiresIn: 24 * time.Hour,
		},
	}

	return &resetTestEnv{
		userRepo: userRepo,
		codeRepo: codeRepo,
		mailer:   mailer,
		usecase:  NewPasswordResetUsecase(userRepo, codeRepo, mailer, cfg),
	}
}

func (env *resetTestEnv) createUser(t *testing.T, email, password string) *model.User {
	t.Helper()

	hash, err := security.HashPassword(password)
	require.NoError(t, err)

	user, err := env.userRepo.CreateUser(context.Background(), &model.User{
		Email:        email,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		PasswordHash: hash,
	})
	require.NoError(t, err)

	return user
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	env := newResetTestEnv(t)

	err := env.usecase.RequestPasswordReset(context.Background(), "nobody@x.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, env.mailer.sentEmails())
}

func TestRequestPasswordResetIssuesFreshCode(t *testing.T) {
	env := newResetTestEnv(t)
	user := env.createUser(t, "a@x.com", "old-password")

	err := env.usecase.RequestPasswordReset(context.Background(), "a@x.com", "")
	require.NoError(t, err)

	codes := env.codeRepo.codesForUser(user.ID.Hex())
	require.Len(t, codes, 1)

	sent := env.mailer.sentEmails()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"a@x.com"}, sent[0].To)
	assert.Contains(t, sent[0].HTMLBody, codes[0])
}

func TestRequestPasswordResetLeavesOutstandingCodesValid(t *testing.T) {
	env := newResetTestEnv(t)
	user := env.createUser(t, "a@x.com", "old-password")

	require.NoError(t, env.usecase.RequestPasswordReset(context.Background(), "a@x.com", ""))
	require.NoError(t, env.usecase.RequestPasswordReset(context.Background(), "a@x.com", ""))

	// Older codes are not invalidated by a new request; both redeem.
	codes := env.codeRepo.codesForUser(user.ID.Hex())
	require.Len(t, codes, 2)

	_, err := env.usecase.ResetPassword(context.Background(), codes[0], "new-password-1")
	require.NoError(t, err)

	_, err = env.usecase.ResetPassword(context.Background(), codes[1], "new-password-2")
	require.NoError(t, err)
}

func TestResetPasswordReplacesHashAndConsumesCode(t *testing.T) {
	env := newResetTestEnv(t)
	user := env.createUser(t, "a@x.com", "old-password")

	require.NoError(t, env.usecase.RequestPasswordReset(context.Background(), "a@x.com", ""))

	codes := env.codeRepo.codesForUser(user.ID.Hex())
	require.Len(t, codes, 1)

	updated, err := env.usecase.ResetPassword(context.Background(), codes[0], "new-password")
	require.NoError(t, err)

	ok, err := security.VerifyPassword("old-password", updated.PasswordHash)
	require.NoError(t, err)
	assert.False(t, ok, "old plaintext must no longer verify")

	ok, err = security.VerifyPassword("new-password", updated.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok, "new plaintext must verify")

	// The code is gone: a second redemption fails.
	_, err = env.usecase.ResetPassword(context.Background(), codes[0], "another-password")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestResetPasswordUnknownCode(t *testing.T) {
	env := newResetTestEnv(t)

	_, err := env.usecase.ResetPassword(context.Background(), "no-such-code", "new-password")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestResetPasswordDoesNotRequireVerifiedAccount(t *testing.T) {
	env := newResetTestEnv(t)
	user := env.createUser(t, "a@x.com", "old-password")
	require.False(t, user.Verified)

	require.NoError(t, env.usecase.RequestPasswordReset(context.Background(), "a@x.com", ""))

	codes := env.codeRepo.codesForUser(user.ID.Hex())
	require.Len(t, codes, 1)

	updated, err := env.usecase.ResetPassword(context.Background(), codes[0], "new-password")
	require.NoError(t, err)
	assert.False(t, updated.Verified)
}
