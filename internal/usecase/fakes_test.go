package usecase

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/gfermin360/user-verification-api/internal/model"
	"github.com/gfermin360/user-verification-api/internal/repository"
)

// fakeUserRepository is an in-memory repository.UserRepository that mirrors
// the MongoDB repository's error contract (mongo.ErrNoDocuments, duplicate
// key errors on the unique email index).
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*model.User)}
}

func duplicateKeyError() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "duplicate key error"}},
	}
}

func (r *fakeUserRepository) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, duplicateKeyError()
		}
	}

	now := time.Now()
	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.users[user.ID.Hex()] = &stored

	return user, nil
}

func (r *fakeUserRepository) GetUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	copied := *user
	return &copied, nil
}

func (r *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepository) UpdateUser(
	_ context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.FirstName != nil {
		user.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		user.LastName = *params.LastName
	}
	if params.Country != nil {
		user.Country = *params.Country
	}
	if params.Image != nil {
		user.Image = *params.Image
	}
	if params.Verified != nil {
		user.Verified = *params.Verified
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	user.UpdatedAt = time.Now()

	copied := *user
	return &copied, nil
}

func (r *fakeUserRepository) DeleteUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	delete(r.users, id)

	copied := *user
	return &copied, nil
}

func (r *fakeUserRepository) ListUsers(_ context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]*model.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		users = append(users, &copied)
	}

	return users, nil
}

// fakeVerificationCodeRepository is an in-memory
// repository.VerificationCodeRepository.
type fakeVerificationCodeRepository struct {
	mu    sync.Mutex
	codes map[string]*model.VerificationCode
}

func newFakeVerificationCodeRepository() *fakeVerificationCodeRepository {
	return &fakeVerificationCodeRepository{codes: make(map[string]*model.VerificationCode)}
}

func (r *fakeVerificationCodeRepository) CreateCode(
	_ context.Context,
	code *model.VerificationCode,
) (*model.VerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code.ID = bson.NewObjectID()
	code.CreatedAt = time.Now()

	stored := *code
	r.codes[code.Code] = &stored

	return code, nil
}

func (r *fakeVerificationCodeRepository) ConsumeCode(
	_ context.Context,
	code string,
) (*model.VerificationCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	verificationCode, ok := r.codes[code]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	delete(r.codes, code)

	copied := *verificationCode
	return &copied, nil
}

func (r *fakeVerificationCodeRepository) DeleteCodesByUserID(
	_ context.Context,
	userID string,
) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for code, verificationCode := range r.codes {
		if verificationCode.UserID.Hex() == userID {
			delete(r.codes, code)
			deleted++
		}
	}

	return deleted, nil
}

func (r *fakeVerificationCodeRepository) CountCodesByUserID(
	_ context.Context,
	userID string,
) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, verificationCode := range r.codes {
		if verificationCode.UserID.Hex() == userID {
			count++
		}
	}

	return count, nil
}

// codesForUser returns the outstanding code strings owned by a user.
func (r *fakeVerificationCodeRepository) codesForUser(userID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var codes []string
	for code, verificationCode := range r.codes {
		if verificationCode.UserID.Hex() == userID {
			codes = append(codes, code)
		}
	}

	return codes
}

// sentEmail records a message handed to the fake mailer.
type sentEmail struct {
	To       []string
	Subject  string
	HTMLBody string
}

// fakeMailer is an in-memory EmailSender.
type fakeMailer struct {
	mu       sync.Mutex
	sent     []sentEmail
	failWith error
}

func (m *fakeMailer) SendHTML(to []string, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWith != nil {
		return m.failWith
	}

	m.sent = append(m.sent, sentEmail{To: to, Subject: subject, HTMLBody: htmlBody})
	return nil
}

func (m *fakeMailer) sentEmails() []sentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]sentEmail(nil), m.sent...)
}
