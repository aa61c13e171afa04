package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/gfermin360/user-verification-api/internal/model"
	"github.com/gfermin360/user-verification-api/internal/repository"
)

// UserUsecase defines the business logic for profile CRUD.
type UserUsecase interface {
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)

	// UpdateUser mutates non-credential profile fields only. The password
	// hash and verified flag are owned by the auth and verification flows.
	UpdateUser(ctx context.Context, id string, params UpdateProfileParams) (*model.User, error)

	// DeleteUser removes the account along with any outstanding verification
	// codes bound to it.
	DeleteUser(ctx context.Context, id string) error
}

// UpdateProfileParams defines the optional profile fields for an update.
// Only the fields that are not nil will be updated.
type UpdateProfileParams struct {
	Email     *string
	FirstName *string
	LastName  *string
	Country   *string
	Image     *string
}

var (
	// ErrUserNotFound is returned when no user exists for the given id.
	ErrUserNotFound = errors.New("user not found")

	// ErrNoFieldsToUpdate is returned when a profile update carries no fields.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

type userUsecase struct {
	userRepo repository.UserRepository
	codeRepo repository.VerificationCodeRepository
}

// NewUserUsecase creates a new instance of UserUsecase.
func NewUserUsecase(
	userRepo repository.UserRepository,
	codeRepo repository.VerificationCodeRepository,
) UserUsecase {
	return &userUsecase{
		userRepo: userRepo,
		codeRepo: codeRepo,
	}
}

func (u *userUsecase) ListUsers(ctx context.Context) ([]*model.User, error) {
	return u.userRepo.ListUsers(ctx)
}

func (u *userUsecase) GetUser(ctx context.Context, id string) (*model.User, error) {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return nil, ErrUserNotFound
	}

	user, err := u.userRepo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *userUsecase) UpdateUser(
	ctx context.Context,
	id string,
	params UpdateProfileParams,
) (*model.User, error) {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return nil, ErrUserNotFound
	}

	if params.Email == nil && params.FirstName == nil && params.LastName == nil &&
		params.Country == nil && params.Image == nil {
		return nil, ErrNoFieldsToUpdate
	}

	user, err := u.userRepo.UpdateUser(ctx, id, repository.UpdateUserParams{
		Email:     params.Email,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Country:   params.Country,
		Image:     params.Image,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *userUsecase) DeleteUser(ctx context.Context, id string) error {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return ErrUserNotFound
	}

	user, err := u.userRepo.DeleteUser(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	// Codes must not outlive their owner; without this they would sit
	// orphaned and still redeemable.
	if _, err := u.codeRepo.DeleteCodesByUserID(ctx, user.ID.Hex()); err != nil {
		return err
	}

	return nil
}
