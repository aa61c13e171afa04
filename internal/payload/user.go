package payload

import (
	"time"

	"github.com/gfermin360/user-verification-api/internal/model"
)

type RegisterRequest struct {
	Email        string `json:"email"          validate:"required,email"`
	Password     string `json:"password"       validate:"required,min=8"`
	FirstName    string `json:"first_name"     validate:"required"`
	LastName     string `json:"last_name"      validate:"required"`
	Country      string `json:"country"`
	Image        string `json:"image"          validate:"omitempty,url"`
	FrontBaseURL string `json:"front_base_url" validate:"omitempty,url"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email"      validate:"omitempty,email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Country   *string `json:"country"`
	Image     *string `json:"image"      validate:"omitempty,url"`
}

type RequestPasswordResetRequest struct {
	Email        string `json:"email"          validate:"required,email"`
	FrontBaseURL string `json:"front_base_url" validate:"omitempty,url"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is the public representation of a user. The password hash is
// never exposed.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Country   string    `json:"country"`
	Image     string    `json:"image"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse maps a user model to its public representation.
func NewUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID.Hex(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Country:   user.Country,
		Image:     user.Image,
		Verified:  user.Verified,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserListResponse maps a slice of user models to their public form.
func NewUserListResponse(users []*model.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	return responses
}
