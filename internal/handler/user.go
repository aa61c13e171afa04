package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gfermin360/user-verification-api/internal/payload"
	"github.com/gfermin360/user-verification-api/internal/usecase"
	"github.com/gfermin360/user-verification-api/internal/validation"
)

// UserHandler handles HTTP requests for profile CRUD.
type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validation.Validator
	logger      *zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(
	userUsecase usecase.UserUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
		logger:      logger,
	}
}

// HandleListUsers handles GET /api/v1/users requests.
func (h *UserHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUsecase.ListUsers(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list users")
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, payload.NewUserListResponse(users))
}

// HandleGetUser handles GET /api/v1/users/{id} requests.
func (h *UserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.userUsecase.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}

		h.logger.Error().Err(err).Msg("failed to get user")
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, payload.NewUserResponse(user))
}

// HandleUpdateUser handles PUT /api/v1/users/{id} requests. Credential fields
// are not updatable here; the password changes only through the reset flow.
func (h *UserHandler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req payload.UpdateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if fields := h.validator.ValidateStruct(req); fields != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": fields})
		return
	}

	user, err := h.userUsecase.UpdateUser(r.Context(), id, usecase.UpdateProfileParams{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Country:   req.Country,
		Image:     req.Image,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, usecase.ErrNoFieldsToUpdate):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			h.logger.Error().Err(err).Msg("failed to update user")
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, payload.NewUserResponse(user))
}

// HandleDeleteUser handles DELETE /api/v1/users/{id} requests.
func (h *UserHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.userUsecase.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}

		h.logger.Error().Err(err).Msg("failed to delete user")
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
