package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gfermin360/user-verification-api/internal/middleware"
	"github.com/gfermin360/user-verification-api/internal/payload"
	"github.com/gfermin360/user-verification-api/internal/usecase"
	"github.com/gfermin360/user-verification-api/internal/validation"
)

// AuthHandler handles HTTP requests for registration, login, email
// verification and password recovery.
type AuthHandler struct {
	authUsecase          usecase.AuthUsecase
	verificationUsecase  usecase.VerificationUsecase
	passwordResetUsecase usecase.PasswordResetUsecase
	validator            *validation.Validator
	logger               *zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	verificationUsecase usecase.VerificationUsecase,
	passwordResetUsecase usecase.PasswordResetUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase:          authUsecase,
		verificationUsecase:  verificationUsecase,
		passwordResetUsecase: passwordResetUsecase,
		validator:            validator,
		logger:               logger,
	}
}

// HandleRegister handles POST /api/v1/users requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if fields := h.validator.ValidateStruct(req); fields != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": fields})
		return
	}

	user, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Country:      req.Country,
		Image:        req.Image,
		FrontBaseURL: req.FrontBaseURL,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyRegistered) {
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
			return
		}

		h.logger.Error().Err(err).Msg("failed to register user")
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusCreated, payload.NewUserResponse(user))
}

// HandleLogin handles POST /api/v1/users/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if fields := h.validator.ValidateStruct(req); fields != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": fields})
		return
	}

	user, token, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials),
			errors.Is(err, usecase.ErrAccountNotVerified):
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
		default:
			h.logger.Error().Err(err).Msg("failed to log in user")
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, payload.LoginResponse{
		User:  payload.NewUserResponse(user),
		Token: token,
	})
}

// HandleVerifyEmail handles GET /api/v1/users/verify/{code} requests.
func (h *AuthHandler) HandleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	user, err := h.verificationUsecase.VerifyEmail(r.Context(), code)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCode) {
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
			return
		}

		h.logger.Error().Err(err).Msg("failed to verify email")
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, payload.NewUserResponse(user))
}

// HandleMe handles GET /api/v1/users/me requests. It echoes the user snapshot
// carried by the session token.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.SessionClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	writeJSON(w, http.StatusOK, claims.User)
}
