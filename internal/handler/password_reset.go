package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gfermin360/user-verification-api/internal/payload"
	"github.com/gfermin360/user-verification-api/internal/usecase"
)

// HandleRequestPasswordReset handles POST /api/v1/users/reset_password
// requests.
func (h *AuthHandler) HandleRequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req payload.RequestPasswordResetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if fields := h.validator.ValidateStruct(req); fields != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": fields})
		return
	}

	err := h.passwordResetUsecase.RequestPasswordReset(r.Context(), req.Email, req.FrontBaseURL)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
			return
		}

		h.logger.Error().Err(err).Msg("failed to request password reset")
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, payload.MessageResponse{
		Message: fmt.Sprintf("Recovery link sent to %s", req.Email),
	})
}

// HandleResetPassword handles POST /api/v1/users/reset_password/{code}
// requests.
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req payload.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if fields := h.validator.ValidateStruct(req); fields != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": fields})
		return
	}

	user, err := h.passwordResetUsecase.ResetPassword(r.Context(), code, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCode) {
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
			return
		}

		h.logger.Error().Err(err).Msg("failed to reset password")
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, payload.NewUserResponse(user))
}
