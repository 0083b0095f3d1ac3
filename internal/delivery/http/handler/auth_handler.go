package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"clinic-portal/internal/delivery/dto"
	"clinic-portal/internal/infrastructure/apiclient"
	"clinic-portal/internal/usecase"
	"clinic-portal/pkg/response"
	"clinic-portal/pkg/validator"
)

const msgLoginFailed = "Ошибка входа"

type AuthHandler struct {
	accountUsecase usecase.AccountUsecase
	validator      *validator.CustomValidator
}

func NewAuthHandler(accountUsecase usecase.AccountUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		accountUsecase: accountUsecase,
		validator:      validator,
	}
}

// Login handles POST /api/login. The upstream session cookie is passed
// through to the browser.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.accountUsecase.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidLogin),
			apiclient.IsStatus(err, http.StatusUnauthorized),
			apiclient.IsStatus(err, http.StatusBadRequest):
			response.Error(w, http.StatusUnauthorized, msgLoginFailed, nil)
		case apiclient.IsAPIError(err):
			response.BadGateway(w, msgLoginFailed)
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	for _, cookie := range session.Cookies {
		w.Header().Add("Set-Cookie", cookie)
	}
	response.Success(w, http.StatusOK, "Login successful", dto.RoleResponse{Role: string(session.Role)})
}
