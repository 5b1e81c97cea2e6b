package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/arisvieira/aris-api/internal/apperror"
)

type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"bearer"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid credentials"`
	Message string `json:"message,omitempty" example:"incorrect email or password"`
}

type AuthHandler struct {
	service *AuthService
}

func NewAuthHandler(service *AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// @Summary		Issue an access token
// @Description	Exchange a username-or-email plus password for a bearer token
// @Tags			auth
// @Accept			x-www-form-urlencoded
// @Produce		json
// @Param			username	formData	string			true	"Username or email"
// @Param			password	formData	string			true	"Password"
// @Success		200			{object}	TokenResponse	"Token issued"
// @Failure		400			{object}	ErrorResponse	"Bad request - invalid form"
// @Failure		401			{object}	ErrorResponse	"Unauthorized - bad credentials"
// @Failure		500			{object}	ErrorResponse	"Internal server error"
// @Router			/auth/token [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.sendErrorResponse(w, http.StatusBadRequest, "invalid form", "Could not parse form body")
		return
	}

	identifier := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if identifier == "" || password == "" {
		h.sendErrorResponse(w, http.StatusBadRequest, "validation failed", "Username and password are required")
		return
	}

	token, err := h.service.Login(r.Context(), identifier, password)
	if err != nil {
		if errors.Is(err, apperror.ErrBadCredentials) {
			h.sendErrorResponse(w, http.StatusUnauthorized, "invalid credentials", apperror.ErrBadCredentials.Error())
			return
		}
		h.sendErrorResponse(w, http.StatusInternalServerError, "server error", "Error authenticating user")
		return
	}

	response := TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

func (h *AuthHandler) sendErrorResponse(w http.ResponseWriter, statusCode int, error string, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}
