package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/arisvieira/aris-api/internal/api/auth"
	"github.com/arisvieira/aris-api/internal/apperror"
	"github.com/arisvieira/aris-api/internal/db"
)

type Handler struct {
	service *UserService
}

func NewHandler(service *UserService) *Handler {
	return &Handler{service: service}
}

type UserRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"password123"`
}

type UserPublic struct {
	ID        int64     `json:"id" example:"1"`
	Username  string    `json:"username" example:"alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	CreatedAt time.Time `json:"created_at" example:"2025-01-02T15:04:05Z"`
}

type UserListResponse struct {
	Users []UserPublic `json:"users"`
}

type MessageResponse struct {
	Message string `json:"message" example:"user deleted successfully"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"conflict"`
	Message string `json:"message,omitempty" example:"username already exists"`
}

// CreateUser godoc
// @Summary		Create a new user
// @Description	Register a new account with username, email and password
// @Tags			users
// @Accept			json
// @Produce		json
// @Param			user	body		UserRequest		true	"User registration data"
// @Success		201		{object}	UserPublic		"User created"
// @Failure		400		{object}	ErrorResponse	"Bad request - invalid input"
// @Failure		409		{object}	ErrorResponse	"Conflict - username or email taken"
// @Failure		500		{object}	ErrorResponse	"Internal server error"
// @Router			/users [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendErrorResponse(w, http.StatusBadRequest, "invalid body", "Invalid JSON format")
		return
	}

	if err := h.validateUserRequest(req); err != nil {
		h.sendErrorResponse(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.writeAppError(w, err)
		return
	}

	h.sendJSON(w, http.StatusCreated, publicView(created))
}

// ListUsers godoc
// @Summary		List users
// @Description	List registered users, paginated by limit and offset
// @Tags			users
// @Produce		json
// @Security		BearerAuth
// @Param			limit	query		int					false	"Page size"		default(10)
// @Param			offset	query		int					false	"Page offset"	default(0)
// @Success		200		{object}	UserListResponse	"Users"
// @Failure		401		{object}	ErrorResponse		"Unauthorized - invalid or missing token"
// @Failure		500		{object}	ErrorResponse		"Internal server error"
// @Router			/users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)
	offset := queryInt(r, "offset", 0)

	users, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		h.sendErrorResponse(w, http.StatusInternalServerError, "server error", "Error listing users")
		return
	}

	response := UserListResponse{Users: make([]UserPublic, 0, len(users))}
	for i := range users {
		response.Users = append(response.Users, publicView(&users[i]))
	}

	h.sendJSON(w, http.StatusOK, response)
}

// UpdateUser godoc
// @Summary		Update a user
// @Description	Overwrite username, email and password of an owned account
// @Tags			users
// @Accept			json
// @Produce		json
// @Security		BearerAuth
// @Param			id		path		int				true	"User ID"
// @Param			user	body		UserRequest		true	"New user data"
// @Success		200		{object}	UserPublic		"Updated user"
// @Failure		400		{object}	ErrorResponse	"Bad request - invalid input"
// @Failure		401		{object}	ErrorResponse	"Unauthorized - invalid or missing token"
// @Failure		403		{object}	ErrorResponse	"Forbidden - not the account owner"
// @Failure		404		{object}	ErrorResponse	"User not found"
// @Failure		409		{object}	ErrorResponse	"Conflict - username or email taken"
// @Failure		500		{object}	ErrorResponse	"Internal server error"
// @Router			/users/{id} [put]
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.sendErrorResponse(w, http.StatusBadRequest, "invalid id", "User ID must be an integer")
		return
	}

	actor, err := auth.CurrentUser(r)
	if err != nil {
		h.sendErrorResponse(w, http.StatusUnauthorized, "unauthorized", apperror.ErrUnauthorized.Error())
		return
	}

	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendErrorResponse(w, http.StatusBadRequest, "invalid body", "Invalid JSON format")
		return
	}

	if err := h.validateUserRequest(req); err != nil {
		h.sendErrorResponse(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), id, actor, req.Username, req.Email, req.Password)
	if err != nil {
		h.writeAppError(w, err)
		return
	}

	h.sendJSON(w, http.StatusOK, publicView(updated))
}

// DeleteUser godoc
// @Summary		Delete a user
// @Description	Remove a user record by id
// @Tags			users
// @Produce		json
// @Param			id	path		int				true	"User ID"
// @Success		200	{object}	MessageResponse	"User deleted"
// @Failure		400	{object}	ErrorResponse	"Bad request - invalid id"
// @Failure		404	{object}	ErrorResponse	"User not found"
// @Failure		500	{object}	ErrorResponse	"Internal server error"
// @Router			/users/{id} [delete]
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.sendErrorResponse(w, http.StatusBadRequest, "invalid id", "User ID must be an integer")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeAppError(w, err)
		return
	}

	h.sendJSON(w, http.StatusOK, MessageResponse{Message: "user deleted successfully"})
}

// Helpers

func publicView(u *db.User) UserPublic {
	return UserPublic{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}

func (h *Handler) validateUserRequest(req UserRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return errors.New("username is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return errors.New("email is required")
	}
	if !h.isValidEmail(req.Email) {
		return errors.New("invalid email format")
	}
	if len(req.Password) < 6 {
		return errors.New("password must be at least 6 characters long")
	}
	return nil
}

func (h *Handler) isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func (h *Handler) writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrUsernameTaken),
		errors.Is(err, apperror.ErrEmailTaken),
		errors.Is(err, apperror.ErrConflict):
		h.sendErrorResponse(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, apperror.ErrNotFound):
		h.sendErrorResponse(w, http.StatusNotFound, "not found", err.Error())
	case errors.Is(err, apperror.ErrForbidden):
		h.sendErrorResponse(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		h.sendErrorResponse(w, http.StatusInternalServerError, "server error", "Unexpected error")
	}
}

func (h *Handler) sendJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler) sendErrorResponse(w http.ResponseWriter, statusCode int, error string, message string) {
	h.sendJSON(w, statusCode, ErrorResponse{
		Error:   error,
		Message: message,
	})
}
