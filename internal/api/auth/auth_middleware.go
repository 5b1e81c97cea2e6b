package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/arisvieira/aris-api/internal/apperror"
	"github.com/arisvieira/aris-api/internal/db"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// RequireUser extracts the bearer token, verifies it and resolves the
// subject email to a live user record, which is injected into the request
// context. Every failure mode returns the same 401 so a caller learns
// nothing about why the token was rejected.
func (h *AuthHandler) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.sendUnauthorized(w)
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
			h.sendUnauthorized(w)
			return
		}

		claims, err := h.service.ParseToken(bearerToken[1])
		if err != nil {
			h.sendUnauthorized(w)
			return
		}

		u, err := h.service.Users.FindByEmail(r.Context(), claims.Subject)
		if err != nil || u == nil {
			h.sendUnauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *AuthHandler) sendUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	h.sendErrorResponse(w, http.StatusUnauthorized, "unauthorized", apperror.ErrUnauthorized.Error())
}

// CurrentUser returns the user injected by RequireUser.
func CurrentUser(r *http.Request) (*db.User, error) {
	u, ok := r.Context().Value(userContextKey).(*db.User)
	if !ok || u == nil {
		return nil, errors.New("no user found in context")
	}
	return u, nil
}
