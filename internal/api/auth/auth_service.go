package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/arisvieira/aris-api/internal/apperror"
	"github.com/arisvieira/aris-api/internal/db"
	"github.com/arisvieira/aris-api/internal/logging"
)

// UserFinder is the slice of the user directory the auth flow needs.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*db.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*db.User, error)
}

type AuthService struct {
	Users     UserFinder
	JWTSecret []byte
	TTL       time.Duration
}

func NewAuthService(users UserFinder, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		Users:     users,
		JWTSecret: []byte(secret),
		TTL:       ttl,
	}
}

// Login resolves the identifier against both the username and email columns
// and verifies the password. Both failure modes collapse into the same
// ErrBadCredentials so callers cannot probe which identifiers exist.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	u, err := s.Users.FindByUsernameOrEmail(ctx, identifier, identifier)
	if err != nil {
		return "", err
	}
	if u == nil {
		l.Warn("login failed", "reason", "unknown identifier")
		return "", apperror.ErrBadCredentials
	}

	if err := CheckPasswordHash(password, u.PasswordHash); err != nil {
		l.Warn("login failed", "reason", "password mismatch")
		return "", apperror.ErrBadCredentials
	}

	return s.GenerateToken(u.Email)
}

func (s *AuthService) GenerateToken(email string) (string, error) {
	now := time.Now()
	claims := db.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JWTSecret)
}

func (s *AuthService) ParseToken(tokenStr string) (*db.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &db.Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("alg not allowed")
		}
		return s.JWTSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*db.Claims)
	if !ok || !token.Valid {
		return nil, apperror.ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, apperror.ErrMissingSubject
	}
	return claims, nil
}
