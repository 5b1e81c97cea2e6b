package apperror

import "errors"

var (
	// uniqueness violations
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
	ErrConflict      = errors.New("username or email already exists")

	ErrNotFound  = errors.New("user not found")
	ErrForbidden = errors.New("not allowed to update this user")

	// auth errors
	ErrBadCredentials = errors.New("incorrect email or password")
	ErrUnauthorized   = errors.New("could not validate credentials")
	ErrInvalidToken   = errors.New("invalid token")
	ErrMissingSubject = errors.New("token has no subject")
)
