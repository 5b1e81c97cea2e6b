package user

import (
	"context"

	"github.com/arisvieira/aris-api/internal/api/auth"
	"github.com/arisvieira/aris-api/internal/apperror"
	"github.com/arisvieira/aris-api/internal/db"
	"github.com/arisvieira/aris-api/internal/logging"
)

type UserService struct {
	repo Repository
}

func NewUserService(repo Repository) *UserService {
	return &UserService{repo: repo}
}

// Create registers a new account. The pre-insert lookup names the colliding
// field, checking the username first when both collide. The lookup is
// advisory under concurrent requests; the UNIQUE constraints in the schema
// are the authority and surface through Insert as the same errors.
func (s *UserService) Create(ctx context.Context, username, email, password string) (*db.User, error) {
	existing, err := s.repo.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Username == username {
			return nil, apperror.ErrUsernameTaken
		}
		return nil, apperror.ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, &db.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("user created", "svc", "user.create", "id", created.ID)
	return created, nil
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]db.User, error) {
	return s.repo.List(ctx, limit, offset)
}

// Update overwrites username, email and password of the target record.
// Existence is checked before ownership, so a non-owner probing a missing id
// learns only that it is missing.
func (s *UserService) Update(ctx context.Context, id int64, actor *db.User, username, email, password string) (*db.User, error) {
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, apperror.ErrNotFound
	}
	if actor.ID != id {
		return nil, apperror.ErrForbidden
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	target.Username = username
	target.Email = email
	target.PasswordHash = hash
	if err := s.repo.Update(ctx, target); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if target == nil {
		return apperror.ErrNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logging.FromContext(ctx).Info("user deleted", "svc", "user.delete", "id", id)
	return nil
}
