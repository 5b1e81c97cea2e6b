package user

import (
	"context"

	"github.com/arisvieira/aris-api/internal/db"
)

// Repository is the persisted set of user records. Lookups return
// (nil, nil) when no record matches.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*db.User, error)
	FindByEmail(ctx context.Context, email string) (*db.User, error)
	// FindByUsernameOrEmail returns the first record whose username matches
	// the given username or whose email matches the given email. Login passes
	// the same identifier for both.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*db.User, error)
	Insert(ctx context.Context, u *db.User) (*db.User, error)
	Update(ctx context.Context, u *db.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]db.User, error)
}
