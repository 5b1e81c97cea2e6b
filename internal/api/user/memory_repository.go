package user

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/arisvieira/aris-api/internal/apperror"
	"github.com/arisvieira/aris-api/internal/db"
)

// MemoryRepository keeps records in a map guarded by a mutex. It enforces
// the same uniqueness rules as the mysql schema and is used by the test
// suites in place of a live database.
type MemoryRepository struct {
	mu     sync.Mutex
	users  map[int64]db.User
	nextID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[int64]db.User), nextID: 1}
}

func (r *MemoryRepository) FindByID(ctx context.Context, id int64) (*db.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*db.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.firstMatch(func(u db.User) bool { return u.Email == email }), nil
}

func (r *MemoryRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*db.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.firstMatch(func(u db.User) bool { return u.Username == username || u.Email == email }), nil
}

func (r *MemoryRepository) Insert(ctx context.Context, u *db.User) (*db.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUnique(u.Username, u.Email, 0, true); err != nil {
		return nil, err
	}

	stored := *u
	stored.ID = r.nextID
	r.nextID++
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.users[stored.ID] = stored
	return &stored, nil
}

func (r *MemoryRepository) Update(ctx context.Context, u *db.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[u.ID]
	if !ok {
		return nil
	}
	if err := r.checkUnique(u.Username, u.Email, u.ID, false); err != nil {
		return err
	}

	current.Username = u.Username
	current.Email = u.Email
	current.PasswordHash = u.PasswordHash
	r.users[u.ID] = current
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *MemoryRepository) List(ctx context.Context, limit, offset int) ([]db.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var users []db.User
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(users) == limit {
			break
		}
		users = append(users, r.users[id])
	}
	return users, nil
}

func (r *MemoryRepository) firstMatch(match func(db.User) bool) *db.User {
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if u := r.users[id]; match(u) {
			copied := u
			return &copied
		}
	}
	return nil
}

func (r *MemoryRepository) checkUnique(username, email string, selfID int64, named bool) error {
	for id, u := range r.users {
		if id == selfID {
			continue
		}
		if u.Username == username {
			if named {
				return apperror.ErrUsernameTaken
			}
			return apperror.ErrConflict
		}
		if u.Email == email {
			if named {
				return apperror.ErrEmailTaken
			}
			return apperror.ErrConflict
		}
	}
	return nil
}
