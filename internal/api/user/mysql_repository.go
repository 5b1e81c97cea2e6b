package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/arisvieira/aris-api/internal/apperror"
	"github.com/arisvieira/aris-api/internal/db"
)

const mysqlDuplicateEntry = 1062

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(database *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: database}
}

func (r *MySQLRepository) FindByID(ctx context.Context, id int64) (*db.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?", id))
}

func (r *MySQLRepository) FindByEmail(ctx context.Context, email string) (*db.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash, created_at FROM users WHERE email = ?", email))
}

func (r *MySQLRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*db.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		"SELECT id, username, email, password_hash, created_at FROM users WHERE username = ? OR email = ? LIMIT 1",
		username, email))
}

func (r *MySQLRepository) Insert(ctx context.Context, u *db.User) (*db.User, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)",
		u.Username, u.Email, u.PasswordHash)
	if err != nil {
		return nil, translateDuplicate(err, true)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	// read the row back for the store-assigned id and created_at
	return r.FindByID(ctx, id)
}

func (r *MySQLRepository) Update(ctx context.Context, u *db.User) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET username = ?, email = ?, password_hash = ? WHERE id = ?",
		u.Username, u.Email, u.PasswordHash, u.ID)
	if err != nil {
		return translateDuplicate(err, false)
	}
	return nil
}

func (r *MySQLRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	return err
}

func (r *MySQLRepository) List(ctx context.Context, limit, offset int) ([]db.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, username, email, password_hash, created_at FROM users ORDER BY id LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []db.User
	for rows.Next() {
		var u db.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *MySQLRepository) scanOne(row *sql.Row) (*db.User, error) {
	var u db.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// translateDuplicate maps a mysql duplicate-entry error onto the conflict
// taxonomy. Insert names the colliding column via the constraint in the
// driver message; update stays undifferentiated.
func translateDuplicate(err error, named bool) error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != mysqlDuplicateEntry {
		return err
	}
	if !named {
		return apperror.ErrConflict
	}
	if strings.Contains(mysqlErr.Message, "username") {
		return apperror.ErrUsernameTaken
	}
	if strings.Contains(mysqlErr.Message, "email") {
		return apperror.ErrEmailTaken
	}
	return apperror.ErrConflict
}
