package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/arivald8/notehub/internal/model"
)

// UserRepo persists users in the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "username,password_hash,email,first_name,last_name,created_at"

// Create inserts a user row. Uniqueness is enforced by the primary key, not
// by a prior lookup, so concurrent registrations race safely: the loser gets
// model.ErrDuplicateUser (MySQL error 1062).
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, email, first_name, last_name) VALUES (?,?,?,?,?)",
		u.Username, u.PasswordHash, u.Email, u.FirstName, u.LastName)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.ErrDuplicateUser
		}
		return err
	}
	return nil
}

// GetByUsername fetches a user by primary key.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.Username, &u.PasswordHash, &u.Email, &u.FirstName, &u.LastName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteCascade removes a user and all notes they own in a single
// transaction. The schema also carries ON DELETE CASCADE, but the notes are
// deleted explicitly so the invariant does not depend on the storage engine.
// Returns model.ErrNotFound when the user row is absent; in that case
// nothing is deleted.
func (r *UserRepo) DeleteCascade(ctx context.Context, username string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM notes WHERE owner_username=?", username); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE username=?", username)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound // rollback discards the note deletes
	}
	return tx.Commit()
}
