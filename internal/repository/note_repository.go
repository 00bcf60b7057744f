package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/arivald8/notehub/internal/model"
)

// NoteRepo persists notes in the 'notes' table.
type NoteRepo struct{ DB *sql.DB }

func NewNoteRepo(db *sql.DB) *NoteRepo { return &NoteRepo{DB: db} }

const noteColumns = "id,title,content,owner_username,created_at"

// Create inserts a note and fills in its generated id. The owner is checked
// with a lookup first so the common case reports model.ErrOwnerNotFound
// cleanly; the FK constraint (MySQL error 1452) catches the race where the
// owner is deleted between lookup and insert.
func (r *NoteRepo) Create(ctx context.Context, n *model.Note) error {
	var exists int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE username=? LIMIT 1", n.OwnerUsername).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrOwnerNotFound
	}
	if err != nil {
		return err
	}

	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO notes (title, content, owner_username) VALUES (?,?,?)",
		n.Title, n.Content, n.OwnerUsername)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1452") {
			return model.ErrOwnerNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return nil
}

// GetByID fetches a note by id.
func (r *NoteRepo) GetByID(ctx context.Context, id uint64) (*model.Note, error) {
	var n model.Note
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE id=? LIMIT 1",
		id).Scan(&n.ID, &n.Title, &n.Content, &n.OwnerUsername, &n.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Update overwrites title and content of an existing note.
func (r *NoteRepo) Update(ctx context.Context, id uint64, title, content string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE notes SET title=?, content=? WHERE id=?", title, content, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes a note by id. Deleting an absent id reports
// model.ErrNotFound rather than succeeding silently.
func (r *NoteRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM notes WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ListByOwner returns the user's notes in creation order.
func (r *NoteRepo) ListByOwner(ctx context.Context, username string) ([]model.Note, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE owner_username=? ORDER BY id ASC",
		username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]model.Note, 0)
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.OwnerUsername, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// requireRow maps "zero rows affected" to model.ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
