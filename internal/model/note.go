package model

import "time"

// Note represents a row in the `notes` table. Every note belongs to exactly
// one user via OwnerUsername; the owner must exist when the note is created
// and notes are removed together with their owner.
type Note struct {
	ID            uint64    // notes.id (auto increment)
	Title         string    // notes.title
	Content       string    // notes.content
	OwnerUsername string    // notes.owner_username (FK users.username)
	CreatedAt     time.Time // notes.created_at
}
