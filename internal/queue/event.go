// Package queue defines the audit events exchanged over the message broker
// and the publisher/consumer pair moving them.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions.
const (
	ActionUserRegistered = "user.registered"
	ActionUserDeleted    = "user.deleted"
	ActionNoteCreated    = "note.created"
	ActionNoteUpdated    = "note.updated"
	ActionNoteDeleted    = "note.deleted"
)

// AuditEvent records who did what. It carries enough for downstream
// consumers to log or alert without querying the primary database. Note
// content is intentionally absent.
type AuditEvent struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Actor     string `json:"actor"`
	NoteID    uint64 `json:"note_id,omitempty"`
	NoteTitle string `json:"note_title,omitempty"`
	At        string `json:"at"`
}

// NewAuditEvent stamps a fresh event with a uuid and the current UTC time.
func NewAuditEvent(action, actor string) AuditEvent {
	return AuditEvent{
		ID:     uuid.NewString(),
		Action: action,
		Actor:  actor,
		At:     time.Now().UTC().Format(time.RFC3339),
	}
}
