// Package service implements the application use cases over repository
// interfaces, keeping the authentication and ownership rules independent of
// the storage engine.
package service

import (
	"context"

	"github.com/arivald8/notehub/internal/model"
	"github.com/arivald8/notehub/internal/queue"
)

// UserStore is the persistence surface the services need for users.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	DeleteCascade(ctx context.Context, username string) error
}

// NoteStore is the persistence surface the services need for notes.
type NoteStore interface {
	Create(ctx context.Context, n *model.Note) error
	GetByID(ctx context.Context, id uint64) (*model.Note, error)
	Update(ctx context.Context, id uint64, title, content string) error
	Delete(ctx context.Context, id uint64) error
	ListByOwner(ctx context.Context, username string) ([]model.Note, error)
}

// AuditPublisher emits audit events. Implementations must not fail the
// calling request; errors are reported back only for logging.
type AuditPublisher interface {
	Publish(ctx context.Context, ev queue.AuditEvent) error
}
