package service

import (
	"context"

	"github.com/arivald8/notehub/internal/auth"
	"github.com/arivald8/notehub/internal/model"
	"github.com/arivald8/notehub/internal/queue"
	"github.com/arivald8/notehub/pkg/logger"
)

// NoteService applies the ownership rule to every note operation. The
// acting identity is passed in explicitly; the guard runs before anything
// is mutated or returned.
type NoteService struct {
	notes NoteStore
	audit AuditPublisher
}

func NewNoteService(notes NoteStore, audit AuditPublisher) *NoteService {
	return &NoteService{notes: notes, audit: audit}
}

// Create stores a new note owned by the actor. The repository verifies the
// owner row exists, which only fails when the account was deleted while the
// request was in flight.
func (s *NoteService) Create(ctx context.Context, actor, title, content string) (*model.Note, error) {
	if err := auth.Authorize(actor, actor); err != nil {
		return nil, err
	}
	n := &model.Note{Title: title, Content: content, OwnerUsername: actor}
	if err := s.notes.Create(ctx, n); err != nil {
		return nil, err
	}
	s.publish(ctx, queue.ActionNoteCreated, actor, n)
	return n, nil
}

// Get loads a note and checks ownership before returning any of its data.
func (s *NoteService) Get(ctx context.Context, actor string, id uint64) (*model.Note, error) {
	n, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(actor, n.OwnerUsername); err != nil {
		return nil, err
	}
	return n, nil
}

// Update overwrites title and content. Ownership is resolved by loading the
// note first; the stored owner decides, not the actor's claim.
func (s *NoteService) Update(ctx context.Context, actor string, id uint64, title, content string) (*model.Note, error) {
	n, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(actor, n.OwnerUsername); err != nil {
		return nil, err
	}
	if err := s.notes.Update(ctx, id, title, content); err != nil {
		return nil, err
	}
	n.Title, n.Content = title, content
	s.publish(ctx, queue.ActionNoteUpdated, actor, n)
	return n, nil
}

// Delete removes a note after the ownership check.
func (s *NoteService) Delete(ctx context.Context, actor string, id uint64) error {
	n, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.Authorize(actor, n.OwnerUsername); err != nil {
		return err
	}
	if err := s.notes.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, queue.ActionNoteDeleted, actor, n)
	return nil
}

// List returns the owner's notes in creation order. Only the owner may list
// their notes.
func (s *NoteService) List(ctx context.Context, actor, owner string) ([]model.Note, error) {
	if err := auth.Authorize(actor, owner); err != nil {
		return nil, err
	}
	return s.notes.ListByOwner(ctx, owner)
}

// publish emits an audit event; failures are logged and never surface to
// the request.
func (s *NoteService) publish(ctx context.Context, action, actor string, n *model.Note) {
	if s.audit == nil {
		return
	}
	ev := queue.NewAuditEvent(action, actor)
	ev.NoteID = n.ID
	ev.NoteTitle = n.Title
	if err := s.audit.Publish(ctx, ev); err != nil {
		log := logger.Get()
		log.Warn().Err(err).Str("action", action).Msg("audit publish failed")
	}
}
