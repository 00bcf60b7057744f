package service

import (
	"context"
	"sync"

	"github.com/arivald8/notehub/internal/model"
	"github.com/arivald8/notehub/internal/queue"
)

// stubUserStore is an in-memory UserStore sharing note state with
// stubNoteStore so cascade deletion is observable.
type stubUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
	notes *stubNoteStore
}

func newStubUserStore(notes *stubNoteStore) *stubUserStore {
	return &stubUserStore{users: make(map[string]model.User), notes: notes}
}

func (s *stubUserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.Username]; exists {
		return model.ErrDuplicateUser
	}
	s.users[u.Username] = *u
	return nil
}

func (s *stubUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return nil, model.ErrNotFound
	}
	clone := u
	return &clone, nil
}

func (s *stubUserStore) DeleteCascade(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; !ok {
		return model.ErrNotFound
	}
	if s.notes != nil {
		s.notes.deleteByOwner(username)
	}
	delete(s.users, username)
	return nil
}

// stubNoteStore is an in-memory NoteStore assigning sequential ids.
type stubNoteStore struct {
	mu     sync.Mutex
	nextID uint64
	notes  []model.Note
	owners map[string]bool // usernames considered existing for Create
}

func newStubNoteStore(owners ...string) *stubNoteStore {
	m := make(map[string]bool, len(owners))
	for _, o := range owners {
		m[o] = true
	}
	return &stubNoteStore{owners: m}
}

func (s *stubNoteStore) Create(_ context.Context, n *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.owners[n.OwnerUsername] {
		return model.ErrOwnerNotFound
	}
	s.nextID++
	n.ID = s.nextID
	s.notes = append(s.notes, *n)
	return nil
}

func (s *stubNoteStore) GetByID(_ context.Context, id uint64) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notes {
		if s.notes[i].ID == id {
			clone := s.notes[i]
			return &clone, nil
		}
	}
	return nil, model.ErrNotFound
}

func (s *stubNoteStore) Update(_ context.Context, id uint64, title, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes[i].Title = title
			s.notes[i].Content = content
			return nil
		}
	}
	return model.ErrNotFound
}

func (s *stubNoteStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return nil
		}
	}
	return model.ErrNotFound
}

func (s *stubNoteStore) ListByOwner(_ context.Context, username string) ([]model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Note, 0)
	for _, n := range s.notes {
		if n.OwnerUsername == username {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubNoteStore) deleteByOwner(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.notes[:0]
	for _, n := range s.notes {
		if n.OwnerUsername != username {
			kept = append(kept, n)
		}
	}
	s.notes = kept
}

// recordingPublisher captures audit events instead of talking to a broker.
type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.AuditEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev queue.AuditEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Action)
	}
	return out
}
