package service

import (
	"context"

	"github.com/arivald8/notehub/internal/auth"
	"github.com/arivald8/notehub/internal/model"
	"github.com/arivald8/notehub/internal/queue"
	"github.com/arivald8/notehub/pkg/logger"
)

// UserService exposes the profile operations. Both are guarded: only the
// account holder may read or delete their profile.
type UserService struct {
	users UserStore
	audit AuditPublisher
}

func NewUserService(users UserStore, audit AuditPublisher) *UserService {
	return &UserService{users: users, audit: audit}
}

// Profile returns the actor's own profile. The guard runs before the lookup
// so a foreign username yields auth.ErrUnauthorized, never a not-found hint
// about whether the account exists.
func (s *UserService) Profile(ctx context.Context, actor, username string) (*model.User, error) {
	if err := auth.Authorize(actor, username); err != nil {
		return nil, err
	}
	return s.users.GetByUsername(ctx, username)
}

// Delete removes the actor's account and all notes they own in one
// transaction. A note never outlives its owner; there is no observable
// state with one deleted and not the other.
func (s *UserService) Delete(ctx context.Context, actor, username string) error {
	if err := auth.Authorize(actor, username); err != nil {
		return err
	}
	if err := s.users.DeleteCascade(ctx, username); err != nil {
		return err
	}
	if s.audit != nil {
		ev := queue.NewAuditEvent(queue.ActionUserDeleted, actor)
		if err := s.audit.Publish(ctx, ev); err != nil {
			log := logger.Get()
			log.Warn().Err(err).Msg("audit publish failed")
		}
	}
	return nil
}
