package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/arivald8/notehub/internal/model"
	"github.com/arivald8/notehub/internal/queue"
	"github.com/arivald8/notehub/internal/utils"
	"github.com/arivald8/notehub/pkg/logger"
)

// AuthService implements registration and credential verification.
type AuthService struct {
	users      UserStore
	audit      AuditPublisher
	bcryptCost int
}

func NewAuthService(users UserStore, audit AuditPublisher, bcryptCost int) *AuthService {
	return &AuthService{users: users, audit: audit, bcryptCost: bcryptCost}
}

// RegisterParams carries the registration form fields. All are required.
type RegisterParams struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
}

// Register hashes the password and inserts the user. Handlers validate the
// field lengths up front, but empty username/password are refused here too
// so no caller can construct a credential-less account. Duplicate usernames
// surface as model.ErrDuplicateUser from the store's unique constraint.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*model.User, error) {
	p.Username = strings.TrimSpace(p.Username)
	if p.Username == "" || p.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", model.ErrValidation)
	}
	if p.Email == "" || p.FirstName == "" || p.LastName == "" {
		return nil, fmt.Errorf("%w: all fields are required", model.ErrValidation)
	}

	hash, err := utils.HashPassword(p.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Username:     p.Username,
		PasswordHash: hash,
		Email:        p.Email,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	if s.audit != nil {
		if err := s.audit.Publish(ctx, queue.NewAuditEvent(queue.ActionUserRegistered, u.Username)); err != nil {
			log := logger.Get()
			log.Warn().Err(err).Msg("audit publish failed")
		}
	}
	return u, nil
}

// Authenticate returns the user when the password matches. Unknown username
// and wrong password both come back as model.ErrInvalidCredentials, and the
// unknown-username path still pays for one bcrypt comparison so the two
// cannot be told apart by timing either.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if err == model.ErrNotFound {
			utils.VerifyPassword(utils.DummyHash, password)
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, model.ErrInvalidCredentials
	}
	return u, nil
}
