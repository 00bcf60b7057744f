package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/arivald8/notehub/internal/auth"
	"github.com/arivald8/notehub/internal/model"
)

func TestUserService_Profile_OwnerOnly(t *testing.T) {
	notes := newStubNoteStore("alice")
	users := newStubUserStore(notes)
	require.NoError(t, users.Create(context.Background(), &model.User{Username: "alice", Email: "a@example.com"}))

	svc := NewUserService(users, nil)

	u, err := svc.Profile(context.Background(), "alice", "alice")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", u.Email)

	// Another authenticated user gets a denial, not a not-found hint.
	_, err = svc.Profile(context.Background(), "bob", "alice")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
	_, err = svc.Profile(context.Background(), "bob", "nosuchuser")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestUserService_Delete_CascadesNotes(t *testing.T) {
	notes := newStubNoteStore("alice", "bob")
	users := newStubUserStore(notes)
	require.NoError(t, users.Create(context.Background(), &model.User{Username: "alice"}))
	require.NoError(t, users.Create(context.Background(), &model.User{Username: "bob"}))

	noteSvc := NewNoteService(notes, nil)
	for i := 0; i < 3; i++ {
		_, err := noteSvc.Create(context.Background(), "alice", "T", "C")
		require.NoError(t, err)
	}
	keep, err := noteSvc.Create(context.Background(), "bob", "keep", "C")
	require.NoError(t, err)

	svc := NewUserService(users, nil)
	require.NoError(t, svc.Delete(context.Background(), "alice", "alice"))

	// User and all their notes are gone, in one step.
	_, err = users.GetByUsername(context.Background(), "alice")
	assert.ErrorIs(t, err, model.ErrNotFound)
	remaining, err := notes.ListByOwner(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// Unrelated data survives.
	_, err = notes.GetByID(context.Background(), keep.ID)
	assert.NoError(t, err)
}

func TestUserService_Delete_OtherUserForbidden(t *testing.T) {
	users := newStubUserStore(nil)
	require.NoError(t, users.Create(context.Background(), &model.User{Username: "alice"}))

	svc := NewUserService(users, nil)
	err := svc.Delete(context.Background(), "bob", "alice")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	_, err = users.GetByUsername(context.Background(), "alice")
	assert.NoError(t, err)
}

func TestUserService_Delete_PublishesAudit(t *testing.T) {
	users := newStubUserStore(newStubNoteStore())
	require.NoError(t, users.Create(context.Background(), &model.User{Username: "alice"}))

	pub := &recordingPublisher{}
	svc := NewUserService(users, pub)
	require.NoError(t, svc.Delete(context.Background(), "alice", "alice"))
	assert.Equal(t, []string{"user.deleted"}, pub.actions())
}

// End-to-end over the stubs: the scenario from the login flow.
func TestRegisterThenAuthenticateScenario(t *testing.T) {
	users := newStubUserStore(nil)
	svc := NewAuthService(users, nil, bcrypt.MinCost)

	_, err := svc.Register(context.Background(), validParams())
	require.NoError(t, err)

	u, err := svc.Authenticate(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = svc.Authenticate(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}
