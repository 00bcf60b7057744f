package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arivald8/notehub/internal/auth"
	"github.com/arivald8/notehub/internal/model"
)

func TestNoteService_Create(t *testing.T) {
	notes := newStubNoteStore("alice")
	svc := NewNoteService(notes, nil)

	n, err := svc.Create(context.Background(), "alice", "T", "C")
	require.NoError(t, err)

	assert.Positive(t, n.ID)
	assert.Equal(t, "alice", n.OwnerUsername)
	assert.Equal(t, "T", n.Title)
}

func TestNoteService_Create_OwnerMissing(t *testing.T) {
	notes := newStubNoteStore() // no known owners
	svc := NewNoteService(notes, nil)

	_, err := svc.Create(context.Background(), "ghost", "T", "C")
	assert.ErrorIs(t, err, model.ErrOwnerNotFound)
}

func TestNoteService_Create_Anonymous(t *testing.T) {
	notes := newStubNoteStore("alice")
	svc := NewNoteService(notes, nil)

	_, err := svc.Create(context.Background(), "", "T", "C")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestNoteService_Update_OtherUserForbidden(t *testing.T) {
	notes := newStubNoteStore("alice", "bob")
	svc := NewNoteService(notes, nil)

	n, err := svc.Create(context.Background(), "alice", "T", "C")
	require.NoError(t, err)

	// bob is a valid, authenticated user, just not the owner.
	_, err = svc.Update(context.Background(), "bob", n.ID, "X", "Y")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	// The note is unchanged.
	got, err := svc.Get(context.Background(), "alice", n.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)
}

func TestNoteService_Update(t *testing.T) {
	notes := newStubNoteStore("alice")
	svc := NewNoteService(notes, nil)

	n, err := svc.Create(context.Background(), "alice", "T", "C")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), "alice", n.ID, "T2", "C2")
	require.NoError(t, err)
	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, "C2", updated.Content)
}

func TestNoteService_Update_NotFound(t *testing.T) {
	svc := NewNoteService(newStubNoteStore("alice"), nil)

	_, err := svc.Update(context.Background(), "alice", 42, "T", "C")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestNoteService_Delete_OtherUserForbidden(t *testing.T) {
	notes := newStubNoteStore("alice", "bob")
	svc := NewNoteService(notes, nil)

	n, err := svc.Create(context.Background(), "alice", "T", "C")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "bob", n.ID)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestNoteService_Delete_NotFound(t *testing.T) {
	svc := NewNoteService(newStubNoteStore("alice"), nil)

	err := svc.Delete(context.Background(), "alice", 7)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestNoteService_Get_OtherUserForbidden(t *testing.T) {
	notes := newStubNoteStore("alice", "bob")
	svc := NewNoteService(notes, nil)

	n, err := svc.Create(context.Background(), "alice", "T", "C")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "bob", n.ID)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestNoteService_List_CreationOrder(t *testing.T) {
	notes := newStubNoteStore("alice", "bob")
	svc := NewNoteService(notes, nil)

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.Create(context.Background(), "alice", title, "C")
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), "bob", "not alices", "C")
	require.NoError(t, err)

	got, err := svc.List(context.Background(), "alice", "alice")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "second", got[1].Title)
	assert.Equal(t, "third", got[2].Title)
}

func TestNoteService_List_OtherUserForbidden(t *testing.T) {
	svc := NewNoteService(newStubNoteStore("alice"), nil)

	_, err := svc.List(context.Background(), "bob", "alice")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestNoteService_Mutations_PublishAudit(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewNoteService(newStubNoteStore("alice"), pub)

	n, err := svc.Create(context.Background(), "alice", "T", "C")
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), "alice", n.ID, "T2", "C2")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), "alice", n.ID))

	assert.Equal(t, []string{"note.created", "note.updated", "note.deleted"}, pub.actions())
}
