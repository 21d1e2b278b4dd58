package booking

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"pinkmint/models"
)

type stubAuthClient struct{}

func (stubAuthClient) SignInAnonymously(ctx context.Context) (models.Identity, error) {
	return models.Identity{UID: "anon-s", IsAnonymous: true}, nil
}

func (stubAuthClient) SignInWithToken(ctx context.Context, token string) (models.Identity, error) {
	return models.Identity{}, fmt.Errorf("no token sign-in in tests")
}

// recordingStore is a SessionStore double that tracks deletions.
type recordingStore struct {
	saved   map[string]models.Identity
	deleted []string
}

func newRecordingStore() *recordingStore {
	return &recordingStore{saved: make(map[string]models.Identity)}
}

func (r *recordingStore) Current(ctx context.Context, sessionID string) (*models.Identity, error) {
	id, ok := r.saved[sessionID]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (r *recordingStore) Save(ctx context.Context, sessionID string, id models.Identity, method string) error {
	r.saved[sessionID] = id
	return nil
}

func (r *recordingStore) Delete(ctx context.Context, sessionID string) error {
	delete(r.saved, sessionID)
	r.deleted = append(r.deleted, sessionID)
	return nil
}

func TestSessionLifecycle(t *testing.T) {
	svc := &DefaultSessionService{
		AuthClient: stubAuthClient{},
		Repo:       &fakeRepo{},
		AppID:      "default-app-id",
	}

	session, err := svc.Start()
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)
	require.Equal(t, StateIdle, session.Controller.Status().State)

	got, err := svc.Get(session.ID)
	require.NoError(t, err)
	require.Same(t, session, got)

	_, err = svc.Get("missing")
	require.Error(t, err)
}

func TestSessionMutateEditsDraft(t *testing.T) {
	svc := &DefaultSessionService{
		AuthClient: stubAuthClient{},
		Repo:       &fakeRepo{},
		AppID:      "default-app-id",
	}
	session, err := svc.Start()
	require.NoError(t, err)

	require.NoError(t, session.Mutate(func(d *models.BookingDraft) error {
		return SetField(d, "name", "Ada Lovelace")
	}))
	require.Equal(t, "Ada Lovelace", session.Controller.DraftSnapshot().Name)
}

func TestCancelDropsCachedIdentity(t *testing.T) {
	store := newRecordingStore()
	svc := &DefaultSessionService{
		AuthClient:    stubAuthClient{},
		IdentityStore: store,
		Repo:          &fakeRepo{},
		AppID:         "default-app-id",
	}
	session, err := svc.Start()
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(session.ID))
	require.Contains(t, store.deleted, session.ID)

	_, err = svc.Get(session.ID)
	require.Error(t, err)
	require.Error(t, svc.Cancel(session.ID))
}
