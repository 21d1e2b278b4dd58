package identity

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"

	"pinkmint/models"
)

// fakeAuthClient counts sign-ins and can fail on demand.
type fakeAuthClient struct {
	anonCalls  int64
	tokenCalls int64
	anonErr    error
	tokenErr   error
	delay      time.Duration
}

func (f *fakeAuthClient) SignInAnonymously(ctx context.Context) (models.Identity, error) {
	n := atomic.AddInt64(&f.anonCalls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.anonErr != nil {
		return models.Identity{}, f.anonErr
	}
	return models.Identity{UID: "anon-" + string(rune('0'+n)), IsAnonymous: true}, nil
}

func (f *fakeAuthClient) SignInWithToken(ctx context.Context, token string) (models.Identity, error) {
	atomic.AddInt64(&f.tokenCalls, 1)
	if f.tokenErr != nil {
		return models.Identity{}, f.tokenErr
	}
	return models.Identity{UID: "user-42", IsAnonymous: false}, nil
}

// fakeStore is an in-memory SessionStore.
type fakeStore struct {
	mu      sync.Mutex
	entries map[string]models.Identity
	methods map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		entries: make(map[string]models.Identity),
		methods: make(map[string]string),
	}
}

func (f *fakeStore) Current(ctx context.Context, sessionID string) (*models.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.entries[sessionID]
	if !ok {
		return nil, nil
	}
	return &id, nil
}

func (f *fakeStore) Save(ctx context.Context, sessionID string, id models.Identity, method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[sessionID] = id
	f.methods[sessionID] = method
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, sessionID)
	delete(f.methods, sessionID)
	return nil
}

func signedToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"uid": "user-42",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(expiresIn).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestEnsureReadyEstablishesAnonymousIdentity(t *testing.T) {
	client := &fakeAuthClient{}
	b := NewBootstrapper(client, nil, "sess-1", "", nil)

	require.False(t, b.Ready())
	require.Nil(t, b.Identity())

	id, err := b.EnsureReady(context.Background())
	require.NoError(t, err)
	require.True(t, id.IsAnonymous)
	require.NotEmpty(t, id.UID)
	require.True(t, b.Ready())
	require.Equal(t, id, *b.Identity())

	// A second call reuses the identity; no new anonymous user is minted.
	again, err := b.EnsureReady(context.Background())
	require.NoError(t, err)
	require.Equal(t, id, again)
	require.EqualValues(t, 1, atomic.LoadInt64(&client.anonCalls))
}

func TestEnsureReadyConcurrentCallersShareOneAttempt(t *testing.T) {
	client := &fakeAuthClient{delay: 10 * time.Millisecond}
	b := NewBootstrapper(client, nil, "sess-1", "", nil)

	const callers = 16
	ids := make([]models.Identity, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := b.EnsureReady(context.Background())
			require.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	require.EqualValues(t, 1, atomic.LoadInt64(&client.anonCalls),
		"concurrent callers must share a single establishment attempt")
	for _, id := range ids {
		require.Equal(t, ids[0], id)
	}
}

func TestEnsureReadyReusesCachedSessionIdentity(t *testing.T) {
	client := &fakeAuthClient{}
	store := newFakeStore()
	store.entries["sess-1"] = models.Identity{UID: "cached-7", IsAnonymous: true}

	b := NewBootstrapper(client, store, "sess-1", "", nil)
	id, err := b.EnsureReady(context.Background())
	require.NoError(t, err)
	require.Equal(t, "cached-7", id.UID)
	require.Zero(t, atomic.LoadInt64(&client.anonCalls))
	require.Zero(t, atomic.LoadInt64(&client.tokenCalls))
}

func TestEnsureReadyPrefersSuppliedToken(t *testing.T) {
	client := &fakeAuthClient{}
	store := newFakeStore()
	b := NewBootstrapper(client, store, "sess-1", signedToken(t, time.Hour), nil)

	id, err := b.EnsureReady(context.Background())
	require.NoError(t, err)
	require.Equal(t, "user-42", id.UID)
	require.False(t, id.IsAnonymous)
	require.EqualValues(t, 1, atomic.LoadInt64(&client.tokenCalls))
	require.Zero(t, atomic.LoadInt64(&client.anonCalls))
	require.Equal(t, MethodToken, store.methods["sess-1"])
}

func TestEnsureReadyExpiredTokenFallsBackToAnonymous(t *testing.T) {
	client := &fakeAuthClient{}
	b := NewBootstrapper(client, nil, "sess-1", signedToken(t, -time.Hour), nil)

	id, err := b.EnsureReady(context.Background())
	require.NoError(t, err)
	require.True(t, id.IsAnonymous)
	require.Zero(t, atomic.LoadInt64(&client.tokenCalls), "expired token must not be presented")
	require.EqualValues(t, 1, atomic.LoadInt64(&client.anonCalls))
}

func TestEnsureReadyTokenRejectionFallsBackToAnonymous(t *testing.T) {
	client := &fakeAuthClient{tokenErr: errors.New("token revoked")}
	b := NewBootstrapper(client, nil, "sess-1", signedToken(t, time.Hour), nil)

	id, err := b.EnsureReady(context.Background())
	require.NoError(t, err)
	require.True(t, id.IsAnonymous)
	require.EqualValues(t, 1, atomic.LoadInt64(&client.tokenCalls))
	require.EqualValues(t, 1, atomic.LoadInt64(&client.anonCalls))
}

func TestEnsureReadyFailureIsRetryable(t *testing.T) {
	client := &fakeAuthClient{anonErr: errors.New("network unavailable")}
	b := NewBootstrapper(client, nil, "sess-1", "", nil)

	_, err := b.EnsureReady(context.Background())
	require.ErrorIs(t, err, ErrAuthenticationFailed)
	require.False(t, b.Ready())

	// The failure is terminal for that attempt only.
	client.anonErr = nil
	id, err := b.EnsureReady(context.Background())
	require.NoError(t, err)
	require.True(t, id.IsAnonymous)
}

func TestEnsureReadySavesEstablishedIdentity(t *testing.T) {
	client := &fakeAuthClient{}
	store := newFakeStore()
	b := NewBootstrapper(client, store, "sess-1", "", nil)

	id, err := b.EnsureReady(context.Background())
	require.NoError(t, err)

	cached, err := store.Current(context.Background(), "sess-1")
	require.NoError(t, err)
	require.NotNil(t, cached)
	require.Equal(t, id, *cached)
	require.Equal(t, MethodAnonymous, store.methods["sess-1"])
}

func TestSubscribeNotifiesOnReadiness(t *testing.T) {
	client := &fakeAuthClient{}
	b := NewBootstrapper(client, nil, "sess-1", "", nil)

	got := make(chan models.Identity, 2)
	b.Subscribe(func(id models.Identity) { got <- id })

	id, err := b.EnsureReady(context.Background())
	require.NoError(t, err)

	select {
	case notified := <-got:
		require.Equal(t, id, notified)
	case <-time.After(time.Second):
		t.Fatal("subscriber was not notified")
	}

	// Late subscribers are invoked immediately.
	b.Subscribe(func(id models.Identity) { got <- id })
	select {
	case notified := <-got:
		require.Equal(t, id, notified)
	case <-time.After(time.Second):
		t.Fatal("late subscriber was not notified")
	}
}
