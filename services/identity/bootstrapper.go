package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"pinkmint/models"
)

// ErrAuthenticationFailed is returned when every establishment path fails.
var ErrAuthenticationFailed = errors.New("authentication failed")

// Establishment methods, in priority order.
const (
	MethodSession   = "session"
	MethodToken     = "token"
	MethodAnonymous = "anonymous"
)

// DefaultBootstrapper implements Bootstrapper for one booking session. It
// tries, in order: the identity already cached for the session, a supplied
// custom token, and finally anonymous sign-in.
type DefaultBootstrapper struct {
	Client       AuthClient
	Store        SessionStore // optional; nil skips the cached-session path
	SessionID    string
	InitialToken string // optional ambient credential from the hosting environment
	Logger       *zap.Logger

	mu       sync.Mutex
	identity *models.Identity
	err      error
	done     chan struct{} // closed when the in-flight attempt finishes
	inFlight bool
	subs     []func(models.Identity)
}

// NewBootstrapper builds a bootstrapper for a booking session.
func NewBootstrapper(client AuthClient, store SessionStore, sessionID, initialToken string, logger *zap.Logger) *DefaultBootstrapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBootstrapper{
		Client:       client,
		Store:        store,
		SessionID:    sessionID,
		InitialToken: initialToken,
		Logger:       logger,
	}
}

// EnsureReady blocks until an identity exists or the current attempt fails.
func (b *DefaultBootstrapper) EnsureReady(ctx context.Context) (models.Identity, error) {
	b.mu.Lock()
	if b.identity != nil {
		id := *b.identity
		b.mu.Unlock()
		return id, nil
	}
	if !b.inFlight {
		b.inFlight = true
		b.err = nil
		b.done = make(chan struct{})
		go b.establish()
	}
	done := b.done
	b.mu.Unlock()

	select {
	case <-ctx.Done():
		return models.Identity{}, ctx.Err()
	case <-done:
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.identity != nil {
		return *b.identity, nil
	}
	return models.Identity{}, b.err
}

// Identity returns the established identity, or nil before readiness.
func (b *DefaultBootstrapper) Identity() *models.Identity {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.identity == nil {
		return nil
	}
	id := *b.identity
	return &id
}

// Ready reports whether an identity has been established.
func (b *DefaultBootstrapper) Ready() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.identity != nil
}

// Subscribe registers a callback for when the identity becomes available.
func (b *DefaultBootstrapper) Subscribe(fn func(models.Identity)) {
	b.mu.Lock()
	if b.identity != nil {
		id := *b.identity
		b.mu.Unlock()
		fn(id)
		return
	}
	b.subs = append(b.subs, fn)
	b.mu.Unlock()
}

// establish runs one identity establishment attempt. Exactly one runs at a
// time; all concurrent EnsureReady callers wait on the same done channel.
func (b *DefaultBootstrapper) establish() {
	ctx := context.Background()
	id, method, err := b.resolve(ctx)
	if err == nil && method != MethodSession && b.Store != nil {
		// Best effort; a cache miss next time just re-establishes.
		if serr := b.Store.Save(ctx, b.SessionID, id, method); serr != nil {
			b.Logger.Warn("failed to cache identity session", zap.Error(serr))
		}
	}

	b.mu.Lock()
	var notify []func(models.Identity)
	if err != nil {
		b.err = fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
		b.Logger.Warn("identity establishment failed",
			zap.String("sessionID", b.SessionID), zap.Error(err))
	} else {
		b.identity = &id
		notify = b.subs
		b.subs = nil
		b.Logger.Info("identity established",
			zap.String("sessionID", b.SessionID),
			zap.String("uid", id.UID),
			zap.String("method", method),
			zap.Bool("anonymous", id.IsAnonymous))
	}
	b.inFlight = false
	close(b.done)
	b.mu.Unlock()

	for _, fn := range notify {
		fn(id)
	}
}

// resolve walks the establishment paths in priority order.
func (b *DefaultBootstrapper) resolve(ctx context.Context) (models.Identity, string, error) {
	if b.Store != nil {
		cached, err := b.Store.Current(ctx, b.SessionID)
		if err != nil {
			b.Logger.Warn("identity session lookup failed", zap.Error(err))
		} else if cached != nil {
			return *cached, MethodSession, nil
		}
	}

	if b.InitialToken != "" {
		if !tokenUsable(b.InitialToken) {
			b.Logger.Warn("supplied auth token is malformed or expired, falling back",
				zap.String("sessionID", b.SessionID))
		} else {
			id, err := b.Client.SignInWithToken(ctx, b.InitialToken)
			if err == nil {
				return id, MethodToken, nil
			}
			b.Logger.Warn("token sign-in failed, falling back to anonymous", zap.Error(err))
		}
	}

	id, err := b.Client.SignInAnonymously(ctx)
	if err != nil {
		return models.Identity{}, "", fmt.Errorf("anonymous sign-in: %w", err)
	}
	return id, MethodAnonymous, nil
}
