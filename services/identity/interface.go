package identity

import (
	"context"

	"pinkmint/models"
)

// AuthClient is the external identity provider the bootstrapper drives.
type AuthClient interface {
	// SignInAnonymously mints a fresh anonymous identity.
	SignInAnonymously(ctx context.Context) (models.Identity, error)
	// SignInWithToken exchanges a custom sign-in token for an identity.
	SignInWithToken(ctx context.Context, token string) (models.Identity, error)
}

// SessionStore persists an established identity for the lifetime of one
// booking session, so later submissions (and restarts) reuse it.
type SessionStore interface {
	// Current returns the cached identity for the session, or nil when none
	// has been established yet.
	Current(ctx context.Context, sessionID string) (*models.Identity, error)
	// Save caches the established identity with the method that produced it.
	Save(ctx context.Context, sessionID string, id models.Identity, method string) error
	// Delete drops the cached identity when the session is torn down.
	Delete(ctx context.Context, sessionID string) error
}

// Bootstrapper guarantees a usable identity exists before any booking write.
type Bootstrapper interface {
	// EnsureReady blocks until an identity exists or establishment fails.
	// Concurrent callers share a single establishment attempt; a failed
	// attempt is terminal for its callers but a later call retries.
	EnsureReady(ctx context.Context) (models.Identity, error)
	// Identity returns the established identity, or nil before readiness.
	Identity() *models.Identity
	// Ready reports whether an identity has been established.
	Ready() bool
	// Subscribe registers a callback invoked once the identity becomes
	// available. An already-ready bootstrapper invokes it immediately.
	Subscribe(fn func(models.Identity))
}
