package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pinkmint/database"
	"pinkmint/models"
	"pinkmint/services/catalog"
	"pinkmint/services/identity"
)

// FormSession binds one draft and its controller for the lifetime of a form.
// Each browser session holds exactly one.
type FormSession struct {
	ID         string
	Controller *Controller
}

// Mutate runs fn with exclusive access to the session's draft. Mutation is
// rejected while a submission is in flight.
func (s *FormSession) Mutate(fn func(d *models.BookingDraft) error) error {
	return s.Controller.Mutate(fn)
}

// SessionService manages the registry of active form sessions.
type SessionService interface {
	Start() (*FormSession, error)
	Get(sessionID string) (*FormSession, error)
	Cancel(sessionID string) error
}

// DefaultSessionService implements SessionService with an in-memory registry.
// Identity persistence across restarts is handled by the bootstrapper's
// session store, not by this registry.
type DefaultSessionService struct {
	AuthClient    identity.AuthClient
	IdentityStore identity.SessionStore // optional
	Repo          database.BookingRepository
	Catalog       *catalog.Catalog
	AppID         string
	InitialToken  string
	DisplayFor    time.Duration
	Logger        *zap.Logger

	mu       sync.Mutex
	sessions map[string]*FormSession
}

// Start creates a new form session with an empty draft and idle workflow.
func (s *DefaultSessionService) Start() (*FormSession, error) {
	sessionID := uuid.New().String()
	logger := s.logger()

	bootstrapper := identity.NewBootstrapper(s.AuthClient, s.IdentityStore, sessionID, s.InitialToken, logger)
	session := &FormSession{
		ID:         sessionID,
		Controller: NewController(bootstrapper, s.Repo, s.AppID, s.DisplayFor, logger),
	}

	s.mu.Lock()
	if s.sessions == nil {
		s.sessions = make(map[string]*FormSession)
	}
	s.sessions[sessionID] = session
	s.mu.Unlock()

	logger.Debug("form session started", zap.String("sessionID", sessionID))
	return session, nil
}

// Get returns the session for the given ID.
func (s *DefaultSessionService) Get(sessionID string) (*FormSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("form session %s not found", sessionID)
	}
	return session, nil
}

// Cancel discards a session, its draft, and its cached identity. Session ids
// are never reissued, so a cached identity left behind would only expire.
func (s *DefaultSessionService) Cancel(sessionID string) error {
	s.mu.Lock()
	if _, ok := s.sessions[sessionID]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("form session %s not found", sessionID)
	}
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if s.IdentityStore != nil {
		// Best effort; an orphaned entry still expires with its TTL.
		if err := s.IdentityStore.Delete(context.Background(), sessionID); err != nil {
			s.logger().Warn("failed to drop cached identity",
				zap.String("sessionID", sessionID), zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultSessionService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
