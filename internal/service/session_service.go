package service

import (
	"context"

	"github.com/google/uuid"

	"dealdesk/internal/domain"
	"dealdesk/internal/port"
)

// SessionService manages working sessions over the session store. Starting a
// new session discards nothing server-side; the old session simply stops
// being the client's current one. In-flight engine requests for an abandoned
// session are not aborted.
type SessionService interface {
	Create(ctx context.Context) *domain.Session
	Get(ctx context.Context, sessionID uuid.UUID) (*domain.Session, error)
	Stats(ctx context.Context, sessionID uuid.UUID) (*domain.SessionStats, error)
}

type sessionService struct {
	store port.SessionStore
}

// NewSessionService creates a new SessionService implementation.
func NewSessionService(store port.SessionStore) SessionService {
	return &sessionService{store: store}
}

func (s *sessionService) Create(_ context.Context) *domain.Session {
	return s.store.Create()
}

func (s *sessionService) Get(_ context.Context, sessionID uuid.UUID) (*domain.Session, error) {
	return s.store.Get(sessionID)
}

func (s *sessionService) Stats(_ context.Context, sessionID uuid.UUID) (*domain.SessionStats, error) {
	return s.store.Stats(sessionID)
}
