// Package memory holds the in-process session store. Sessions are working
// state for one upload batch; terminal results are persisted separately by
// the postgres audit repository.
package memory

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"dealdesk/internal/domain"
	"dealdesk/internal/port"
	"dealdesk/internal/scoring"
)

type sessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.Session
}

// NewSessionStore creates an empty in-memory SessionStore. All mutations are
// serialized behind one mutex and every read hands out a snapshot, so callers
// never hold a live reference into the store.
func NewSessionStore() port.SessionStore {
	return &sessionStore{sessions: make(map[uuid.UUID]*domain.Session)}
}

func (s *sessionStore) Create() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &domain.Session{
		ID:        uuid.New(),
		Files:     []domain.SessionFile{},
		StartedAt: time.Now().UTC(),
	}
	s.sessions[sess.ID] = sess
	return snapshot(sess)
}

func (s *sessionStore) Get(sessionID uuid.UUID) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return snapshot(sess), nil
}

func (s *sessionStore) AddFiles(sessionID uuid.UUID, files []domain.FileDescriptor) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	for _, f := range files {
		sess.Files = append(sess.Files, domain.SessionFile{
			File:   f,
			Status: domain.StatusPending,
		})
	}
	sess.Processing = true
	sess.CompletedAt = nil
	return snapshot(sess), nil
}

func (s *sessionStore) SetStatus(sessionID uuid.UUID, fileID string, status domain.AnalysisStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.entry(sessionID, fileID)
	if err != nil || entry == nil {
		return err
	}
	if !domain.CanTransition(entry.Status, status) {
		return domain.ErrStatusTransition
	}
	entry.Status = status
	return nil
}

func (s *sessionStore) RecordResult(sessionID uuid.UUID, fileID string, result *domain.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.entry(sessionID, fileID)
	if err != nil || entry == nil {
		return err
	}

	status := result.Status
	if !status.IsTerminal() {
		status = domain.StatusCompleted
	}
	if !domain.CanTransition(entry.Status, status) {
		return domain.ErrStatusTransition
	}

	cp := *result
	entry.Status = status
	entry.Result = &cp
	entry.Error = ""
	return nil
}

func (s *sessionStore) RecordFailure(sessionID uuid.UUID, fileID string, cause error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.entry(sessionID, fileID)
	if err != nil || entry == nil {
		return err
	}
	if !domain.CanTransition(entry.Status, domain.StatusFailed) {
		return domain.ErrStatusTransition
	}
	entry.Status = domain.StatusFailed
	entry.Error = cause.Error()
	return nil
}

func (s *sessionStore) ReplaceResult(sessionID uuid.UUID, analysisID string, result *domain.AnalysisResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	for i := range sess.Files {
		entry := &sess.Files[i]
		if entry.Result == nil || entry.Result.AnalysisID != analysisID {
			continue
		}
		status := result.Status
		if !status.IsTerminal() {
			status = entry.Status
		}
		if !domain.CanTransition(entry.Status, status) {
			return domain.ErrStatusTransition
		}
		cp := *result
		entry.Status = status
		entry.Result = &cp
		entry.Error = ""
		return nil
	}
	return domain.ErrAnalysisNotFound
}

func (s *sessionStore) FindByAnalysisID(analysisID string) (uuid.UUID, *domain.AnalysisResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		for i := range sess.Files {
			if r := sess.Files[i].Result; r != nil && r.AnalysisID == analysisID {
				cp := *r
				return id, &cp, nil
			}
		}
	}
	return uuid.Nil, nil, domain.ErrAnalysisNotFound
}

func (s *sessionStore) FinishProcessing(sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	now := time.Now().UTC()
	sess.Processing = false
	sess.CompletedAt = &now
	return nil
}

// Stats derives session statistics from settled results only. An empty
// session averages to zero, never a division fault.
func (s *sessionStore) Stats(sessionID uuid.UUID) (*domain.SessionStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	stats := &domain.SessionStats{TotalFiles: len(sess.Files)}
	var sum float64
	for i := range sess.Files {
		r := sess.Files[i].Result
		if r == nil {
			continue
		}
		stats.Analyzed++
		conf := scoring.OverallConfidence(r)
		sum += conf
		if conf >= scoring.ReviewThreshold {
			stats.HighConfidence++
		}
	}
	if stats.Analyzed > 0 {
		stats.AverageConfidence = sum / float64(stats.Analyzed)
	}
	return stats, nil
}

// entry locates a file entry. An unknown file id is a logged no-op: the
// session stays unchanged and no error propagates.
func (s *sessionStore) entry(sessionID uuid.UUID, fileID string) (*domain.SessionFile, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	for i := range sess.Files {
		if sess.Files[i].File.ID == fileID {
			return &sess.Files[i], nil
		}
	}
	log.Printf("sessionStore: file %s not found in session %s, ignoring", fileID, sessionID)
	return nil, nil
}

// snapshot deep-copies a session so consumers cannot mutate store state.
func snapshot(sess *domain.Session) *domain.Session {
	cp := *sess
	cp.Files = make([]domain.SessionFile, len(sess.Files))
	copy(cp.Files, sess.Files)
	for i := range cp.Files {
		if r := cp.Files[i].Result; r != nil {
			rc := *r
			cp.Files[i].Result = &rc
		}
	}
	return &cp
}
