package wizard

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrSessionNotFound is returned for unknown or expired session ids
var ErrSessionNotFound = errors.New("wizard session not found")

// DefaultTTL bounds how long an idle session is kept
const DefaultTTL = 30 * time.Minute

// Store keeps live wizard sessions in memory, keyed by UUID, and sweeps
// idle ones with a janitor goroutine. All access is mutex-guarded since
// HTTP handlers touch sessions concurrently.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
	logger   zerolog.Logger
}

// NewStore creates a session store and starts its janitor
func NewStore(ttl time.Duration, logger zerolog.Logger) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
		logger:   logger,
	}
	go s.janitor()
	return s
}

// Create starts a new session for the given definition
func (s *Store) Create(def *Definition) *Session {
	session := newSession(uuid.New().String(), def, time.Now())
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return session
}

// Get returns the session with the given id
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete removes a session, cancelling any in-flight request it owns
func (s *Store) Delete(id string) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if ok {
		session.CancelInFlight()
	}
}

// Close stops the janitor
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) janitor() {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.sweep(now)
		}
	}
}

func (s *Store) sweep(now time.Time) {
	var expired []*Session
	s.mu.Lock()
	for id, session := range s.sessions {
		if session.expiredAt(now, s.ttl) {
			delete(s.sessions, id)
			expired = append(expired, session)
		}
	}
	s.mu.Unlock()

	for _, session := range expired {
		session.CancelInFlight()
		s.logger.Debug().Str("sessionId", session.ID).Str("wizard", session.Def.Name).Msg("Expired wizard session removed")
	}
}
