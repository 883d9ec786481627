package playback

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mberthault/upnext/logger"
)

// SessionManager owns independent playback sessions, one queue/shuffle pair
// each. Sessions share nothing: dropping one never disturbs another.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]Service
	opts     Options
	log      *slog.Logger
}

// NewSessionManager creates an empty session manager. All sessions it
// creates share the given options.
func NewSessionManager(opts Options) *SessionManager {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &SessionManager{
		sessions: make(map[string]Service),
		opts:     opts,
		log:      logger.WithComponent(log, "sessions"),
	}
}

// Create starts a new playback session and returns its id.
func (sm *SessionManager) Create() (string, Service) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	id := uuid.NewString()
	opts := sm.opts
	if opts.Logger != nil {
		opts.Logger = logger.WithSession(opts.Logger, id)
	}
	svc := New(opts)
	sm.sessions[id] = svc
	sm.log.Debug("session created", "session", id)
	return id, svc
}

// Get returns the session with the given id.
func (sm *SessionManager) Get(id string) (Service, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	svc, ok := sm.sessions[id]
	return svc, ok
}

// Close ends the session with the given id. Unknown ids are ignored.
func (sm *SessionManager) Close(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if svc, ok := sm.sessions[id]; ok {
		_ = svc.Close()
		delete(sm.sessions, id)
		sm.log.Debug("session closed", "session", id)
	}
}

// CloseAll ends every session.
func (sm *SessionManager) CloseAll() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for id, svc := range sm.sessions {
		_ = svc.Close()
		delete(sm.sessions, id)
	}
}

// Len returns the number of live sessions.
func (sm *SessionManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
