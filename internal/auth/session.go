package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
	StateLocked
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateLocked:
		return "locked"
	default:
		return "anonymous"
	}
}

const DefaultMaxAttempts = 3

// Session carries the login state of one client. It replaces any notion of a
// process-wide current user and is passed explicitly to the gate.
type Session struct {
	mu           sync.Mutex
	maxAttempts  int
	attemptsLeft int
	state        State
	principal    Principal
}

func NewSession(maxAttempts int) *Session {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Session{maxAttempts: maxAttempts, attemptsLeft: maxAttempts}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) AttemptsLeft() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attemptsLeft
}

// Principal returns the authenticated principal, if any.
func (s *Session) Principal() (Principal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.principal, s.state == StateAuthenticated
}

// Logout returns the session to Anonymous with the full attempt budget. It is
// also the only way out of Locked.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAnonymous
	s.principal = Principal{}
	s.attemptsLeft = s.maxAttempts
}

// SessionStore keeps sessions by id for the HTTP layer. A session unused
// for longer than the idle timeout is dropped.
type SessionStore struct {
	mu          sync.Mutex
	sessions    map[string]*storedSession
	maxAttempts int
	idle        time.Duration
	lastSweep   time.Time
	now         func() time.Time
}

type storedSession struct {
	session  *Session
	lastUsed time.Time
}

const sweepInterval = time.Minute

func NewSessionStore(maxAttempts int) *SessionStore {
	return &SessionStore{
		sessions:    make(map[string]*storedSession),
		maxAttempts: maxAttempts,
		idle:        TokenDuration,
		now:         time.Now,
	}
}

// Get returns the session for id, creating one (with a fresh id) when the id
// is empty, unknown or expired. The second result reports whether the
// session was created.
func (st *SessionStore) Get(id string) (string, *Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	if s := st.live(id, now); s != nil {
		return id, s, false
	}

	st.sweep(now)
	id = uuid.NewString()
	s := NewSession(st.maxAttempts)
	st.sessions[id] = &storedSession{session: s, lastUsed: now}
	return id, s, true
}

// Lookup returns an existing session without creating one.
func (st *SessionStore) Lookup(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := st.live(id, st.now())
	return s, s != nil
}

func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// live returns the session for id and marks it used, or nil if there is none
// or it has expired. Callers hold st.mu.
func (st *SessionStore) live(id string, now time.Time) *Session {
	if id == "" {
		return nil
	}
	entry, ok := st.sessions[id]
	if !ok {
		return nil
	}
	if now.Sub(entry.lastUsed) > st.idle {
		delete(st.sessions, id)
		return nil
	}
	entry.lastUsed = now
	return entry.session
}

func (st *SessionStore) sweep(now time.Time) {
	if now.Sub(st.lastSweep) < sweepInterval {
		return
	}
	st.lastSweep = now
	for id, entry := range st.sessions {
		if now.Sub(entry.lastUsed) > st.idle {
			delete(st.sessions, id)
		}
	}
}
