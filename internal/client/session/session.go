// Package session is the client's single source of truth for "who is logged
// in right now". It is a small state machine: Unknown until the startup
// resolution runs, Resolving while it does, then Authenticated or
// Unauthenticated for the rest of the process lifetime.
package session

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/devhive-app/devhive/internal/client/credstore"
)

// State is the session lifecycle state
type State int

const (
	StateUnknown State = iota
	StateResolving
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateResolving:
		return "resolving"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "invalid"
	}
}

// Identity is the confirmed user behind the session
type Identity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// Snapshot is a consistent read of the session state
type Snapshot struct {
	State   State
	Loading bool
	Token   string
	User    *Identity
}

// Authenticated reports whether the snapshot is a confirmed session
func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated
}

// Known reports whether the first resolution has completed
func (s Snapshot) Known() bool {
	return s.State == StateAuthenticated || s.State == StateUnauthenticated
}

// Store holds the session state. Every transition is committed against a
// generation number handed out by Begin*: a commit whose generation is no
// longer current is dropped, so a stale in-flight response (say, a slow
// startup resolution finishing after a logout) can never resurrect a session.
//
// The durable token rides along with the state: saved the moment the session
// becomes Authenticated, deleted the moment it becomes Unauthenticated.
type Store struct {
	mu     sync.Mutex
	tokens credstore.TokenStore
	log    zerolog.Logger

	state   State
	loading bool
	token   string
	user    *Identity
	gen     uint64
}

// New creates a session store in the Unknown state
func New(tokens credstore.TokenStore, log zerolog.Logger) *Store {
	return &Store{
		tokens: tokens,
		log:    log,
		state:  StateUnknown,
	}
}

// Snapshot returns a consistent copy of the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user *Identity
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return Snapshot{
		State:   s.state,
		Loading: s.loading,
		Token:   s.token,
		User:    user,
	}
}

// PersistedToken reads the durable token without touching session state.
// Returns "" when nothing is stored.
func (s *Store) PersistedToken() (string, error) {
	token, err := s.tokens.Load()
	if err != nil {
		if errors.Is(err, credstore.ErrNoToken) {
			return "", nil
		}
		return "", err
	}
	return token, nil
}

// BeginResolving starts the one startup resolution and returns the generation
// the eventual commit must present. Only the Unknown state enters Resolving.
func (s *Store) BeginResolving() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateUnknown {
		s.state = StateResolving
	}
	s.loading = true
	s.gen++
	return s.gen
}

// BeginCall marks a login/register call in flight. The session state itself
// is untouched until the call commits; only the loading flag toggles.
func (s *Store) BeginCall() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = true
	s.gen++
	return s.gen
}

// SetAuthenticated commits a confirmed identity. Returns false if a newer
// event superseded this call, in which case nothing changes.
func (s *Store) SetAuthenticated(gen uint64, token string, user *Identity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen || token == "" || user == nil {
		return false
	}

	s.state = StateAuthenticated
	s.loading = false
	s.token = token
	s.user = user

	if err := s.tokens.Save(token); err != nil {
		s.log.Warn().Err(err).Msg("Failed to persist session token")
	}
	return true
}

// SetUnauthenticated commits a failed or empty resolution. Returns false if
// a newer event superseded this call.
func (s *Store) SetUnauthenticated(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return false
	}
	s.clearLocked()
	return true
}

// EndCall clears the loading flag without touching session state, for calls
// that failed but must not disturb an existing session.
func (s *Store) EndCall(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return false
	}
	s.loading = false
	return true
}

// ForceUnauthenticated is logout: unconditional, synchronous, no network.
// It bumps the generation so any in-flight call loses the commit race.
func (s *Store) ForceUnauthenticated() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.clearLocked()
}

func (s *Store) clearLocked() {
	s.state = StateUnauthenticated
	s.loading = false
	s.token = ""
	s.user = nil

	if err := s.tokens.Delete(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to delete persisted session token")
	}
}
