package session

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devhive-app/devhive/internal/client/credstore"
)

func kevin() *Identity {
	return &Identity{ID: "u1", Name: "Kevin", Email: "k@x.com"}
}

func TestInitialState(t *testing.T) {
	s := New(credstore.NewMemory(), zerolog.Nop())

	snap := s.Snapshot()
	assert.Equal(t, StateUnknown, snap.State)
	assert.False(t, snap.Loading)
	assert.False(t, snap.Known(), "guard must be able to tell 'not yet known' from 'known false'")
}

func TestResolutionToAuthenticated(t *testing.T) {
	tokens := credstore.NewMemory()
	s := New(tokens, zerolog.Nop())

	gen := s.BeginResolving()
	assert.Equal(t, StateResolving, s.Snapshot().State)
	assert.True(t, s.Snapshot().Loading)

	require.True(t, s.SetAuthenticated(gen, "tok-1", kevin()))

	snap := s.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.False(t, snap.Loading)
	assert.Equal(t, "tok-1", snap.Token)
	require.NotNil(t, snap.User)
	assert.Equal(t, "Kevin", snap.User.Name)

	// Token is durable the moment the state is set
	stored, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", stored)
}

func TestResolutionToUnauthenticated(t *testing.T) {
	tokens := credstore.NewMemoryWith("stale-token")
	s := New(tokens, zerolog.Nop())

	gen := s.BeginResolving()
	require.True(t, s.SetUnauthenticated(gen))

	snap := s.Snapshot()
	assert.Equal(t, StateUnauthenticated, snap.State)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Token)
	assert.Nil(t, snap.User)

	// The durable token is erased with the transition
	_, err := tokens.Load()
	assert.ErrorIs(t, err, credstore.ErrNoToken)
}

func TestAuthenticatedImpliesTokenAndUser(t *testing.T) {
	s := New(credstore.NewMemory(), zerolog.Nop())

	gen := s.BeginResolving()
	assert.False(t, s.SetAuthenticated(gen, "", kevin()), "empty token must not commit")
	assert.False(t, s.SetAuthenticated(gen, "tok", nil), "missing user must not commit")
	assert.NotEqual(t, StateAuthenticated, s.Snapshot().State)
}

func TestLoginReplacesSession(t *testing.T) {
	tokens := credstore.NewMemory()
	s := New(tokens, zerolog.Nop())

	gen := s.BeginResolving()
	require.True(t, s.SetAuthenticated(gen, "tok-1", kevin()))

	// A later login elsewhere replaces token and user
	gen = s.BeginCall()
	require.True(t, s.SetAuthenticated(gen, "tok-2", &Identity{ID: "u1", Name: "Kevin", Email: "k@x.com"}))

	assert.Equal(t, "tok-2", s.Snapshot().Token)
	stored, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", stored)
}

func TestEndCallKeepsExistingSession(t *testing.T) {
	s := New(credstore.NewMemory(), zerolog.Nop())

	gen := s.BeginResolving()
	require.True(t, s.SetAuthenticated(gen, "tok-1", kevin()))

	// A failed login toggles loading but leaves the session alone
	gen = s.BeginCall()
	assert.True(t, s.Snapshot().Loading)
	require.True(t, s.EndCall(gen))

	snap := s.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.Equal(t, "tok-1", snap.Token)
}

func TestLogoutBeatsStaleResolution(t *testing.T) {
	tokens := credstore.NewMemoryWith("old-token")
	s := New(tokens, zerolog.Nop())

	// Startup resolution goes out...
	gen := s.BeginResolving()

	// ...the user logs out while it is in flight...
	s.ForceUnauthenticated()
	assert.Equal(t, StateUnauthenticated, s.Snapshot().State)

	// ...and the stale response must lose the commit race
	assert.False(t, s.SetAuthenticated(gen, "old-token", kevin()))
	snap := s.Snapshot()
	assert.Equal(t, StateUnauthenticated, snap.State)
	assert.Empty(t, snap.Token)

	_, err := tokens.Load()
	assert.ErrorIs(t, err, credstore.ErrNoToken)
}

func TestDoubleSubmitSerializes(t *testing.T) {
	s := New(credstore.NewMemory(), zerolog.Nop())

	genA := s.BeginCall()
	genB := s.BeginCall()

	// The older call lost; the newer one wins
	assert.False(t, s.SetAuthenticated(genA, "tok-a", kevin()))
	assert.True(t, s.SetAuthenticated(genB, "tok-b", kevin()))
	assert.Equal(t, "tok-b", s.Snapshot().Token)
}

func TestPersistedToken(t *testing.T) {
	s := New(credstore.NewMemoryWith("tok-1"), zerolog.Nop())

	token, err := s.PersistedToken()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	s2 := New(credstore.NewMemory(), zerolog.Nop())
	token, err = s2.PersistedToken()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestDurableTokenIffAuthenticated(t *testing.T) {
	tokens := credstore.NewMemory()
	s := New(tokens, zerolog.Nop())

	gen := s.BeginResolving()
	require.True(t, s.SetAuthenticated(gen, "tok-1", kevin()))
	_, err := tokens.Load()
	assert.NoError(t, err)

	s.ForceUnauthenticated()
	_, err = tokens.Load()
	assert.ErrorIs(t, err, credstore.ErrNoToken)

	gen = s.BeginCall()
	require.True(t, s.SetAuthenticated(gen, "tok-2", kevin()))
	_, err = tokens.Load()
	assert.NoError(t, err)
}
