// Package authflow drives the session store: it owns the identity calls and
// translates their outcomes into session transitions and alerts.
package authflow

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/devhive-app/devhive/internal/client/alerts"
	"github.com/devhive-app/devhive/internal/client/api"
	"github.com/devhive-app/devhive/internal/client/session"
)

const networkErrorMessage = "Unable to reach DevHive, please try again later"

// Flow orchestrates session transitions
type Flow struct {
	api     *api.Client
	session *session.Store
	alerts  *alerts.Channel
	log     zerolog.Logger
}

// New creates an auth orchestrator
func New(apiClient *api.Client, sess *session.Store, ch *alerts.Channel, log zerolog.Logger) *Flow {
	return &Flow{
		api:     apiClient,
		session: sess,
		alerts:  ch,
		log:     log,
	}
}

// Session exposes the store for guard checks and display
func (f *Flow) Session() *session.Store {
	return f.session
}

// ResolveSession turns a persisted token into a confirmed identity. Called
// once per application start. With no persisted token it skips the network
// round-trip but still toggles loading, so the route guard sees a uniform
// lifecycle either way.
func (f *Flow) ResolveSession(ctx context.Context) session.Snapshot {
	token, err := f.session.PersistedToken()
	if err != nil {
		f.log.Warn().Err(err).Msg("Failed to read persisted token")
	}

	gen := f.session.BeginResolving()

	if token == "" {
		f.session.SetUnauthenticated(gen)
		return f.session.Snapshot()
	}

	user, err := f.api.Me(ctx, token)
	if err != nil {
		// Expired or revoked token, or the server is unreachable: either
		// way the user lands on the guest view, never an indeterminate one
		f.notifyFailure(err)
		f.session.SetUnauthenticated(gen)
		return f.session.Snapshot()
	}

	f.session.SetAuthenticated(gen, token, toSessionIdentity(user))
	return f.session.Snapshot()
}

// Login verifies credentials and commits the new session. All-or-nothing: a
// failed login never partially mutates state, and it leaves an existing
// authenticated session untouched.
func (f *Flow) Login(ctx context.Context, email, password string) error {
	gen := f.session.BeginCall()

	token, err := f.api.Login(ctx, email, password)
	var user *api.Identity
	if err == nil {
		// The token is opaque to the client; the identity behind it comes
		// from the server, never from decoding the token
		user, err = f.api.Me(ctx, token)
	}
	if err != nil {
		f.notifyFailure(err)
		f.rollback(gen)
		return err
	}

	f.session.SetAuthenticated(gen, token, toSessionIdentity(user))
	return nil
}

// Register creates an account and commits the new session, same shape as Login
func (f *Flow) Register(ctx context.Context, name, email, password string) error {
	gen := f.session.BeginCall()

	token, err := f.api.Register(ctx, name, email, password)
	var user *api.Identity
	if err == nil {
		user, err = f.api.Me(ctx, token)
	}
	if err != nil {
		f.notifyFailure(err)
		f.rollback(gen)
		return err
	}

	f.session.SetAuthenticated(gen, token, toSessionIdentity(user))
	return nil
}

// Logout clears the session unconditionally. Purely a client action: the
// token has no server-side revocation list, so there is no round-trip.
func (f *Flow) Logout() {
	f.session.ForceUnauthenticated()
}

// rollback ends a failed call without disturbing a session the call did not
// establish. An authenticated session stays; anything else settles to
// Unauthenticated.
func (f *Flow) rollback(gen uint64) {
	if f.session.Snapshot().State == session.StateAuthenticated {
		f.session.EndCall(gen)
	} else {
		f.session.SetUnauthenticated(gen)
	}
}

// notifyFailure surfaces a failed call as alerts: one per validation message,
// otherwise exactly one for the whole failure.
func (f *Flow) notifyFailure(err error) {
	var verr *api.ValidationError
	if errors.As(err, &verr) {
		for _, msg := range verr.Messages {
			f.alerts.Danger(msg)
		}
		return
	}

	var aerr *api.AuthError
	if errors.As(err, &aerr) {
		f.alerts.Danger(aerr.Msg)
		return
	}

	f.log.Warn().Err(err).Msg("Identity call failed")
	f.alerts.Danger(networkErrorMessage)
}

func toSessionIdentity(u *api.Identity) *session.Identity {
	return &session.Identity{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
	}
}
