package commands

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/devhive-app/devhive/internal/client/alerts"
	"github.com/devhive-app/devhive/internal/client/api"
	"github.com/devhive-app/devhive/internal/client/authflow"
	"github.com/devhive-app/devhive/internal/client/credstore"
	"github.com/devhive-app/devhive/internal/client/session"
	"github.com/devhive-app/devhive/internal/client/userconfig"
)

// tokenStore is the durable token storage; swapped for an in-memory
// implementation in tests
var tokenStore credstore.TokenStore = credstore.NewKeyring()

// app wires the client pieces together: one session store, one orchestrator,
// one alert channel per invocation.
type app struct {
	flow    *authflow.Flow
	session *session.Store
	alerts  *alerts.Channel
}

// newApp builds the client against the configured server.
// serverURL overrides the user config when non-empty.
func newApp(serverURL string) (*app, error) {
	if serverURL == "" {
		cfg, err := userconfig.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		serverURL = cfg.ServerURL
	}

	sess := session.New(tokenStore, zerolog.Nop())
	ch := alerts.NewChannel()

	return &app{
		flow:    authflow.New(api.New(serverURL), sess, ch, zerolog.Nop()),
		session: sess,
		alerts:  ch,
	}, nil
}

// flushAlerts prints and dismisses pending alerts
func (a *app) flushAlerts(w io.Writer) {
	for _, al := range a.alerts.Snapshot() {
		fmt.Fprintf(w, "[%s] %s\n", al.Severity, al.Message)
		a.alerts.Dismiss(al.ID)
	}
}
