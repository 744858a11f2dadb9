// Package guard gates protected views on the session state.
package guard

import "github.com/devhive-app/devhive/internal/client/session"

// LoginPage is where unauthenticated users are sent
const LoginPage = "/login"

// Decision is the outcome of a guard check
type Decision int

const (
	// Pending means the session is not yet decided; render nothing decisive
	Pending Decision = iota
	// Allow means the protected view may render
	Allow
	// Redirect means the user must be sent to Target
	Redirect
)

// Result pairs a decision with its redirect target
type Result struct {
	Decision Decision
	Target   string
}

// Decide checks a session snapshot against the "authenticated" capability.
// While the session is loading or not yet resolved it returns Pending, never
// Redirect: redirecting before the startup resolution completes would bounce
// an authenticated user to the login page on every fresh load.
func Decide(snap session.Snapshot) Result {
	if snap.Loading || !snap.Known() {
		return Result{Decision: Pending}
	}
	if snap.Authenticated() {
		return Result{Decision: Allow}
	}
	return Result{Decision: Redirect, Target: LoginPage}
}
