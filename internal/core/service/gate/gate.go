// Package gate decides whether a protected view may render for the current
// session, mirroring the role checks the backend enforces.
package gate

import "github.com/sharestay/sharestay-client/internal/core/domain"

// Outcome is the gate's verdict for one navigation attempt.
type Outcome string

const (
	// ShowLoading: the session is still resolving; render a neutral
	// indicator, neither the protected content nor a redirect.
	ShowLoading Outcome = "loading"
	// RedirectLogin: unauthenticated navigation; send to the login view.
	RedirectLogin Outcome = "redirect_login"
	// RedirectHome: authenticated but under-privileged; send home.
	RedirectHome Outcome = "redirect_home"
	// Render: the protected content may be shown.
	Render Outcome = "render"
)

// Decision carries the outcome and, for redirects, the target path. Redirects
// replace history so the back button cannot loop into the gate.
type Decision struct {
	Outcome        Outcome
	RedirectTo     string
	ReplaceHistory bool
}

const (
	loginPath = "/login"
	homePath  = "/"
)

// Decide evaluates the gate for a session snapshot and a required-role set.
// An empty required set means no restriction beyond being authenticated.
func Decide(snap domain.SessionSnapshot, required []domain.Role) Decision {
	if snap.Phase == domain.SessionResolving {
		return Decision{Outcome: ShowLoading}
	}
	if snap.User == nil {
		return Decision{Outcome: RedirectLogin, RedirectTo: loginPath, ReplaceHistory: true}
	}
	if len(required) > 0 && !domain.RolesIntersect(snap.Roles(), required) {
		return Decision{Outcome: RedirectHome, RedirectTo: homePath, ReplaceHistory: true}
	}
	return Decision{Outcome: Render}
}
