package domain

// SessionPhase is the lifecycle state of the client session.
type SessionPhase string

const (
	// SessionResolving is the initial phase: a stored token or cookie
	// session is being validated against the backend.
	SessionResolving SessionPhase = "resolving"
	// SessionAuthenticated means a user profile has been resolved.
	SessionAuthenticated SessionPhase = "authenticated"
	// SessionAnonymous means no valid credential is held.
	SessionAnonymous SessionPhase = "anonymous"
)

// SessionSnapshot is an immutable view of the session handed to consumers.
// User is nil unless Phase is SessionAuthenticated.
type SessionSnapshot struct {
	Phase SessionPhase
	User  *User
}

// IsLoading reports whether the initial resolution is still in flight.
func (s SessionSnapshot) IsLoading() bool {
	return s.Phase == SessionResolving
}

// Roles returns the current canonical role set, empty when unauthenticated.
func (s SessionSnapshot) Roles() []Role {
	if s.User == nil {
		return nil
	}
	return s.User.NormalizedRoles()
}
