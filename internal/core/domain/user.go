package domain

// Role governs which actions and navigation a user may access.
type Role string

const (
	RoleGuest Role = "GUEST"
	RoleHost  Role = "HOST"
	RoleAdmin Role = "ADMIN"
)

// User is the identity and profile projection returned by the backend.
// Username doubles as the login identifier (typically an email address).
type User struct {
	ID               int64  `json:"id"`
	Username         string `json:"username"`
	Nickname         string `json:"nickname,omitempty"`
	Email            string `json:"email,omitempty"`
	Role             Role   `json:"role,omitempty"`
	Roles            []Role `json:"roles,omitempty"`
	Address          string `json:"address,omitempty"`
	PhoneNumber      string `json:"phoneNumber,omitempty"`
	LifeStyle        string `json:"lifeStyle,omitempty"`
	SignupDate       string `json:"signupDate,omitempty"`
	HostIntroduction string `json:"hostIntroduction,omitempty"`
	HostTermsAgreed  bool   `json:"hostTermsAgreed,omitempty"`
}

// NormalizedRoles computes the canonical role set for a user: the plural
// Roles field is authoritative when non-empty; otherwise the singular Role
// (when present) is treated as a one-element set. Callers ingesting a user
// from the backend should call Normalize once and rely on Roles thereafter.
func (u *User) NormalizedRoles() []Role {
	if len(u.Roles) > 0 {
		return u.Roles
	}
	if u.Role != "" {
		return []Role{u.Role}
	}
	return nil
}

// Normalize rewrites Roles with the canonical set so that consumers never
// re-derive it ad hoc.
func (u *User) Normalize() {
	u.Roles = u.NormalizedRoles()
}

// HasAnyRole reports whether the user's role set intersects required.
func (u *User) HasAnyRole(required ...Role) bool {
	return RolesIntersect(u.NormalizedRoles(), required)
}

// DisplayName returns the label shown for the user: nickname, then email,
// then username.
func (u *User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	if u.Email != "" {
		return u.Email
	}
	return u.Username
}

// RolesIntersect reports whether the two role sets share at least one role.
func RolesIntersect(have, want []Role) bool {
	if len(have) == 0 || len(want) == 0 {
		return false
	}
	set := make(map[Role]struct{}, len(have))
	for _, r := range have {
		set[r] = struct{}{}
	}
	for _, r := range want {
		if _, ok := set[r]; ok {
			return true
		}
	}
	return false
}
