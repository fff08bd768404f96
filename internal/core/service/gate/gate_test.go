package gate

import (
	"testing"

	"github.com/sharestay/sharestay-client/internal/core/domain"
)

func authenticated(roles ...domain.Role) domain.SessionSnapshot {
	return domain.SessionSnapshot{
		Phase: domain.SessionAuthenticated,
		User:  &domain.User{ID: 1, Username: "a@b.com", Roles: roles},
	}
}

func TestDecide_ResolvingNeverRenders(t *testing.T) {
	snap := domain.SessionSnapshot{Phase: domain.SessionResolving}

	for _, required := range [][]domain.Role{
		nil,
		{},
		{domain.RoleAdmin},
		{domain.RoleGuest, domain.RoleHost, domain.RoleAdmin},
	} {
		d := Decide(snap, required)
		if d.Outcome != ShowLoading {
			t.Fatalf("resolving with required=%v: expected loading, got %s", required, d.Outcome)
		}
		if d.RedirectTo != "" {
			t.Fatalf("resolving must not redirect, got %q", d.RedirectTo)
		}
	}
}

func TestDecide_AnonymousAlwaysRedirectsToLogin(t *testing.T) {
	snap := domain.SessionSnapshot{Phase: domain.SessionAnonymous}

	for _, required := range [][]domain.Role{nil, {}, {domain.RoleHost}} {
		d := Decide(snap, required)
		if d.Outcome != RedirectLogin || d.RedirectTo != "/login" {
			t.Fatalf("anonymous with required=%v: expected login redirect, got %+v", required, d)
		}
		if !d.ReplaceHistory {
			t.Fatalf("login redirect must replace history")
		}
	}
}

func TestDecide_DisjointRolesRedirectHome(t *testing.T) {
	d := Decide(authenticated(domain.RoleGuest), []domain.Role{domain.RoleHost, domain.RoleAdmin})
	if d.Outcome != RedirectHome || d.RedirectTo != "/" {
		t.Fatalf("expected home redirect, got %+v", d)
	}
	if !d.ReplaceHistory {
		t.Fatalf("home redirect must replace history")
	}
}

func TestDecide_IntersectingRolesRender(t *testing.T) {
	d := Decide(authenticated(domain.RoleGuest, domain.RoleHost), []domain.Role{domain.RoleHost})
	if d.Outcome != Render {
		t.Fatalf("expected render, got %s", d.Outcome)
	}
}

// An empty-but-present required set means "no restriction"; it must not fall
// into the empty-intersection branch.
func TestDecide_EmptyRequiredSetIsNoRestriction(t *testing.T) {
	d := Decide(authenticated(domain.RoleGuest), []domain.Role{})
	if d.Outcome != Render {
		t.Fatalf("empty required set: expected render, got %s", d.Outcome)
	}

	d = Decide(authenticated(domain.RoleGuest), nil)
	if d.Outcome != Render {
		t.Fatalf("absent required set: expected render, got %s", d.Outcome)
	}
}

func TestDecide_SingularRoleFallback(t *testing.T) {
	snap := domain.SessionSnapshot{
		Phase: domain.SessionAuthenticated,
		User:  &domain.User{ID: 2, Username: "host@b.com", Role: domain.RoleHost},
	}
	d := Decide(snap, []domain.Role{domain.RoleHost, domain.RoleAdmin})
	if d.Outcome != Render {
		t.Fatalf("singular role fallback: expected render, got %s", d.Outcome)
	}
}
