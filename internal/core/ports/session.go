package ports

import (
	"context"

	"github.com/sharestay/sharestay-client/internal/core/domain"
)

// SessionService owns the process-wide authentication state.
type SessionService interface {
	// Snapshot returns the current session view.
	Snapshot() domain.SessionSnapshot
	// Subscribe registers a callback invoked after every state
	// transition. Returns an unsubscribe function.
	Subscribe(fn func(domain.SessionSnapshot)) func()

	// Resolve performs the one-shot initial resolution.
	Resolve(ctx context.Context) domain.SessionSnapshot
	Login(ctx context.Context, username, password string) (*domain.User, error)
	// LoginWithOAuth finishes the third-party redirect flow with the
	// captured code. On failure the session remains anonymous.
	LoginWithOAuth(ctx context.Context, code string) (*domain.User, error)
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	Logout(ctx context.Context)
	UpdateProfile(ctx context.Context, in ProfileUpdateInput) (*domain.User, error)
	RefreshProfile(ctx context.Context) (*domain.User, error)
}
