// Package session owns the process-wide authentication state: the current
// user, the initial-resolution flag, and the login/signup/logout/update/
// refresh operations that mutate them.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sharestay/sharestay-client/internal/api/metrics"
	"github.com/sharestay/sharestay-client/internal/core/domain"
	"github.com/sharestay/sharestay-client/internal/core/ports"
	"github.com/sharestay/sharestay-client/internal/pkg/validate"
)

// Service is the single owner of session state. It is the only component
// allowed to write the token store.
//
// Every state-mutating operation captures a generation counter when it
// starts; a completion whose generation has been superseded by a newer
// mutation is discarded, so a logout fired during an in-flight login wins.
type Service struct {
	store ports.TokenStore
	auth  ports.AuthAPI
	log   zerolog.Logger

	mu       sync.Mutex
	phase    domain.SessionPhase
	user     *domain.User
	gen      uint64
	resolved bool

	subMu   sync.Mutex
	subs    map[int]func(domain.SessionSnapshot)
	nextSub int
}

var _ ports.SessionService = (*Service)(nil)

// New creates a Service in the resolving phase. Call Resolve once at
// application start.
func New(store ports.TokenStore, auth ports.AuthAPI, log zerolog.Logger) *Service {
	metrics.SessionTransitionsTotal.WithLabelValues(string(domain.SessionResolving)).Inc()
	return &Service{
		store: store,
		auth:  auth,
		log:   log,
		phase: domain.SessionResolving,
		subs:  make(map[int]func(domain.SessionSnapshot)),
	}
}

// Snapshot returns the current session view. The user record is copied so
// callers cannot mutate shared state.
func (s *Service) Snapshot() domain.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.SessionSnapshot{Phase: s.phase, User: cloneUser(s.user)}
}

// Subscribe registers a callback invoked after every state transition.
// The returned function removes the subscription.
func (s *Service) Subscribe(fn func(domain.SessionSnapshot)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// Resolve performs the one-shot initial resolution: validate any stored
// token or cookie session by fetching the current user's profile. It runs at
// most once per Service lifetime; later calls return the current snapshot.
func (s *Service) Resolve(ctx context.Context) domain.SessionSnapshot {
	s.mu.Lock()
	if s.resolved {
		snap := domain.SessionSnapshot{Phase: s.phase, User: cloneUser(s.user)}
		s.mu.Unlock()
		return snap
	}
	s.resolved = true
	gen := s.bumpLocked()
	s.mu.Unlock()

	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		// Any failure here, 401 included, means the credential is not
		// usable: drop it and settle as anonymous.
		s.log.Debug().Err(err).Msg("session: initial resolution failed")
		s.commit(gen, func() {
			s.store.ClearAll()
			s.setPhaseLocked(domain.SessionAnonymous, nil)
		})
		return s.Snapshot()
	}

	s.commit(gen, func() {
		s.setPhaseLocked(domain.SessionAuthenticated, user)
	})
	return s.Snapshot()
}

// Login exchanges credentials for a token, stores it, and resolves the user
// profile. On any failure the session state is unchanged and the error
// propagates to the caller for form-level handling.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, error) {
	gen := s.bump()

	token, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	// The token write must precede the profile fetch: the transport reads
	// the store synchronously at request-construction time.
	if !s.commit(gen, func() {
		s.store.SetAccessToken(token)
		s.store.SetStoredUsername(username)
	}) {
		return nil, domain.ErrNotAuthenticated
	}

	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		s.commit(gen, func() {
			s.store.ClearAll()
		})
		return nil, err
	}

	s.commit(gen, func() {
		s.setPhaseLocked(domain.SessionAuthenticated, user)
	})
	s.log.Info().Str("username", username).Msg("session: login succeeded")
	return cloneUser(user), nil
}

// LoginWithOAuth finishes the third-party redirect flow: the captured code
// is exchanged server-side for a cookie session, then the profile is fetched
// through that session. On any failure the session remains anonymous and the
// error propagates.
func (s *Service) LoginWithOAuth(ctx context.Context, code string) (*domain.User, error) {
	gen := s.bump()

	if err := s.auth.CompleteOAuth(ctx, code); err != nil {
		return nil, err
	}

	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	if !s.commit(gen, func() {
		s.store.SetStoredUsername(user.Username)
		s.setPhaseLocked(domain.SessionAuthenticated, user)
	}) {
		return nil, domain.ErrNotAuthenticated
	}
	s.log.Info().Str("username", user.Username).Msg("session: oauth login succeeded")
	return cloneUser(user), nil
}

// Signup registers a new account after client-side validation. It never
// authenticates; on success the caller is expected to redirect to login.
func (s *Service) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	return s.auth.Signup(ctx, in)
}

// Logout clears the stored credential, best-effort invalidates any cookie
// session, and settles as anonymous regardless of prior state.
func (s *Service) Logout(ctx context.Context) {
	s.mu.Lock()
	s.bumpLocked()
	s.store.ClearAll()
	s.setPhaseLocked(domain.SessionAnonymous, nil)
	snap := domain.SessionSnapshot{Phase: s.phase}
	s.mu.Unlock()

	s.emit(snap)

	if err := s.auth.Logout(ctx); err != nil {
		s.log.Debug().Err(err).Msg("session: backend logout failed")
	}
}

// UpdateProfile applies a partial update for the current user and merges the
// result into the in-memory record without a full refetch.
func (s *Service) UpdateProfile(ctx context.Context, in ports.ProfileUpdateInput) (*domain.User, error) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil, domain.ErrNotAuthenticated
	}
	username := s.user.Username
	gen := s.bumpLocked()
	s.mu.Unlock()

	updated, err := s.auth.UpdateProfile(ctx, username, in)
	if err != nil {
		return nil, err
	}

	var result *domain.User
	s.commit(gen, func() {
		if s.user == nil {
			return
		}
		merged := *s.user
		if updated != nil {
			merged = *updated
		} else {
			applyUpdate(&merged, in)
		}
		merged.Normalize()
		s.setPhaseLocked(domain.SessionAuthenticated, &merged)
		result = cloneUser(&merged)
	})
	if result == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return result, nil
}

// RefreshProfile refetches the current user's profile and replaces the
// in-memory record. Used after side-channel mutations such as a lifestyle
// selection. A no-op when anonymous. A 401 at any point is treated as an
// authentication-expired signal: credentials are cleared and the session
// settles as anonymous.
func (s *Service) RefreshProfile(ctx context.Context) (*domain.User, error) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil, nil
	}
	gen := s.bumpLocked()
	s.mu.Unlock()

	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			s.commit(gen, func() {
				s.store.ClearAll()
				s.setPhaseLocked(domain.SessionAnonymous, nil)
			})
		}
		return nil, err
	}

	s.commit(gen, func() {
		s.setPhaseLocked(domain.SessionAuthenticated, user)
	})
	return cloneUser(user), nil
}

// bump starts a new mutation generation.
func (s *Service) bump() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bumpLocked()
}

func (s *Service) bumpLocked() uint64 {
	s.gen++
	return s.gen
}

// commit runs fn under the lock iff gen is still the newest mutation.
// Reports whether fn ran.
func (s *Service) commit(gen uint64, fn func()) bool {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		s.log.Debug().Uint64("gen", gen).Msg("session: stale completion discarded")
		return false
	}
	fn()
	snap := domain.SessionSnapshot{Phase: s.phase, User: cloneUser(s.user)}
	s.mu.Unlock()

	s.emit(snap)
	return true
}

// setPhaseLocked transitions the state machine. Caller holds s.mu.
func (s *Service) setPhaseLocked(phase domain.SessionPhase, user *domain.User) {
	if user != nil {
		user.Normalize()
	}
	if s.phase != phase {
		metrics.SessionTransitionsTotal.WithLabelValues(string(phase)).Inc()
	}
	s.phase = phase
	s.user = user
}

func (s *Service) emit(snap domain.SessionSnapshot) {
	s.subMu.Lock()
	fns := make([]func(domain.SessionSnapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.Roles != nil {
		clone.Roles = append([]domain.Role(nil), u.Roles...)
	}
	return &clone
}

// applyUpdate merges the set fields of a partial update into a user record.
func applyUpdate(u *domain.User, in ports.ProfileUpdateInput) {
	if in.Nickname != nil {
		u.Nickname = *in.Nickname
	}
	if in.Address != nil {
		u.Address = *in.Address
	}
	if in.PhoneNumber != nil {
		u.PhoneNumber = *in.PhoneNumber
	}
	if in.LifeStyle != nil {
		u.LifeStyle = *in.LifeStyle
	}
	if in.HostIntroduction != nil {
		u.HostIntroduction = *in.HostIntroduction
	}
}
