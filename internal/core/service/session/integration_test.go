package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sharestay/sharestay-client/internal/core/domain"
	"github.com/sharestay/sharestay-client/internal/core/ports"
	"github.com/sharestay/sharestay-client/internal/core/service/session"
	"github.com/sharestay/sharestay-client/internal/infrastructure/api"
	"github.com/sharestay/sharestay-client/internal/testsupport"
	"github.com/sharestay/sharestay-client/internal/tokenstore"
)

// noticeRecorder collects transport notices for assertions.
type noticeRecorder struct {
	mu      sync.Mutex
	notices []ports.Notice
}

func (r *noticeRecorder) Notify(n ports.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *noticeRecorder) all() []ports.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.Notice(nil), r.notices...)
}

type fixture struct {
	backend  *testsupport.Backend
	store    *tokenstore.Memory
	client   *api.Client
	svc      *session.Service
	recorder *noticeRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	backend := testsupport.NewBackend()
	t.Cleanup(backend.Close)

	store := tokenstore.New()
	recorder := &noticeRecorder{}

	client, err := api.New(api.Config{
		BaseURL:      backend.Server.URL,
		AssetBaseURL: backend.Server.URL,
	}, store, recorder, zerolog.Nop())
	if err != nil {
		t.Fatalf("api.New: %v", err)
	}

	return &fixture{
		backend:  backend,
		store:    store,
		client:   client,
		svc:      session.New(store, client, zerolog.Nop()),
		recorder: recorder,
	}
}

func TestLoginFlowEndToEnd(t *testing.T) {
	f := newFixture(t)
	f.backend.AddUser(domain.User{
		Username: "guest@example.com",
		Nickname: "gwan",
		Roles:    []domain.Role{domain.RoleGuest},
	}, "secret123")

	ctx := context.Background()

	if snap := f.svc.Resolve(ctx); snap.Phase != domain.SessionAnonymous {
		t.Fatalf("no stored credential, expected anonymous, got %s", snap.Phase)
	}

	user, err := f.svc.Login(ctx, "guest@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Nickname != "gwan" || !user.HasAnyRole(domain.RoleGuest) {
		t.Fatalf("unexpected profile: %+v", user)
	}
	if token, ok := f.store.AccessToken(); !ok || token == "" {
		t.Fatalf("login must leave a bearer token in the store")
	}

	// The stored token authenticates later requests on its own.
	refreshed, err := f.svc.RefreshProfile(ctx)
	if err != nil {
		t.Fatalf("RefreshProfile: %v", err)
	}
	if refreshed.Username != "guest@example.com" {
		t.Fatalf("unexpected refreshed profile: %+v", refreshed)
	}

	// A failed login never raises a session notice.
	if _, err := f.svc.Login(ctx, "guest@example.com", "wrong-pass"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if notices := f.recorder.all(); len(notices) != 0 {
		t.Fatalf("login failures must stay out of the notice channel, got %v", notices)
	}
}

func TestStoredTokenSurvivesRestart(t *testing.T) {
	f := newFixture(t)
	f.backend.AddUser(domain.User{Username: "host@example.com", Roles: []domain.Role{domain.RoleHost}}, "secret123")

	// Simulate a process that still holds a valid token.
	f.store.SetAccessToken(f.backend.IssueToken("host@example.com"))
	f.store.SetStoredUsername("host@example.com")

	snap := f.svc.Resolve(context.Background())
	if snap.Phase != domain.SessionAuthenticated {
		t.Fatalf("valid stored token must resolve authenticated, got %s", snap.Phase)
	}
	if snap.User.Username != "host@example.com" {
		t.Fatalf("unexpected user: %+v", snap.User)
	}
}

func TestGarbageTokenResolvesAnonymousAndClears(t *testing.T) {
	f := newFixture(t)
	f.store.SetAccessToken("not-a-jwt")
	f.store.SetStoredUsername("ghost@example.com")

	snap := f.svc.Resolve(context.Background())
	if snap.Phase != domain.SessionAnonymous {
		t.Fatalf("expected anonymous, got %s", snap.Phase)
	}
	if _, ok := f.store.AccessToken(); ok {
		t.Fatalf("unusable token must be dropped")
	}

	// The rejected /me during resolution raises the expiry notice.
	notices := f.recorder.all()
	if len(notices) != 1 || notices[0].Kind != ports.NoticeSessionExpired {
		t.Fatalf("expected one session-expired notice, got %v", notices)
	}
}

func TestSuspendedAccountNotice(t *testing.T) {
	f := newFixture(t)
	f.backend.AddUser(domain.User{Username: "banned@example.com", Roles: []domain.Role{domain.RoleGuest}}, "secret123")
	f.backend.Suspend("banned@example.com", "suspended until 2026-09-30: spam listings")

	_, err := f.svc.Login(context.Background(), "banned@example.com", "secret123")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	notices := f.recorder.all()
	if len(notices) != 1 || notices[0].Kind != ports.NoticeAccountSuspended {
		t.Fatalf("expected one account-suspended notice, got %v", notices)
	}
	if notices[0].Message != "suspended until 2026-09-30: spam listings" {
		t.Fatalf("notice must carry the server's reason, got %q", notices[0].Message)
	}
	if snap := f.svc.Snapshot(); snap.Phase == domain.SessionAuthenticated {
		t.Fatalf("suspended login must not authenticate")
	}
}

func TestOAuthCookieFlow(t *testing.T) {
	f := newFixture(t)
	f.backend.AddUser(domain.User{
		Username: "social@example.com",
		Nickname: "soshi",
		Roles:    []domain.Role{domain.RoleGuest},
	}, "irrelevant")
	f.backend.GrantCode("c0de-123", "social@example.com")

	ctx := context.Background()
	f.svc.Resolve(ctx)

	user, err := f.svc.LoginWithOAuth(ctx, "c0de-123")
	if err != nil {
		t.Fatalf("LoginWithOAuth: %v", err)
	}
	if user.Username != "social@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	// No bearer token: the cookie session alone carries authentication.
	if _, ok := f.store.AccessToken(); ok {
		t.Fatalf("cookie flow must not mint a bearer token")
	}
	refreshed, err := f.svc.RefreshProfile(ctx)
	if err != nil {
		t.Fatalf("cookie-backed refresh: %v", err)
	}
	if refreshed.Nickname != "soshi" {
		t.Fatalf("unexpected profile: %+v", refreshed)
	}

	// The code is single use.
	if _, err := f.svc.LoginWithOAuth(ctx, "c0de-123"); err == nil {
		t.Fatalf("replayed code must be rejected")
	}
}

func TestProfileUpdateRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.backend.AddUser(domain.User{Username: "edit@example.com", Nickname: "old", Roles: []domain.Role{domain.RoleGuest}}, "secret123")

	ctx := context.Background()
	f.svc.Resolve(ctx)
	if _, err := f.svc.Login(ctx, "edit@example.com", "secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	nickname := "new-nick"
	updated, err := f.svc.UpdateProfile(ctx, ports.ProfileUpdateInput{Nickname: &nickname})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Nickname != "new-nick" {
		t.Fatalf("backend echo not applied: %+v", updated)
	}

	// The change is durable server-side.
	refreshed, err := f.svc.RefreshProfile(ctx)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.Nickname != "new-nick" {
		t.Fatalf("update did not persist: %+v", refreshed)
	}
}

func TestLifestyleSelectionThenRefresh(t *testing.T) {
	f := newFixture(t)
	f.backend.AddUser(domain.User{Username: "life@example.com", Roles: []domain.Role{domain.RoleGuest}}, "secret123")

	ctx := context.Background()
	f.svc.Resolve(ctx)
	if _, err := f.svc.Login(ctx, "life@example.com", "secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := f.client.SetLifestyles(ctx, []string{"NIGHT_OWL", "NON_SMOKER"}); err != nil {
		t.Fatalf("SetLifestyles: %v", err)
	}
	refreshed, err := f.svc.RefreshProfile(ctx)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.LifeStyle != "NIGHT_OWL,NON_SMOKER" {
		t.Fatalf("lifestyle not reflected after refresh: %+v", refreshed)
	}
}

func TestListRoomsMapping(t *testing.T) {
	f := newFixture(t)

	rooms, err := f.client.ListRooms(context.Background())
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}

	first := rooms[0]
	if first.Availability != domain.RoomAvailable {
		t.Fatalf("code 0 must map to available, got %s", first.Availability)
	}
	if len(first.Images) != 1 || first.Images[0].ImageURL != f.backend.Server.URL+"/uploads/r1.jpg" {
		t.Fatalf("relative image path must be resolved against the asset base, got %v", first.Images)
	}

	second := rooms[1]
	if second.Availability != domain.RoomUnavailable {
		t.Fatalf("code 1 must map to unavailable, got %s", second.Availability)
	}
	if second.ShareLinkURL != "https://share.example/r2" {
		t.Fatalf("nested share link must be flattened, got %q", second.ShareLinkURL)
	}
}

func TestSignupThenLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.svc.Resolve(ctx)

	created, err := f.svc.Signup(ctx, ports.SignupInput{
		Username:    "new@example.com",
		Password:    "secret123",
		Nickname:    "newbie",
		Address:     "Mapo-gu",
		PhoneNumber: "010-0000-0000",
		Role:        domain.RoleHost,
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("backend must assign an id, got %+v", created)
	}
	if snap := f.svc.Snapshot(); snap.Phase != domain.SessionAnonymous {
		t.Fatalf("signup must not authenticate, got %s", snap.Phase)
	}

	user, err := f.svc.Login(ctx, "new@example.com", "secret123")
	if err != nil {
		t.Fatalf("login after signup: %v", err)
	}
	if !user.HasAnyRole(domain.RoleHost) {
		t.Fatalf("role lost across signup/login: %+v", user)
	}
}
