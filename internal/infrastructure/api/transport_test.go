package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sharestay/sharestay-client/internal/core/domain"
	"github.com/sharestay/sharestay-client/internal/core/ports"
	"github.com/sharestay/sharestay-client/internal/tokenstore"
)

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

func newTestClient(t *testing.T, handler http.Handler) (*Client, *tokenstore.Memory, *noticeRecorder, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := tokenstore.New()
	rec := &noticeRecorder{}
	client, err := New(Config{BaseURL: srv.URL}, store, rec, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client, store, rec, srv
}

func TestTransport_AttachesBearerWhenTokenStored(t *testing.T) {
	var gotAuth string
	client, store, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"username":"a@b.com"}`))
	}))

	store.SetAccessToken("tok-123")
	if _, err := client.CurrentUser(context.Background()); err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected Bearer tok-123, got %q", gotAuth)
	}
}

func TestTransport_NoHeaderWithoutToken(t *testing.T) {
	var sawHeader bool
	client, _, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"username":"a@b.com"}`))
	}))

	if _, err := client.CurrentUser(context.Background()); err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if sawHeader {
		t.Fatalf("request without stored token must carry no Authorization header")
	}
}

func TestTransport_401RaisesNoticeOncePerRequest(t *testing.T) {
	client, store, rec, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
	}))

	store.SetAccessToken("expired-token")
	_, err := client.CurrentUser(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	notices := rec.all()
	if len(notices) != 1 {
		t.Fatalf("expected exactly one notice, got %d", len(notices))
	}
	if notices[0].Kind != ports.NoticeSessionExpired {
		t.Fatalf("expected session_expired, got %s", notices[0].Kind)
	}
}

func TestTransport_401OnLoginPathIsSilent(t *testing.T) {
	client, _, rec, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid credentials"}`, http.StatusUnauthorized)
	}))

	_, err := client.Login(context.Background(), "a@b.com", "wrong")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if notices := rec.all(); len(notices) != 0 {
		t.Fatalf("login 401 must not raise a session notice, got %v", notices)
	}
}

func TestTransport_401WithoutCredentialIsSilent(t *testing.T) {
	client, _, rec, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
	}))

	// No token stored, no cookie session: the rejection is expected and the
	// user has no session to lose.
	if _, err := client.CurrentUser(context.Background()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if notices := rec.all(); len(notices) != 0 {
		t.Fatalf("credential-less 401 must not raise a notice, got %v", notices)
	}
}

func TestTransport_403UsesServerMessage(t *testing.T) {
	client, _, rec, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"suspended until friday"}`))
	}))

	_, err := client.CurrentUser(context.Background())
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	notices := rec.all()
	if len(notices) != 1 || notices[0].Kind != ports.NoticeAccountSuspended {
		t.Fatalf("expected one account_suspended notice, got %v", notices)
	}
	if notices[0].Message != "suspended until friday" {
		t.Fatalf("expected server message, got %q", notices[0].Message)
	}

	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "suspended until friday" {
		t.Fatalf("error must still carry the server message, got %v", err)
	}
}

func TestTransport_403DefaultMessage(t *testing.T) {
	client, _, rec, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, _ = client.CurrentUser(context.Background())

	notices := rec.all()
	if len(notices) != 1 {
		t.Fatalf("expected one notice, got %d", len(notices))
	}
	if notices[0].Message != suspendedDefaultMessage {
		t.Fatalf("expected default suspended message, got %q", notices[0].Message)
	}
}

func TestDo_ValidationErrorsPropagate(t *testing.T) {
	client, _, rec, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"nickname is required"}`))
	}))

	err := client.SetLifestyles(context.Background(), []string{"quiet"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if notices := rec.all(); len(notices) != 0 {
		t.Fatalf("4xx other than 401/403 must not raise notices, got %v", notices)
	}
}
