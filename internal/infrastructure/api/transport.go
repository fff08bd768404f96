package api

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharestay/sharestay-client/internal/api/metrics"
	"github.com/sharestay/sharestay-client/internal/core/ports"
)

const maxBodyBytes = 4 << 20

const suspendedDefaultMessage = "Your account is suspended. Please contact an administrator."

// authTransport decorates every outbound request with the stored bearer
// token and intercepts authorization failures.
//
// On 401 (outside the login endpoint) and 403 it raises a blocking notice
// through the notifier exactly once per failed request, then hands the
// response back untouched. What a 401 means for session state is the session
// service's decision, not the transport's.
type authTransport struct {
	next     http.RoundTripper
	store    ports.TokenStore
	notifier ports.Notifier
	log      zerolog.Logger
}

func newAuthTransport(next http.RoundTripper, store ports.TokenStore, notifier ports.Notifier, log zerolog.Logger) *authTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &authTransport{next: next, store: store, notifier: notifier, log: log}
}

// RoundTrip reads the token synchronously from the store at request time, so
// a token written just before a call is guaranteed to be attached to it.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	credentialed := len(req.Cookies()) > 0
	if token, ok := t.store.AccessToken(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
		credentialed = true
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	metrics.RequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(req.Method, "error").Inc()
		return nil, err
	}
	metrics.RequestsTotal.WithLabelValues(req.Method, metrics.StatusClass(resp.StatusCode)).Inc()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		// A 401 is only a session event when the request carried a
		// credential that the server rejected. Anonymous probes and failed
		// logins are the caller's business.
		if credentialed && !strings.HasSuffix(req.URL.Path, loginPath) {
			t.raise(ports.Notice{
				Kind:    ports.NoticeSessionExpired,
				Message: "Your session has expired or you are not authorized. Please sign in again.",
			})
		}
	case http.StatusForbidden:
		msg := t.peekMessage(resp)
		if msg == "" {
			msg = suspendedDefaultMessage
		}
		t.raise(ports.Notice{Kind: ports.NoticeAccountSuspended, Message: msg})
	}

	return resp, nil
}

func (t *authTransport) raise(n ports.Notice) {
	metrics.AuthNoticesTotal.WithLabelValues(string(n.Kind)).Inc()
	t.log.Warn().Str("kind", string(n.Kind)).Msg("auth notice raised")
	if t.notifier != nil {
		t.notifier.Notify(n)
	}
}

// peekMessage extracts the server-supplied message from an error body and
// restores the body so downstream decoding still sees it.
func (t *authTransport) peekMessage(resp *http.Response) string {
	if resp.Body == nil {
		return ""
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	return serverMessage(data)
}
