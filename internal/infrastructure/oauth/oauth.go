// Package oauth implements the third-party login redirect flow the way a
// native client does it: send the browser to the provider's authorization
// URL and capture the code query parameter on a loopback listener when the
// provider redirects back. The code exchange itself happens server-side; the
// client's follow-up is fetching the profile through the cookie session.
package oauth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const callbackPath = "/oauth/callback"
const shutdownGrace = 2 * time.Second

var ErrStateMismatch = errors.New("oauth: state parameter mismatch")
var ErrProviderDenied = errors.New("oauth: provider denied the request")

// Flow drives one authorization round trip.
type Flow struct {
	authorizationURL string
	callbackAddr     string
	log              zerolog.Logger
}

// New creates a Flow. authorizationURL is the provider endpoint the browser
// is sent to; callbackAddr is the loopback address the provider redirects
// back to.
func New(authorizationURL, callbackAddr string, log zerolog.Logger) *Flow {
	return &Flow{authorizationURL: authorizationURL, callbackAddr: callbackAddr, log: log}
}

// NewState returns a fresh random state parameter.
func NewState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("oauth: generate state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// AuthorizationURL returns the URL to open in the browser, with the loopback
// redirect target and state attached.
func (f *Flow) AuthorizationURL(state string) (string, error) {
	u, err := url.Parse(f.authorizationURL)
	if err != nil {
		return "", fmt.Errorf("oauth: parse authorization url: %w", err)
	}
	q := u.Query()
	q.Set("redirect_uri", "http://"+f.callbackAddr+callbackPath)
	if state != "" {
		q.Set("state", state)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// WaitForCode serves the loopback listener until the provider redirects back
// with a code, the provider reports an error, or ctx expires. When state is
// non-empty the redirect must echo it.
func (f *Flow) WaitForCode(ctx context.Context, state string) (string, error) {
	type outcome struct {
		code string
		err  error
	}
	results := make(chan outcome, 1)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.GET(callbackPath, func(c echo.Context) error {
		if msg := c.QueryParam("error"); msg != "" {
			results <- outcome{err: fmt.Errorf("%w: %s", ErrProviderDenied, msg)}
			return c.HTML(http.StatusBadRequest, "<h3>Sign-in failed. You can close this window.</h3>")
		}
		if state != "" && c.QueryParam("state") != state {
			results <- outcome{err: ErrStateMismatch}
			return c.HTML(http.StatusBadRequest, "<h3>Sign-in failed. You can close this window.</h3>")
		}
		code := c.QueryParam("code")
		if code == "" {
			results <- outcome{err: errors.New("oauth: redirect carried no code")}
			return c.HTML(http.StatusBadRequest, "<h3>Sign-in failed. You can close this window.</h3>")
		}
		results <- outcome{code: code}
		return c.HTML(http.StatusOK, "<h3>Signed in. You can close this window.</h3>")
	})

	ln, err := net.Listen("tcp", f.callbackAddr)
	if err != nil {
		return "", fmt.Errorf("oauth: listen on %s: %w", f.callbackAddr, err)
	}
	e.Listener = ln

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- e.Start("")
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			f.log.Debug().Err(err).Msg("oauth: callback listener shutdown")
		}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-serveErr:
		return "", fmt.Errorf("oauth: callback listener: %w", err)
	case res := <-results:
		return res.code, res.err
	}
}

// Addr returns the loopback address the flow listens on.
func (f *Flow) Addr() string { return f.callbackAddr }
