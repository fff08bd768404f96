// Command sharestay is a terminal front end over the ShareStay client core.
// It drives the same session, room and navigation services a graphical shell
// would, which makes it both a smoke-test harness and a usage reference.
//
// Usage:
//
//	sharestay whoami
//	sharestay login -u user@example.com -p secret
//	sharestay oauth-login
//	sharestay rooms
//	sharestay nav
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/sharestay/sharestay-client/internal/core/domain"
	"github.com/sharestay/sharestay-client/internal/core/ports"
	"github.com/sharestay/sharestay-client/internal/core/service/gate"
	"github.com/sharestay/sharestay-client/internal/core/service/navigation"
	"github.com/sharestay/sharestay-client/internal/core/service/session"
	"github.com/sharestay/sharestay-client/internal/infrastructure/api"
	"github.com/sharestay/sharestay-client/internal/infrastructure/oauth"
	"github.com/sharestay/sharestay-client/internal/pkg/config"
	"github.com/sharestay/sharestay-client/internal/tokenstore"
	"github.com/sharestay/sharestay-client/pkg/logger"
)

const oauthTimeout = 3 * time.Minute

func main() {
	cfg := config.Load()
	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	log := logger.Get()

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
	}

	store := tokenstore.New()
	notifier := ports.NotifierFunc(func(n ports.Notice) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Kind, n.Message)
	})

	client, err := api.New(api.Config{
		BaseURL:      cfg.APIBaseURL,
		AssetBaseURL: cfg.AssetBaseURL,
		Timeout:      cfg.HTTPTimeout,
	}, store, notifier, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build api client")
	}

	svc := session.New(store, client, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := "whoami"
	args := os.Args[1:]
	if len(args) > 0 {
		cmd = args[0]
		args = args[1:]
	}

	snap := svc.Resolve(ctx)

	switch cmd {
	case "whoami":
		printSession(snap)
	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		username := fs.String("u", "", "username (email)")
		password := fs.String("p", "", "password")
		fs.Parse(args)
		user, err := svc.Login(ctx, *username, *password)
		if err != nil {
			log.Fatal().Err(err).Msg("login failed")
		}
		fmt.Printf("signed in as %s\n", user.DisplayName())
	case "oauth-login":
		user, err := oauthLogin(ctx, cfg, svc, log)
		if err != nil {
			log.Fatal().Err(err).Msg("oauth login failed")
		}
		fmt.Printf("signed in as %s\n", user.DisplayName())
	case "rooms":
		rooms, err := client.ListRooms(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("list rooms")
		}
		for _, r := range rooms {
			fmt.Printf("#%d\t%s\t%d KRW\t%s\t%s\n", r.ID, r.Title, r.RentPrice, r.Address, r.Availability)
		}
	case "nav":
		printNavigation(snap)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		os.Exit(2)
	}
}

// oauthLogin runs the full redirect round trip: print the authorization URL
// for the user to open, capture the code on the loopback listener, then hand
// it to the session service.
func oauthLogin(ctx context.Context, cfg *config.Config, svc ports.SessionService, log zerolog.Logger) (*domain.User, error) {
	if cfg.OAuth.AuthorizationURL == "" {
		return nil, fmt.Errorf("OAUTH_AUTHORIZATION_URL is not configured")
	}

	flow := oauth.New(cfg.OAuth.AuthorizationURL, cfg.OAuth.CallbackAddr, log)
	state, err := oauth.NewState()
	if err != nil {
		return nil, err
	}
	authURL, err := flow.AuthorizationURL(state)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Open this URL in your browser to sign in:\n\n  %s\n\n", authURL)

	waitCtx, cancel := context.WithTimeout(ctx, oauthTimeout)
	defer cancel()
	code, err := flow.WaitForCode(waitCtx, state)
	if err != nil {
		return nil, err
	}
	return svc.LoginWithOAuth(ctx, code)
}

func printSession(snap domain.SessionSnapshot) {
	switch snap.Phase {
	case domain.SessionAuthenticated:
		fmt.Printf("%s (%v)\n", snap.User.DisplayName(), snap.User.NormalizedRoles())
	case domain.SessionAnonymous:
		fmt.Println("not signed in")
	default:
		fmt.Println("resolving")
	}
}

// printNavigation shows the menu exactly as the session's roles allow, plus
// the gate decision for each restricted destination.
func printNavigation(snap domain.SessionSnapshot) {
	for _, link := range navigation.ForSession(domain.DefaultNavLinks, snap) {
		fmt.Printf("%s\t%s\n", link.Label, link.Href)
	}
	for _, link := range domain.DefaultNavLinks {
		if len(link.RequireRoles) == 0 {
			continue
		}
		d := gate.Decide(snap, link.RequireRoles)
		if d.Outcome != gate.Render {
			fmt.Printf("(%s requires %v)\n", link.Href, link.RequireRoles)
		}
	}
}

// serveMetrics exposes the Prometheus registry on its own listener.
func serveMetrics(addr string) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	if err := e.Start(addr); err != nil {
		log := logger.Get()
		log.Error().Err(err).Msg("metrics listener stopped")
	}
}
