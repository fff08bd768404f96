package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	APIBaseURL   string        `env:"API_BASE_URL,   default=http://localhost:8080/api"`
	AssetBaseURL string        `env:"ASSET_BASE_URL"`
	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT,   default=30s"`
	Env          string        `env:"ENV,            default=development"`
	LogLevel     string        `env:"LOG_LEVEL,      default=info"`
	LogPretty    bool          `env:"LOG_PRETTY,     default=false"`
	MetricsAddr  string        `env:"METRICS_ADDR"`

	OAuth OAuthConfig
}

// OAuthConfig drives the third-party login redirect flow.
type OAuthConfig struct {
	// AuthorizationURL is the provider endpoint the browser is sent to,
	// e.g. http://localhost:8080/oauth2/authorization/google.
	AuthorizationURL string `env:"OAUTH_AUTHORIZATION_URL"`
	// CallbackAddr is the loopback address the provider redirects back to.
	CallbackAddr string `env:"OAUTH_CALLBACK_ADDR, default=127.0.0.1:53682"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
