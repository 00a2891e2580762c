package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"3000"`

	FacebookClientID     string `env:"FACEBOOK_CLIENT_ID"`
	FacebookClientSecret string `env:"FACEBOOK_CLIENT_SECRET"`
	// Must exactly match the redirect URI registered with the provider,
	// scheme and host included.
	FacebookRedirectURL string `env:"FACEBOOK_REDIRECT_URL"`

	GraphBaseURL string `env:"GRAPH_BASE_URL" envDefault:"https://graph.facebook.com/v19.0"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`

	// Address of the single TLS-terminating proxy hop to trust for
	// X-Forwarded-* headers. Empty means no proxy is trusted.
	TrustedProxy string `env:"TRUSTED_PROXY"`

	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"false"`
	// Set when the provider callback lands cross-site relative to the
	// cookie origin; switches the session cookie to SameSite=None.
	CookieCrossSite bool `env:"COOKIE_CROSS_SITE" envDefault:"false"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.FacebookClientID == "" || c.FacebookClientSecret == "" {
		return errors.New("config: FACEBOOK_CLIENT_ID and FACEBOOK_CLIENT_SECRET are required")
	}
	if c.FacebookRedirectURL == "" {
		return errors.New("config: FACEBOOK_REDIRECT_URL is required")
	}
	if c.UpstreamTimeout <= 0 {
		return errors.New("config: UPSTREAM_TIMEOUT must be positive")
	}
	if c.SessionTTL <= 0 {
		return errors.New("config: SESSION_TTL must be positive")
	}
	return nil
}
