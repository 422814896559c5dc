package testsupport

import (
	"path/filepath"
	"testing"

	"strmctl/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.API.UserAgent = "strmctl/test"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithBaseURL points the test config at a backend, typically an httptest server.
func WithBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		normalized, err := config.NormalizeBaseURL(url)
		if err != nil {
			b.t.Fatalf("normalize base url %q: %v", url, err)
		}
		b.cfg.API.BaseURL = normalized
	}
}

// WithToken sets a static bearer token.
func WithToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Auth.Token = token
	}
}

// WithJWTSecret sets the HS256 signing secret and clears any static token.
func WithJWTSecret(secret string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Auth.Token = ""
		b.cfg.Auth.JWTSecret = secret
	}
}
