package testsupport

import (
	"path/filepath"
	"testing"

	"soundguard/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Retry delays are zeroed so recognition tests never wait.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.TempDir = filepath.Join(base, "tmp")
	cfgVal.Paths.APIBind = "127.0.0.1:0"
	cfgVal.Directory.Path = filepath.Join(base, "state", "artists.db")
	cfgVal.Recognition.APIToken = "test"
	cfgVal.Recognition.RetryDelaySeconds = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithRecognitionToken sets the recognition API token on the test config.
func WithRecognitionToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Recognition.APIToken = token
	}
}

// WithRecognitionURL points the recognition client at a test server.
func WithRecognitionURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Recognition.BaseURL = url
	}
}

// WithAPIToken sets the bearer token required by the HTTP API.
func WithAPIToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.APIToken = token
	}
}

// WithPolicy overrides the verification policy constants.
func WithPolicy(threshold float64, blockUnverified bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Policy.SimilarityThreshold = threshold
		b.cfg.Policy.BlockUnverifiedMatches = blockUnverified
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
