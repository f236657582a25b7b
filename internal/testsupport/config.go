package testsupport

import (
	"path/filepath"
	"testing"

	"segbake/internal/config"
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
	cfgVal.Paths.Project = filepath.Join(base, "project", "segbake.db")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

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

// WithBoundSegments binds the display positions to the segment scene
// fixture's object names.
func WithBoundSegments() ConfigOption {
	return func(b *configBuilder) {
		BindSegments(b.cfg)
	}
}

// WithCountRange sets the sequence endpoints on the test config.
func WithCountRange(from, to int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Count.From = from
		b.cfg.Count.To = to
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
