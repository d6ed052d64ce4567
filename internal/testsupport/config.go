package testsupport

import (
	"path/filepath"
	"testing"

	"bookdup/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DatabasePath = filepath.Join(base, "catalog.db")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ReportDir = filepath.Join(base, "reports")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	return &cfg
}

// WithMatchMode overrides the comparison mode on the test config.
func WithMatchMode(mode string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Match.Mode = mode
	}
}

// WithIdentifierType sets identifier mode with the given identifier field.
func WithIdentifierType(idType string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Match.Mode = "identifier"
		cfg.Match.IdentifierType = idType
	}
}
