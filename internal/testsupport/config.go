package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"textprint/internal/config"
	"textprint/internal/normalize"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a default config whose log directory lives in a unique
// temp directory per test, then applies opts.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Batch.Workers = 2

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

// WithGram sets the gram and window sizes.
func WithGram(gramSize, windowSize int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Fingerprint.GramSize = gramSize
		b.cfg.Fingerprint.WindowSize = windowSize
	}
}

// WithHash selects the gram hash algorithm.
func WithHash(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Fingerprint.Hash = name
	}
}

// WithNormalize replaces the normalizer switches.
func WithNormalize(opts normalize.Options) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Normalize.Transliterate = opts.Transliterate
		b.cfg.Normalize.Stopwords = opts.Stopwords
		b.cfg.Normalize.Stem = opts.Stem
	}
}

// WithoutLogDir logs to stderr only.
func WithoutLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = ""
	}
}

// WriteConfig encodes cfg as TOML at path and returns path.
func WriteConfig(t testing.TB, path string, cfg *config.Config) string {
	t.Helper()

	encoded, err := cfg.Encode()
	require.NoError(t, err, "encode config")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "mkdir for %s", path)
	require.NoError(t, os.WriteFile(path, []byte(encoded), 0o644), "write config %s", path)
	return path
}
