package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"textprint/internal/normalize"
	"textprint/internal/winnow"
)

//go:embed sample_config.toml
var sampleConfig string

// Fingerprint contains the winnowing pipeline parameters.
type Fingerprint struct {
	GramSize       int     `toml:"gram_size"`
	WindowSize     int     `toml:"window_size"`
	RetentionRatio float64 `toml:"retention_ratio"`
	Hash           string  `toml:"hash"`
}

// Normalize contains the switches for optional normalization steps.
type Normalize struct {
	Transliterate bool `toml:"transliterate"`
	Stopwords     bool `toml:"stopwords"`
	Stem          bool `toml:"stem"`
}

// Batch contains configuration for multi-document runs.
type Batch struct {
	Workers   int      `toml:"workers"`
	CacheSize int      `toml:"cache_size"`
	Include   []string `toml:"include"`
	Exclude   []string `toml:"exclude"`
}

// Paths contains directory configuration.
type Paths struct {
	LogDir string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for textprint.
//
// Configuration sections by subsystem:
//   - Fingerprint: gram size, window size, retention ratio, hash algorithm
//   - Normalize: transliteration, stopword removal, stemming
//   - Batch: worker count, result cache, file selection globs
//   - Paths: log directory
//   - Logging: log format and level
type Config struct {
	Fingerprint Fingerprint `toml:"fingerprint"`
	Normalize   Normalize   `toml:"normalize"`
	Batch       Batch       `toml:"batch"`
	Paths       Paths       `toml:"paths"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. The bool result reports whether a file was read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log directory when one is configured.
func (c *Config) EnsureDirectories() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// Params returns the fingerprinting parameters.
func (c *Config) Params() winnow.Params {
	return winnow.Params{
		GramSize:       c.Fingerprint.GramSize,
		WindowSize:     c.Fingerprint.WindowSize,
		RetentionRatio: c.Fingerprint.RetentionRatio,
		Hash:           c.Fingerprint.Hash,
	}
}

// NormalizeOptions returns the normalizer switches.
func (c *Config) NormalizeOptions() normalize.Options {
	return normalize.Options{
		Transliterate: c.Normalize.Transliterate,
		Stopwords:     c.Normalize.Stopwords,
		Stem:          c.Normalize.Stem,
	}
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
