package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFingerprint()
	if err := c.normalizeBatch(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFingerprint() {
	c.Fingerprint.Hash = strings.ToLower(strings.TrimSpace(c.Fingerprint.Hash))
}

func (c *Config) normalizeBatch() error {
	if value, ok := os.LookupEnv("TEXTPRINT_WORKERS"); ok && strings.TrimSpace(value) != "" {
		workers, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("TEXTPRINT_WORKERS: %w", err)
		}
		c.Batch.Workers = workers
	}
	if c.Batch.Workers == 0 {
		c.Batch.Workers = runtime.NumCPU()
	}
	c.Batch.Include = trimPatterns(c.Batch.Include)
	c.Batch.Exclude = trimPatterns(c.Batch.Exclude)
	return nil
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv("TEXTPRINT_LOG_FORMAT"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Format = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("TEXTPRINT_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func trimPatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	seen := make(map[string]struct{}, len(patterns))
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if _, exists := seen[pattern]; exists {
			continue
		}
		seen[pattern] = struct{}{}
		out = append(out, pattern)
	}
	return out
}
