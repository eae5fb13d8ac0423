package config

import (
	"errors"
	"fmt"

	"github.com/gobwas/glob"
)

// Validate ensures the configuration is usable. Fingerprint errors wrap
// winnow.ErrConfiguration.
func (c *Config) Validate() error {
	if err := c.validateFingerprint(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateFingerprint() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("fingerprint: %w", err)
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.Workers < 0 {
		return errors.New("batch.workers must be >= 0 (0 selects the CPU count)")
	}
	if c.Batch.CacheSize < 0 {
		return errors.New("batch.cache_size must be >= 0")
	}
	for _, pattern := range c.Batch.Include {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("batch.include: invalid pattern %q: %w", pattern, err)
		}
	}
	for _, pattern := range c.Batch.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("batch.exclude: invalid pattern %q: %w", pattern, err)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}
