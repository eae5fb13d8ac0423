package winnow

import "math"

// Default fingerprinting parameters.
const (
	DefaultGramSize       = 5
	DefaultWindowSize     = 4
	DefaultRetentionRatio = 1.0
	DefaultHash           = HashMurmur3
)

// Params controls the gram, sampling, hashing, and window stages.
type Params struct {
	GramSize       int
	WindowSize     int
	RetentionRatio float64
	Hash           string
}

// DefaultParams returns the documented defaults.
func DefaultParams() Params {
	return Params{
		GramSize:       DefaultGramSize,
		WindowSize:     DefaultWindowSize,
		RetentionRatio: DefaultRetentionRatio,
		Hash:           DefaultHash,
	}
}

// Validate reports the first invalid parameter as a *ConfigError.
func (p Params) Validate() error {
	if p.GramSize < 1 {
		return &ConfigError{Param: "gram_size", Value: p.GramSize, Reason: "must be at least 1"}
	}
	if p.WindowSize < 1 {
		return &ConfigError{Param: "window_size", Value: p.WindowSize, Reason: "must be at least 1"}
	}
	if math.IsNaN(p.RetentionRatio) || p.RetentionRatio <= 0 || p.RetentionRatio > 1 {
		return &ConfigError{Param: "retention_ratio", Value: p.RetentionRatio, Reason: "must be in (0, 1]"}
	}
	if _, err := LookupHash(p.Hash); err != nil {
		return err
	}
	return nil
}
