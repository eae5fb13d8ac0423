package winnow

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks invalid fingerprinting parameters.
var ErrConfiguration = errors.New("configuration error")

// ConfigError identifies the parameter that failed validation.
type ConfigError struct {
	Param  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %v: %s", ErrConfiguration, e.Param, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}
