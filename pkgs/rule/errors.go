package rule

import (
	"errors"
	"fmt"
)

// ConfigError reports a precondition violation in caller-supplied
// configuration. It is detected eagerly, before any declaration is emitted,
// and aborts the whole expansion it occurred in.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// Configf returns a ConfigError with a formatted reason.
func Configf(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// IsConfig reports whether err is (or wraps) a ConfigError.
func IsConfig(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
