package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig signals a missing or invalid startup setting.
	ErrConfig = errors.New("config error")
	// ErrProvider signals a failure of an external provider.
	ErrProvider = errors.New("provider error")
	// ErrEmptyQuery signals that the pipeline was invoked without a question.
	ErrEmptyQuery = errors.New("query must not be empty")
)

// ConfigError names the setting that failed validation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrConfig.Error(), e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// NewConfigError creates a config error for the given field.
func NewConfigError(field, reason string) error {
	return &ConfigError{Field: field, Reason: reason}
}

// ProviderError wraps a failure from the embedding, vector index or chat provider.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrProvider.Error(), e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Is reports ErrProvider for every ProviderError.
func (e *ProviderError) Is(target error) bool { return target == ErrProvider }

// NewProviderError wraps err as a failure of provider during op.
func NewProviderError(provider, op string, err error) error {
	return &ProviderError{Provider: provider, Op: op, Err: err}
}
