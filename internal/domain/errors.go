package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrStore marks any failure reading or writing user preferences.
	ErrStore = errors.New("preference store failure")

	// ErrProvider marks any failure obtaining weather data.
	ErrProvider = errors.New("weather provider failure")

	// ErrNotFound is wrapped together with ErrStore when no record exists.
	ErrNotFound = errors.New("no preferences for user")
)

// StoreError wraps err so that it matches both ErrStore and err.
func StoreError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}

// ProviderError wraps err so that it matches both ErrProvider and err.
func ProviderError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrProvider, err)
}
