// Package config provides shared configuration utilities.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidSetting is returned when an environment variable holds an unusable value.
var ErrInvalidSetting = errors.New("invalid setting")

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt parses the variable named by key as an integer, returning fallback if unset.
func GetEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback, fmt.Errorf("%w: %s=%q: %w", ErrInvalidSetting, key, value, err)
	}
	return n, nil
}

// GetEnvFloat parses the variable named by key as a float, returning fallback if unset.
func GetEnvFloat(key string, fallback float64) (float64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback, fmt.Errorf("%w: %s=%q: %w", ErrInvalidSetting, key, value, err)
	}
	return f, nil
}

// GetEnvBool parses the variable named by key as a boolean (1/0, true/false, yes/no, on/off).
func GetEnvBool(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return fallback, fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidSetting, key, value)
}
