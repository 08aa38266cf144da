package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	loopconfig "github.com/tomz197/bounce/internal/loop/config"
)

// Settings are the per-run options read from BOUNCE_* environment variables.
// Command-line flags override them.
type Settings struct {
	Bodies     int    // BOUNCE_BODIES
	Boundary   string // BOUNCE_BOUNDARY: bounce or wrap
	Seed       int64  // BOUNCE_SEED; 0 picks a time-based seed
	Sound      bool   // BOUNCE_SOUND
	Indicators bool   // BOUNCE_INDICATORS
	Backend    string // BOUNCE_BACKEND: ansi or tcell
	LogLevel   string // BOUNCE_LOG_LEVEL
	LogFile    string // BOUNCE_LOG_FILE; empty discards local-mode logs
}

// Defaults returns the settings used when no variable is set.
func Defaults() Settings {
	return Settings{
		Bodies:     loopconfig.DefaultBodies,
		Boundary:   "bounce",
		Indicators: true,
		Backend:    "ansi",
		LogLevel:   "info",
	}
}

// Load reads Settings from the environment. All problems are reported together.
func Load() (Settings, error) {
	s := Defaults()
	var errs []error

	var err error
	if s.Bodies, err = GetEnvInt("BOUNCE_BODIES", s.Bodies); err != nil {
		errs = append(errs, err)
	}
	seed, err := GetEnvInt("BOUNCE_SEED", 0)
	if err != nil {
		errs = append(errs, err)
	}
	s.Seed = int64(seed)
	if s.Sound, err = GetEnvBool("BOUNCE_SOUND", s.Sound); err != nil {
		errs = append(errs, err)
	}
	if s.Indicators, err = GetEnvBool("BOUNCE_INDICATORS", s.Indicators); err != nil {
		errs = append(errs, err)
	}
	s.Boundary = strings.ToLower(getEnvNonEmpty("BOUNCE_BOUNDARY", s.Boundary))
	s.Backend = strings.ToLower(getEnvNonEmpty("BOUNCE_BACKEND", s.Backend))
	s.LogLevel = getEnvNonEmpty("BOUNCE_LOG_LEVEL", s.LogLevel)
	s.LogFile = GetEnv("BOUNCE_LOG_FILE", s.LogFile)

	if err := s.Validate(); err != nil {
		errs = append(errs, err)
	}
	return s, errors.Join(errs...)
}

// getEnvNonEmpty is GetEnv with a blank value treated as unset.
func getEnvNonEmpty(key, fallback string) string {
	if v := strings.TrimSpace(GetEnv(key, "")); v != "" {
		return v
	}
	return fallback
}

// Validate checks value ranges and enumerations.
func (s Settings) Validate() error {
	var errs []error
	if s.Bodies < 0 {
		errs = append(errs, fmt.Errorf("%w: bodies %d", ErrInvalidSetting, s.Bodies))
	}
	switch s.Boundary {
	case "bounce", "wrap":
	default:
		errs = append(errs, fmt.Errorf("%w: boundary %q", ErrInvalidSetting, s.Boundary))
	}
	switch s.Backend {
	case "ansi", "tcell":
	default:
		errs = append(errs, fmt.Errorf("%w: backend %q", ErrInvalidSetting, s.Backend))
	}
	return errors.Join(errs...)
}

// ResolveSeed returns s.Seed, or a time-based seed when it is zero.
func (s Settings) ResolveSeed() int64 {
	if s.Seed != 0 {
		return s.Seed
	}
	return time.Now().UnixNano()
}
