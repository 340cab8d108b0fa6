package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/frherrer/docvet/internal/domain"
)

// Validate checks the Config for required fields and valid values.
func Validate(cfg *Config) error {
	var errs []string

	// Input validation
	if cfg.Input.Root == "" {
		errs = append(errs, "input.root must not be empty")
	}
	if len(cfg.Input.Include) == 0 {
		errs = append(errs, "input.include must not be empty")
	}

	// Checks validation
	if cfg.Checks.MaxLineLength <= 0 {
		errs = append(errs, fmt.Sprintf("checks.max_line_length must be positive (got %d)", cfg.Checks.MaxLineLength))
	}

	// Durations must parse and be positive
	if d, err := time.ParseDuration(cfg.Sandbox.Timeout); err != nil {
		errs = append(errs, fmt.Sprintf("sandbox.timeout is not a valid duration: %v", err))
	} else if d <= 0 {
		errs = append(errs, "sandbox.timeout must be positive")
	}
	if d, err := time.ParseDuration(cfg.External.Timeout); err != nil {
		errs = append(errs, fmt.Sprintf("external.timeout is not a valid duration: %v", err))
	} else if d <= 0 {
		errs = append(errs, "external.timeout must be positive")
	}

	if cfg.External.Workers <= 0 {
		errs = append(errs, fmt.Sprintf("external.workers must be positive (got %d)", cfg.External.Workers))
	}
	if cfg.External.MaxRedirects < 0 {
		errs = append(errs, fmt.Sprintf("external.max_redirects must not be negative (got %d)", cfg.External.MaxRedirects))
	}
	if cfg.Workers < 0 {
		errs = append(errs, fmt.Sprintf("workers must not be negative (got %d)", cfg.Workers))
	}

	// Validate logging level
	if cfg.Logging.Level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[cfg.Logging.Level] {
			errs = append(errs, fmt.Sprintf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level))
		}
	}

	if len(errs) > 0 {
		return domain.NewError("config", "", 0, fmt.Sprintf("validation failed: %s", strings.Join(errs, "; ")), nil)
	}

	return nil
}

// ParsedTimeout returns the parsed sandbox timeout. Call Validate first;
// an unparseable value falls back to 5 seconds.
func (s SandboxConfig) ParsedTimeout() time.Duration {
	return parseTimeout(s.Timeout)
}

// ParsedTimeout returns the parsed external-link timeout with the same
// fallback behavior as the sandbox timeout.
func (e ExternalConfig) ParsedTimeout() time.Duration {
	return parseTimeout(e.Timeout)
}

func parseTimeout(raw string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}
