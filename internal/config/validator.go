package config

import (
	"fmt"
	"strings"
)

// Validate checks every setting and reports all violations in one error.
func Validate(s *Settings) error {
	var errors []string

	if s.OuterIterations <= 0 {
		errors = append(errors, fmt.Sprintf("outer_iterations must be positive, got: %d", s.OuterIterations))
	}
	if !(s.MinimumTimeMs > 0) {
		errors = append(errors, fmt.Sprintf("minimum_time_ms must be positive, got: %v", s.MinimumTimeMs))
	}
	if s.MaxIterations <= 0 {
		errors = append(errors, fmt.Sprintf("max_iterations must be positive, got: %d", s.MaxIterations))
	}
	// The label margin and the two pipes need 14 columns.
	if s.LineWidth < 16 {
		errors = append(errors, fmt.Sprintf("line_width must be at least 16, got: %d", s.LineWidth))
	}
	if s.RegressionThreshold < 0 {
		errors = append(errors, fmt.Sprintf("regression_threshold must not be negative, got: %v", s.RegressionThreshold))
	}

	switch strings.ToLower(s.Color) {
	case "auto", "always", "never":
	default:
		errors = append(errors, fmt.Sprintf("color must be one of auto, always, never, got: %q", s.Color))
	}

	if s.Baseline.File == "" {
		errors = append(errors, "baseline.file must not be empty")
	}

	if s.History.Enabled {
		switch strings.ToLower(s.History.Type) {
		case "sqlite", "sqlite3", "postgres", "postgresql":
		default:
			errors = append(errors, fmt.Sprintf("history.type must be sqlite or postgres, got: %q", s.History.Type))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}
	return nil
}
