// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package recommend

import (
	"fmt"
	"time"
)

// MissingTitlePolicy decides what happens when a recommended candidate has
// ratings but no catalogue entry.
type MissingTitlePolicy string

const (
	// PolicySkip drops the candidate and keeps filling from the remainder.
	PolicySkip MissingTitlePolicy = "skip"

	// PolicyFail aborts the request with a DataIntegrityError.
	PolicyFail MissingTitlePolicy = "fail"
)

// ParseMissingTitlePolicy parses a policy name. Empty means PolicySkip.
func ParseMissingTitlePolicy(s string) (MissingTitlePolicy, error) {
	switch MissingTitlePolicy(s) {
	case "", PolicySkip:
		return PolicySkip, nil
	case PolicyFail:
		return PolicyFail, nil
	default:
		return "", fmt.Errorf("unknown missing title policy %q (want skip or fail)", s)
	}
}

// Config contains all configuration for the recommendation engine.
type Config struct {
	// DefaultTopN is used when a request does not set TopN.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN caps the number of recommendations per request.
	MaxTopN int `json:"max_top_n"`

	// MissingTitlePolicy controls candidates that have no catalogue entry.
	MissingTitlePolicy MissingTitlePolicy `json:"missing_title_policy"`

	// SlowRequestThreshold logs a warning for requests slower than this.
	// Zero disables the warning.
	SlowRequestThreshold time.Duration `json:"slow_request_threshold"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultTopN:          5,
		MaxTopN:              100,
		MissingTitlePolicy:   PolicySkip,
		SlowRequestThreshold: 2 * time.Second,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.DefaultTopN < 1 {
		return fmt.Errorf("default_top_n must be positive, got %d", c.DefaultTopN)
	}
	if c.MaxTopN < c.DefaultTopN {
		return fmt.Errorf("max_top_n must be >= default_top_n, got %d < %d", c.MaxTopN, c.DefaultTopN)
	}
	if _, err := ParseMissingTitlePolicy(string(c.MissingTitlePolicy)); err != nil {
		return err
	}
	if c.SlowRequestThreshold < 0 {
		return fmt.Errorf("slow_request_threshold must be non-negative, got %v", c.SlowRequestThreshold)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
