// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/moviematch/internal/recommend"
)

// Config holds all application configuration
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path         string        `koanf:"path"`           // DuckDB file, or ":memory:"
	MaxMemory    string        `koanf:"max_memory"`     // DuckDB memory_limit, e.g. "1GB"
	Threads      int           `koanf:"threads"`        // Number of DuckDB threads (0 = use NumCPU)
	MaxOpenConns int           `koanf:"max_open_conns"` // Pool size (0 = derive from NumCPU)
	QueryTimeout time.Duration `koanf:"query_timeout"`  // Per-query timeout

	// SQLitePath attaches an existing SQLite movies/ratings database through
	// DuckDB's sqlite_scanner extension. Queries then read the attached catalog.
	SQLitePath string `koanf:"sqlite_path"`

	// SeedSampleData inserts the three-movie example catalogue on startup.
	SeedSampleData bool `koanf:"seed_sample_data"`

	// MovieLens CSV files to bulk-load on startup (both or neither).
	MoviesCSV  string `koanf:"movies_csv"`
	RatingsCSV string `koanf:"ratings_csv"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`          // Read/write timeout
	RequestTimeout  time.Duration `koanf:"request_timeout"`  // Per-request computation timeout
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"` // Graceful shutdown budget
}

// Addr returns host:port for net.Listen.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes file:line in log entries.
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds recommendation engine settings
type RecommendConfig struct {
	DefaultTopN          int           `koanf:"default_top_n"`
	MaxTopN              int           `koanf:"max_top_n"`
	MissingTitlePolicy   string        `koanf:"missing_title_policy"` // skip or fail
	SlowRequestThreshold time.Duration `koanf:"slow_request_threshold"`
}

// EngineConfig converts the section into a recommend.Config.
func (r RecommendConfig) EngineConfig() (*recommend.Config, error) {
	policy, err := recommend.ParseMissingTitlePolicy(r.MissingTitlePolicy)
	if err != nil {
		return nil, fmt.Errorf("recommend.missing_title_policy: %w", err)
	}
	return &recommend.Config{
		DefaultTopN:          r.DefaultTopN,
		MaxTopN:              r.MaxTopN,
		MissingTitlePolicy:   policy,
		SlowRequestThreshold: r.SlowRequestThreshold,
	}, nil
}

// Load reads configuration with the following precedence (highest to lowest):
//  1. Environment variables
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Built-in defaults
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
