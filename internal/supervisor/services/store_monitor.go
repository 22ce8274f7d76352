// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package services

import (
	"context"
	"time"

	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/metrics"
)

const (
	defaultMonitorInterval = 30 * time.Second
	monitorPingTimeout     = 5 * time.Second
)

// Pinger is satisfied by *database.DB and *recommend.MemoryStore.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreMonitorService pings the ratings store on an interval and publishes
// the result as the duckdb_up gauge. State changes are logged once rather
// than on every tick.
type StoreMonitorService struct {
	store    Pinger
	interval time.Duration
	name     string
}

// NewStoreMonitorService creates a monitor. A non-positive interval
// selects the default.
func NewStoreMonitorService(store Pinger, interval time.Duration) *StoreMonitorService {
	if interval <= 0 {
		interval = defaultMonitorInterval
	}
	return &StoreMonitorService{
		store:    store,
		interval: interval,
		name:     "store-monitor",
	}
}

// Serve implements suture.Service. It pings immediately, then on every tick
// until ctx is canceled.
func (s *StoreMonitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	up := s.check(ctx, true)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			up = s.check(ctx, up)
		}
	}
}

// check pings once and returns the new state. prev is the state from the
// previous tick, used to log transitions only.
func (s *StoreMonitorService) check(ctx context.Context, prev bool) bool {
	pingCtx, cancel := context.WithTimeout(ctx, monitorPingTimeout)
	defer cancel()

	err := s.store.Ping(pingCtx)
	up := err == nil
	metrics.SetDBUp(up)

	switch {
	case !up && prev:
		logging.Warn().Err(err).Msg("Ratings store ping failed")
	case up && !prev:
		logging.Info().Msg("Ratings store reachable again")
	}
	return up
}

// String implements fmt.Stringer for suture's event log.
func (s *StoreMonitorService) String() string {
	return s.name
}
