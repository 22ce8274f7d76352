// Moviematch - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/moviematch/internal/metrics"
	"github.com/tomtom215/moviematch/internal/recommend"
)

var _ suture.Service = (*StoreMonitorService)(nil)

// flakyPinger fails while down is set.
type flakyPinger struct {
	mu    sync.Mutex
	down  bool
	calls atomic.Int32
}

func (p *flakyPinger) Ping(context.Context) error {
	p.calls.Add(1)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.down {
		return errors.New("connection refused")
	}
	return nil
}

func (p *flakyPinger) setDown(down bool) {
	p.mu.Lock()
	p.down = down
	p.mu.Unlock()
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewStoreMonitorService_DefaultInterval(t *testing.T) {
	svc := NewStoreMonitorService(recommend.NewMemoryStore(nil, nil), 0)
	if svc.interval != defaultMonitorInterval {
		t.Errorf("interval = %v, want %v", svc.interval, defaultMonitorInterval)
	}
	if svc.String() != "store-monitor" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestStoreMonitorService_TracksState(t *testing.T) {
	pinger := &flakyPinger{}
	svc := NewStoreMonitorService(pinger, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	waitFor(t, func() bool { return pinger.calls.Load() >= 1 && testutil.ToFloat64(metrics.DBUp) == 1 })

	pinger.setDown(true)
	waitFor(t, func() bool { return testutil.ToFloat64(metrics.DBUp) == 0 })

	pinger.setDown(false)
	waitFor(t, func() bool { return testutil.ToFloat64(metrics.DBUp) == 1 })

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
